package models

import "time"

// Asset is a non-bank holding (real estate, vehicle, equity, ...) tracked by
// periodic valuations. Value caches the amount of the latest Valuation-type
// log; it is refreshed by the asset service on every log write.
type Asset struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	OwnerID       uint       `gorm:"not null;index" json:"owner_id"`
	Name          string     `gorm:"not null" json:"name"`
	AssetType     string     `gorm:"not null;default:'Other'" json:"asset_type"`
	Value         float64    `gorm:"not null;default:0" json:"value"`
	Currency      string     `gorm:"default:'USD'" json:"currency"`
	PurchasePrice float64    `json:"purchase_price"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	Country       string     `gorm:"default:'USA'" json:"country"`
	Notes         string     `json:"notes"`
	LogoColor     string     `gorm:"default:'#3b82f6'" json:"logo_color"`
	LastUpdated   time.Time  `json:"last_updated"`

	Logs []AssetLog `gorm:"foreignKey:AssetID" json:"logs,omitempty"`
}

// TableName overrides the default table name.
func (Asset) TableName() string { return "assets" }
