package models

import "time"

// AssetLogType classifies an asset log entry.
type AssetLogType string

const (
	AssetLogValuation   AssetLogType = "Valuation"
	AssetLogDividend    AssetLogType = "Dividend"
	AssetLogMaintenance AssetLogType = "Maintenance"
	AssetLogOther       AssetLogType = "Other"
)

// AssetLog is a dated entry against an asset. Only Valuation entries feed the
// asset's cached value.
type AssetLog struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	AssetID    uint         `gorm:"not null;index" json:"asset_id"`
	Type       AssetLogType `gorm:"not null;default:'Valuation'" json:"type"`
	Amount     float64      `gorm:"not null" json:"amount"`
	Currency   string       `gorm:"default:'USD'" json:"currency"`
	Comment    string       `json:"comment"`
	RecordedAt time.Time    `gorm:"not null;index" json:"recorded_at"`
}

// TableName overrides the default table name.
func (AssetLog) TableName() string { return "asset_logs" }
