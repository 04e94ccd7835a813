package models

import "time"

// Bank represents a financial institution grouping one or more sub-accounts.
// LastUpdated is restamped whenever any descendant balance log changes.
type Bank struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OwnerID         uint      `gorm:"not null;index" json:"owner_id"`
	Name            string    `gorm:"not null" json:"name"`
	BankName        string    `json:"bank_name"`
	InstitutionType string    `json:"institution_type"`
	LogoColor       string    `gorm:"default:'#3b82f6'" json:"logo_color"`
	Country         string    `gorm:"default:'USA'" json:"country"`
	LastUpdated     time.Time `json:"last_updated"`

	Accounts []Account `gorm:"foreignKey:BankID" json:"accounts,omitempty"`
}

// TableName overrides the default table name.
func (Bank) TableName() string { return "banks" }
