package models

import "time"

// FXRate expresses 1 unit of BaseCurrency = Rate units of TargetCurrency.
// Only USD-anchored rates are populated in practice; cross-pair conversion
// goes through the base.
type FXRate struct {
	BaseCurrency   string    `gorm:"primaryKey" json:"base_currency"`
	TargetCurrency string    `gorm:"primaryKey" json:"target_currency"`
	Rate           float64   `gorm:"not null" json:"rate"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides the default table name.
func (FXRate) TableName() string { return "fx_rates" }
