package models

import "time"

// BalanceLog is an immutable balance snapshot for an account. The account's
// current balance is the log with the greatest RecordedAt (ties broken by ID).
type BalanceLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AccountID  uint      `gorm:"not null;index" json:"account_id"`
	Balance    float64   `gorm:"not null" json:"balance"`
	Currency   string    `gorm:"default:'USD'" json:"currency"`
	Comment    string    `json:"comment"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
}

// TableName overrides the default table name.
func (BalanceLog) TableName() string { return "balance_logs" }
