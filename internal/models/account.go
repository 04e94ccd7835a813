package models

// Account is a sub-ledger under a bank (checking, savings, credit, ...).
// Creating a bank auto-creates one account named "Default Account".
type Account struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	BankID        uint   `gorm:"not null;index" json:"bank_id"`
	Name          string `gorm:"not null" json:"name"`
	Type          string `gorm:"not null;default:'Bank'" json:"type"`
	AccountNumber string `json:"account_number"`

	Logs []BalanceLog `gorm:"foreignKey:AccountID" json:"logs,omitempty"`
}

// TableName overrides the default table name.
func (Account) TableName() string { return "accounts" }
