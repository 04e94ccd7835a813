package services

import (
	"context"
	"time"

	"assetsnapshot/internal/currency"
	"assetsnapshot/internal/models"
	"assetsnapshot/internal/timeseries"
)

// OwnerServicer manages owners.
type OwnerServicer interface {
	ListOwners() ([]models.Owner, error)
	CreateOwner(name string) (*models.Owner, error)
	DeleteOwner(id uint) error
}

// ConfigOptions holds the country and currency pick lists.
type ConfigOptions struct {
	Countries  []string `json:"countries"`
	Currencies []string `json:"currencies"`
}

// ConfigServicer manages the country/currency option lists.
type ConfigServicer interface {
	GetOptions() (*ConfigOptions, error)
	AddOption(optionType, value string) error
	RemoveOption(optionType, value string) error
}

// RateUpdate is one base→target quote in a bulk upsert.
type RateUpdate struct {
	Base   string  `json:"base"`
	Target string  `json:"target"`
	Rate   float64 `json:"rate"`
}

// FXRateServicer manages the exchange rate table.
type FXRateServicer interface {
	ListRates() ([]models.FXRate, error)
	UpsertRates(rates []RateUpdate) error
	RefreshRates(ctx context.Context) (int, error)
	RateTable() (*currency.Table, error)
}

// BankCreateFields carries the fields for creating a bank.
type BankCreateFields struct {
	OwnerID         uint
	Name            string
	BankName        string
	InstitutionType string
	LogoColor       string
	Country         string
}

// BankUpdateFields carries partial-patch fields for a bank. Nil pointers
// leave the column unchanged.
type BankUpdateFields struct {
	OwnerID         *uint
	Name            *string
	BankName        *string
	InstitutionType *string
	LogoColor       *string
	Country         *string
}

// BankSummary is a bank row enriched with its owner's name and the derived
// sum of its accounts' latest balances.
type BankSummary struct {
	models.Bank
	OwnerName    string  `json:"owner_name"`
	TotalBalance float64 `json:"total_balance"`
}

// BankDetail is a bank with its owner's name and fully loaded accounts/logs.
type BankDetail struct {
	models.Bank
	OwnerName string `json:"owner_name"`
}

// BankServicer manages banks and their derived balances.
type BankServicer interface {
	ListBanks() ([]BankSummary, error)
	GetBank(id uint) (*BankDetail, error)
	CreateBank(fields BankCreateFields) (*models.Bank, error)
	UpdateBank(id uint, fields BankUpdateFields) (*models.Bank, error)
	DeleteBank(id uint) error
}

// AccountCreateFields carries the fields for creating a sub-account.
type AccountCreateFields struct {
	BankID        uint
	Name          string
	Type          string
	AccountNumber string
}

// AccountUpdateFields carries partial-patch fields for a sub-account.
type AccountUpdateFields struct {
	Name          *string
	Type          *string
	AccountNumber *string
}

// AccountServicer manages sub-accounts.
type AccountServicer interface {
	CreateAccount(fields AccountCreateFields) (*models.Account, error)
	UpdateAccount(id uint, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(id uint) error
	CurrentValue(accountID uint) (*models.BalanceLog, error)
}

// LogCreateFields carries the fields for creating a balance log.
type LogCreateFields struct {
	AccountID  uint
	Balance    float64
	Currency   string
	Comment    string
	RecordedAt time.Time
}

// LogUpdateFields carries partial-patch fields for a balance log.
type LogUpdateFields struct {
	Balance    *float64
	Currency   *string
	Comment    *string
	RecordedAt *time.Time
}

// LogServicer manages balance logs. Every write restamps the parent bank's
// last_updated timestamp.
type LogServicer interface {
	CreateLog(fields LogCreateFields) (*models.BalanceLog, error)
	UpdateLog(id uint, fields LogUpdateFields) (*models.BalanceLog, error)
	DeleteLog(id uint) error
}

// AssetCreateFields carries the fields for creating an asset.
type AssetCreateFields struct {
	OwnerID       uint
	Name          string
	AssetType     string
	Value         float64
	Currency      string
	PurchasePrice float64
	PurchaseDate  *time.Time
	Country       string
	Notes         string
	LogoColor     string
}

// AssetUpdateFields carries partial-patch fields for an asset.
type AssetUpdateFields struct {
	OwnerID       *uint
	Name          *string
	AssetType     *string
	Value         *float64
	Currency      *string
	PurchasePrice *float64
	PurchaseDate  *time.Time
	Country       *string
	Notes         *string
	LogoColor     *string
}

// AssetSummary is an asset row enriched with its owner's name.
type AssetSummary struct {
	models.Asset
	OwnerName string `json:"owner_name"`
}

// AssetLogCreateFields carries the fields for creating an asset log.
type AssetLogCreateFields struct {
	AssetID    uint
	Type       models.AssetLogType
	Amount     float64
	Currency   string
	Comment    string
	RecordedAt time.Time
}

// AssetLogUpdateFields carries partial-patch fields for an asset log.
type AssetLogUpdateFields struct {
	Type       *models.AssetLogType
	Amount     *float64
	Currency   *string
	Comment    *string
	RecordedAt *time.Time
}

// AssetServicer manages assets and their valuation/dividend logs. Valuation
// writes refresh the asset's cached value; every log write restamps the
// asset's last_updated timestamp.
type AssetServicer interface {
	ListAssets() ([]AssetSummary, error)
	GetAsset(id uint) (*AssetSummary, error)
	CreateAsset(fields AssetCreateFields) (*models.Asset, error)
	UpdateAsset(id uint, fields AssetUpdateFields) (*models.Asset, error)
	DeleteAsset(id uint) error
	CreateAssetLog(fields AssetLogCreateFields) (*models.AssetLog, error)
	UpdateAssetLog(id uint, fields AssetLogUpdateFields) (*models.AssetLog, error)
	DeleteAssetLog(id uint) error
}

// OwnerNetWorth is one owner's aggregated position in the display currency.
type OwnerNetWorth struct {
	OwnerID    uint    `json:"owner_id"`
	OwnerName  string  `json:"owner_name"`
	BankTotal  float64 `json:"bank_total"`
	AssetTotal float64 `json:"asset_total"`
	Total      float64 `json:"total"`
}

// NetWorthReport aggregates every owner's banks and assets.
type NetWorthReport struct {
	Currency string          `json:"currency"`
	Owners   []OwnerNetWorth `json:"owners"`
	Total    float64         `json:"total"`
}

// NetWorthServicer computes derived balance aggregates.
type NetWorthServicer interface {
	TotalBalance(bankID uint, displayCurrency string) (float64, error)
	NetWorth(displayCurrency string) (*NetWorthReport, error)
}

// ItemRef selects one chart item for a trend series.
type ItemRef struct {
	Kind string // "bank" or "asset"
	ID   uint
}

// SeriesRequest selects the items, window, and display currency for a series.
// An empty item list means all banks and assets.
type SeriesRequest struct {
	Items           []ItemRef
	Window          timeseries.Window
	DisplayCurrency string
}

// SeriesServicer builds currency-normalized trend series for charting.
type SeriesServicer interface {
	BuildSeries(req SeriesRequest) ([]timeseries.Point, error)
}

// Dataset is the full exportable entity state. Options and Rates are
// optional: nil slices leave the existing configuration untouched on import.
type Dataset struct {
	Owners    []models.Owner        `json:"owners"`
	Banks     []models.Bank         `json:"banks"`
	Accounts  []models.Account      `json:"accounts"`
	Logs      []models.BalanceLog   `json:"logs"`
	Assets    []models.Asset        `json:"assets"`
	AssetLogs []models.AssetLog     `json:"asset_logs"`
	Options   []models.ConfigOption `json:"config_options,omitempty"`
	Rates     []models.FXRate       `json:"fx_rates,omitempty"`
}

// DatasetServicer handles bulk export, transactional import/reset, and
// default seeding.
type DatasetServicer interface {
	Export() (*Dataset, error)
	Import(ds *Dataset) error
	Reset() error
	SeedDefaults() error
	SeedDemoData() error
}
