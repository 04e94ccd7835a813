package services

import (
	"gorm.io/gorm"

	"assetsnapshot/internal/currency"
	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// netWorthService computes derived balance aggregates in a display currency.
type netWorthService struct {
	db      *gorm.DB
	fxRates FXRateServicer
}

// NewNetWorthService creates a new NetWorthServicer.
func NewNetWorthService(db *gorm.DB, fxRates FXRateServicer) NetWorthServicer {
	return &netWorthService{db: db, fxRates: fxRates}
}

// latestBalance is one account's most recent log in its native currency.
type latestBalance struct {
	OwnerID  uint
	Balance  float64
	Currency string
}

// TotalBalance sums the bank's accounts' current values converted into the
// display currency. Accounts with no logs contribute 0.
func (s *netWorthService) TotalBalance(bankID uint, displayCurrency string) (float64, error) {
	table, err := s.fxRates.RateTable()
	if err != nil {
		return 0, err
	}

	var rows []latestBalance
	err = s.db.Raw(`
		SELECT bl.balance, bl.currency
		FROM accounts a
		JOIN balance_logs bl ON bl.id = (
			SELECT id FROM balance_logs
			WHERE account_id = a.id
			ORDER BY recorded_at DESC, id DESC LIMIT 1
		)
		WHERE a.bank_id = ?
	`, bankID).Scan(&rows).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	total := 0.0
	for _, row := range rows {
		total += table.Convert(row.Balance, row.Currency, displayCurrency)
	}
	return total, nil
}

// NetWorth aggregates every owner's bank balances and asset values into the
// display currency.
func (s *netWorthService) NetWorth(displayCurrency string) (*NetWorthReport, error) {
	if displayCurrency == "" {
		displayCurrency = currency.DefaultBase
	}
	table, err := s.fxRates.RateTable()
	if err != nil {
		return nil, err
	}

	var owners []models.Owner
	if err := s.db.Order("id").Find(&owners).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var bankRows []latestBalance
	err = s.db.Raw(`
		SELECT b.owner_id AS owner_id, bl.balance, bl.currency
		FROM accounts a
		JOIN banks b ON b.id = a.bank_id
		JOIN balance_logs bl ON bl.id = (
			SELECT id FROM balance_logs
			WHERE account_id = a.id
			ORDER BY recorded_at DESC, id DESC LIMIT 1
		)
	`).Scan(&bankRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assetRows []latestBalance
	err = s.db.Raw(`
		SELECT owner_id, value AS balance, currency FROM assets
	`).Scan(&assetRows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	bankTotals := make(map[uint]float64)
	for _, row := range bankRows {
		bankTotals[row.OwnerID] += table.Convert(row.Balance, row.Currency, displayCurrency)
	}
	assetTotals := make(map[uint]float64)
	for _, row := range assetRows {
		assetTotals[row.OwnerID] += table.Convert(row.Balance, row.Currency, displayCurrency)
	}

	report := &NetWorthReport{Currency: displayCurrency, Owners: make([]OwnerNetWorth, 0, len(owners))}
	for _, owner := range owners {
		entry := OwnerNetWorth{
			OwnerID:    owner.ID,
			OwnerName:  owner.Name,
			BankTotal:  bankTotals[owner.ID],
			AssetTotal: assetTotals[owner.ID],
		}
		entry.Total = entry.BankTotal + entry.AssetTotal
		report.Owners = append(report.Owners, entry)
		report.Total += entry.Total
	}
	return report, nil
}
