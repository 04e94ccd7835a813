package services

import (
	"strconv"
	"time"

	"gorm.io/gorm"

	"assetsnapshot/internal/currency"
	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
	"assetsnapshot/internal/timeseries"
)

// seriesService assembles trend series from balance and valuation logs.
type seriesService struct {
	db      *gorm.DB
	fxRates FXRateServicer
	now     func() time.Time
}

// NewSeriesService creates a new SeriesServicer.
func NewSeriesService(db *gorm.DB, fxRates FXRateServicer) SeriesServicer {
	return &seriesService{db: db, fxRates: fxRates, now: time.Now}
}

// BuildSeries collects the selected items' snapshot logs and merges them into
// a forward-filled, currency-normalized series. An empty item selection means
// every bank and asset.
func (s *seriesService) BuildSeries(req SeriesRequest) ([]timeseries.Point, error) {
	if req.DisplayCurrency == "" {
		req.DisplayCurrency = currency.DefaultBase
	}
	table, err := s.fxRates.RateTable()
	if err != nil {
		return nil, err
	}

	bankIDs, assetIDs, all := splitItems(req.Items)

	snapshots := make([]timeseries.Snapshot, 0)

	bankSnaps, err := s.bankSnapshots(bankIDs, all)
	if err != nil {
		return nil, err
	}
	snapshots = append(snapshots, bankSnaps...)

	assetSnaps, err := s.assetSnapshots(assetIDs, all)
	if err != nil {
		return nil, err
	}
	snapshots = append(snapshots, assetSnaps...)

	return timeseries.Build(snapshots, req.Window, req.DisplayCurrency, table, s.now()), nil
}

func splitItems(items []ItemRef) (bankIDs, assetIDs []uint, all bool) {
	if len(items) == 0 {
		return nil, nil, true
	}
	for _, item := range items {
		switch item.Kind {
		case "bank":
			bankIDs = append(bankIDs, item.ID)
		case "asset":
			assetIDs = append(assetIDs, item.ID)
		}
	}
	return bankIDs, assetIDs, false
}

// bankSnapshots returns balance logs for the selected banks, tagged with the
// bank's name and sub-keyed by account so sibling accounts forward-fill
// independently.
func (s *seriesService) bankSnapshots(bankIDs []uint, all bool) ([]timeseries.Snapshot, error) {
	if !all && len(bankIDs) == 0 {
		return nil, nil
	}

	type row struct {
		BankName   string
		AccountID  uint
		Balance    float64
		Currency   string
		RecordedAt time.Time
	}
	query := s.db.Table("balance_logs bl").
		Select("b.name AS bank_name, a.id AS account_id, bl.balance, bl.currency, bl.recorded_at").
		Joins("JOIN accounts a ON a.id = bl.account_id").
		Joins("JOIN banks b ON b.id = a.bank_id").
		Order("bl.recorded_at ASC, bl.id ASC")
	if !all {
		query = query.Where("b.id IN ?", bankIDs)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snaps := make([]timeseries.Snapshot, 0, len(rows))
	for _, r := range rows {
		snaps = append(snaps, timeseries.Snapshot{
			Item:     r.BankName,
			Sub:      accountKey(r.AccountID),
			Date:     r.RecordedAt,
			Amount:   r.Balance,
			Currency: r.Currency,
		})
	}
	return snaps, nil
}

// assetSnapshots returns Valuation-type logs for the selected assets.
// Dividend/maintenance entries are cash-flow records, not valuations, and do
// not feed the trend.
func (s *seriesService) assetSnapshots(assetIDs []uint, all bool) ([]timeseries.Snapshot, error) {
	if !all && len(assetIDs) == 0 {
		return nil, nil
	}

	type row struct {
		AssetName  string
		Amount     float64
		Currency   string
		RecordedAt time.Time
	}
	query := s.db.Table("asset_logs al").
		Select("a.name AS asset_name, al.amount, al.currency, al.recorded_at").
		Joins("JOIN assets a ON a.id = al.asset_id").
		Where("al.type = ?", models.AssetLogValuation).
		Order("al.recorded_at ASC, al.id ASC")
	if !all {
		query = query.Where("a.id IN ?", assetIDs)
	}

	var rows []row
	if err := query.Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	snaps := make([]timeseries.Snapshot, 0, len(rows))
	for _, r := range rows {
		snaps = append(snaps, timeseries.Snapshot{
			Item:     r.AssetName,
			Date:     r.RecordedAt,
			Amount:   r.Amount,
			Currency: r.Currency,
		})
	}
	return snaps, nil
}

func accountKey(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
