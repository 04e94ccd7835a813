package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetsnapshot/internal/currency"
	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// fxRateService manages the exchange rate table and its live refresh.
type fxRateService struct {
	db         *gorm.DB
	httpClient *http.Client
	apiURL     string
}

// NewFXRateService creates a new FXRateServicer. apiURL points at a public
// exchange-rate endpoint returning USD-anchored quotes.
func NewFXRateService(db *gorm.DB, httpClient *http.Client, apiURL string) FXRateServicer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &fxRateService{db: db, httpClient: httpClient, apiURL: apiURL}
}

// ListRates returns all stored exchange rates.
func (s *fxRateService) ListRates() ([]models.FXRate, error) {
	var rates []models.FXRate
	if err := s.db.Order("base_currency, target_currency").Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rates, nil
}

// UpsertRates writes the given quotes, keyed by (base, target), in a single
// transaction.
func (s *fxRateService) UpsertRates(updates []RateUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	now := time.Now().UTC()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			if u.Base == "" || u.Target == "" || u.Rate <= 0 {
				return apperrors.WithMessage(apperrors.ErrInvalidInput,
					fmt.Sprintf("invalid rate %s/%s", u.Base, u.Target))
			}
			rate := models.FXRate{
				BaseCurrency:   strings.ToUpper(u.Base),
				TargetCurrency: strings.ToUpper(u.Target),
				Rate:           u.Rate,
				UpdatedAt:      now,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "base_currency"}, {Name: "target_currency"}},
				DoUpdates: clause.AssignmentColumns([]string{"rate", "updated_at"}),
			}).Create(&rate).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// liveRatesResponse is the shape of the public exchange-rate API payload.
type liveRatesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// RefreshRates fetches current USD-anchored quotes from the public rate API
// and upserts rates for every currency in the configured currency list.
// Returns the number of rates written. There is no retry; a failed fetch is
// terminal for the triggering request.
func (s *fxRateService) RefreshRates(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL, nil)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrFXFetchFailed, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrFXFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, apperrors.Wrap(apperrors.ErrFXFetchFailed,
			fmt.Errorf("rate API returned status %d", resp.StatusCode))
	}

	var payload liveRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrFXFetchFailed, err)
	}
	if len(payload.Rates) == 0 {
		return 0, apperrors.Wrap(apperrors.ErrFXFetchFailed, fmt.Errorf("rate API returned no quotes"))
	}

	base := strings.ToUpper(payload.BaseCode)
	if base == "" {
		base = currency.DefaultBase
	}

	var wanted []string
	if err := s.db.Model(&models.ConfigOption{}).
		Where("type = ?", models.OptionTypeCurrency).
		Pluck("value", &wanted).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make([]RateUpdate, 0, len(wanted))
	for _, code := range wanted {
		rate, ok := payload.Rates[strings.ToUpper(code)]
		if !ok || rate <= 0 {
			continue
		}
		updates = append(updates, RateUpdate{Base: base, Target: code, Rate: rate})
	}

	if err := s.UpsertRates(updates); err != nil {
		return 0, err
	}
	return len(updates), nil
}

// RateTable builds a conversion table from the stored USD-anchored rates.
func (s *fxRateService) RateTable() (*currency.Table, error) {
	table := currency.NewTable(currency.DefaultBase)

	var rates []models.FXRate
	if err := s.db.Where("base_currency = ?", table.Base()).Find(&rates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, r := range rates {
		table.SetRate(r.BaseCurrency, r.TargetCurrency, r.Rate)
	}
	return table, nil
}
