package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
)

func TestUpsertRates(t *testing.T) {
	t.Run("keyed_by_currency_pair", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFXRateService(db, nil, "")

		err := svc.UpsertRates([]RateUpdate{
			{Base: "USD", Target: "CNY", Rate: 7.2},
			{Base: "USD", Target: "HKD", Rate: 7.8},
		})
		testutil.AssertNoError(t, err)

		// upserting the same pair overwrites rather than duplicates
		err = svc.UpsertRates([]RateUpdate{{Base: "USD", Target: "CNY", Rate: 7.3}})
		testutil.AssertNoError(t, err)

		rates, err := svc.ListRates()
		testutil.AssertNoError(t, err)
		if len(rates) != 2 {
			t.Fatalf("expected 2 rates, got %d", len(rates))
		}
		for _, r := range rates {
			if r.TargetCurrency == "CNY" && r.Rate != 7.3 {
				t.Errorf("expected CNY rate 7.3, got %v", r.Rate)
			}
		}
	})

	t.Run("invalid_rate_rolls_back", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFXRateService(db, nil, "")

		err := svc.UpsertRates([]RateUpdate{
			{Base: "USD", Target: "CNY", Rate: 7.2},
			{Base: "USD", Target: "HKD", Rate: -1},
		})
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		rates, err := svc.ListRates()
		testutil.AssertNoError(t, err)
		if len(rates) != 0 {
			t.Errorf("expected rollback to leave no rates, got %d", len(rates))
		}
	})
}

func TestRefreshRates(t *testing.T) {
	t.Run("upserts_configured_currencies_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		for _, code := range []string{"USD", "CNY", "HKD"} {
			if err := db.Create(&models.ConfigOption{Type: models.OptionTypeCurrency, Value: code}).Error; err != nil {
				t.Fatalf("failed to seed currency option: %v", err)
			}
		}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"result": "success",
				"base_code": "USD",
				"rates": {"USD": 1, "CNY": 7.25, "HKD": 7.82, "EUR": 0.92}
			}`))
		}))
		defer server.Close()

		svc := NewFXRateService(db, server.Client(), server.URL)

		count, err := svc.RefreshRates(context.Background())
		testutil.AssertNoError(t, err)
		if count != 3 {
			t.Errorf("expected 3 rates written, got %d", count)
		}

		rates, err := svc.ListRates()
		testutil.AssertNoError(t, err)
		for _, r := range rates {
			if r.TargetCurrency == "EUR" {
				t.Error("EUR is not configured and should not be stored")
			}
		}
	})

	t.Run("upstream_failure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		svc := NewFXRateService(db, server.Client(), server.URL)

		_, err := svc.RefreshRates(context.Background())
		testutil.AssertAppError(t, err, "FX_FETCH_FAILED")
	})
}

func TestRateTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFXRateService(db, nil, "")

	testutil.CreateTestRates(t, db, map[string]float64{"CNY": 7.2, "HKD": 7.8})

	table, err := svc.RateTable()
	testutil.AssertNoError(t, err)

	if got := table.Convert(72, "CNY", "USD"); got != 10 {
		t.Errorf("expected 72 CNY = 10 USD, got %v", got)
	}
	if _, ok := table.LookupRate("JPY"); ok {
		t.Error("expected JPY to have no stored rate")
	}
}
