package services

import (
	"testing"
	"time"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
	"assetsnapshot/internal/timeseries"
)

func TestBuildSeries(t *testing.T) {
	t.Run("merges_banks_and_assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fxSvc := NewFXRateService(db, nil, "")
		svc := NewSeriesService(db, fxSvc)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)
		asset := testutil.CreateTestAsset(t, db, owner.ID, 0, "USD")

		day1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestLog(t, db, account.ID, 1000, "USD", day1)
		testutil.CreateTestAssetLog(t, db, asset.ID, models.AssetLogValuation, 500, "USD", day2)
		// dividends are cash flow, not valuations
		testutil.CreateTestAssetLog(t, db, asset.ID, models.AssetLogDividend, 99, "USD", day2)

		points, err := svc.BuildSeries(SeriesRequest{Window: timeseries.WindowAll, DisplayCurrency: "USD"})
		testutil.AssertNoError(t, err)

		if len(points) < 2 {
			t.Fatalf("expected at least 2 points, got %d", len(points))
		}
		// the bank's value forward-fills into the asset's day
		var found bool
		for _, p := range points {
			if p.Date.Equal(day2) {
				found = true
				if p.Sum != 1500 {
					t.Errorf("expected sum 1500 on %v, got %v", day2, p.Sum)
				}
			}
		}
		if !found {
			t.Errorf("expected a point on %v", day2)
		}
		// the trailing point carries the last known values
		last := points[len(points)-1]
		if last.Sum != 1500 {
			t.Errorf("expected trailing sum 1500, got %v", last.Sum)
		}
	})

	t.Run("item_selection_filters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fxSvc := NewFXRateService(db, nil, "")
		svc := NewSeriesService(db, fxSvc)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)
		other := testutil.CreateTestBank(t, db, owner.ID)
		otherAccount := testutil.CreateTestAccount(t, db, other.ID)

		day := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestLog(t, db, account.ID, 100, "USD", day)
		testutil.CreateTestLog(t, db, otherAccount.ID, 900, "USD", day)

		points, err := svc.BuildSeries(SeriesRequest{
			Items:  []ItemRef{{Kind: "bank", ID: bank.ID}},
			Window: timeseries.WindowAll,
		})
		testutil.AssertNoError(t, err)

		if len(points) == 0 {
			t.Fatal("expected points")
		}
		if points[0].Sum != 100 {
			t.Errorf("expected only selected bank's 100, got %v", points[0].Sum)
		}
	})

	t.Run("empty_database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fxSvc := NewFXRateService(db, nil, "")
		svc := NewSeriesService(db, fxSvc)

		points, err := svc.BuildSeries(SeriesRequest{Window: timeseries.WindowAll})
		testutil.AssertNoError(t, err)
		if len(points) != 0 {
			t.Errorf("expected empty series, got %d points", len(points))
		}
	})
}
