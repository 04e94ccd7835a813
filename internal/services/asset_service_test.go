package services

import (
	"testing"
	"time"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
)

func TestCreateAsset(t *testing.T) {
	t.Run("applies_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)
		owner := testutil.CreateTestOwner(t, db)

		asset, err := svc.CreateAsset(AssetCreateFields{OwnerID: owner.ID, Name: "Apartment", Value: 300000})
		testutil.AssertNoError(t, err)

		if asset.AssetType != "Other" {
			t.Errorf("expected default type Other, got %s", asset.AssetType)
		}
		if asset.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", asset.Currency)
		}
		if asset.Country != "USA" {
			t.Errorf("expected default country USA, got %s", asset.Country)
		}
	})

	t.Run("missing_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		_, err := svc.CreateAsset(AssetCreateFields{OwnerID: 99999, Name: "Orphan"})
		testutil.AssertAppError(t, err, "OWNER_NOT_FOUND")
	})
}

func TestAssetValuationSync(t *testing.T) {
	t.Run("valuation_log_refreshes_cached_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		owner := testutil.CreateTestOwner(t, db)
		asset := testutil.CreateTestAsset(t, db, owner.ID, 300000, "USD")

		_, err := svc.CreateAssetLog(AssetLogCreateFields{
			AssetID:    asset.ID,
			Type:       models.AssetLogValuation,
			Amount:     320000,
			Currency:   "USD",
			RecordedAt: time.Now().UTC(),
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Asset
		if err := db.First(&reloaded, asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if reloaded.Value != 320000 {
			t.Errorf("expected cached value 320000, got %v", reloaded.Value)
		}
	})

	t.Run("dividend_log_keeps_cached_value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		owner := testutil.CreateTestOwner(t, db)
		asset := testutil.CreateTestAsset(t, db, owner.ID, 300000, "USD")

		_, err := svc.CreateAssetLog(AssetLogCreateFields{
			AssetID:    asset.ID,
			Type:       models.AssetLogDividend,
			Amount:     1200,
			Currency:   "USD",
			RecordedAt: time.Now().UTC(),
		})
		testutil.AssertNoError(t, err)

		var reloaded models.Asset
		if err := db.First(&reloaded, asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if reloaded.Value != 300000 {
			t.Errorf("expected cached value unchanged, got %v", reloaded.Value)
		}
	})

	t.Run("deleting_latest_valuation_falls_back_to_previous", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAssetService(db)

		owner := testutil.CreateTestOwner(t, db)
		asset := testutil.CreateTestAsset(t, db, owner.ID, 0, "USD")

		now := time.Now().UTC()
		first, err := svc.CreateAssetLog(AssetLogCreateFields{
			AssetID: asset.ID, Type: models.AssetLogValuation, Amount: 100000, Currency: "USD", RecordedAt: now.AddDate(0, -1, 0),
		})
		testutil.AssertNoError(t, err)
		second, err := svc.CreateAssetLog(AssetLogCreateFields{
			AssetID: asset.ID, Type: models.AssetLogValuation, Amount: 110000, Currency: "USD", RecordedAt: now,
		})
		testutil.AssertNoError(t, err)
		_ = first

		err = svc.DeleteAssetLog(second.ID)
		testutil.AssertNoError(t, err)

		var reloaded models.Asset
		if err := db.First(&reloaded, asset.ID).Error; err != nil {
			t.Fatalf("failed to reload asset: %v", err)
		}
		if reloaded.Value != 100000 {
			t.Errorf("expected value to fall back to 100000, got %v", reloaded.Value)
		}
	})
}

func TestDeleteAsset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAssetService(db)

	owner := testutil.CreateTestOwner(t, db)
	asset := testutil.CreateTestAsset(t, db, owner.ID, 1000, "USD")
	testutil.CreateTestAssetLog(t, db, asset.ID, models.AssetLogValuation, 1000, "USD", time.Now().UTC())

	err := svc.DeleteAsset(asset.ID)
	testutil.AssertNoError(t, err)

	var count int64
	db.Model(&models.AssetLog{}).Count(&count)
	if count != 0 {
		t.Errorf("expected asset logs cascaded, got %d rows", count)
	}
}
