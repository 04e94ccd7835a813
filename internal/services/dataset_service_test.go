package services

import (
	"testing"
	"time"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
)

func TestExportImportRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDatasetService(db)

	owner := testutil.CreateTestOwnerWithName(t, db, "Me")
	bank := testutil.CreateTestBank(t, db, owner.ID)
	account := testutil.CreateTestAccount(t, db, bank.ID)
	testutil.CreateTestLog(t, db, account.ID, 8200.50, "USD", time.Now().UTC())
	asset := testutil.CreateTestAsset(t, db, owner.ID, 300000, "USD")
	testutil.CreateTestAssetLog(t, db, asset.ID, models.AssetLogValuation, 300000, "USD", time.Now().UTC())

	ds, err := svc.Export()
	testutil.AssertNoError(t, err)

	// wipe, then import the snapshot back
	testutil.AssertNoError(t, svc.Import(&Dataset{}))
	var count int64
	db.Model(&models.Owner{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty store after blank import, got %d owners", count)
	}

	testutil.AssertNoError(t, svc.Import(ds))

	reExported, err := svc.Export()
	testutil.AssertNoError(t, err)
	if len(reExported.Owners) != 1 || len(reExported.Banks) != 1 ||
		len(reExported.Accounts) != 1 || len(reExported.Logs) != 1 ||
		len(reExported.Assets) != 1 || len(reExported.AssetLogs) != 1 {
		t.Errorf("round trip lost rows: %+v", reExported)
	}
	if reExported.Logs[0].Balance != 8200.50 {
		t.Errorf("expected balance 8200.50, got %v", reExported.Logs[0].Balance)
	}
	if reExported.Banks[0].ID != bank.ID {
		t.Errorf("expected bank ID %d preserved, got %d", bank.ID, reExported.Banks[0].ID)
	}
}

func TestImportRollsBackOnFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDatasetService(db)

	testutil.CreateTestOwnerWithName(t, db, "Keep Me")

	// duplicate owner IDs violate the primary key mid-import
	bad := &Dataset{
		Owners: []models.Owner{
			{ID: 1, Name: "A"},
			{ID: 1, Name: "B"},
		},
	}
	err := svc.Import(bad)
	testutil.AssertAppError(t, err, "IMPORT_FAILED")

	var owners []models.Owner
	if err := db.Find(&owners).Error; err != nil {
		t.Fatalf("failed to load owners: %v", err)
	}
	if len(owners) != 1 || owners[0].Name != "Keep Me" {
		t.Errorf("expected original data intact, got %+v", owners)
	}
}

func TestReset(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDatasetService(db)

	owner := testutil.CreateTestOwnerWithName(t, db, "Old")
	bank := testutil.CreateTestBank(t, db, owner.ID)
	account := testutil.CreateTestAccount(t, db, bank.ID)
	testutil.CreateTestLog(t, db, account.ID, 100, "USD", time.Now().UTC())
	testutil.CreateTestRates(t, db, map[string]float64{"CNY": 7.2})

	testutil.AssertNoError(t, svc.Reset())

	var owners []models.Owner
	if err := db.Find(&owners).Error; err != nil {
		t.Fatalf("failed to load owners: %v", err)
	}
	if len(owners) != 1 || owners[0].Name != "Me" {
		t.Errorf("expected single owner Me after reset, got %+v", owners)
	}

	var options []models.ConfigOption
	if err := db.Find(&options).Error; err != nil {
		t.Fatalf("failed to load options: %v", err)
	}
	countries, currencies := 0, 0
	for _, o := range options {
		switch o.Type {
		case models.OptionTypeCountry:
			countries++
		case models.OptionTypeCurrency:
			currencies++
		}
	}
	if countries != 3 || currencies != 3 {
		t.Errorf("expected 3 countries and 3 currencies, got %d/%d", countries, currencies)
	}

	var count int64
	db.Model(&models.Bank{}).Count(&count)
	if count != 0 {
		t.Errorf("expected banks wiped, got %d", count)
	}
	db.Model(&models.FXRate{}).Count(&count)
	if count != 0 {
		t.Errorf("expected fx rates wiped, got %d", count)
	}
}

func TestSeedDefaults(t *testing.T) {
	t.Run("seeds_empty_database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDatasetService(db)

		testutil.AssertNoError(t, svc.SeedDefaults())

		var count int64
		db.Model(&models.Owner{}).Count(&count)
		if count != 1 {
			t.Errorf("expected 1 owner, got %d", count)
		}
		db.Model(&models.ConfigOption{}).Count(&count)
		if count != 6 {
			t.Errorf("expected 6 options, got %d", count)
		}
	})

	t.Run("leaves_populated_database_alone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDatasetService(db)

		testutil.CreateTestOwnerWithName(t, db, "Existing")

		testutil.AssertNoError(t, svc.SeedDefaults())

		var count int64
		db.Model(&models.Owner{}).Count(&count)
		if count != 1 {
			t.Errorf("expected no new owner, got %d", count)
		}
	})
}

func TestSeedDemoData(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDatasetService(db)

	testutil.AssertNoError(t, svc.SeedDefaults())
	testutil.AssertNoError(t, svc.SeedDemoData())

	var banks []models.Bank
	if err := db.Find(&banks).Error; err != nil {
		t.Fatalf("failed to load banks: %v", err)
	}
	if len(banks) != 2 {
		t.Fatalf("expected 2 demo banks, got %d", len(banks))
	}

	// seeding again is a no-op
	testutil.AssertNoError(t, svc.SeedDemoData())
	var count int64
	db.Model(&models.Bank{}).Count(&count)
	if count != 2 {
		t.Errorf("expected demo seed to be idempotent, got %d banks", count)
	}
}
