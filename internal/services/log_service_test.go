package services

import (
	"testing"
	"time"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
)

func TestCreateLog(t *testing.T) {
	t.Run("restamps_parent_bank", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)

		stale := time.Now().UTC().Add(-time.Hour)
		if err := db.Model(bank).Update("last_updated", stale).Error; err != nil {
			t.Fatalf("failed to backdate bank: %v", err)
		}

		log, err := svc.CreateLog(LogCreateFields{
			AccountID:  account.ID,
			Balance:    1234.56,
			RecordedAt: time.Now().UTC(),
		})
		testutil.AssertNoError(t, err)

		if log.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", log.Currency)
		}

		var reloaded models.Bank
		if err := db.First(&reloaded, bank.ID).Error; err != nil {
			t.Fatalf("failed to reload bank: %v", err)
		}
		if !reloaded.LastUpdated.After(stale) {
			t.Error("expected bank last_updated to be restamped")
		}
	})

	t.Run("missing_account", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		_, err := svc.CreateLog(LogCreateFields{AccountID: 99999, Balance: 1, RecordedAt: time.Now().UTC()})
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})

	t.Run("missing_recorded_at", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)

		_, err := svc.CreateLog(LogCreateFields{AccountID: account.ID, Balance: 1})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateLog(t *testing.T) {
	t.Run("partial_patch", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)
		log := testutil.CreateTestLog(t, db, account.ID, 100, "USD", time.Now().UTC())

		balance := 175.25
		updated, err := svc.UpdateLog(log.ID, LogUpdateFields{Balance: &balance})
		testutil.AssertNoError(t, err)

		if updated.Balance != 175.25 {
			t.Errorf("expected balance 175.25, got %v", updated.Balance)
		}
		if updated.Currency != "USD" {
			t.Errorf("expected currency unchanged, got %s", updated.Currency)
		}
	})

	t.Run("missing_log", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		balance := 1.0
		_, err := svc.UpdateLog(99999, LogUpdateFields{Balance: &balance})
		testutil.AssertAppError(t, err, "LOG_NOT_FOUND")
	})
}

func TestDeleteLog(t *testing.T) {
	t.Run("restamps_parent_bank", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)
		log := testutil.CreateTestLog(t, db, account.ID, 100, "USD", time.Now().UTC())

		stale := time.Now().UTC().Add(-time.Hour)
		if err := db.Model(bank).Update("last_updated", stale).Error; err != nil {
			t.Fatalf("failed to backdate bank: %v", err)
		}

		err := svc.DeleteLog(log.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.BalanceLog{}).Count(&count)
		if count != 0 {
			t.Errorf("expected log deleted, got %d rows", count)
		}

		var reloaded models.Bank
		if err := db.First(&reloaded, bank.ID).Error; err != nil {
			t.Fatalf("failed to reload bank: %v", err)
		}
		if !reloaded.LastUpdated.After(stale) {
			t.Error("expected bank last_updated to be restamped")
		}
	})

	t.Run("missing_log_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewLogService(db)

		err := svc.DeleteLog(99999)
		testutil.AssertNoError(t, err)
	})
}
