package services

import (
	"testing"
	"time"

	"assetsnapshot/internal/models"
	"assetsnapshot/internal/testutil"
)

func TestCreateAccount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)

		account, err := svc.CreateAccount(AccountCreateFields{BankID: bank.ID, Name: "Savings"})
		testutil.AssertNoError(t, err)

		if account.ID == 0 {
			t.Fatal("expected non-zero account ID")
		}
		if account.Type != "Bank" {
			t.Errorf("expected default type Bank, got %s", account.Type)
		}
	})

	t.Run("missing_bank", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		_, err := svc.CreateAccount(AccountCreateFields{BankID: 99999, Name: "Orphan"})
		testutil.AssertAppError(t, err, "BANK_NOT_FOUND")
	})
}

func TestCurrentValue(t *testing.T) {
	t.Run("latest_by_recorded_at", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)

		now := time.Now().UTC()
		testutil.CreateTestLog(t, db, account.ID, 100, "USD", now.AddDate(0, 0, -5))
		testutil.CreateTestLog(t, db, account.ID, 250, "USD", now)
		testutil.CreateTestLog(t, db, account.ID, 175, "USD", now.AddDate(0, 0, -1))

		log, err := svc.CurrentValue(account.ID)
		testutil.AssertNoError(t, err)
		if log == nil {
			t.Fatal("expected a log, got nil")
		}
		if log.Balance != 250 {
			t.Errorf("expected balance 250, got %v", log.Balance)
		}
	})

	t.Run("same_timestamp_ties_break_by_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)

		moment := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		testutil.CreateTestLog(t, db, account.ID, 100, "USD", moment)
		later := testutil.CreateTestLog(t, db, account.ID, 200, "USD", moment)

		log, err := svc.CurrentValue(account.ID)
		testutil.AssertNoError(t, err)
		if log.ID != later.ID {
			t.Errorf("expected later insert (id %d) to win, got id %d", later.ID, log.ID)
		}
	})

	t.Run("no_logs_returns_nil", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAccountService(db)

		owner := testutil.CreateTestOwner(t, db)
		bank := testutil.CreateTestBank(t, db, owner.ID)
		account := testutil.CreateTestAccount(t, db, bank.ID)

		log, err := svc.CurrentValue(account.ID)
		testutil.AssertNoError(t, err)
		if log != nil {
			t.Errorf("expected nil, got %+v", log)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAccountService(db)

	owner := testutil.CreateTestOwner(t, db)
	bank := testutil.CreateTestBank(t, db, owner.ID)
	account := testutil.CreateTestAccount(t, db, bank.ID)
	testutil.CreateTestLog(t, db, account.ID, 100, "USD", time.Now().UTC())

	err := svc.DeleteAccount(account.ID)
	testutil.AssertNoError(t, err)

	var count int64
	db.Model(&models.BalanceLog{}).Count(&count)
	if count != 0 {
		t.Errorf("expected logs cascaded, got %d rows", count)
	}
}
