package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"assetsnapshot/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestOwner creates an owner with a unique name.
func CreateTestOwner(t *testing.T, db *gorm.DB) *models.Owner {
	t.Helper()
	return CreateTestOwnerWithName(t, db, fmt.Sprintf("Owner %d", nextID()))
}

// CreateTestOwnerWithName creates an owner with the given name.
func CreateTestOwnerWithName(t *testing.T, db *gorm.DB, name string) *models.Owner {
	t.Helper()

	owner := &models.Owner{Name: name}
	if err := db.Create(owner).Error; err != nil {
		t.Fatalf("failed to create test owner: %v", err)
	}
	return owner
}

// CreateTestBank creates a bank with a unique name. No default sub-account is
// created; add accounts explicitly.
func CreateTestBank(t *testing.T, db *gorm.DB, ownerID uint) *models.Bank {
	t.Helper()

	bank := &models.Bank{
		OwnerID:         ownerID,
		Name:            fmt.Sprintf("Test Bank %d", nextID()),
		InstitutionType: "Bank",
		LogoColor:       "#3b82f6",
		Country:         "USA",
		LastUpdated:     time.Now().UTC(),
	}
	if err := db.Create(bank).Error; err != nil {
		t.Fatalf("failed to create test bank: %v", err)
	}
	return bank
}

// CreateTestAccount creates a sub-account under the given bank.
func CreateTestAccount(t *testing.T, db *gorm.DB, bankID uint) *models.Account {
	t.Helper()

	account := &models.Account{
		BankID: bankID,
		Name:   fmt.Sprintf("Test Account %d", nextID()),
		Type:   "Bank",
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestLog creates a balance log at the given time.
func CreateTestLog(t *testing.T, db *gorm.DB, accountID uint, balance float64, currency string, recordedAt time.Time) *models.BalanceLog {
	t.Helper()

	log := &models.BalanceLog{
		AccountID:  accountID,
		Balance:    balance,
		Currency:   currency,
		RecordedAt: recordedAt,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test balance log: %v", err)
	}
	return log
}

// CreateTestAsset creates an asset with a unique name.
func CreateTestAsset(t *testing.T, db *gorm.DB, ownerID uint, value float64, currency string) *models.Asset {
	t.Helper()

	asset := &models.Asset{
		OwnerID:     ownerID,
		Name:        fmt.Sprintf("Test Asset %d", nextID()),
		AssetType:   "Other",
		Value:       value,
		Currency:    currency,
		Country:     "USA",
		LogoColor:   "#3b82f6",
		LastUpdated: time.Now().UTC(),
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestAssetLog creates an asset log of the given type.
func CreateTestAssetLog(t *testing.T, db *gorm.DB, assetID uint, logType models.AssetLogType, amount float64, currency string, recordedAt time.Time) *models.AssetLog {
	t.Helper()

	log := &models.AssetLog{
		AssetID:    assetID,
		Type:       logType,
		Amount:     amount,
		Currency:   currency,
		RecordedAt: recordedAt,
	}
	if err := db.Create(log).Error; err != nil {
		t.Fatalf("failed to create test asset log: %v", err)
	}
	return log
}

// CreateTestRates seeds USD-anchored exchange rates.
func CreateTestRates(t *testing.T, db *gorm.DB, rates map[string]float64) {
	t.Helper()

	for target, rate := range rates {
		row := &models.FXRate{
			BaseCurrency:   "USD",
			TargetCurrency: target,
			Rate:           rate,
			UpdatedAt:      time.Now().UTC(),
		}
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to create test fx rate: %v", err)
		}
	}
}
