package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// datasetService handles bulk export, transactional import/reset, and seeding.
type datasetService struct {
	db *gorm.DB
}

// NewDatasetService creates a new DatasetServicer.
func NewDatasetService(db *gorm.DB) DatasetServicer {
	return &datasetService{db: db}
}

var defaultOptions = []models.ConfigOption{
	{Type: models.OptionTypeCountry, Value: "USA"},
	{Type: models.OptionTypeCountry, Value: "China"},
	{Type: models.OptionTypeCountry, Value: "Hong Kong"},
	{Type: models.OptionTypeCurrency, Value: "USD"},
	{Type: models.OptionTypeCurrency, Value: "CNY"},
	{Type: models.OptionTypeCurrency, Value: "HKD"},
}

// Export returns the full entity state, each table ordered by id so exports
// are deterministic.
func (s *datasetService) Export() (*Dataset, error) {
	ds := &Dataset{
		Owners:    []models.Owner{},
		Banks:     []models.Bank{},
		Accounts:  []models.Account{},
		Logs:      []models.BalanceLog{},
		Assets:    []models.Asset{},
		AssetLogs: []models.AssetLog{},
		Options:   []models.ConfigOption{},
		Rates:     []models.FXRate{},
	}
	queries := []struct {
		dest  interface{}
		order string
	}{
		{&ds.Owners, "id"},
		{&ds.Banks, "id"},
		{&ds.Accounts, "id"},
		{&ds.Logs, "id"},
		{&ds.Assets, "id"},
		{&ds.AssetLogs, "id"},
		{&ds.Options, "id"},
		{&ds.Rates, "base_currency, target_currency"},
	}
	for _, q := range queries {
		if err := s.db.Order(q.order).Find(q.dest).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return ds, nil
}

// Import replaces the entire entity state with the given dataset in one
// transaction. Children are deleted before parents and inserted after them so
// foreign keys hold throughout. A nil Options or Rates slice keeps the
// existing configuration.
func (s *datasetService) Import(ds *Dataset) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.BalanceLog{}, &models.Account{}, &models.Bank{},
			&models.AssetLog{}, &models.Asset{}, &models.Owner{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		if len(ds.Owners) > 0 {
			if err := tx.Create(&ds.Owners).Error; err != nil {
				return err
			}
		}
		if len(ds.Banks) > 0 {
			// clear associations so gorm doesn't re-create nested rows
			for i := range ds.Banks {
				ds.Banks[i].Accounts = nil
			}
			if err := tx.Create(&ds.Banks).Error; err != nil {
				return err
			}
		}
		if len(ds.Accounts) > 0 {
			for i := range ds.Accounts {
				ds.Accounts[i].Logs = nil
			}
			if err := tx.Create(&ds.Accounts).Error; err != nil {
				return err
			}
		}
		if len(ds.Logs) > 0 {
			if err := tx.Create(&ds.Logs).Error; err != nil {
				return err
			}
		}
		if len(ds.Assets) > 0 {
			for i := range ds.Assets {
				ds.Assets[i].Logs = nil
			}
			if err := tx.Create(&ds.Assets).Error; err != nil {
				return err
			}
		}
		if len(ds.AssetLogs) > 0 {
			if err := tx.Create(&ds.AssetLogs).Error; err != nil {
				return err
			}
		}

		if ds.Options != nil {
			if err := tx.Where("1 = 1").Delete(&models.ConfigOption{}).Error; err != nil {
				return err
			}
			if len(ds.Options) > 0 {
				if err := tx.Create(&ds.Options).Error; err != nil {
					return err
				}
			}
		}
		if ds.Rates != nil {
			if err := tx.Where("1 = 1").Delete(&models.FXRate{}).Error; err != nil {
				return err
			}
			if len(ds.Rates) > 0 {
				if err := tx.Create(&ds.Rates).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrImportFailed, err)
	}
	return nil
}

// Reset wipes every table and reseeds the default owner and option lists in
// one transaction.
func (s *datasetService) Reset() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.BalanceLog{}, &models.Account{}, &models.Bank{},
			&models.AssetLog{}, &models.Asset{}, &models.Owner{},
			&models.ConfigOption{}, &models.FXRate{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		return seedDefaults(tx)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// SeedDefaults inserts the default owner and option lists into an empty
// database. Non-empty tables are left alone.
func (s *datasetService) SeedDefaults() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ownerCount int64
		if err := tx.Model(&models.Owner{}).Count(&ownerCount).Error; err != nil {
			return err
		}
		var optionCount int64
		if err := tx.Model(&models.ConfigOption{}).Count(&optionCount).Error; err != nil {
			return err
		}
		if ownerCount > 0 || optionCount > 0 {
			return nil
		}
		return seedDefaults(tx)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func seedDefaults(tx *gorm.DB) error {
	if err := tx.Create(&models.Owner{Name: "Me"}).Error; err != nil {
		return err
	}
	options := make([]models.ConfigOption, len(defaultOptions))
	copy(options, defaultOptions)
	return tx.Create(&options).Error
}

// SeedDemoData inserts a small demo portfolio. It is a no-op unless the bank
// table is empty.
func (s *datasetService) SeedDemoData() error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bankCount int64
		if err := tx.Model(&models.Bank{}).Count(&bankCount).Error; err != nil {
			return err
		}
		if bankCount > 0 {
			return nil
		}

		var owner models.Owner
		if err := tx.Where("name = ?", "Me").First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		now := time.Now().UTC()
		monthAgo := now.AddDate(0, -1, 0)

		chase := models.Bank{
			OwnerID:         owner.ID,
			Name:            "Chase",
			BankName:        "Chase Bank",
			InstitutionType: "Bank",
			LogoColor:       "#117aca",
			Country:         "USA",
			LastUpdated:     now,
		}
		if err := tx.Create(&chase).Error; err != nil {
			return err
		}
		chaseMain := models.Account{BankID: chase.ID, Name: "Main Checking", Type: "Bank"}
		if err := tx.Create(&chaseMain).Error; err != nil {
			return err
		}
		chaseLogs := []models.BalanceLog{
			{AccountID: chaseMain.ID, Balance: 5000, Currency: "USD", RecordedAt: monthAgo},
			{AccountID: chaseMain.ID, Balance: 8200.50, Currency: "USD", RecordedAt: now},
		}
		if err := tx.Create(&chaseLogs).Error; err != nil {
			return err
		}

		hsbc := models.Bank{
			OwnerID:         owner.ID,
			Name:            "HSBC HK",
			BankName:        "HSBC Hong Kong",
			InstitutionType: "Bank",
			LogoColor:       "#db0011",
			Country:         "Hong Kong",
			LastUpdated:     now,
		}
		if err := tx.Create(&hsbc).Error; err != nil {
			return err
		}
		hsbcSavings := models.Account{BankID: hsbc.ID, Name: "Savings", Type: "Bank"}
		if err := tx.Create(&hsbcSavings).Error; err != nil {
			return err
		}
		hsbcLog := models.BalanceLog{AccountID: hsbcSavings.ID, Balance: 50000, Currency: "HKD", RecordedAt: now}
		if err := tx.Create(&hsbcLog).Error; err != nil {
			return err
		}

		rates := []models.FXRate{
			{BaseCurrency: "USD", TargetCurrency: "CNY", Rate: 7.2, UpdatedAt: now},
			{BaseCurrency: "USD", TargetCurrency: "HKD", Rate: 7.8, UpdatedAt: now},
		}
		return tx.Create(&rates).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
