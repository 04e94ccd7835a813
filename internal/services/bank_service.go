package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// DefaultAccountName is the sub-account auto-created with every new bank.
const DefaultAccountName = "Default Account"

// bankService handles bank-related business logic.
type bankService struct {
	db *gorm.DB
}

// NewBankService creates a new BankServicer.
func NewBankService(db *gorm.DB) BankServicer {
	return &bankService{db: db}
}

// ListBanks returns all banks with their owner's name and derived
// total_balance, ordered by last_updated descending. The total is the sum of
// each account's most recent log balance; accounts with no logs contribute
// nothing. Balances are summed in their native currencies here; display
// conversion is the aggregator's job.
func (s *bankService) ListBanks() ([]BankSummary, error) {
	var banks []BankSummary
	err := s.db.Raw(`
		SELECT b.*, o.name AS owner_name,
			(SELECT COALESCE(SUM(
				(SELECT bl.balance FROM balance_logs bl
				 WHERE bl.account_id = a.id
				 ORDER BY bl.recorded_at DESC, bl.id DESC LIMIT 1)
			), 0) FROM accounts a WHERE a.bank_id = b.id) AS total_balance
		FROM banks b
		JOIN owners o ON b.owner_id = o.id
		ORDER BY b.last_updated DESC
	`).Scan(&banks).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if banks == nil {
		banks = []BankSummary{}
	}
	return banks, nil
}

// GetBank returns a bank with its accounts, each account's logs ordered
// newest first.
func (s *bankService) GetBank(id uint) (*BankDetail, error) {
	var bank models.Bank
	err := s.db.Preload("Accounts").
		Preload("Accounts.Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at DESC, id DESC")
		}).
		First(&bank, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	detail := &BankDetail{Bank: bank}
	if err := s.db.Model(&models.Owner{}).
		Where("id = ?", bank.OwnerID).
		Select("name").
		Scan(&detail.OwnerName).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return detail, nil
}

// CreateBank creates a bank and its "Default Account" sub-account in one
// transaction.
func (s *bankService) CreateBank(fields BankCreateFields) (*models.Bank, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "bank name is required")
	}

	var ownerCount int64
	if err := s.db.Model(&models.Owner{}).Where("id = ?", fields.OwnerID).Count(&ownerCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if ownerCount == 0 {
		return nil, apperrors.ErrOwnerNotFound
	}

	bank := &models.Bank{
		OwnerID:         fields.OwnerID,
		Name:            fields.Name,
		BankName:        fields.BankName,
		InstitutionType: fields.InstitutionType,
		LogoColor:       fields.LogoColor,
		Country:         fields.Country,
		LastUpdated:     time.Now().UTC(),
	}
	if bank.LogoColor == "" {
		bank.LogoColor = "#3b82f6"
	}
	if bank.Country == "" {
		bank.Country = "USA"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bank).Error; err != nil {
			return err
		}
		account := &models.Account{
			BankID: bank.ID,
			Name:   DefaultAccountName,
			Type:   "Bank",
		}
		return tx.Create(account).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return bank, nil
}

// UpdateBank applies a partial patch and restamps last_updated.
func (s *bankService) UpdateBank(id uint, fields BankUpdateFields) (*models.Bank, error) {
	var bank models.Bank
	if err := s.db.First(&bank, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := map[string]interface{}{"last_updated": time.Now().UTC()}
	if fields.OwnerID != nil {
		updates["owner_id"] = *fields.OwnerID
	}
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.BankName != nil {
		updates["bank_name"] = *fields.BankName
	}
	if fields.InstitutionType != nil {
		updates["institution_type"] = *fields.InstitutionType
	}
	if fields.LogoColor != nil {
		updates["logo_color"] = *fields.LogoColor
	}
	if fields.Country != nil {
		updates["country"] = *fields.Country
	}

	if err := s.db.Model(&bank).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.First(&bank, id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &bank, nil
}

// DeleteBank removes a bank with its accounts and their logs. Deleting a
// missing bank is a no-op.
func (s *bankService) DeleteBank(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return deleteBanksCascade(tx, []uint{id})
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
