package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// accountService handles sub-account business logic.
type accountService struct {
	db *gorm.DB
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(db *gorm.DB) AccountServicer {
	return &accountService{db: db}
}

// CreateAccount creates a sub-account under an existing bank.
func (s *accountService) CreateAccount(fields AccountCreateFields) (*models.Account, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	var bankCount int64
	if err := s.db.Model(&models.Bank{}).Where("id = ?", fields.BankID).Count(&bankCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if bankCount == 0 {
		return nil, apperrors.ErrBankNotFound
	}

	account := &models.Account{
		BankID:        fields.BankID,
		Name:          fields.Name,
		Type:          fields.Type,
		AccountNumber: fields.AccountNumber,
	}
	if account.Type == "" {
		account.Type = "Bank"
	}

	if err := s.db.Create(account).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return account, nil
}

// UpdateAccount applies a partial patch to a sub-account.
func (s *accountService) UpdateAccount(id uint, fields AccountUpdateFields) (*models.Account, error) {
	var account models.Account
	if err := s.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != "" {
		updates["name"] = *fields.Name
	}
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.AccountNumber != nil {
		updates["account_number"] = *fields.AccountNumber
	}

	if len(updates) > 0 {
		if err := s.db.Model(&account).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := s.db.First(&account, id).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	return &account, nil
}

// DeleteAccount removes a sub-account and its logs. Deleting a missing
// account is a no-op.
func (s *accountService) DeleteAccount(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&models.BalanceLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CurrentValue returns the account's most recent balance log: greatest
// recorded_at, ties broken by id. Returns nil when the account has no logs.
func (s *accountService) CurrentValue(accountID uint) (*models.BalanceLog, error) {
	var log models.BalanceLog
	err := s.db.Where("account_id = ?", accountID).
		Order("recorded_at DESC, id DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &log, nil
}
