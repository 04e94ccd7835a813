package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// logService handles balance log business logic. Every write restamps the
// parent bank's last_updated timestamp, the one cross-entity side effect in
// the system.
type logService struct {
	db *gorm.DB
}

// NewLogService creates a new LogServicer.
func NewLogService(db *gorm.DB) LogServicer {
	return &logService{db: db}
}

// CreateLog records a balance snapshot for an account.
func (s *logService) CreateLog(fields LogCreateFields) (*models.BalanceLog, error) {
	var accountCount int64
	if err := s.db.Model(&models.Account{}).Where("id = ?", fields.AccountID).Count(&accountCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if accountCount == 0 {
		return nil, apperrors.ErrAccountNotFound
	}
	if fields.RecordedAt.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recorded_at is required")
	}

	log := &models.BalanceLog{
		AccountID:  fields.AccountID,
		Balance:    fields.Balance,
		Currency:   fields.Currency,
		Comment:    fields.Comment,
		RecordedAt: fields.RecordedAt,
	}
	if log.Currency == "" {
		log.Currency = "USD"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return restampBank(tx, log.AccountID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// UpdateLog applies a partial patch to a balance log and restamps the parent
// bank.
func (s *logService) UpdateLog(id uint, fields LogUpdateFields) (*models.BalanceLog, error) {
	var log models.BalanceLog
	if err := s.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrLogNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Balance != nil {
		updates["balance"] = *fields.Balance
	}
	if fields.Currency != nil && *fields.Currency != "" {
		updates["currency"] = *fields.Currency
	}
	if fields.Comment != nil {
		updates["comment"] = *fields.Comment
	}
	if fields.RecordedAt != nil {
		updates["recorded_at"] = *fields.RecordedAt
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&log).Updates(updates).Error; err != nil {
				return err
			}
		}
		return restampBank(tx, log.AccountID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.First(&log, id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &log, nil
}

// DeleteLog removes a balance log and restamps the parent bank. Deleting a
// missing log is a no-op.
func (s *logService) DeleteLog(id uint) error {
	var log models.BalanceLog
	if err := s.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BalanceLog{}, id).Error; err != nil {
			return err
		}
		return restampBank(tx, log.AccountID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// restampBank sets the last_updated of the bank owning the given account to
// now.
func restampBank(tx *gorm.DB, accountID uint) error {
	return tx.Exec(
		"UPDATE banks SET last_updated = ? WHERE id = (SELECT bank_id FROM accounts WHERE id = ?)",
		time.Now().UTC(), accountID,
	).Error
}
