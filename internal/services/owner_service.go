package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// ownerService handles owner-related business logic.
type ownerService struct {
	db *gorm.DB
}

// NewOwnerService creates a new OwnerServicer.
func NewOwnerService(db *gorm.DB) OwnerServicer {
	return &ownerService{db: db}
}

// ListOwners returns all owners.
func (s *ownerService) ListOwners() ([]models.Owner, error) {
	var owners []models.Owner
	if err := s.db.Order("id").Find(&owners).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return owners, nil
}

// CreateOwner creates an owner with a unique name.
func (s *ownerService) CreateOwner(name string) (*models.Owner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "owner name is required")
	}

	owner := &models.Owner{Name: name}
	if err := s.db.Create(owner).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateOwner
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return owner, nil
}

// DeleteOwner removes an owner and cascades through banks, accounts, logs,
// assets, and asset logs. Deleting a missing owner is a no-op.
func (s *ownerService) DeleteOwner(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var bankIDs []uint
		if err := tx.Model(&models.Bank{}).Where("owner_id = ?", id).Pluck("id", &bankIDs).Error; err != nil {
			return err
		}
		if err := deleteBanksCascade(tx, bankIDs); err != nil {
			return err
		}

		if err := tx.Exec(
			"DELETE FROM asset_logs WHERE asset_id IN (SELECT id FROM assets WHERE owner_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", id).Delete(&models.Asset{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Owner{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// deleteBanksCascade removes the given banks with their accounts and logs.
func deleteBanksCascade(tx *gorm.DB, bankIDs []uint) error {
	if len(bankIDs) == 0 {
		return nil
	}
	if err := tx.Exec(
		"DELETE FROM balance_logs WHERE account_id IN (SELECT id FROM accounts WHERE bank_id IN ?)", bankIDs,
	).Error; err != nil {
		return err
	}
	if err := tx.Where("bank_id IN ?", bankIDs).Delete(&models.Account{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Bank{}, bankIDs).Error
}

// isUniqueViolation reports whether the error is a sqlite unique constraint
// failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
