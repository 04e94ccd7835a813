package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// configService manages the country and currency option lists.
type configService struct {
	db *gorm.DB
}

// NewConfigService creates a new ConfigServicer.
func NewConfigService(db *gorm.DB) ConfigServicer {
	return &configService{db: db}
}

// GetOptions returns the country and currency pick lists.
func (s *configService) GetOptions() (*ConfigOptions, error) {
	opts := &ConfigOptions{Countries: []string{}, Currencies: []string{}}

	if err := s.db.Model(&models.ConfigOption{}).
		Where("type = ?", models.OptionTypeCountry).
		Order("id").
		Pluck("value", &opts.Countries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Model(&models.ConfigOption{}).
		Where("type = ?", models.OptionTypeCurrency).
		Order("id").
		Pluck("value", &opts.Currencies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return opts, nil
}

// AddOption appends a value to one of the option lists.
func (s *configService) AddOption(optionType, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "option value is required")
	}

	option := &models.ConfigOption{Type: optionType, Value: value}
	if err := s.db.Create(option).Error; err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateOption
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// RemoveOption deletes a value from one of the option lists. Removing a
// missing value is a no-op.
func (s *configService) RemoveOption(optionType, value string) error {
	if err := s.db.Where("type = ? AND value = ?", optionType, value).
		Delete(&models.ConfigOption{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
