package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "assetsnapshot/internal/errors"
	"assetsnapshot/internal/models"
)

// assetService handles asset and asset log business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// ListAssets returns all assets with their owner's name, ordered by
// last_updated descending.
func (s *assetService) ListAssets() ([]AssetSummary, error) {
	var assets []AssetSummary
	err := s.db.Raw(`
		SELECT a.*, o.name AS owner_name
		FROM assets a
		JOIN owners o ON a.owner_id = o.id
		ORDER BY a.last_updated DESC
	`).Scan(&assets).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if assets == nil {
		assets = []AssetSummary{}
	}
	return assets, nil
}

// GetAsset returns an asset with its logs ordered newest first.
func (s *assetService) GetAsset(id uint) (*AssetSummary, error) {
	var asset models.Asset
	err := s.db.Preload("Logs", func(db *gorm.DB) *gorm.DB {
		return db.Order("recorded_at DESC, id DESC")
	}).First(&asset, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := &AssetSummary{Asset: asset}
	if err := s.db.Model(&models.Owner{}).
		Where("id = ?", asset.OwnerID).
		Select("name").
		Scan(&summary.OwnerName).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return summary, nil
}

// CreateAsset creates an asset for an existing owner.
func (s *assetService) CreateAsset(fields AssetCreateFields) (*models.Asset, error) {
	if fields.Name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset name is required")
	}

	var ownerCount int64
	if err := s.db.Model(&models.Owner{}).Where("id = ?", fields.OwnerID).Count(&ownerCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if ownerCount == 0 {
		return nil, apperrors.ErrOwnerNotFound
	}

	asset := &models.Asset{
		OwnerID:       fields.OwnerID,
		Name:          fields.Name,
		AssetType:     fields.AssetType,
		Value:         fields.Value,
		Currency:      fields.Currency,
		PurchasePrice: fields.PurchasePrice,
		PurchaseDate:  fields.PurchaseDate,
		Country:       fields.Country,
		Notes:         fields.Notes,
		LogoColor:     fields.LogoColor,
		LastUpdated:   time.Now().UTC(),
	}
	if asset.AssetType == "" {
		asset.AssetType = "Other"
	}
	if asset.Currency == "" {
		asset.Currency = "USD"
	}
	if asset.Country == "" {
		asset.Country = "USA"
	}
	if asset.LogoColor == "" {
		asset.LogoColor = "#3b82f6"
	}

	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// UpdateAsset applies a partial patch and restamps last_updated.
func (s *assetService) UpdateAsset(id uint, fields AssetUpdateFields) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
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
	if fields.AssetType != nil {
		updates["asset_type"] = *fields.AssetType
	}
	if fields.Value != nil {
		updates["value"] = *fields.Value
	}
	if fields.Currency != nil && *fields.Currency != "" {
		updates["currency"] = *fields.Currency
	}
	if fields.PurchasePrice != nil {
		updates["purchase_price"] = *fields.PurchasePrice
	}
	if fields.PurchaseDate != nil {
		updates["purchase_date"] = *fields.PurchaseDate
	}
	if fields.Country != nil {
		updates["country"] = *fields.Country
	}
	if fields.Notes != nil {
		updates["notes"] = *fields.Notes
	}
	if fields.LogoColor != nil {
		updates["logo_color"] = *fields.LogoColor
	}

	if err := s.db.Model(&asset).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.First(&asset, id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset removes an asset and its logs. Deleting a missing asset is a
// no-op.
func (s *assetService) DeleteAsset(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&models.AssetLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Asset{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// CreateAssetLog records a dated entry against an asset. Valuation entries
// refresh the asset's cached value.
func (s *assetService) CreateAssetLog(fields AssetLogCreateFields) (*models.AssetLog, error) {
	var assetCount int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", fields.AssetID).Count(&assetCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if assetCount == 0 {
		return nil, apperrors.ErrAssetNotFound
	}
	if fields.RecordedAt.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "recorded_at is required")
	}

	log := &models.AssetLog{
		AssetID:    fields.AssetID,
		Type:       fields.Type,
		Amount:     fields.Amount,
		Currency:   fields.Currency,
		Comment:    fields.Comment,
		RecordedAt: fields.RecordedAt,
	}
	if log.Type == "" {
		log.Type = models.AssetLogValuation
	}
	if log.Currency == "" {
		log.Currency = "USD"
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		return refreshAsset(tx, log.AssetID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return log, nil
}

// UpdateAssetLog applies a partial patch to an asset log and refreshes the
// parent asset.
func (s *assetService) UpdateAssetLog(id uint, fields AssetLogUpdateFields) (*models.AssetLog, error) {
	var log models.AssetLog
	if err := s.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetLogNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	updates := make(map[string]interface{})
	if fields.Type != nil {
		updates["type"] = *fields.Type
	}
	if fields.Amount != nil {
		updates["amount"] = *fields.Amount
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
		return refreshAsset(tx, log.AssetID)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.First(&log, id).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &log, nil
}

// DeleteAssetLog removes an asset log and refreshes the parent asset.
// Deleting a missing log is a no-op.
func (s *assetService) DeleteAssetLog(id uint) error {
	var log models.AssetLog
	if err := s.db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.AssetLog{}, id).Error; err != nil {
			return err
		}
		return refreshAsset(tx, log.AssetID)
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// refreshAsset restamps the asset's last_updated and, when a Valuation log
// exists, syncs the cached value (and its currency) to the latest one. With
// no valuation logs the manually entered value stays.
func refreshAsset(tx *gorm.DB, assetID uint) error {
	updates := map[string]interface{}{"last_updated": time.Now().UTC()}

	var latest models.AssetLog
	err := tx.Where("asset_id = ? AND type = ?", assetID, models.AssetLogValuation).
		Order("recorded_at DESC, id DESC").
		First(&latest).Error
	switch {
	case err == nil:
		updates["value"] = latest.Amount
		updates["currency"] = latest.Currency
	case errors.Is(err, gorm.ErrRecordNotFound):
		// keep the manual value
	default:
		return err
	}

	return tx.Model(&models.Asset{}).Where("id = ?", assetID).Updates(updates).Error
}
