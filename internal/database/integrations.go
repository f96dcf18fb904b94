package database

import (
	"fmt"

	"restaupilot/internal/models"

	"github.com/jinzhu/gorm"
)

// ListExtensions returns the marketplace catalog.
func (s *Store) ListExtensions() ([]models.Extension, error) {
	var out []models.Extension
	if err := s.db.Order("category, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list extensions: %w", err)
	}
	return out, nil
}

// ListIntegrations returns extensions installed for a restaurant.
func (s *Store) ListIntegrations(restaurantID uint) ([]models.Integration, error) {
	var out []models.Integration
	if err := s.db.Preload("Extension").Where("restaurant_id = ?", restaurantID).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	return out, nil
}

// InstallIntegration installs the extension with slug for a restaurant.
// Installing the same extension twice is a conflict.
func (s *Store) InstallIntegration(restaurantID uint, slug string, config models.StringMap) (*models.Integration, error) {
	var ext models.Extension
	if err := s.db.Where("slug = ?", slug).First(&ext).Error; err != nil {
		return nil, notFound(err, "extension "+slug)
	}

	if config == nil {
		config = models.StringMap{}
	}
	in := models.Integration{
		RestaurantID: restaurantID,
		ExtensionID:  ext.ID,
		Status:       string(models.IntegrationActive),
		Config:       config,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int
		if err := tx.Model(&models.Integration{}).
			Where("restaurant_id = ? AND extension_id = ?", restaurantID, ext.ID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check installed: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s is already installed", ErrConflict, ext.Name)
		}
		if err := tx.Set("gorm:save_associations", false).Create(&in).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s is already installed", ErrConflict, ext.Name)
			}
			return fmt.Errorf("install integration: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	in.Extension = ext
	return &in, nil
}

// UninstallIntegration removes an installed integration.
func (s *Store) UninstallIntegration(restaurantID, id uint) error {
	res := s.db.Where("restaurant_id = ? AND id = ?", restaurantID, id).Delete(&models.Integration{})
	if res.Error != nil {
		return fmt.Errorf("uninstall integration: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("integration: %w", ErrNotFound)
	}
	return nil
}
