package database

import (
	"fmt"
	"strings"
	"time"

	"restaupilot/internal/models"
)

// InventoryPatch holds the fields an update may change. Nil fields are kept.
type InventoryPatch struct {
	Name        *string    `json:"name"`
	Category    *string    `json:"category"`
	Quantity    *float64   `json:"quantity"`
	Unit        *string    `json:"unit"`
	UnitCost    *float64   `json:"unit_cost"`
	MinLevel    *float64   `json:"min_level"`
	MaxLevel    *float64   `json:"max_level"`
	ReorderAt   *float64   `json:"reorder_at"`
	ExpiryDate  *time.Time `json:"expiry_date"`
	LastOrdered *time.Time `json:"last_ordered"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
}

func (p InventoryPatch) apply(item *models.InventoryItem) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Quantity != nil {
		item.Quantity = *p.Quantity
	}
	if p.Unit != nil {
		item.Unit = *p.Unit
	}
	if p.UnitCost != nil {
		item.UnitCost = *p.UnitCost
	}
	if p.MinLevel != nil {
		item.MinLevel = *p.MinLevel
	}
	if p.MaxLevel != nil {
		item.MaxLevel = *p.MaxLevel
	}
	if p.ReorderAt != nil {
		item.ReorderAt = *p.ReorderAt
	}
	if p.ExpiryDate != nil {
		item.ExpiryDate = p.ExpiryDate
	}
	if p.LastOrdered != nil {
		item.LastOrdered = p.LastOrdered
	}
	if p.Location != nil {
		item.Location = *p.Location
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
}

func validateItem(item *models.InventoryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: item name is required", ErrInvalid)
	}
	if item.UnitCost < 0 || item.ReorderAt < 0 || item.MinLevel < 0 || item.MaxLevel < 0 {
		return fmt.Errorf("%w: levels and cost must not be negative", ErrInvalid)
	}
	return nil
}

// ListInventory returns every item for a restaurant with a fresh status.
func (s *Store) ListInventory(restaurantID uint) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	now := time.Now()
	for i := range items {
		if items[i].Status != string(models.StatusOrdered) {
			items[i].Status = string(items[i].DeriveStatus(now))
		}
	}
	return items, nil
}

// LowStock returns items that are low, out of stock or expired.
func (s *Store) LowStock(restaurantID uint) ([]models.InventoryItem, error) {
	items, err := s.ListInventory(restaurantID)
	if err != nil {
		return nil, err
	}
	var out []models.InventoryItem
	for _, it := range items {
		switch models.InventoryStatus(it.Status) {
		case models.StatusLow, models.StatusOutOfStock, models.StatusExpired:
			out = append(out, it)
		}
	}
	return out, nil
}

// CreateInventoryItem inserts an item and derives its status.
func (s *Store) CreateInventoryItem(item *models.InventoryItem) error {
	if err := validateItem(item); err != nil {
		return err
	}
	item.ID = 0
	item.Status = string(item.DeriveStatus(time.Now()))
	if err := s.db.Create(item).Error; err != nil {
		return fmt.Errorf("create inventory item: %w", err)
	}
	return nil
}

// UpdateInventoryItem applies patch to the restaurant's item with id. It
// returns ErrNotFound when the item does not exist.
func (s *Store) UpdateInventoryItem(restaurantID, id uint, patch InventoryPatch) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).First(&item, id).Error; err != nil {
		return nil, notFound(err, "inventory item")
	}

	patch.apply(&item)
	if err := validateItem(&item); err != nil {
		return nil, err
	}
	item.Status = string(item.DeriveStatus(time.Now()))

	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("update inventory item: %w", err)
	}
	return &item, nil
}

// MarkOrdered flags an item as reordered.
func (s *Store) MarkOrdered(restaurantID, id uint, at time.Time) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Where("restaurant_id = ?", restaurantID).First(&item, id).Error; err != nil {
		return nil, notFound(err, "inventory item")
	}
	item.Status = string(models.StatusOrdered)
	item.LastOrdered = &at
	if err := s.db.Save(&item).Error; err != nil {
		return nil, fmt.Errorf("mark ordered: %w", err)
	}
	return &item, nil
}
