package models

import "time"

// InventoryItem represents an item in a restaurant's inventory
type InventoryItem struct {
	Base
	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Quantity     float64    `json:"quantity"`
	Unit         string     `json:"unit"`
	UnitCost     float64    `json:"unit_cost"`
	MinLevel     float64    `json:"min_level"`
	MaxLevel     float64    `json:"max_level"`
	ReorderAt    float64    `json:"reorder_at"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	LastOrdered  *time.Time `json:"last_ordered,omitempty"`
	Location     string     `json:"location"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
}

// StockValue returns the stock value of the item.
func (i InventoryItem) StockValue() float64 {
	if i.Quantity <= 0 {
		return 0
	}
	return i.Quantity * i.UnitCost
}

// DeriveStatus computes the stock status from quantity, reorder point and expiry.
func (i InventoryItem) DeriveStatus(now time.Time) InventoryStatus {
	switch {
	case i.ExpiryDate != nil && i.ExpiryDate.Before(now):
		return StatusExpired
	case i.Quantity <= 0:
		return StatusOutOfStock
	case i.Quantity <= i.ReorderAt:
		return StatusLow
	default:
		return StatusInStock
	}
}

// InventoryCategory represents the category of an inventory item
type InventoryCategory string

const (
	// Inventory categories
	CategoryProtein     InventoryCategory = "protein"
	CategoryProduce     InventoryCategory = "produce"
	CategoryDairy       InventoryCategory = "dairy"
	CategoryDryGoods    InventoryCategory = "dry_goods"
	CategorySpices      InventoryCategory = "spices"
	CategoryCondiments  InventoryCategory = "condiments"
	CategoryBeverages   InventoryCategory = "beverages"
	CategoryDisposables InventoryCategory = "disposables"
	CategoryCleaning    InventoryCategory = "cleaning"
)

// InventoryStatus represents the status of an inventory item
type InventoryStatus string

const (
	// Inventory statuses
	StatusInStock    InventoryStatus = "in_stock"
	StatusLow        InventoryStatus = "low"
	StatusOutOfStock InventoryStatus = "out_of_stock"
	StatusOrdered    InventoryStatus = "ordered"
	StatusExpired    InventoryStatus = "expired"
)

// InventoryUnit represents the unit of measurement for an inventory item
type InventoryUnit string

const (
	UnitGram     InventoryUnit = "g"
	UnitKilogram InventoryUnit = "kg"
	UnitLiter    InventoryUnit = "l"
	UnitPiece    InventoryUnit = "pc"
	UnitBox      InventoryUnit = "box"
	UnitCase     InventoryUnit = "case"
)

// InventoryLocation represents the storage location of an inventory item
type InventoryLocation string

const (
	LocationDryStorage   InventoryLocation = "dry_storage"
	LocationRefrigerator InventoryLocation = "refrigerator"
	LocationFreezer      InventoryLocation = "freezer"
	LocationWalkIn       InventoryLocation = "walk_in"
	LocationSupplyCloset InventoryLocation = "supply_closet"
)
