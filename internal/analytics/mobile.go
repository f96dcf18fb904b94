package analytics

import (
	"time"

	"restaupilot/internal/database"
	"restaupilot/internal/models"
)

// MobileSource is what the companion summary reads.
type MobileSource interface {
	ListInventory(restaurantID uint) ([]models.InventoryItem, error)
	ListShifts(restaurantID uint, from, to time.Time) ([]models.Shift, error)
	ListMaintenanceTasks(restaurantID uint, now time.Time) ([]models.MaintenanceTask, error)
	ListCompliance(restaurantID uint) ([]models.ComplianceRequirement, error)
	ListWaste(restaurantID uint, from, to time.Time) ([]models.WasteLog, error)
}

// MobileSummary is the compact view shown by the companion app.
type MobileSummary struct {
	RestaurantID       uint      `json:"restaurant_id"`
	Name               string    `json:"name"`
	GeneratedAt        time.Time `json:"generated_at"`
	LowStockCount      int       `json:"low_stock_count"`
	ShiftsToday        int       `json:"shifts_today"`
	OverdueMaintenance int       `json:"overdue_maintenance"`
	OpenCompliance     int       `json:"open_compliance"`
	ComplianceScore    float64   `json:"compliance_score"`
	WasteKgToday       float64   `json:"waste_kg_today"`
}

// BuildMobileSummary summarises a restaurant's day. "Today" is the calendar
// day of now in the restaurant's timezone, falling back to UTC.
func BuildMobileSummary(src MobileSource, r models.Restaurant, now time.Time) (*MobileSummary, error) {
	loc := time.UTC
	if r.Timezone != "" {
		if l, err := time.LoadLocation(r.Timezone); err == nil {
			loc = l
		}
	}
	local := now.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	sum := &MobileSummary{RestaurantID: r.ID, Name: r.Name, GeneratedAt: now}

	items, err := src.ListInventory(r.ID)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		switch models.InventoryStatus(it.Status) {
		case models.StatusLow, models.StatusOutOfStock, models.StatusExpired:
			sum.LowStockCount++
		}
	}

	shifts, err := src.ListShifts(r.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	sum.ShiftsToday = len(shifts)

	tasks, err := src.ListMaintenanceTasks(r.ID, now)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.Overdue {
			sum.OverdueMaintenance++
		}
	}

	reqs, err := src.ListCompliance(r.ID)
	if err != nil {
		return nil, err
	}
	cs := database.SummarizeCompliance(reqs, now)
	sum.OpenCompliance = cs.Total - cs.Compliant
	sum.ComplianceScore = cs.Score

	waste, err := src.ListWaste(r.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	sum.WasteKgToday = database.SummarizeWaste(waste).TotalKg

	return sum, nil
}
