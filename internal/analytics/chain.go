// Package analytics rolls per-restaurant figures up to the chain.
package analytics

import (
	"fmt"
	"sort"
	"time"

	"restaupilot/internal/database"
	"restaupilot/internal/models"
	"restaupilot/internal/payroll"
)

// Source is the data the chain report reads.
type Source interface {
	ListRestaurants() ([]models.Restaurant, error)
	ListInventory(restaurantID uint) ([]models.InventoryItem, error)
	ListStaff(restaurantID uint) ([]models.StaffMember, error)
	ListShifts(restaurantID uint, from, to time.Time) ([]models.Shift, error)
	ListWaste(restaurantID uint, from, to time.Time) ([]models.WasteLog, error)
	ListCompliance(restaurantID uint) ([]models.ComplianceRequirement, error)
}

// RestaurantFigures are one location's numbers for the window.
type RestaurantFigures struct {
	RestaurantID    uint    `json:"restaurant_id"`
	Name            string  `json:"name"`
	InventoryValue  float64 `json:"inventory_value"`
	LowStockItems   int     `json:"low_stock_items"`
	LaborHours      float64 `json:"labor_hours"`
	LaborCost       float64 `json:"labor_cost"`
	WasteKg         float64 `json:"waste_kg"`
	WasteCost       float64 `json:"waste_cost"`
	DiversionRate   float64 `json:"diversion_rate"`
	ComplianceScore float64 `json:"compliance_score"`
	OperatingCost   float64 `json:"operating_cost"`
	Rank            int     `json:"rank"`
}

// ChainReport aggregates every restaurant.
type ChainReport struct {
	From                   time.Time           `json:"from"`
	To                     time.Time           `json:"to"`
	Restaurants            []RestaurantFigures `json:"restaurants"`
	TotalInventoryValue    float64             `json:"total_inventory_value"`
	TotalLaborCost         float64             `json:"total_labor_cost"`
	TotalWasteCost         float64             `json:"total_waste_cost"`
	TotalWasteKg           float64             `json:"total_waste_kg"`
	AverageComplianceScore float64             `json:"average_compliance_score"`
}

// BuildChainReport computes figures for [from, to) and ranks restaurants by
// labor plus waste cost, cheapest first.
func BuildChainReport(src Source, from, to, now time.Time) (*ChainReport, error) {
	restaurants, err := src.ListRestaurants()
	if err != nil {
		return nil, err
	}

	report := &ChainReport{From: from, To: to, Restaurants: make([]RestaurantFigures, 0, len(restaurants))}
	for _, r := range restaurants {
		fig, err := restaurantFigures(src, r, from, to, now)
		if err != nil {
			return nil, fmt.Errorf("restaurant %d: %w", r.ID, err)
		}
		report.Restaurants = append(report.Restaurants, fig)

		report.TotalInventoryValue += fig.InventoryValue
		report.TotalLaborCost += fig.LaborCost
		report.TotalWasteCost += fig.WasteCost
		report.TotalWasteKg += fig.WasteKg
		report.AverageComplianceScore += fig.ComplianceScore
	}
	if n := len(report.Restaurants); n > 0 {
		report.AverageComplianceScore /= float64(n)
	}

	sort.SliceStable(report.Restaurants, func(i, j int) bool {
		return report.Restaurants[i].OperatingCost < report.Restaurants[j].OperatingCost
	})
	for i := range report.Restaurants {
		report.Restaurants[i].Rank = i + 1
	}
	return report, nil
}

func restaurantFigures(src Source, r models.Restaurant, from, to, now time.Time) (RestaurantFigures, error) {
	fig := RestaurantFigures{RestaurantID: r.ID, Name: r.Name}

	items, err := src.ListInventory(r.ID)
	if err != nil {
		return fig, err
	}
	for _, it := range items {
		fig.InventoryValue += it.StockValue()
		switch models.InventoryStatus(it.Status) {
		case models.StatusLow, models.StatusOutOfStock, models.StatusExpired:
			fig.LowStockItems++
		}
	}

	staff, err := src.ListStaff(r.ID)
	if err != nil {
		return fig, err
	}
	shifts, err := src.ListShifts(r.ID, from, to)
	if err != nil {
		return fig, err
	}
	pay := payroll.Calculate(staff, shifts, from, to)
	fig.LaborHours = pay.TotalHours
	fig.LaborCost = pay.TotalGross

	waste, err := src.ListWaste(r.ID, from, to)
	if err != nil {
		return fig, err
	}
	ws := database.SummarizeWaste(waste)
	fig.WasteKg = ws.TotalKg
	fig.WasteCost = ws.TotalCost
	fig.DiversionRate = ws.DiversionRate

	reqs, err := src.ListCompliance(r.ID)
	if err != nil {
		return fig, err
	}
	fig.ComplianceScore = database.SummarizeCompliance(reqs, now).Score

	fig.OperatingCost = fig.LaborCost + fig.WasteCost
	return fig, nil
}
