package database

import (
	"fmt"
	"strings"
	"time"

	"restaupilot/internal/models"
)

// LogWaste records a waste entry. LoggedAt defaults to now.
func (s *Store) LogWaste(w *models.WasteLog) error {
	if strings.TrimSpace(w.Item) == "" {
		return fmt.Errorf("%w: waste item is required", ErrInvalid)
	}
	if w.QuantityKg <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalid)
	}
	if w.Disposal == "" {
		w.Disposal = string(models.DisposalLandfill)
	}
	if !models.ValidDisposal(w.Disposal) {
		return fmt.Errorf("%w: unknown disposal %q", ErrInvalid, w.Disposal)
	}
	if w.LoggedAt.IsZero() {
		w.LoggedAt = time.Now()
	}
	w.LoggedAt = w.LoggedAt.UTC()
	w.ID = 0
	if err := s.db.Create(w).Error; err != nil {
		return fmt.Errorf("log waste: %w", err)
	}
	return nil
}

// ListWaste returns entries logged in [from, to).
func (s *Store) ListWaste(restaurantID uint, from, to time.Time) ([]models.WasteLog, error) {
	var out []models.WasteLog
	err := s.db.Where("restaurant_id = ? AND logged_at >= ? AND logged_at < ?", restaurantID, from.UTC(), to.UTC()).
		Order("logged_at desc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list waste: %w", err)
	}
	return out, nil
}

// SustainabilitySummary aggregates waste by where it went.
type SustainabilitySummary struct {
	TotalKg       float64            `json:"total_kg"`
	DivertedKg    float64            `json:"diverted_kg"`
	DiversionRate float64            `json:"diversion_rate"`
	TotalCost     float64            `json:"total_cost"`
	ByDisposal    map[string]float64 `json:"by_disposal"`
	ByCategory    map[string]float64 `json:"by_category"`
}

// SummarizeWaste computes diversion from landfill over a set of logs.
func SummarizeWaste(logs []models.WasteLog) SustainabilitySummary {
	sum := SustainabilitySummary{
		ByDisposal: make(map[string]float64),
		ByCategory: make(map[string]float64),
	}
	for _, l := range logs {
		sum.TotalKg += l.QuantityKg
		sum.TotalCost += l.Cost
		sum.ByDisposal[l.Disposal] += l.QuantityKg
		sum.ByCategory[l.Category] += l.QuantityKg
		if l.Disposal != string(models.DisposalLandfill) {
			sum.DivertedKg += l.QuantityKg
		}
	}
	if sum.TotalKg > 0 {
		sum.DiversionRate = sum.DivertedKg / sum.TotalKg * 100
	}
	return sum
}
