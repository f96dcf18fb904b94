package database

import (
	"fmt"
	"time"

	"restaupilot/internal/models"
)

// ListTrainingModules returns a restaurant's modules.
func (s *Store) ListTrainingModules(restaurantID uint) ([]models.TrainingModule, error) {
	var out []models.TrainingModule
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list training modules: %w", err)
	}
	return out, nil
}

// RecordCompletion stores a staff member finishing a module. Completing the
// same module twice keeps the better score.
func (s *Store) RecordCompletion(c *models.TrainingCompletion) error {
	if c.Score < 0 || c.Score > 100 {
		return fmt.Errorf("%w: score must be between 0 and 100", ErrInvalid)
	}
	if err := s.db.Where("restaurant_id = ?", c.RestaurantID).First(&models.StaffMember{}, c.StaffID).Error; err != nil {
		return notFound(err, "staff member")
	}
	if err := s.db.Where("restaurant_id = ?", c.RestaurantID).First(&models.TrainingModule{}, c.ModuleID).Error; err != nil {
		return notFound(err, "training module")
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}

	var existing models.TrainingCompletion
	err := s.db.Where("staff_id = ? AND module_id = ?", c.StaffID, c.ModuleID).First(&existing).Error
	if err == nil {
		if c.Score > existing.Score {
			existing.Score = c.Score
			existing.CompletedAt = c.CompletedAt
			if err := s.db.Save(&existing).Error; err != nil {
				return fmt.Errorf("update completion: %w", err)
			}
		}
		*c = existing
		return nil
	}
	if err := notFound(err, "completion"); !isNotFound(err) {
		return err
	}

	c.ID = 0
	if err := s.db.Create(c).Error; err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	return nil
}

// ListCompletions returns every completion for a restaurant.
func (s *Store) ListCompletions(restaurantID uint) ([]models.TrainingCompletion, error) {
	var out []models.TrainingCompletion
	if err := s.db.Where("restaurant_id = ?", restaurantID).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return out, nil
}

// TrainingProgress is one staff member's standing on required modules.
type TrainingProgress struct {
	StaffID           uint    `json:"staff_id"`
	StaffName         string  `json:"staff_name"`
	RequiredTotal     int     `json:"required_total"`
	RequiredCompleted int     `json:"required_completed"`
	Completed         int     `json:"completed"`
	Percent           float64 `json:"percent"`
}

// SummarizeTraining computes progress per staff member. With no required
// modules everyone is at 100 percent.
func SummarizeTraining(staff []models.StaffMember, modules []models.TrainingModule, completions []models.TrainingCompletion) []TrainingProgress {
	required := make(map[uint]bool)
	for _, m := range modules {
		if m.Required {
			required[m.ID] = true
		}
	}
	done := make(map[uint]map[uint]bool)
	for _, c := range completions {
		if done[c.StaffID] == nil {
			done[c.StaffID] = make(map[uint]bool)
		}
		done[c.StaffID][c.ModuleID] = true
	}

	out := make([]TrainingProgress, 0, len(staff))
	for _, st := range staff {
		p := TrainingProgress{
			StaffID:       st.ID,
			StaffName:     st.Name,
			RequiredTotal: len(required),
			Completed:     len(done[st.ID]),
			Percent:       100,
		}
		for id := range done[st.ID] {
			if required[id] {
				p.RequiredCompleted++
			}
		}
		if p.RequiredTotal > 0 {
			p.Percent = float64(p.RequiredCompleted) / float64(p.RequiredTotal) * 100
		}
		out = append(out, p)
	}
	return out
}
