package database

import (
	"fmt"
	"time"

	"restaupilot/internal/models"
)

// ListCompliance returns a restaurant's requirements ordered by due date.
func (s *Store) ListCompliance(restaurantID uint) ([]models.ComplianceRequirement, error) {
	var out []models.ComplianceRequirement
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("due_date").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list compliance: %w", err)
	}
	return out, nil
}

// UpdateComplianceStatus sets a requirement's status and review time.
func (s *Store) UpdateComplianceStatus(restaurantID, id uint, status, notes string, at time.Time) (*models.ComplianceRequirement, error) {
	if !models.ValidComplianceStatus(status) {
		return nil, fmt.Errorf("%w: unknown compliance status %q", ErrInvalid, status)
	}

	var req models.ComplianceRequirement
	if err := s.db.Where("restaurant_id = ?", restaurantID).First(&req, id).Error; err != nil {
		return nil, notFound(err, "compliance requirement")
	}
	req.Status = status
	req.LastReviewed = &at
	if notes != "" {
		req.Notes = notes
	}
	if err := s.db.Save(&req).Error; err != nil {
		return nil, fmt.Errorf("update compliance: %w", err)
	}
	return &req, nil
}

// ComplianceSummary counts requirements by status.
type ComplianceSummary struct {
	Total        int     `json:"total"`
	Compliant    int     `json:"compliant"`
	Pending      int     `json:"pending"`
	NonCompliant int     `json:"non_compliant"`
	Overdue      int     `json:"overdue"`
	Score        float64 `json:"score"`
}

// SummarizeCompliance scores requirements as compliant / total * 100. An
// empty list scores 100.
func SummarizeCompliance(reqs []models.ComplianceRequirement, now time.Time) ComplianceSummary {
	sum := ComplianceSummary{Total: len(reqs), Score: 100}
	for _, r := range reqs {
		switch models.ComplianceStatus(r.Status) {
		case models.ComplianceCompliant:
			sum.Compliant++
		case models.ComplianceNonCompliant:
			sum.NonCompliant++
		default:
			sum.Pending++
		}
		if r.Status != string(models.ComplianceCompliant) && r.DueDate.Before(now) {
			sum.Overdue++
		}
	}
	if sum.Total > 0 {
		sum.Score = float64(sum.Compliant) / float64(sum.Total) * 100
	}
	return sum
}
