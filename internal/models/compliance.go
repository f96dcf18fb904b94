package models

import "time"

// ComplianceRequirement is a regulatory item a restaurant must keep current.
type ComplianceRequirement struct {
	Base
	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	Title        string     `json:"title"`
	Authority    string     `json:"authority"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	DueDate      time.Time  `json:"due_date"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	Notes        string     `json:"notes"`
}

// ComplianceStatus represents the state of a compliance requirement
type ComplianceStatus string

const (
	ComplianceCompliant    ComplianceStatus = "compliant"
	CompliancePending      ComplianceStatus = "pending"
	ComplianceNonCompliant ComplianceStatus = "non_compliant"
)

// ValidComplianceStatus reports whether s is a known status.
func ValidComplianceStatus(s string) bool {
	switch ComplianceStatus(s) {
	case ComplianceCompliant, CompliancePending, ComplianceNonCompliant:
		return true
	}
	return false
}
