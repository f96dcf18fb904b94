package models

import "time"

// TrainingModule is a course staff can complete.
type TrainingModule struct {
	Base
	RestaurantID    uint   `gorm:"index" json:"restaurant_id"`
	Title           string `json:"title"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
	Required        bool   `json:"required"`
}

// TrainingCompletion records a staff member finishing a module.
type TrainingCompletion struct {
	Base
	RestaurantID uint      `gorm:"index" json:"restaurant_id"`
	StaffID      uint      `gorm:"index" json:"staff_id"`
	ModuleID     uint      `gorm:"index" json:"module_id"`
	Score        float64   `json:"score"`
	CompletedAt  time.Time `json:"completed_at"`
}
