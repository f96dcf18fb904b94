package models

import "time"

// Equipment represents a piece of kitchen equipment
type Equipment struct {
	Base
	RestaurantID    uint       `gorm:"index" json:"restaurant_id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	Status          string     `json:"status"`
	Station         string     `json:"station"`
	LastMaintenance *time.Time `json:"last_maintenance,omitempty"`
	NextMaintenance *time.Time `json:"next_maintenance,omitempty"`
	Notes           string     `json:"notes"`
}

// EquipmentStatus represents the status of a piece of equipment
type EquipmentStatus string

const (
	EquipmentStatusAvailable    EquipmentStatus = "available"
	EquipmentStatusInUse        EquipmentStatus = "in_use"
	EquipmentStatusMaintenance  EquipmentStatus = "maintenance"
	EquipmentStatusOutOfService EquipmentStatus = "out_of_service"
)

// EquipmentType represents the type of equipment
type EquipmentType string

const (
	EquipmentTypeCooking      EquipmentType = "cooking"
	EquipmentTypeRefrigerator EquipmentType = "refrigeration"
	EquipmentTypePrep         EquipmentType = "prep"
	EquipmentTypeCleaning     EquipmentType = "cleaning"
	EquipmentTypeHVAC         EquipmentType = "hvac"
)

// MaintenanceTask is a scheduled job against a piece of equipment.
type MaintenanceTask struct {
	Base
	RestaurantID uint       `gorm:"index" json:"restaurant_id"`
	EquipmentID  uint       `gorm:"index" json:"equipment_id"`
	Title        string     `json:"title"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	AssignedTo   string     `json:"assigned_to"`
	DueDate      time.Time  `json:"due_date"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Cost         float64    `json:"cost"`
	Notes        string     `json:"notes"`
	Overdue      bool       `gorm:"-" json:"overdue"`
}

// IsOverdue reports whether an unfinished task is past its due date.
func (t MaintenanceTask) IsOverdue(now time.Time) bool {
	return t.Status != string(TaskStatusCompleted) && t.DueDate.Before(now)
}

// TaskStatus represents the lifecycle of a maintenance task
type TaskStatus string

const (
	TaskStatusScheduled  TaskStatus = "scheduled"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)
