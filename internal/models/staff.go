package models

import "time"

// StaffMember is an employee on a restaurant's roster.
type StaffMember struct {
	Base
	RestaurantID uint    `gorm:"index" json:"restaurant_id"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	Email        string  `json:"email"`
	HourlyRate   float64 `json:"hourly_rate"`
	Active       bool    `json:"active"`
}

// Shift is a scheduled block of work for one staff member.
type Shift struct {
	Base
	RestaurantID uint      `gorm:"index" json:"restaurant_id"`
	StaffID      uint      `gorm:"index" json:"staff_id"`
	Station      string    `json:"station"`
	StartsAt     time.Time `gorm:"index" json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	Notes        string    `json:"notes"`
}

// Hours returns the shift length in hours.
func (s Shift) Hours() float64 {
	if !s.EndsAt.After(s.StartsAt) {
		return 0
	}
	return s.EndsAt.Sub(s.StartsAt).Hours()
}

// Overlaps reports whether two shifts share any time.
func (s Shift) Overlaps(o Shift) bool {
	return s.StartsAt.Before(o.EndsAt) && o.StartsAt.Before(s.EndsAt)
}

// StaffRole represents a position in the restaurant
type StaffRole string

const (
	RoleManager    StaffRole = "manager"
	RoleChef       StaffRole = "chef"
	RoleLineCook   StaffRole = "line_cook"
	RoleServer     StaffRole = "server"
	RoleBartender  StaffRole = "bartender"
	RoleDishwasher StaffRole = "dishwasher"
	RoleHost       StaffRole = "host"
)
