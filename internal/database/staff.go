package database

import (
	"fmt"
	"strings"
	"time"

	"restaupilot/internal/models"

	"github.com/jinzhu/gorm"
)

// ListStaff returns a restaurant's roster.
func (s *Store) ListStaff(restaurantID uint) ([]models.StaffMember, error) {
	var out []models.StaffMember
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return out, nil
}

// CreateStaff adds a staff member.
func (s *Store) CreateStaff(m *models.StaffMember) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: staff name is required", ErrInvalid)
	}
	if m.HourlyRate < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalid)
	}
	m.ID = 0
	if err := s.db.Create(m).Error; err != nil {
		return fmt.Errorf("create staff: %w", err)
	}
	return nil
}

// ListShifts returns shifts that overlap [from, to).
func (s *Store) ListShifts(restaurantID uint, from, to time.Time) ([]models.Shift, error) {
	var out []models.Shift
	err := s.db.Where("restaurant_id = ? AND starts_at < ? AND ends_at > ?", restaurantID, to.UTC(), from.UTC()).
		Order("starts_at").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	return out, nil
}

// CreateShift schedules a shift. A shift overlapping another one for the
// same staff member is rejected with ErrConflict.
func (s *Store) CreateShift(shift *models.Shift) error {
	if !shift.EndsAt.After(shift.StartsAt) {
		return fmt.Errorf("%w: shift must end after it starts", ErrInvalid)
	}
	// stored in UTC so sqlite's text timestamps compare in order
	shift.StartsAt = shift.StartsAt.UTC()
	shift.EndsAt = shift.EndsAt.UTC()

	return s.db.Transaction(func(tx *gorm.DB) error {
		var staff models.StaffMember
		if err := tx.Where("restaurant_id = ?", shift.RestaurantID).First(&staff, shift.StaffID).Error; err != nil {
			return notFound(err, "staff member")
		}

		var clash int
		err := tx.Model(&models.Shift{}).
			Where("staff_id = ? AND starts_at < ? AND ends_at > ?", shift.StaffID, shift.EndsAt, shift.StartsAt).
			Count(&clash).Error
		if err != nil {
			return fmt.Errorf("check shift overlap: %w", err)
		}
		if clash > 0 {
			return fmt.Errorf("%w: %s already has a shift in that window", ErrConflict, staff.Name)
		}

		shift.ID = 0
		if err := tx.Create(shift).Error; err != nil {
			return fmt.Errorf("create shift: %w", err)
		}
		return nil
	})
}

// DeleteShift removes a shift.
func (s *Store) DeleteShift(restaurantID, id uint) error {
	res := s.db.Where("restaurant_id = ? AND id = ?", restaurantID, id).Delete(&models.Shift{})
	if res.Error != nil {
		return fmt.Errorf("delete shift: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("shift: %w", ErrNotFound)
	}
	return nil
}
