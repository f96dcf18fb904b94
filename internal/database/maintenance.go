package database

import (
	"fmt"
	"strings"
	"time"

	"restaupilot/internal/models"

	"github.com/jinzhu/gorm"
)

// ListEquipment returns a restaurant's equipment.
func (s *Store) ListEquipment(restaurantID uint) ([]models.Equipment, error) {
	var out []models.Equipment
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return out, nil
}

// ListMaintenanceTasks returns tasks ordered by due date with Overdue filled in.
func (s *Store) ListMaintenanceTasks(restaurantID uint, now time.Time) ([]models.MaintenanceTask, error) {
	var out []models.MaintenanceTask
	if err := s.db.Where("restaurant_id = ?", restaurantID).Order("due_date").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list maintenance tasks: %w", err)
	}
	for i := range out {
		out[i].Overdue = out[i].IsOverdue(now)
	}
	return out, nil
}

// CreateMaintenanceTask schedules a task against existing equipment.
func (s *Store) CreateMaintenanceTask(task *models.MaintenanceTask) error {
	if strings.TrimSpace(task.Title) == "" {
		return fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	if task.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalid)
	}

	var eq models.Equipment
	if err := s.db.Where("restaurant_id = ?", task.RestaurantID).First(&eq, task.EquipmentID).Error; err != nil {
		return notFound(err, "equipment")
	}

	task.ID = 0
	task.CompletedAt = nil
	if task.Status == "" {
		task.Status = string(models.TaskStatusScheduled)
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}
	if err := s.db.Create(task).Error; err != nil {
		return fmt.Errorf("create maintenance task: %w", err)
	}
	return nil
}

// CompleteMaintenanceTask closes a task and stamps its equipment's last
// maintenance time.
func (s *Store) CompleteMaintenanceTask(restaurantID, id uint, cost float64, at time.Time) (*models.MaintenanceTask, error) {
	var task models.MaintenanceTask
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurantID).First(&task, id).Error; err != nil {
			return notFound(err, "maintenance task")
		}
		if task.Status == string(models.TaskStatusCompleted) {
			return fmt.Errorf("%w: task %d already completed", ErrConflict, id)
		}

		task.Status = string(models.TaskStatusCompleted)
		task.CompletedAt = &at
		if cost > 0 {
			task.Cost = cost
		}
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		return tx.Model(&models.Equipment{}).
			Where("id = ?", task.EquipmentID).
			Updates(map[string]interface{}{
				"last_maintenance": at,
				"status":           string(models.EquipmentStatusAvailable),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
