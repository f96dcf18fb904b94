package database

import (
	"fmt"

	"restaupilot/internal/models"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// CreateBill stores a bill split and its participants under a new UUID.
func (s *Store) CreateBill(bill *models.SharedBill) error {
	bill.ID = uuid.NewString()
	for i := range bill.Participants {
		bill.Participants[i].ID = 0
		bill.Participants[i].BillID = bill.ID
	}
	if err := s.db.Create(bill).Error; err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

// GetBill loads a bill with its participants.
func (s *Store) GetBill(restaurantID uint, id string) (*models.SharedBill, error) {
	var bill models.SharedBill
	err := s.db.Preload("Participants", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("restaurant_id = ? AND id = ?", restaurantID, id).First(&bill).Error
	if err != nil {
		return nil, notFound(err, "bill")
	}
	return &bill, nil
}

// ListBills returns a restaurant's bills, newest first.
func (s *Store) ListBills(restaurantID uint) ([]models.SharedBill, error) {
	var out []models.SharedBill
	err := s.db.Preload("Participants").Where("restaurant_id = ?", restaurantID).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return out, nil
}

// MarkParticipantPaid records that a participant settled their share.
func (s *Store) MarkParticipantPaid(restaurantID uint, billID string, participantID uint) (*models.SharedBill, error) {
	if _, err := s.GetBill(restaurantID, billID); err != nil {
		return nil, err
	}
	res := s.db.Model(&models.BillParticipant{}).
		Where("bill_id = ? AND id = ?", billID, participantID).
		Update("paid", true)
	if res.Error != nil {
		return nil, fmt.Errorf("mark paid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("participant: %w", ErrNotFound)
	}
	return s.GetBill(restaurantID, billID)
}
