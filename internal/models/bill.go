package models

import "time"

// SharedBill is a stored bill split.
type SharedBill struct {
	ID              string            `gorm:"primary_key" json:"id"`
	RestaurantID    uint              `gorm:"index" json:"restaurant_id"`
	Title           string            `json:"title"`
	Total           float64           `json:"total"`
	Policy          string            `json:"policy"`
	PayerName       string            `json:"payer_name"`
	PayerShare      float64           `json:"payer_share"`
	PayerPercentage float64           `json:"payer_percentage"`
	Overallocated   bool              `json:"overallocated"`
	Excess          float64           `json:"excess"`
	Participants    []BillParticipant `gorm:"foreignkey:BillID" json:"participants"`
	CreatedAt       time.Time         `json:"created_at"`
}

// BillParticipant is one person owing part of a shared bill.
type BillParticipant struct {
	ID         uint    `gorm:"primary_key" json:"id"`
	BillID     string  `gorm:"index" json:"bill_id"`
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Amount     float64 `json:"amount"`
	Paid       bool    `json:"paid"`
}
