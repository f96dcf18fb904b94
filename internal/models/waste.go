package models

import "time"

// WasteLog records discarded food or supplies.
type WasteLog struct {
	Base
	RestaurantID uint      `gorm:"index" json:"restaurant_id"`
	Item         string    `json:"item"`
	Category     string    `json:"category"`
	QuantityKg   float64   `json:"quantity_kg"`
	Reason       string    `json:"reason"`
	Disposal     string    `json:"disposal"`
	Cost         float64   `json:"cost"`
	LoggedAt     time.Time `gorm:"index" json:"logged_at"`
	LoggedBy     string    `json:"logged_by"`
}

// DisposalMethod represents where waste ends up
type DisposalMethod string

const (
	DisposalLandfill DisposalMethod = "landfill"
	DisposalCompost  DisposalMethod = "compost"
	DisposalDonation DisposalMethod = "donation"
	DisposalRecycle  DisposalMethod = "recycle"
)

// ValidDisposal reports whether d is a known disposal method.
func ValidDisposal(d string) bool {
	switch DisposalMethod(d) {
	case DisposalLandfill, DisposalCompost, DisposalDonation, DisposalRecycle:
		return true
	}
	return false
}
