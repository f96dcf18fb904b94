package models

// Extension is an entry in the integrations marketplace catalog.
type Extension struct {
	Base
	Slug        string      `gorm:"unique_index" json:"slug"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Vendor      string      `json:"vendor"`
	MonthlyFee  float64     `json:"monthly_fee"`
	Tags        StringSlice `gorm:"type:text" json:"tags"`
}

// Integration is an extension installed for one restaurant.
type Integration struct {
	Base
	RestaurantID uint      `gorm:"unique_index:idx_restaurant_extension" json:"restaurant_id"`
	ExtensionID  uint      `gorm:"unique_index:idx_restaurant_extension" json:"extension_id"`
	Status       string    `json:"status"`
	Config       StringMap `gorm:"type:text" json:"config"`
	Extension    Extension `gorm:"foreignkey:ExtensionID" json:"extension"`
}

// IntegrationStatus represents the state of an installed integration
type IntegrationStatus string

const (
	IntegrationActive IntegrationStatus = "active"
	IntegrationPaused IntegrationStatus = "paused"
)
