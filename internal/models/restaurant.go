package models

// Restaurant is one location in a chain.
type Restaurant struct {
	Base
	Name     string `json:"name"`
	Location string `json:"location"`
	Timezone string `json:"timezone"`
}
