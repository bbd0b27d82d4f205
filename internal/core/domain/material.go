package domain

import "time"

// DefaultUnit is applied when a material is created without a unit label.
const DefaultUnit = "cubic metre"

// Material is a catalog entry for a construction material. ImageURL, when
// non-empty, is the relative URL of exactly one stored upload; replacing or
// deleting the record must remove the previously stored file.
type Material struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	RatePerCuMetre float64   `json:"ratePerCuMetre"`
	Unit           string    `json:"unit"`
	Stock          float64   `json:"stock"`
	ImageURL       string    `json:"imageUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
