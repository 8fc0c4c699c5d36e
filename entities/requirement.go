package entities

import "time"

// SectorRequirement is the annual nutrient demand of one sector planting (vintage).
type SectorRequirement struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Sector  string   `gorm:"index" json:"sector"`
	Vintage int      `gorm:"index" json:"vintage"` // planting year
	AreaHa  *float64 `json:"area_ha"`
	N       *float64 `json:"n"`  // kg/ha/year
	P       *float64 `json:"p"`  // kg/ha/year
	K       *float64 `json:"k"`  // kg/ha/year
	Mg      *float64 `json:"mg"` // kg/ha/year

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
