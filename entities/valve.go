package entities

// ValveCoverage is the area one irrigation valve serves for a vintage.
// A nil or non-positive AreaHa marks the valve inactive for that vintage.
type ValveCoverage struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Vintage int      `gorm:"index" json:"vintage"`
	Valve   string   `json:"valve"`
	AreaHa  *float64 `json:"area_ha"`
}
