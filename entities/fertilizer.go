package entities

import "time"

// FertilizerProduct is one catalog entry. Concentrations are mass fractions of the
// oxide (or elemental) form; Density is kg/L and Price is per kg of product.
type FertilizerProduct struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	Name    string   `gorm:"uniqueIndex" json:"name"`
	N       *float64 `json:"n"`
	P2O5    *float64 `gorm:"column:p2o5" json:"p2o5"`
	K2O     *float64 `gorm:"column:k2o" json:"k2o"`
	S       *float64 `json:"s"`
	MgO     *float64 `gorm:"column:mgo" json:"mgo"`
	Density *float64 `json:"density"`
	Price   *float64 `json:"price"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
