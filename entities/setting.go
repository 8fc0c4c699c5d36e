package entities

const (
	SettingPlanStartDate = "plan_start_date"
	SettingEarlyVintages = "early_vintages"
)

// NutrientLimit caps the pure nutrient (kg/ha) delivered by a single application.
type NutrientLimit struct {
	Nutrient  string  `gorm:"primaryKey" json:"nutrient"`
	LimitKgHa float64 `json:"limit_kg_ha"`
}

type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `json:"value"`
}
