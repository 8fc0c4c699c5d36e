package entities

const (
	CurveEarly = "early"
	CurveLate  = "late"
)

// DistributionRow is the share of each annual requirement applied in one period.
type DistributionRow struct {
	ID     uint     `gorm:"primaryKey" json:"id"`
	Curve  string   `gorm:"index" json:"curve"` // early|late
	Period string   `json:"period"`
	N      *float64 `json:"n"`
	P      *float64 `json:"p"`
	K      *float64 `json:"k"`
	Mg     *float64 `json:"mg"`
}
