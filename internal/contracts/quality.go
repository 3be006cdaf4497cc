package contracts

import "time"

// QualityReport describes how complete a loaded dataset is
// ⭐ SSOT: 데이터셋 품질 정보 전달
type QualityReport struct {
	Source         string          `json:"source"`
	CheckedAt      time.Time       `json:"checked_at"`
	TotalEntities  int             `json:"total_entities"`
	Observations   int             `json:"observations"`
	MissingValues  int             `json:"missing_values"`
	Coverage       float64         `json:"coverage"`         // 0.0 ~ 1.0, share of present values
	CoverageByYear map[int]float64 `json:"coverage_by_year"` // year → share of entities with a value
	EmptyEntities  []string        `json:"empty_entities"`   // entities without any value
	MinCoverage    float64         `json:"min_coverage"`
	Passed         bool            `json:"passed"`
}

// SparsestYear returns the year with the lowest coverage; ok is false when there are no years
func (r *QualityReport) SparsestYear() (year int, coverage float64, ok bool) {
	for y, c := range r.CoverageByYear {
		if !ok || c < coverage || (c == coverage && y < year) {
			year, coverage, ok = y, c, true
		}
	}
	return year, coverage, ok
}
