package quality

import (
	"sort"
	"time"

	"github.com/wonny/gdpdash/internal/contracts"
)

// Gate measures dataset coverage and checks it against a threshold
type Gate struct {
	config Config
	now    func() time.Time
}

// Config holds quality gate thresholds
type Config struct {
	MinCoverage float64 `yaml:"min_coverage"` // share of non-missing cells, 0.0 ~ 1.0
}

// NewGate creates a new Gate instance
func NewGate(config Config) *Gate {
	return &Gate{
		config: config,
		now:    time.Now,
	}
}

// Check computes the coverage report for a dataset
// ⭐ SSOT: 로드된 데이터셋의 결측 비율 검증
func (g *Gate) Check(ds *contracts.Dataset) *contracts.QualityReport {
	report := &contracts.QualityReport{
		Source:         ds.Source,
		CheckedAt:      g.now(),
		TotalEntities:  len(ds.Entities),
		Observations:   len(ds.Observations),
		CoverageByYear: make(map[int]float64),
		EmptyEntities:  make([]string, 0),
		MinCoverage:    g.config.MinCoverage,
	}

	// 1. 연도별 / 엔티티별 집계
	presentByYear := make(map[int]int)
	totalByYear := make(map[int]int)
	presentByEntity := make(map[string]int)

	for _, o := range ds.Observations {
		totalByYear[o.Year]++
		if o.Value.IsMissing() {
			report.MissingValues++
			continue
		}
		presentByYear[o.Year]++
		presentByEntity[o.EntityID]++
	}

	// 2. 커버리지
	report.Coverage = g.calculateCoverage(report.Observations, report.MissingValues)
	for year, total := range totalByYear {
		report.CoverageByYear[year] = float64(presentByYear[year]) / float64(total)
	}

	// 3. 데이터가 전혀 없는 엔티티
	for _, e := range ds.Entities {
		if presentByEntity[e.ID] == 0 {
			report.EmptyEntities = append(report.EmptyEntities, e.ID)
		}
	}
	sort.Strings(report.EmptyEntities)

	report.Passed = report.Observations > 0 && report.Coverage >= g.config.MinCoverage
	return report
}

// calculateCoverage returns the share of present values
func (g *Gate) calculateCoverage(total, missing int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(total-missing) / float64(total)
}
