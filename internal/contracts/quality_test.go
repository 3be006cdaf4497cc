package contracts

import "testing"

func TestQualityReport_SparsestYear(t *testing.T) {
	tests := []struct {
		name     string
		coverage map[int]float64
		wantYear int
		wantOK   bool
	}{
		{
			name:     "single minimum",
			coverage: map[int]float64{1960: 0.4, 1961: 0.9, 2023: 0.7},
			wantYear: 1960,
			wantOK:   true,
		},
		{
			name:     "tie picks the earliest year",
			coverage: map[int]float64{1990: 0.5, 1970: 0.5, 2000: 1.0},
			wantYear: 1970,
			wantOK:   true,
		},
		{
			name:     "no years",
			coverage: map[int]float64{},
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := QualityReport{CoverageByYear: tt.coverage}
			year, _, ok := r.SparsestYear()
			if ok != tt.wantOK {
				t.Fatalf("SparsestYear() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && year != tt.wantYear {
				t.Errorf("SparsestYear() year = %d, want %d", year, tt.wantYear)
			}
		})
	}
}
