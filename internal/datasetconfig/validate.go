package datasetconfig

import (
	"fmt"
	"time"
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Dataset ===
	d := cfg.Dataset
	if d.ID == "" {
		return ValidationError{"dataset.id", "required"}
	}
	switch d.Source {
	case "", "csv", "postgres", "mysql":
	default:
		return ValidationError{"dataset.source", "must be one of: csv, postgres, mysql"}
	}
	if (d.Source == "postgres" || d.Source == "mysql") && d.Table == "" {
		return ValidationError{"dataset.table", "required when source is " + d.Source}
	}
	if d.MinYear < 0 || d.MaxYear < 0 {
		return ValidationError{"dataset", "years must not be negative"}
	}
	if d.MinYear != 0 && d.MaxYear != 0 && d.MinYear > d.MaxYear {
		return ValidationError{"dataset", fmt.Sprintf("min_year=%d must be <= max_year=%d", d.MinYear, d.MaxYear)}
	}
	if d.CacheTTL != "" {
		ttl, err := time.ParseDuration(d.CacheTTL)
		if err != nil {
			return ValidationError{"dataset.cache_ttl", err.Error()}
		}
		if ttl < 0 {
			return ValidationError{"dataset.cache_ttl", "must not be negative"}
		}
	}

	// === Defaults ===
	seen := make(map[string]bool, len(cfg.Defaults.Entities))
	for i, id := range cfg.Defaults.Entities {
		if id == "" {
			return ValidationError{fmt.Sprintf("defaults.entities[%d]", i), "must not be empty"}
		}
		if seen[id] {
			return ValidationError{fmt.Sprintf("defaults.entities[%d]", i), fmt.Sprintf("duplicate %q", id)}
		}
		seen[id] = true
	}

	// === Quality ===
	if mc := cfg.Quality.MinCoverage; mc != nil && (*mc < 0 || *mc > 1) {
		return ValidationError{"quality.min_coverage", "must be in [0, 1]"}
	}

	return nil
}
