package contracts

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when YearFrom is after YearTo
var ErrInvalidRange = errors.New("invalid year range")

// QueryParams selects a year range and a set of entities
// EntityIDs is ordered: Summarize reports in this order, Filter treats it as a set.
type QueryParams struct {
	YearFrom  int      `json:"year_from"`
	YearTo    int      `json:"year_to"`
	EntityIDs []string `json:"entity_ids"`
}

// Validate checks the year range
func (p QueryParams) Validate() error {
	if p.YearFrom > p.YearTo {
		return fmt.Errorf("%w: from %d is after to %d", ErrInvalidRange, p.YearFrom, p.YearTo)
	}
	return nil
}

// HasSelection reports whether at least one entity is selected
func (p QueryParams) HasSelection() bool {
	return len(p.EntityIDs) > 0
}

// EntitySet returns the selected ids as a lookup set
func (p QueryParams) EntitySet() map[string]struct{} {
	set := make(map[string]struct{}, len(p.EntityIDs))
	for _, id := range p.EntityIDs {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether year lies in the closed range
func (p QueryParams) Contains(year int) bool {
	return p.YearFrom <= year && year <= p.YearTo
}
