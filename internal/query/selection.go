package query

import (
	"errors"
	"fmt"

	"github.com/wonny/gdpdash/internal/contracts"
)

// ErrInvalidSelection is returned when a selection falls outside the loaded dataset
var ErrInvalidSelection = errors.New("invalid selection")

// DefaultEntities is the dashboard's initial country selection
var DefaultEntities = []string{"DEU", "FRA", "GBR", "BRA", "MEX", "JPN", "KOR", "CHN", "USA"}

// Entities returns the distinct entity ids in first-seen order
func Entities(observations []contracts.Observation) []string {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, o := range observations {
		if _, ok := seen[o.EntityID]; ok {
			continue
		}
		seen[o.EntityID] = struct{}{}
		ids = append(ids, o.EntityID)
	}
	return ids
}

// YearBounds returns the smallest and largest year; ok is false for no observations
func YearBounds(observations []contracts.Observation) (first, last int, ok bool) {
	if len(observations) == 0 {
		return 0, 0, false
	}

	first, last = observations[0].Year, observations[0].Year
	for _, o := range observations[1:] {
		if o.Year < first {
			first = o.Year
		}
		if o.Year > last {
			last = o.Year
		}
	}
	return first, last, true
}

// DefaultParams selects the full year range and the preferred entities that exist.
// preferred nil means DefaultEntities.
func DefaultParams(observations []contracts.Observation, preferred []string) contracts.QueryParams {
	if preferred == nil {
		preferred = DefaultEntities
	}

	available := make(map[string]struct{})
	for _, id := range Entities(observations) {
		available[id] = struct{}{}
	}

	selected := make([]string, 0, len(preferred))
	for _, id := range preferred {
		if _, ok := available[id]; ok {
			selected = append(selected, id)
		}
	}

	from, to, _ := YearBounds(observations)
	return contracts.QueryParams{
		YearFrom:  from,
		YearTo:    to,
		EntityIDs: selected,
	}
}

// CheckSelection validates params against the dataset's year range and entities.
// A selection that passes never makes Summarize report a missing year row.
func CheckSelection(ds *contracts.Dataset, params contracts.QueryParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	if params.YearFrom < ds.MinYear || params.YearTo > ds.MaxYear {
		return fmt.Errorf("%w: years %d-%d outside %d-%d",
			ErrInvalidSelection, params.YearFrom, params.YearTo, ds.MinYear, ds.MaxYear)
	}

	known := make(map[string]struct{}, len(ds.Entities))
	for _, e := range ds.Entities {
		known[e.ID] = struct{}{}
	}
	for _, id := range params.EntityIDs {
		if _, ok := known[id]; !ok {
			return fmt.Errorf("%w: unknown country %q", ErrInvalidSelection, id)
		}
	}
	return nil
}
