package query

import (
	"errors"
	"fmt"

	"github.com/wonny/gdpdash/internal/contracts"
)

// ErrMissingYearRow means no Observation exists for an (entity, year) pair.
// The loader guarantees completeness, so this signals an internal inconsistency.
var ErrMissingYearRow = errors.New("missing year row")

// Filter returns the observations whose entity is selected and whose year is in range.
// An empty selection yields an empty result. Missing values pass through.
func Filter(observations []contracts.Observation, params contracts.QueryParams) []contracts.SeriesPoint {
	points := make([]contracts.SeriesPoint, 0)
	if !params.HasSelection() {
		return points
	}

	selected := params.EntitySet()
	for _, o := range observations {
		if !params.Contains(o.Year) {
			continue
		}
		if _, ok := selected[o.EntityID]; !ok {
			continue
		}
		points = append(points, contracts.SeriesPoint{
			EntityID: o.EntityID,
			Year:     o.Year,
			Value:    o.Value,
		})
	}

	return points
}

// Summarize returns one Summary per selected entity, in selection order
func Summarize(observations []contracts.Observation, params contracts.QueryParams) ([]contracts.Summary, error) {
	return NewIndex(observations).Summarize(params)
}

// Ratio is end/start, missing when either side is missing or start is zero
func Ratio(start, end contracts.Value) contracts.Value {
	if start.IsMissing() || end.IsMissing() || start.Float == 0 {
		return contracts.Missing()
	}
	return contracts.Some(end.Float / start.Float)
}

type cellKey struct {
	entity string
	year   int
}

// Index is an (entity, year) lookup over an immutable observation set
type Index struct {
	cells map[cellKey]contracts.Value
}

// NewIndex builds an index; the last observation wins on duplicates
func NewIndex(observations []contracts.Observation) *Index {
	cells := make(map[cellKey]contracts.Value, len(observations))
	for _, o := range observations {
		cells[cellKey{entity: o.EntityID, year: o.Year}] = o.Value
	}
	return &Index{cells: cells}
}

// Lookup returns the value for (entity, year) and whether the row exists
func (idx *Index) Lookup(entity string, year int) (contracts.Value, bool) {
	v, ok := idx.cells[cellKey{entity: entity, year: year}]
	return v, ok
}

// Summarize computes endpoint values and growth ratio for each selected entity
func (idx *Index) Summarize(params contracts.QueryParams) ([]contracts.Summary, error) {
	summaries := make([]contracts.Summary, 0, len(params.EntityIDs))

	for _, id := range params.EntityIDs {
		start, ok := idx.Lookup(id, params.YearFrom)
		if !ok {
			return nil, fmt.Errorf("%w: entity %q, year %d", ErrMissingYearRow, id, params.YearFrom)
		}
		end, ok := idx.Lookup(id, params.YearTo)
		if !ok {
			return nil, fmt.Errorf("%w: entity %q, year %d", ErrMissingYearRow, id, params.YearTo)
		}

		summaries = append(summaries, contracts.Summary{
			EntityID:     id,
			ValueAtStart: start,
			ValueAtEnd:   end,
			Ratio:        Ratio(start, end),
		})
	}

	return summaries, nil
}
