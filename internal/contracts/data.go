package contracts

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Value is a numeric observation that may be missing.
// Missing is distinct from zero.
type Value struct {
	Float float64
	Valid bool
}

// Some returns a present value
func Some(v float64) Value {
	return Value{Float: v, Valid: true}
}

// Missing returns the "no data" marker
func Missing() Value {
	return Value{}
}

// IsMissing reports whether the value is absent
func (v Value) IsMissing() bool {
	return !v.Valid
}

// MarshalJSON encodes a missing value as null
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(v.Float, 'g', -1, 64)), nil
}

// UnmarshalJSON decodes null as missing
func (v *Value) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Missing()
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}

// WideRecord is one source row: an entity with one value per year
type WideRecord struct {
	EntityID   string
	EntityName string
	Values     map[int]Value
}

// Observation is one (entity, year) cell of the normalized table
// ⭐ SSOT: Loader → Query Engine 데이터 계약
type Observation struct {
	EntityID string `json:"entity_id"`
	Year     int    `json:"year"`
	Value    Value  `json:"value"`
}

// SeriesPoint is an Observation selected by a query, used as-is for charting
type SeriesPoint struct {
	EntityID string `json:"entity_id"`
	Year     int    `json:"year"`
	Value    Value  `json:"value"`
}

// Summary holds the range endpoints and growth ratio of one entity
type Summary struct {
	EntityID     string `json:"entity_id"`
	ValueAtStart Value  `json:"value_at_start"`
	ValueAtEnd   Value  `json:"value_at_end"`
	Ratio        Value  `json:"ratio"`
}

// Entity identifies a row-level subject (a country)
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Dataset is the immutable result of one load
type Dataset struct {
	Source       string        `json:"source"`
	Entities     []Entity      `json:"entities"` // source row order
	Observations []Observation `json:"-"`
	MinYear      int           `json:"min_year"`
	MaxYear      int           `json:"max_year"`
	LoadedAt     time.Time     `json:"loaded_at"`
}

// YearCount returns the number of year columns in the dataset
func (d *Dataset) YearCount() int {
	if d.MaxYear < d.MinYear {
		return 0
	}
	return d.MaxYear - d.MinYear + 1
}

// EntityIDs returns entity ids in source order
func (d *Dataset) EntityIDs() []string {
	ids := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		ids[i] = e.ID
	}
	return ids
}

// HasEntity reports whether id is present in the dataset
func (d *Dataset) HasEntity(id string) bool {
	for _, e := range d.Entities {
		if e.ID == id {
			return true
		}
	}
	return false
}
