package loader

import (
	"errors"
	"fmt"
)

// Default layout of the World Bank GDP extract
const (
	DefaultIDColumn   = "Country Code"
	DefaultNameColumn = "Country Name"
	DefaultMinYear    = 1960
	DefaultMaxYear    = 2023
)

// Schema describes which columns of a wide table carry the entity and the years
type Schema struct {
	IDColumn   string
	NameColumn string // optional
	MinYear    int
	MaxYear    int
}

// DefaultSchema returns the layout of the packaged dataset
func DefaultSchema() Schema {
	return Schema{
		IDColumn:   DefaultIDColumn,
		NameColumn: DefaultNameColumn,
		MinYear:    DefaultMinYear,
		MaxYear:    DefaultMaxYear,
	}
}

// Years returns the number of year columns
func (s Schema) Years() int {
	return s.MaxYear - s.MinYear + 1
}

// Validate checks the schema itself, before any data is read
func (s Schema) Validate() error {
	if s.IDColumn == "" {
		return errors.New("id column is required")
	}
	if s.MinYear > s.MaxYear {
		return fmt.Errorf("min year %d is after max year %d", s.MinYear, s.MaxYear)
	}
	return nil
}
