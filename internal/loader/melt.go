package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/source"
)

// Melt reshapes a wide table into one Observation per (entity, year)
// Output is entity-major, year-ascending. Any schema problem fails the whole table.
func Melt(table *source.Table, schema Schema) ([]contracts.Observation, []contracts.Entity, error) {
	records, err := WideRecords(table, schema)
	if err != nil {
		return nil, nil, err
	}

	years := schema.Years()
	observations := make([]contracts.Observation, 0, len(records)*years)
	entities := make([]contracts.Entity, 0, len(records))

	for _, rec := range records {
		entities = append(entities, contracts.Entity{ID: rec.EntityID, Name: rec.EntityName})
		for year := schema.MinYear; year <= schema.MaxYear; year++ {
			observations = append(observations, contracts.Observation{
				EntityID: rec.EntityID,
				Year:     year,
				Value:    rec.Values[year],
			})
		}
	}

	return observations, entities, nil
}

// WideRecords validates the table against the schema and decodes its rows
func WideRecords(table *source.Table, schema Schema) ([]contracts.WideRecord, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	idCol := table.Column(schema.IDColumn)
	if idCol < 0 {
		return nil, fmt.Errorf("%w: identifier column %q not found", ErrSchemaMismatch, schema.IDColumn)
	}

	nameCol := -1
	if schema.NameColumn != "" {
		nameCol = table.Column(schema.NameColumn)
	}

	yearCols, err := yearColumns(table.Header, schema)
	if err != nil {
		return nil, err
	}

	records := make([]contracts.WideRecord, 0, len(table.Rows))
	seen := make(map[string]int, len(table.Rows))

	for i, row := range table.Rows {
		line := i + 2 // 1-based, after the header

		if len(row) != len(table.Header) {
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d",
				ErrSchemaMismatch, line, len(row), len(table.Header))
		}

		id := strings.TrimSpace(row[idCol])
		if id == "" {
			return nil, fmt.Errorf("%w: row %d: empty %q", ErrSchemaMismatch, line, schema.IDColumn)
		}
		if first, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: row %d: entity %q already defined on row %d",
				ErrSchemaMismatch, line, id, first)
		}
		seen[id] = line

		rec := contracts.WideRecord{
			EntityID: id,
			Values:   make(map[int]contracts.Value, len(yearCols)),
		}
		if nameCol >= 0 {
			rec.EntityName = strings.TrimSpace(row[nameCol])
		}

		for year, col := range yearCols {
			v, err := ParseCell(row[col])
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %d: %v", ErrSchemaMismatch, line, year, err)
			}
			rec.Values[year] = v
		}

		records = append(records, rec)
	}

	return records, nil
}

// yearColumns maps every year of the schema range to its header index
func yearColumns(header []string, schema Schema) (map[int]int, error) {
	byYear := make(map[int]int, schema.Years())

	for i, h := range header {
		year, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			continue // not a year label
		}
		if year < schema.MinYear || year > schema.MaxYear {
			continue
		}
		if _, dup := byYear[year]; dup {
			return nil, fmt.Errorf("%w: year column %d appears more than once", ErrSchemaMismatch, year)
		}
		byYear[year] = i
	}

	for year := schema.MinYear; year <= schema.MaxYear; year++ {
		if _, ok := byYear[year]; !ok {
			return nil, fmt.Errorf("%w: year column %d not found", ErrSchemaMismatch, year)
		}
	}

	return byYear, nil
}

// ParseCell decodes one numeric cell; empty and NaN are missing
func ParseCell(cell string) (contracts.Value, error) {
	s := strings.TrimSpace(cell)
	if s == "" || strings.EqualFold(s, "nan") {
		return contracts.Missing(), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return contracts.Missing(), fmt.Errorf("invalid number %q", s)
	}
	return contracts.Some(f), nil
}
