package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the subset of *pgxpool.Pool the table source needs
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresTable reads a wide table (one column per year) from PostgreSQL
type PostgresTable struct {
	db    Querier
	table string
}

// NewPostgresTable creates a table source; table may be schema-qualified ("public.gdp_wide")
func NewPostgresTable(db Querier, table string) *PostgresTable {
	return &PostgresTable{db: db, table: table}
}

// ID returns "postgres:<table>"
func (s *PostgresTable) ID() string {
	return "postgres:" + s.table
}

// Read runs SELECT * on the table and stringifies every cell
func (s *PostgresTable) Read(ctx context.Context) (*Table, error) {
	ident := pgx.Identifier(strings.Split(s.table, "."))
	query := fmt.Sprintf("SELECT * FROM %s", ident.Sanitize())

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	table := &Table{Header: make([]string, len(fields))}
	for i, fd := range fields {
		table.Header[i] = strings.TrimSpace(fd.Name)
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatCell(v)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}

	return table, nil
}

// formatCell renders a decoded column value; NULL becomes an empty cell
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case pgtype.Numeric:
		if !x.Valid {
			return ""
		}
		f, err := x.Float64Value()
		if err != nil || !f.Valid {
			return ""
		}
		return strconv.FormatFloat(f.Float64, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
