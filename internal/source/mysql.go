package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// MySQLTable reads a wide table from MySQL through sqlx
type MySQLTable struct {
	db    *sqlx.DB
	table string
}

// NewMySQLTable creates a table source; table may be schema-qualified ("gdp.gdp_wide")
func NewMySQLTable(db *sqlx.DB, table string) *MySQLTable {
	return &MySQLTable{db: db, table: table}
}

// ID returns "mysql:<table>"
func (s *MySQLTable) ID() string {
	return "mysql:" + s.table
}

// Read runs SELECT * on the table and stringifies every cell
func (s *MySQLTable) Read(ctx context.Context) (*Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", quoteMySQLIdent(s.table))

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns %s: %w", s.table, err)
	}
	table := &Table{Header: make([]string, len(columns))}
	for i, c := range columns {
		table.Header[i] = strings.TrimSpace(c)
	}

	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}

		row := make([]string, len(values))
		for i, v := range values {
			// text protocol: DECIMAL/DOUBLE arrive as []byte
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			row[i] = formatCell(v)
		}
		table.Rows = append(table.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}

	return table, nil
}

// quoteMySQLIdent backtick-quotes each dot separated part
func quoteMySQLIdent(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
	}
	return strings.Join(parts, ".")
}
