package source

import (
	"context"
	"errors"
)

// ErrMalformed marks a source that was readable but not well-formed tabular data
var ErrMalformed = errors.New("malformed tabular data")

// Table is raw tabular data: a header row and string cells
// Empty cells mean "no data".
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header, or -1
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Source is a readable tabular input
// ⭐ SSOT: 데이터셋 입력 경계는 이 인터페이스로만 정의
type Source interface {
	// ID identifies the source for caching; equal IDs mean equal content
	ID() string

	// Read returns the full table
	Read(ctx context.Context) (*Table, error)
}
