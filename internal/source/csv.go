package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// CSVFile reads a UTF-8 CSV file from disk
type CSVFile struct {
	Path string
}

// NewCSVFile creates a file source
func NewCSVFile(path string) *CSVFile {
	return &CSVFile{Path: path}
}

// ID returns the cleaned absolute path
func (s *CSVFile) ID() string {
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return filepath.Clean(s.Path)
	}
	return abs
}

// Read opens and parses the file
func (s *CSVFile) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer f.Close()

	return readCSV(f)
}

// CSVStream reads CSV from an arbitrary reader, once
type CSVStream struct {
	Name   string
	Reader io.Reader
}

// NewCSVStream creates a stream source; name must be unique per content
func NewCSVStream(name string, r io.Reader) *CSVStream {
	return &CSVStream{Name: name, Reader: r}
}

// ID returns "stream:<name>"
func (s *CSVStream) ID() string {
	return "stream:" + s.Name
}

// Read parses the stream
func (s *CSVStream) Read(ctx context.Context) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readCSV(s.Reader)
}

// readCSV parses a header row and data rows; every row must match the header width
func readCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty input, no header row", ErrMalformed)
	}
	if err != nil {
		return nil, wrapCSVError("read header", err)
	}

	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	table := &Table{Header: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError("read row", err)
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// wrapCSVError separates format problems from I/O problems
func wrapCSVError(op string, err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Errorf("%w: %s: %v", ErrMalformed, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
