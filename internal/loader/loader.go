package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/source"
	"github.com/wonny/gdpdash/pkg/logger"
)

var (
	// ErrSourceUnavailable means the source could not be opened or read
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch means the source does not have the expected columns or cells
	ErrSchemaMismatch = errors.New("schema mismatch")
)

// Loader reads a wide table and normalizes it into a Dataset
// ⭐ SSOT: wide → long 변환은 이 로더에서만
type Loader struct {
	schema Schema
	logger *logger.Logger
}

// New creates a Loader for the given schema
func New(schema Schema, log *logger.Logger) *Loader {
	return &Loader{
		schema: schema,
		logger: log.Component("loader"),
	}
}

// Schema returns the loader's schema
func (l *Loader) Schema() Schema {
	return l.schema
}

// Load reads src and returns the complete Dataset, or an error and nothing
func (l *Loader) Load(ctx context.Context, src source.Source) (*contracts.Dataset, error) {
	start := time.Now()
	id := src.ID()

	l.logger.WithField("source", id).Debug("Loading dataset")

	table, err := src.Read(ctx)
	if err != nil {
		if errors.Is(err, source.ErrMalformed) {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchemaMismatch, id, err)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, id, err)
	}

	observations, entities, err := Melt(table, l.schema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}

	ds := &contracts.Dataset{
		Source:       id,
		Entities:     entities,
		Observations: observations,
		MinYear:      l.schema.MinYear,
		MaxYear:      l.schema.MaxYear,
		LoadedAt:     time.Now(),
	}

	l.logger.WithFields(map[string]interface{}{
		"source":       id,
		"rows":         len(entities),
		"observations": len(observations),
		"duration":     time.Since(start),
	}).Info("Dataset loaded")

	return ds, nil
}
