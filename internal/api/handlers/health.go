package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/pkg/database"
)

// HealthChecker reports database health
type HealthChecker interface {
	HealthCheck(ctx context.Context) (*database.HealthStatus, error)
}

// HealthHandler serves GET /health
type HealthHandler struct {
	service  string
	provider contracts.DatasetProvider
	db       HealthChecker // nil when no database is configured
}

// NewHealthHandler creates a health handler; db may be nil
func NewHealthHandler(service string, provider contracts.DatasetProvider, db HealthChecker) *HealthHandler {
	return &HealthHandler{service: service, provider: provider, db: db}
}

// HealthResponse is the /health payload
type HealthResponse struct {
	Status   string                 `json:"status"`
	Service  string                 `json:"service"`
	Dataset  *DatasetHealth         `json:"dataset,omitempty"`
	Database *database.HealthStatus `json:"database,omitempty"`
}

// DatasetHealth summarizes the served dataset
type DatasetHealth struct {
	Source   string    `json:"source"`
	Entities int       `json:"entities"`
	LoadedAt time.Time `json:"loaded_at"`
	Error    string    `json:"error,omitempty"`
}

// ServeHTTP returns 200 when the dataset (and database, if any) are reachable, 503 otherwise
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{Status: "ok", Service: h.service}

	if h.provider != nil {
		ds, err := h.provider.Dataset(ctx)
		if err != nil {
			resp.Status = "degraded"
			resp.Dataset = &DatasetHealth{Error: err.Error()}
		} else {
			resp.Dataset = &DatasetHealth{
				Source:   ds.Source,
				Entities: len(ds.Entities),
				LoadedAt: ds.LoadedAt,
			}
		}
	}

	if h.db != nil {
		status, err := h.db.HealthCheck(ctx)
		resp.Database = status
		if err != nil {
			resp.Status = "degraded"
		}
	}

	code := http.StatusOK
	if resp.Status != "ok" {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, resp)
}
