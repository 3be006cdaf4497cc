package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/loader"
	"github.com/wonny/gdpdash/internal/quality"
	"github.com/wonny/gdpdash/internal/query"
	"github.com/wonny/gdpdash/pkg/logger"
)

// EmptySelectionWarning accompanies an empty result when no country is selected
const EmptySelectionWarning = "select at least one country"

// GDPHandler serves the dashboard queries over the loaded dataset
// ⭐ SSOT: GDP API 핸들러는 이 구조체에서만
type GDPHandler struct {
	provider contracts.DatasetProvider
	gate     *quality.Gate
	defaults []string // nil = query.DefaultEntities
	logger   *logger.Logger
}

// NewGDPHandler creates a new GDP handler
func NewGDPHandler(
	provider contracts.DatasetProvider,
	gate *quality.Gate,
	defaults []string,
	log *logger.Logger,
) *GDPHandler {
	return &GDPHandler{
		provider: provider,
		gate:     gate,
		defaults: defaults,
		logger:   log,
	}
}

// CountriesResponse lists the selectable entities
type CountriesResponse struct {
	Count     int                `json:"count"`
	Countries []contracts.Entity `json:"countries"`
	Defaults  []string           `json:"defaults"`
}

// YearsResponse describes the year range of the dataset
type YearsResponse struct {
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
	Count   int `json:"count"`
}

// SeriesResponse is the Filter result
type SeriesResponse struct {
	Params  contracts.QueryParams   `json:"params"`
	Points  []contracts.SeriesPoint `json:"points"`
	Warning string                  `json:"warning,omitempty"`
}

// SummaryResponse is the Summarize result
type SummaryResponse struct {
	Params    contracts.QueryParams `json:"params"`
	Summaries []contracts.Summary   `json:"summaries"`
	Warning   string                `json:"warning,omitempty"`
}

// ReloadResponse reports a completed reload
type ReloadResponse struct {
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	Entities     int       `json:"entities"`
	Observations int       `json:"observations"`
	LoadedAt     time.Time `json:"loaded_at"`
}

// GetCountries returns the entity ids and names
// GET /api/gdp/countries
func (h *GDPHandler) GetCountries(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	defaults := query.DefaultParams(ds.Observations, h.defaults).EntityIDs
	respondJSON(w, http.StatusOK, CountriesResponse{
		Count:     len(ds.Entities),
		Countries: ds.Entities,
		Defaults:  defaults,
	})
}

// GetYears returns the dataset's year range
// GET /api/gdp/years
func (h *GDPHandler) GetYears(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, YearsResponse{
		MinYear: ds.MinYear,
		MaxYear: ds.MaxYear,
		Count:   ds.YearCount(),
	})
}

// GetSeries returns the observations within the range for the selected countries
// GET /api/gdp/series?from=1960&to=2023&countries=USA,CHN
func (h *GDPHandler) GetSeries(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	params, err := h.parseParams(r, ds)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := SeriesResponse{
		Params: params,
		Points: query.Filter(ds.Observations, params),
	}
	if !params.HasSelection() {
		resp.Warning = EmptySelectionWarning
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetSummary returns start value, end value and growth ratio per selected country
// GET /api/gdp/summary?from=1960&to=2023&countries=USA,CHN
func (h *GDPHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	params, err := h.parseParams(r, ds)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := query.Summarize(ds.Observations, params)
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := SummaryResponse{
		Params:    params,
		Summaries: summaries,
	}
	if !params.HasSelection() {
		resp.Warning = EmptySelectionWarning
	}

	respondJSON(w, http.StatusOK, resp)
}

// GetQuality returns the coverage report of the loaded dataset
// GET /api/gdp/quality
func (h *GDPHandler) GetQuality(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.dataset(w, r)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, h.gate.Check(ds))
}

// Reload drops the cached dataset and loads it again
// POST /api/gdp/reload
func (h *GDPHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ds, err := h.provider.Reload(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to reload dataset")
		respondError(w, statusForLoadError(err), "Failed to reload dataset")
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"source":       ds.Source,
		"observations": len(ds.Observations),
	}).Info("Dataset reloaded")

	respondJSON(w, http.StatusOK, ReloadResponse{
		Status:       "success",
		Source:       ds.Source,
		Entities:     len(ds.Entities),
		Observations: len(ds.Observations),
		LoadedAt:     ds.LoadedAt,
	})
}

// dataset fetches the current dataset, writing the error response on failure
func (h *GDPHandler) dataset(w http.ResponseWriter, r *http.Request) (*contracts.Dataset, bool) {
	ds, err := h.provider.Dataset(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load dataset")
		respondError(w, statusForLoadError(err), "Failed to load dataset")
		return nil, false
	}
	return ds, true
}

// parseParams reads from, to and countries; absent values fall back to the default selection
// countries present but empty selects nothing; years and ids must exist in ds
func (h *GDPHandler) parseParams(r *http.Request, ds *contracts.Dataset) (contracts.QueryParams, error) {
	params := query.DefaultParams(ds.Observations, h.defaults)
	q := r.URL.Query()

	if v := q.Get("from"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("invalid 'from' year: %q", v)
		}
		params.YearFrom = year
	}

	if v := q.Get("to"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("invalid 'to' year: %q", v)
		}
		params.YearTo = year
	}

	if _, ok := q["countries"]; ok {
		params.EntityIDs = splitList(q.Get("countries"))
	}

	if err := query.CheckSelection(ds, params); err != nil {
		return params, err
	}
	return params, nil
}

// splitList splits a comma separated list, dropping blanks and repeats
func splitList(s string) []string {
	ids := make([]string, 0)
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		id := strings.TrimSpace(part)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// statusForLoadError maps an unreachable source to 503, anything else (schema mismatch) to 500
func statusForLoadError(err error) int {
	if errors.Is(err, loader.ErrSourceUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
