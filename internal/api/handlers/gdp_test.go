package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gdpdash/internal/contracts"
	"github.com/wonny/gdpdash/internal/loader"
	"github.com/wonny/gdpdash/internal/quality"
	"github.com/wonny/gdpdash/pkg/database"
	"github.com/wonny/gdpdash/pkg/logger"
)

type stubProvider struct {
	dataset *contracts.Dataset
	err     error
	reloads int
}

func (p *stubProvider) Dataset(ctx context.Context) (*contracts.Dataset, error) {
	return p.dataset, p.err
}

func (p *stubProvider) Reload(ctx context.Context) (*contracts.Dataset, error) {
	p.reloads++
	return p.dataset, p.err
}

func testDataset() *contracts.Dataset {
	return &contracts.Dataset{
		Source:   "stream:test",
		Entities: []contracts.Entity{{ID: "USA", Name: "United States"}, {ID: "XYZ", Name: "Nowhere"}},
		Observations: []contracts.Observation{
			{EntityID: "USA", Year: 1960, Value: contracts.Some(5)},
			{EntityID: "USA", Year: 1961, Value: contracts.Some(10)},
			{EntityID: "XYZ", Year: 1960, Value: contracts.Missing()},
			{EntityID: "XYZ", Year: 1961, Value: contracts.Some(8)},
		},
		MinYear:  1960,
		MaxYear:  1961,
		LoadedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func newTestHandler(p *stubProvider) *GDPHandler {
	return NewGDPHandler(p, quality.NewGate(quality.Config{MinCoverage: 0.5}), nil, logger.Nop())
}

func get(t *testing.T, h http.HandlerFunc, target string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestGetSeries(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSeries, "/api/gdp/series?from=1960&to=1961&countries=USA")
	require.Equal(t, http.StatusOK, rec.Code)

	points := body["points"].([]interface{})
	require.Len(t, points, 2)
	assert.Equal(t, map[string]interface{}{"entity_id": "USA", "year": 1960.0, "value": 5.0}, points[0])
	assert.Equal(t, map[string]interface{}{"entity_id": "USA", "year": 1961.0, "value": 10.0}, points[1])
	assert.NotContains(t, body, "warning")
}

func TestGetSeries_MissingIsNull(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSeries, "/api/gdp/series?from=1960&to=1960&countries=XYZ")
	require.Equal(t, http.StatusOK, rec.Code)

	points := body["points"].([]interface{})
	require.Len(t, points, 1)
	value, present := points[0].(map[string]interface{})["value"]
	assert.True(t, present)
	assert.Nil(t, value)
}

func TestGetSeries_EmptySelection(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSeries, "/api/gdp/series?countries=")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []interface{}{}, body["points"])
	assert.Equal(t, EmptySelectionWarning, body["warning"])
}

func TestGetSeries_Defaults(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSeries, "/api/gdp/series")
	require.Equal(t, http.StatusOK, rec.Code)

	// only USA of the default entities exists
	params := body["params"].(map[string]interface{})
	assert.Equal(t, []interface{}{"USA"}, params["entity_ids"])
	assert.Equal(t, 1960.0, params["year_from"])
	assert.Equal(t, 1961.0, params["year_to"])
	assert.Len(t, body["points"], 2)
}

func TestGetSeries_BadParams(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	for _, target := range []string{
		"/api/gdp/series?from=abc",
		"/api/gdp/series?to=19x1",
		"/api/gdp/series?from=1961&to=1960",
	} {
		rec, body := get(t, h.GetSeries, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEmpty(t, body["error"], target)
	}
}

func TestGetSummary(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSummary, "/api/gdp/summary?from=1960&to=1961&countries=USA,XYZ")
	require.Equal(t, http.StatusOK, rec.Code)

	summaries := body["summaries"].([]interface{})
	require.Len(t, summaries, 2)

	usa := summaries[0].(map[string]interface{})
	assert.Equal(t, "USA", usa["entity_id"])
	assert.Equal(t, 2.0, usa["ratio"])

	xyz := summaries[1].(map[string]interface{})
	assert.Equal(t, "XYZ", xyz["entity_id"])
	assert.Nil(t, xyz["value_at_start"])
	assert.Nil(t, xyz["ratio"])
}

func TestGetSummary_SelectionOutsideDataset(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	tests := []struct {
		target string
		want   string
	}{
		{"/api/gdp/summary?from=1959&to=1961&countries=USA", "1959"},
		{"/api/gdp/summary?from=1960&to=1962&countries=USA", "1962"},
		{"/api/gdp/summary?from=1960&to=1961&countries=ATL", "ATL"},
	}

	for _, tt := range tests {
		rec, body := get(t, h.GetSummary, tt.target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.target)
		assert.Contains(t, body["error"], tt.want, tt.target)
	}

	rec, _ := get(t, h.GetSeries, "/api/gdp/series?from=1960&to=1961&countries=ATL")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummary_EmptySelection(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetSummary, "/api/gdp/summary?countries=,,")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []interface{}{}, body["summaries"])
	assert.Equal(t, EmptySelectionWarning, body["warning"])
}

func TestGetCountriesAndYears(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetCountries, "/api/gdp/countries")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.0, body["count"])
	assert.Equal(t, []interface{}{"USA"}, body["defaults"])

	rec, body = get(t, h.GetYears, "/api/gdp/years")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"min_year": 1960.0, "max_year": 1961.0, "count": 2.0}, body)
}

func TestGetQuality(t *testing.T) {
	h := newTestHandler(&stubProvider{dataset: testDataset()})

	rec, body := get(t, h.GetQuality, "/api/gdp/quality")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0.75, body["coverage"])
	assert.Equal(t, true, body["passed"])
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"source unavailable", fmt.Errorf("%w: data.csv: no such file", loader.ErrSourceUnavailable), http.StatusServiceUnavailable},
		{"schema mismatch", fmt.Errorf("%w: missing column", loader.ErrSchemaMismatch), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&stubProvider{err: tt.err})
			rec, _ := get(t, h.GetSeries, "/api/gdp/series")
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestReload(t *testing.T) {
	p := &stubProvider{dataset: testDataset()}
	h := newTestHandler(p)

	req := httptest.NewRequest(http.MethodPost, "/api/gdp/reload", nil)
	rec := httptest.NewRecorder()
	h.Reload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, p.reloads)

	var resp ReloadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 4, resp.Observations)
}

type stubDB struct{ err error }

func (d stubDB) HealthCheck(ctx context.Context) (*database.HealthStatus, error) {
	return &database.HealthStatus{Healthy: d.err == nil}, d.err
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		provider *stubProvider
		db       HealthChecker
		want     int
		status   string
	}{
		{"ok", &stubProvider{dataset: testDataset()}, nil, http.StatusOK, "ok"},
		{"ok with database", &stubProvider{dataset: testDataset()}, stubDB{}, http.StatusOK, "ok"},
		{"dataset failing", &stubProvider{err: loader.ErrSourceUnavailable}, nil, http.StatusServiceUnavailable, "degraded"},
		{"database failing", &stubProvider{dataset: testDataset()}, stubDB{err: fmt.Errorf("refused")}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler("gdpdash", tt.provider, tt.db)
			rec, body := get(t, h.ServeHTTP, "/health")
			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.status, body["status"])
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"USA", "CHN"}, splitList(" USA, CHN ,USA,,"))
	assert.Equal(t, []string{}, splitList(""))
}
