package handler

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditservice "fairlens/internal/audit/service"
	"fairlens/internal/audit/vocabulary"
	"fairlens/internal/platform/metrics"
	"fairlens/internal/review/store"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.New()

func newRouter(t *testing.T) (http.Handler, *store.InMemory) {
	t.Helper()
	st := store.NewInMemory()
	require.NoError(t, store.Seed(st))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(auditservice.NewService(st, vocabulary.Default(), logger, testMetrics), logger)

	r := chi.NewRouter()
	h.Register(r)
	return r, st
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFlagsEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	rec := get(t, router, "/audit/flags")
	require.Equal(t, http.StatusOK, rec.Code)

	var report auditservice.FlagReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Len(t, report.Flags, 14)
	assert.Equal(t, 10, report.CategoryCounts[vocabulary.CategoryVague])
	assert.Equal(t, 4, report.CategoryCounts[vocabulary.CategoryBias])
}

func TestFairnessEndpointDefaults(t *testing.T) {
	router, _ := newRouter(t)

	rec := get(t, router, "/audit/fairness")
	require.Equal(t, http.StatusOK, rec.Code)

	var report auditservice.FairnessReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.Equal(t, "gender", report.GroupBy)
	assert.InDelta(t, 3.0, report.Threshold, 1e-9)
	require.NotNil(t, report.Gap)
	assert.InDelta(t, 0.6, report.Gap.Value, 1e-9)
}

func TestFairnessEndpointZeroRateGroup(t *testing.T) {
	router, _ := newRouter(t)

	// At threshold 4.0 no M record qualifies, so AIR is 0 (not null).
	rec := get(t, router, "/audit/fairness?group_by=gender&threshold=4.0")
	require.Equal(t, http.StatusOK, rec.Code)

	var report auditservice.FairnessReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	require.NotNil(t, report.AIR)
	assert.InDelta(t, 0.0, *report.AIR, 1e-9)
	require.NotEmpty(t, report.Advisories)
	assert.Contains(t, report.Advisories[len(report.Advisories)-1], "possible adverse impact signal")
}

func TestFairnessEndpointSingleGroupReportsNullAIR(t *testing.T) {
	router, st := newRouter(t)
	ctx := context.Background()

	records, err := st.List(ctx)
	require.NoError(t, err)
	for i := range records {
		records[i].Gender = "F"
	}
	require.NoError(t, st.ReplaceAll(ctx, records))

	rec := get(t, router, "/audit/fairness")
	require.Equal(t, http.StatusOK, rec.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&raw))
	assert.Equal(t, "null", string(raw["air"]))
	assert.Equal(t, "null", string(raw["gap"]))
}

func TestFairnessEndpointRejectsBadInput(t *testing.T) {
	router, _ := newRouter(t)

	assert.Equal(t, http.StatusBadRequest, get(t, router, "/audit/fairness?group_by=comment").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/audit/fairness?threshold=abc").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, router, "/audit/fairness?threshold=0.5").Code)
}

func TestRulesEndpoint(t *testing.T) {
	router, _ := newRouter(t)

	rec := get(t, router, "/audit/rules")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 19)
	assert.Equal(t, []string{"term", "category"}, rows[0])
}
