package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"fairlens/internal/platform/metrics"
	"fairlens/internal/review/models"
	"fairlens/internal/review/service"
	"fairlens/internal/review/store"
)

// Prometheus collectors register globally, so the package shares one set.
var testMetrics = metrics.New()

func newRouter(t *testing.T, seed bool) (http.Handler, *store.InMemory) {
	t.Helper()
	st := store.NewInMemory()
	if seed {
		if err := store.Seed(st); err != nil {
			t.Fatalf("failed to seed store: %v", err)
		}
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(service.NewService(st, logger, testMetrics), logger)

	r := chi.NewRouter()
	h.Register(r)
	return r, st
}

func TestSubmitReviewViaHandler(t *testing.T) {
	router, st := newRouter(t, false)

	payload := map[string]any{
		"employee_id":       "E011",
		"role":              "Engineer",
		"gender":            "F",
		"kpi_rating":        4,
		"competency_rating": 4,
		"initiative_rating": 3,
		"overall_rating":    4,
		"comment":           "Delivered the migration.",
	}
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 submitting review, got %d", rec.Code)
	}
	var created models.ReviewRecord
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if created.EmployeeID != "E011" {
		t.Fatalf("expected stored employee_id E011, got %q", created.EmployeeID)
	}

	count, err := st.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record after submit, got %d", count)
	}
}

func TestSubmitRejectsMissingEmployeeID(t *testing.T) {
	router, st := newRouter(t, false)

	body := []byte(`{"employee_id":"  ","overall_rating":3,"kpi_rating":3,"competency_rating":3,"initiative_rating":3}`)
	req := httptest.NewRequest(http.MethodPost, "/reviews", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank employee_id, got %d", rec.Code)
	}
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if errResp.Error != "bad_request" {
		t.Fatalf("expected bad_request error code, got %q", errResp.Error)
	}

	count, _ := st.Count(context.Background())
	if count != 0 {
		t.Fatalf("expected store untouched, got %d records", count)
	}
}

func TestListReviews(t *testing.T) {
	router, _ := newRouter(t, true)

	req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing reviews, got %d", rec.Code)
	}
	var resp struct {
		Reviews []models.ReviewRecord `json:"reviews"`
		Count   int                   `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 10 || len(resp.Reviews) != 10 {
		t.Fatalf("expected 10 seeded reviews, got count=%d len=%d", resp.Count, len(resp.Reviews))
	}
}

func TestExportThenImportRoundTrip(t *testing.T) {
	router, st := newRouter(t, true)

	exportReq := httptest.NewRequest(http.MethodGet, "/reviews/export", nil)
	exportRec := httptest.NewRecorder()
	router.ServeHTTP(exportRec, exportReq)
	if exportRec.Code != http.StatusOK {
		t.Fatalf("expected 200 exporting, got %d", exportRec.Code)
	}
	if ct := exportRec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("expected text/csv, got %q", ct)
	}

	before, _ := st.List(context.Background())

	importReq := httptest.NewRequest(http.MethodPost, "/reviews/import", exportRec.Body)
	importRec := httptest.NewRecorder()
	router.ServeHTTP(importRec, importReq)
	if importRec.Code != http.StatusOK {
		t.Fatalf("expected 200 importing own export, got %d: %s", importRec.Code, importRec.Body.String())
	}

	after, _ := st.List(context.Background())
	if len(after) != len(before) {
		t.Fatalf("expected %d records after round trip, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("record %d changed across round trip: %+v vs %+v", i, before[i], after[i])
		}
	}
}

func TestImportMissingColumnKeepsPriorState(t *testing.T) {
	router, st := newRouter(t, true)

	body := strings.NewReader("employee_id,role\nE001,Manager\n")
	req := httptest.NewRequest(http.MethodPost, "/reviews/import", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing columns, got %d", rec.Code)
	}
	count, _ := st.Count(context.Background())
	if count != 10 {
		t.Fatalf("expected seeded collection preserved, got %d records", count)
	}
}
