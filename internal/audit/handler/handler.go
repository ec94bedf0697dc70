package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	auditservice "fairlens/internal/audit/service"
	"fairlens/internal/platform/middleware"
	"fairlens/internal/transport/http/shared"
	dErrors "fairlens/pkg/domain-errors"
)

// Defaults match the original dashboard controls.
const (
	defaultGroupBy   = "gender"
	defaultThreshold = 3.0
)

// Service defines the interface for audit operations.
type Service interface {
	Flags(ctx context.Context) (auditservice.FlagReport, error)
	Fairness(ctx context.Context, groupBy string, threshold float64) (auditservice.FairnessReport, error)
	ExportRules(ctx context.Context, w io.Writer) error
}

// Handler handles the /audit endpoints.
type Handler struct {
	logger *slog.Logger
	audit  Service
}

// New creates a new audit Handler.
func New(audit Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, audit: audit}
}

// Register registers the audit routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/flags", h.handleFlags)
	r.Get("/audit/fairness", h.handleFairness)
	r.Get("/audit/rules", h.handleRules)
}

// handleFlags scans the whole collection and returns every flag.
func (h *Handler) handleFlags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.audit.Flags(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to compute flag report",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute flag report"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, report)
}

// handleFairness computes the fairness summary for the requested grouping
// field and meets/exceeds threshold.
func (h *Handler) handleFairness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	groupBy := r.URL.Query().Get("group_by")
	if groupBy == "" {
		groupBy = defaultGroupBy
	}

	threshold := defaultThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "threshold must be a number"))
			return
		}
		threshold = parsed
	}

	report, err := h.audit.Fairness(ctx, groupBy, threshold)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to compute fairness summary",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to compute fairness summary"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, report)
}

// handleRules serves the active vocabulary as a CSV download.
func (h *Handler) handleRules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fairlens_rules.csv"`)
	if err := h.audit.ExportRules(ctx, w); err != nil {
		h.logger.ErrorContext(ctx, "failed to export rules",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
}
