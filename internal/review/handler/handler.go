package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fairlens/internal/platform/middleware"
	"fairlens/internal/review/models"
	"fairlens/internal/transport/http/shared"
	dErrors "fairlens/pkg/domain-errors"
)

// Service defines the interface for review collection operations.
type Service interface {
	Submit(ctx context.Context, req models.SubmitReviewRequest) (models.ReviewRecord, error)
	List(ctx context.Context) ([]models.ReviewRecord, error)
	Import(ctx context.Context, r io.Reader) (int, error)
	Export(ctx context.Context, w io.Writer) error
}

// Handler handles the /reviews endpoints.
type Handler struct {
	logger  *slog.Logger
	reviews Service
}

// New creates a new review Handler.
func New(reviews Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, reviews: reviews}
}

// Register registers the review routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/reviews", h.handleSubmit)
	r.Get("/reviews", h.handleList)
	r.Post("/reviews/import", h.handleImport)
	r.Get("/reviews/export", h.handleExport)
}

// handleSubmit accepts one new anonymized review and appends it.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid submit review request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	record, err := h.reviews.Submit(ctx, req)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to submit review",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to submit review"))
		return
	}

	shared.WriteJSON(w, http.StatusCreated, record)
}

// handleList returns the current collection.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.reviews.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list reviews",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list reviews"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{
		"reviews": records,
		"count":   len(records),
	})
}

// handleImport replaces the collection from an uploaded CSV document. The
// request body is the file itself.
func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	defer r.Body.Close()

	count, err := h.reviews.Import(ctx, r.Body)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.WarnContext(ctx, "rejected CSV import",
				"request_id", middleware.GetRequestID(ctx),
				"error", err.Error(),
			)
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to import reviews",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to import reviews"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]int{"imported": count})
}

// handleExport serves the collection as a CSV download.
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="fairlens_reviews.csv"`)
	if err := h.reviews.Export(ctx, w); err != nil {
		// Headers are already written; the truncated body is all we can signal.
		h.logger.ErrorContext(ctx, "failed to export reviews",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
	}
}
