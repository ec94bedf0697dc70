package service

import (
	"context"
	"io"
	"log/slog"

	"fairlens/internal/platform/metrics"
	"fairlens/internal/review/csvio"
	"fairlens/internal/review/models"
	dErrors "fairlens/pkg/domain-errors"
)

// Store is the review collection as seen by the service layer.
type Store interface {
	List(ctx context.Context) ([]models.ReviewRecord, error)
	Append(ctx context.Context, record models.ReviewRecord) error
	ReplaceAll(ctx context.Context, records []models.ReviewRecord) error
	Count(ctx context.Context) (int, error)
}

// Service owns record intake and export. It keeps orchestration out of
// handlers and leaves the store untouched on every failure path.
type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, logger *slog.Logger, metrics *metrics.Metrics) *Service {
	return &Service{store: store, logger: logger, metrics: metrics}
}

// Submit validates and appends a single review record.
func (s *Service) Submit(ctx context.Context, req models.SubmitReviewRequest) (models.ReviewRecord, error) {
	if err := req.Validate(); err != nil {
		return models.ReviewRecord{}, err
	}
	record := req.ToRecord()
	if err := s.store.Append(ctx, record); err != nil {
		return models.ReviewRecord{}, dErrors.Wrap(dErrors.CodeInternal, "failed to store review", err)
	}
	s.metrics.IncrementReviewsSubmitted()
	s.logger.InfoContext(ctx, "review submitted", "employee_id", record.EmployeeID)
	return record, nil
}

// List returns the current collection.
func (s *Service) List(ctx context.Context) ([]models.ReviewRecord, error) {
	return s.store.List(ctx)
}

// Import parses a CSV document and replaces the collection wholesale. The
// prior collection survives any parse or validation failure: the store is
// only written after the entire document decoded.
func (s *Service) Import(ctx context.Context, r io.Reader) (int, error) {
	records, err := csvio.Decode(r)
	if err != nil {
		s.metrics.IncrementImportFailures()
		return 0, dErrors.Wrap(dErrors.CodeBadRequest, "could not read CSV", err)
	}
	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return 0, dErrors.Wrap(dErrors.CodeInternal, "failed to replace collection", err)
	}
	s.metrics.IncrementImports()
	s.logger.InfoContext(ctx, "collection replaced via import", "records", len(records))
	return len(records), nil
}

// Export writes the current collection as CSV.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	records, err := s.store.List(ctx)
	if err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "failed to list reviews", err)
	}
	if err := csvio.Encode(w, records); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "failed to encode CSV", err)
	}
	return nil
}
