package service

import (
	"context"
	"io"
	"log/slog"
	"math"

	"fairlens/internal/audit/fairness"
	"fairlens/internal/audit/flagger"
	"fairlens/internal/audit/vocabulary"
	"fairlens/internal/platform/metrics"
	"fairlens/internal/review/models"
	dErrors "fairlens/pkg/domain-errors"
)

// Store is the review collection as seen by the audit layer. Audits only
// ever read it.
type Store interface {
	List(ctx context.Context) ([]models.ReviewRecord, error)
}

// FlagRow is one detected flag with its record context, mirroring the audit
// dashboard's flag table.
type FlagRow struct {
	EmployeeID string              `json:"employee_id"`
	Role       string              `json:"role"`
	Gender     string              `json:"gender"`
	Phrase     string              `json:"phrase"`
	Category   vocabulary.Category `json:"category"`
	Index      int                 `json:"index"`
}

// FlagReport aggregates flags across the whole collection.
type FlagReport struct {
	Flags          []FlagRow                   `json:"flags"`
	CategoryCounts map[vocabulary.Category]int `json:"category_counts"`
}

// FairnessReport is the HTTP-ready fairness summary. AIR is a pointer so an
// undefined ratio serializes as null rather than breaking JSON encoding.
type FairnessReport struct {
	GroupBy    string               `json:"group_by"`
	Threshold  float64              `json:"threshold"`
	Groups     []fairness.GroupStat `json:"groups"`
	Gap        *fairness.Gap        `json:"gap"`
	AIR        *float64             `json:"air"`
	Advisories []string             `json:"advisories"`
}

// Service runs the two audits over the current collection. Both are pure
// recomputations: nothing derived is ever stored.
type Service struct {
	store   Store
	scanner *flagger.Flagger
	vocab   *vocabulary.Vocabulary
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(store Store, vocab *vocabulary.Vocabulary, logger *slog.Logger, metrics *metrics.Metrics) *Service {
	return &Service{
		store:   store,
		scanner: flagger.New(vocab),
		vocab:   vocab,
		logger:  logger,
		metrics: metrics,
	}
}

// Flags scans every record's comment and returns all flags with context.
func (s *Service) Flags(ctx context.Context) (FlagReport, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return FlagReport{}, dErrors.Wrap(dErrors.CodeInternal, "failed to list reviews", err)
	}

	report := FlagReport{
		Flags:          []FlagRow{},
		CategoryCounts: map[vocabulary.Category]int{},
	}
	for _, r := range records {
		for _, f := range s.scanner.Scan(r.Comment) {
			report.Flags = append(report.Flags, FlagRow{
				EmployeeID: r.EmployeeID,
				Role:       r.Role,
				Gender:     r.Gender,
				Phrase:     f.Phrase,
				Category:   f.Category,
				Index:      f.Index,
			})
			report.CategoryCounts[f.Category]++
		}
	}
	for category, count := range report.CategoryCounts {
		s.metrics.AddFlagsDetected(string(category), count)
	}
	s.metrics.IncrementAuditsRun()
	return report, nil
}

// Fairness validates the grouping field and threshold, then summarizes.
// The grouping field is restricted to the categorical attributes the shell
// exposes; the threshold must sit inside the rating scale.
func (s *Service) Fairness(ctx context.Context, groupBy string, threshold float64) (FairnessReport, error) {
	if groupBy != "gender" && groupBy != "role" {
		return FairnessReport{}, dErrors.New(dErrors.CodeBadRequest, "group_by must be one of: gender, role")
	}
	if threshold < float64(models.RatingMin) || threshold > float64(models.RatingMax) {
		return FairnessReport{}, dErrors.New(dErrors.CodeBadRequest, "threshold must be between 1.0 and 5.0")
	}

	records, err := s.store.List(ctx)
	if err != nil {
		return FairnessReport{}, dErrors.Wrap(dErrors.CodeInternal, "failed to list reviews", err)
	}

	summary := fairness.Summarize(records, groupBy, threshold)
	report := FairnessReport{
		GroupBy:    summary.GroupBy,
		Threshold:  summary.Threshold,
		Groups:     summary.Groups,
		Gap:        summary.Gap,
		Advisories: summary.Advisories(),
	}
	if !math.IsNaN(summary.AIR) {
		air := summary.AIR
		report.AIR = &air
	}
	if report.Groups == nil {
		report.Groups = []fairness.GroupStat{}
	}
	s.metrics.IncrementAuditsRun()
	return report, nil
}

// ExportRules writes the active vocabulary as CSV for transparency review.
func (s *Service) ExportRules(ctx context.Context, w io.Writer) error {
	if err := s.vocab.ExportCSV(w); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "failed to encode rules", err)
	}
	return nil
}
