package models

import (
	"strings"

	dErrors "fairlens/pkg/domain-errors"
)

// Rating bounds for all four dimensions.
const (
	RatingMin = 1
	RatingMax = 5
)

// ReviewRecord is one anonymized performance review. EmployeeID is an opaque
// identifier; uniqueness is not enforced. Gender and Role are categorical
// strings used only as fairness grouping keys.
type ReviewRecord struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	Gender     string `json:"gender"`
	KPI        int    `json:"kpi_rating"`
	Competency int    `json:"competency_rating"`
	Initiative int    `json:"initiative_rating"`
	Overall    int    `json:"overall_rating"`
	Comment    string `json:"comment"`
}

// GroupValue resolves a categorical grouping field by name. The empty string
// and false are returned for unknown fields so callers can reject them.
func (r ReviewRecord) GroupValue(field string) (string, bool) {
	switch field {
	case "role":
		return r.Role, true
	case "gender":
		return r.Gender, true
	default:
		return "", false
	}
}

// SubmitReviewRequest carries one new record from the submission form.
type SubmitReviewRequest struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	Gender     string `json:"gender"`
	KPI        int    `json:"kpi_rating"`
	Competency int    `json:"competency_rating"`
	Initiative int    `json:"initiative_rating"`
	Overall    int    `json:"overall_rating"`
	Comment    string `json:"comment"`
}

// Validate enforces the submission-path constraints: a non-empty employee ID
// after trimming, and all four ratings inside [1,5]. The bulk import path
// deliberately does not run these checks (uploaded data is trusted as-is).
func (r SubmitReviewRequest) Validate() error {
	if strings.TrimSpace(r.EmployeeID) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "employee_id is required")
	}
	for _, rating := range []int{r.KPI, r.Competency, r.Initiative, r.Overall} {
		if rating < RatingMin || rating > RatingMax {
			return dErrors.New(dErrors.CodeBadRequest, "ratings must be integers between 1 and 5")
		}
	}
	return nil
}

// ToRecord converts a validated request into a stored record, trimming the
// identifier and comment the way the original form did.
func (r SubmitReviewRequest) ToRecord() ReviewRecord {
	return ReviewRecord{
		EmployeeID: strings.TrimSpace(r.EmployeeID),
		Role:       r.Role,
		Gender:     r.Gender,
		KPI:        r.KPI,
		Competency: r.Competency,
		Initiative: r.Initiative,
		Overall:    r.Overall,
		Comment:    strings.TrimSpace(r.Comment),
	}
}
