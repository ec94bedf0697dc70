package store

import (
	"context"
	"fmt"

	"fairlens/internal/review/models"
)

// Seed loads the demo dataset into the store: ten anonymized reviews split
// between Managers and Analysts, with comments chosen to exercise the
// flagging vocabulary.
func Seed(s *InMemory) error {
	comments := []string{
		"Strong potential; team player.",
		"Meets goals but not a good fit.",
		"Hard worker; needs to improve communication.",
		"Energetic and ambitious.",
		"Good attitude; works well under pressure.",
		"Can be emotional in feedback.",
		"Average performance; can step up.",
		"Aggressive at times.",
		"Great culture fit.",
		"Bossy in team settings.",
	}
	genders := []string{"F", "M", "F", "M", "F", "M", "F", "M", "F", "M"}
	kpi := []int{4, 3, 4, 3, 4, 3, 3, 3, 4, 3}
	competency := []int{4, 4, 3, 3, 4, 3, 3, 3, 4, 3}
	initiative := []int{4, 3, 3, 3, 4, 3, 3, 3, 4, 3}
	overall := []int{4, 3, 3, 3, 4, 3, 3, 3, 4, 3}

	records := make([]models.ReviewRecord, 0, len(comments))
	for i := range comments {
		role := "Manager"
		if i >= 5 {
			role = "Analyst"
		}
		records = append(records, models.ReviewRecord{
			EmployeeID: fmt.Sprintf("E%03d", i+1),
			Role:       role,
			Gender:     genders[i],
			KPI:        kpi[i],
			Competency: competency[i],
			Initiative: initiative[i],
			Overall:    overall[i],
			Comment:    comments[i],
		})
	}
	return s.ReplaceAll(context.Background(), records)
}
