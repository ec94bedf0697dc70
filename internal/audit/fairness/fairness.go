// Package fairness computes descriptive group-fairness statistics over the
// review collection. These are practitioner screening heuristics, not
// statistical tests: no significance testing is performed.
package fairness

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"fairlens/internal/review/models"
)

// Interpretation thresholds. They are advisory: Summarize reports the raw
// numbers and Advisories applies these so any consumer reproduces the same
// verdicts.
const (
	// GapReviewThreshold is the mean-overall gap (on a 1-5 scale) at or
	// above which a review is recommended.
	GapReviewThreshold = 0.30

	// AIRRuleOfThumb is the four-fifths rule: an adverse-impact ratio below
	// it is a possible disparity signal.
	AIRRuleOfThumb = 0.80
)

// GroupStat holds per-group mean and count for each rating dimension, plus
// the group's meets/exceeds rate at the requested threshold.
type GroupStat struct {
	Group          string  `json:"group"`
	Count          int     `json:"count"`
	KPIMean        float64 `json:"kpi_mean"`
	CompetencyMean float64 `json:"competency_mean"`
	InitiativeMean float64 `json:"initiative_mean"`
	OverallMean    float64 `json:"overall_mean"`
	MeetsRate      float64 `json:"meets_rate"`
}

// Gap is the absolute difference in mean overall rating between the two
// most populous groups.
type Gap struct {
	Groups [2]string  `json:"groups"`
	Means  [2]float64 `json:"means"`
	Value  float64    `json:"value"`
}

// Summary is the full fairness report for one grouping attribute.
type Summary struct {
	GroupBy   string
	Threshold float64
	Groups    []GroupStat // first-appearance order
	Gap       *Gap        // nil when fewer than two groups
	AIR       float64     // NaN when undefined
}

// Summarize computes per-group statistics, the two-group mean gap, and the
// adverse-impact-ratio proxy for the given grouping field and meets/exceeds
// threshold. Records with an empty grouping value are excluded. It never
// panics on degenerate input: an empty collection yields an empty summary,
// a single group yields a nil Gap and NaN AIR.
func Summarize(records []models.ReviewRecord, groupBy string, threshold float64) Summary {
	summary := Summary{GroupBy: groupBy, Threshold: threshold, AIR: math.NaN()}

	type accumulator struct {
		kpi, competency, initiative, overall []float64
		meets                                int
	}
	groups := map[string]*accumulator{}
	var order []string

	for _, r := range records {
		value, ok := r.GroupValue(groupBy)
		if !ok || value == "" {
			continue
		}
		acc := groups[value]
		if acc == nil {
			acc = &accumulator{}
			groups[value] = acc
			order = append(order, value)
		}
		acc.kpi = append(acc.kpi, float64(r.KPI))
		acc.competency = append(acc.competency, float64(r.Competency))
		acc.initiative = append(acc.initiative, float64(r.Initiative))
		acc.overall = append(acc.overall, float64(r.Overall))
		if float64(r.Overall) >= threshold {
			acc.meets++
		}
	}
	if len(order) == 0 {
		return summary
	}

	for _, name := range order {
		acc := groups[name]
		n := len(acc.overall)
		summary.Groups = append(summary.Groups, GroupStat{
			Group:          name,
			Count:          n,
			KPIMean:        stat.Mean(acc.kpi, nil),
			CompetencyMean: stat.Mean(acc.competency, nil),
			InitiativeMean: stat.Mean(acc.initiative, nil),
			OverallMean:    stat.Mean(acc.overall, nil),
			MeetsRate:      float64(acc.meets) / float64(n),
		})
	}
	if len(summary.Groups) < 2 {
		return summary
	}

	// Two most populous groups, descending by count; stable sort preserves
	// first-appearance order on ties.
	byCount := make([]GroupStat, len(summary.Groups))
	copy(byCount, summary.Groups)
	sort.SliceStable(byCount, func(i, j int) bool { return byCount[i].Count > byCount[j].Count })
	g1, g2 := byCount[0], byCount[1]
	summary.Gap = &Gap{
		Groups: [2]string{g1.Group, g2.Group},
		Means:  [2]float64{g1.OverallMean, g2.OverallMean},
		Value:  math.Abs(g1.OverallMean - g2.OverallMean),
	}

	minRate, maxRate := summary.Groups[0].MeetsRate, summary.Groups[0].MeetsRate
	for _, g := range summary.Groups[1:] {
		minRate = math.Min(minRate, g.MeetsRate)
		maxRate = math.Max(maxRate, g.MeetsRate)
	}
	if maxRate > 0 {
		summary.AIR = minRate / maxRate
	}
	return summary
}

// Advisories renders the caller-side interpretation of a summary. The texts
// and thresholds are part of the tool's documented contract.
func (s Summary) Advisories() []string {
	if len(s.Groups) < 2 {
		return []string{"insufficient data: at least two groups are required for gap and AIR"}
	}
	var out []string
	if s.Gap != nil && s.Gap.Value >= GapReviewThreshold {
		out = append(out, fmt.Sprintf(
			"mean overall gap %.2f >= %.2f on a 1-5 scale; review recommended (training, calibration, data quality)",
			s.Gap.Value, GapReviewThreshold))
	}
	if !math.IsNaN(s.AIR) && s.AIR < AIRRuleOfThumb {
		out = append(out, fmt.Sprintf(
			"AIR %.2f < %.2f; possible adverse impact signal (sample size, criteria clarity, rater training)",
			s.AIR, AIRRuleOfThumb))
	}
	return out
}
