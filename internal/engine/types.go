// Package engine provides the outcome analysis engine: a pure rule-evaluation
// pipeline that turns a metric snapshot into ranked findings, an action plan,
// and an overall programme status.
package engine

import "fmt"

// Severity identifies how serious a finding is. Two severities may share a
// display label but rank differently; ranking is derived from the severity,
// never from the rendered string.
type Severity int

const (
	// SeverityCritical marks results far below acceptable thresholds.
	SeverityCritical Severity = iota

	// SeverityNeedsImprovement marks results below target but not critical.
	SeverityNeedsImprovement

	// SeverityQualityIssue marks routine assessment-instrument quality drift.
	SeverityQualityIssue

	// SeverityInstrumentFailure marks an assessment instrument that fails to
	// differentiate learners. It renders as a quality issue but sorts with
	// critical findings.
	SeverityInstrumentFailure

	// SeverityDecliningTrend marks a downward movement across years.
	SeverityDecliningTrend
)

// String returns the display label for the severity. InstrumentFailure shares
// the QualityIssue label; the distinction only affects ranking.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "Critical"
	case SeverityNeedsImprovement:
		return "NeedsImprovement"
	case SeverityQualityIssue, SeverityInstrumentFailure:
		return "QualityIssue"
	case SeverityDecliningTrend:
		return "DecliningTrend"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes the severity as its display label.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON decodes a display label back into a severity. The QualityIssue
// label always decodes to SeverityQualityIssue; the instrument-failure variant
// is indistinguishable on the wire and only matters when ranking, which
// happens before results are serialized.
func (s *Severity) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"Critical"`:
		*s = SeverityCritical
	case `"NeedsImprovement"`:
		*s = SeverityNeedsImprovement
	case `"QualityIssue"`:
		*s = SeverityQualityIssue
	case `"DecliningTrend"`:
		*s = SeverityDecliningTrend
	default:
		return fmt.Errorf("unknown severity %s", data)
	}
	return nil
}

// Rank returns the sort rank for the severity. Lower ranks sort first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical, SeverityInstrumentFailure:
		return 0
	case SeverityNeedsImprovement:
		return 1
	default:
		return 2
	}
}

// Action priorities.
const (
	PriorityUrgent    = "Urgent"
	PriorityImportant = "Important"
)

// Programme status labels, mapped from the overall score.
type Status string

const (
	StatusExcellent        Status = "Excellent"
	StatusGood             Status = "Good"
	StatusNeedsImprovement Status = "NeedsImprovement"
	StatusCritical         Status = "Critical"
)

// YearCount is the number of academic years tracked per outcome.
const YearCount = 6

// DefaultTarget is the fixed achievement target applied to every outcome.
const DefaultTarget = 80.0

// OutcomeRecord holds per-year achievement percentages for one programme
// learning outcome, plus employer and graduate satisfaction ratings.
type OutcomeRecord struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Years    []float64 `json:"years"` // achievement % for years 1..6
	Employer float64   `json:"employer"` // 1.0-5.0
	Graduate float64   `json:"graduate"` // 1.0-5.0
	Target   float64   `json:"target"`
}

// Mean returns the arithmetic mean of the six yearly achievement values.
// Callers must validate the record first; Mean assumes len(Years) == YearCount.
func (r OutcomeRecord) Mean() float64 {
	sum := 0.0
	for _, y := range r.Years {
		sum += y
	}
	return sum / float64(len(r.Years))
}

// LicensingExamRecord holds one national licensing exam result.
type LicensingExamRecord struct {
	Label       string  `json:"label"`
	PassRate    float64 `json:"pass_rate"`
	MeanScore   float64 `json:"mean_score"`
	NationalAvg float64 `json:"national_avg"`
}

// CourseQualityRecord holds psychometric quality values for one course.
type CourseQualityRecord struct {
	Label          string  `json:"label"`
	CLOAchievement float64 `json:"clo_achievement"`
	Reliability    float64 `json:"reliability"`    // 0.0-1.0
	Difficulty     float64 `json:"difficulty"`     // 0.0-1.0
	Discrimination float64 `json:"discrimination"` // -1.0-1.0
	PassRate       float64 `json:"pass_rate"`
}

// TrendRecord holds one academic year of programme-level indicators.
// Snapshot.Trends is ordered by ascending year.
type TrendRecord struct {
	Year          string  `json:"year"`
	Graduation    float64 `json:"graduation"`
	LicensingPass float64 `json:"licensing_pass"`
	Employer      float64 `json:"employer"`
	Retention     float64 `json:"retention"`
}

// Snapshot is the immutable input value consumed by the engine. The engine
// never mutates it; edits produce a new snapshot passed through the pipeline.
type Snapshot struct {
	Outcomes []OutcomeRecord       `json:"outcomes"`
	Exams    []LicensingExamRecord `json:"exams"`
	Courses  []CourseQualityRecord `json:"courses"`
	Trends   []TrendRecord         `json:"trends"`
}

// Finding is one issue surfaced by a rule.
type Finding struct {
	Severity Severity `json:"severity"`
	Area     string   `json:"area"`
	Detail   string   `json:"detail"`
}

// ActionItem is one entry in the derived action plan. Items keep the order
// in which rules emitted them.
type ActionItem struct {
	Priority    string `json:"priority"`
	Description string `json:"description"`
}

// AnalysisResult is the engine's output value. It is rebuilt on every call
// and has no persisted identity.
type AnalysisResult struct {
	Findings     []Finding    `json:"findings"`
	Actions      []ActionItem `json:"actions"`
	OverallScore float64      `json:"overall_score"`
	Status       Status       `json:"status"`
}
