package engine

import "fmt"

// Thresholds holds the decision boundaries applied by the built-in rules.
// Defaults follow the programme's accreditation policy; overrides come from
// configuration.
type Thresholds struct {
	// Target is the achievement target every outcome is measured against.
	Target float64

	// CriticalFloor is the aggregate achievement below which an outcome is
	// flagged critical rather than merely below target.
	CriticalFloor float64

	// EmployerMin is the minimum acceptable employer satisfaction rating.
	EmployerMin float64

	// ExamMin is the minimum acceptable licensing-exam pass rate.
	ExamMin float64

	// ReliabilityMin is the minimum acceptable reliability coefficient.
	ReliabilityMin float64

	// DiscriminationMin is the minimum acceptable discrimination index.
	DiscriminationMin float64

	// TrendWindow is how many trailing years the cross-year trend rule
	// examines. The rule is skipped when fewer years exist.
	TrendWindow int
}

// DefaultThresholds returns the standard decision boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Target:            80,
		CriticalFloor:     70,
		EmployerMin:       3.5,
		ExamMin:           80,
		ReliabilityMin:    0.70,
		DiscriminationMin: 0.20,
		TrendWindow:       3,
	}
}

// OutcomeRule examines one outcome record and produces zero or more findings
// and action items.
type OutcomeRule func(th Thresholds, r OutcomeRecord) ([]Finding, []ActionItem)

// ExamRule examines one licensing exam record.
type ExamRule func(th Thresholds, r LicensingExamRecord) ([]Finding, []ActionItem)

// CourseRule examines one course quality record.
type CourseRule func(th Thresholds, r CourseQualityRecord) ([]Finding, []ActionItem)

// TrendRule examines the whole trend series at once, in ascending-year order.
type TrendRule func(th Thresholds, trends []TrendRecord) ([]Finding, []ActionItem)

// OutcomeAchievement flags outcomes whose six-year aggregate falls below the
// critical floor or, failing that, below the target. The two levels are
// mutually exclusive for a single record.
func OutcomeAchievement(th Thresholds, r OutcomeRecord) ([]Finding, []ActionItem) {
	avg := r.Mean()
	switch {
	case avg < th.CriticalFloor:
		return []Finding{{
				Severity: SeverityCritical,
				Area:     r.ID,
				Detail:   fmt.Sprintf("%s: aggregate %.1f%% far below threshold", r.Label, avg),
			}}, []ActionItem{{
				Priority:    PriorityUrgent,
				Description: fmt.Sprintf("review all courses supporting %s; prepare an urgent improvement plan", r.ID),
			}}
	case avg < th.Target:
		return []Finding{{
				Severity: SeverityNeedsImprovement,
				Area:     r.ID,
				Detail:   fmt.Sprintf("%s: aggregate %.1f%% below the %g%% target", r.Label, avg, th.Target),
			}}, []ActionItem{{
				Priority:    PriorityImportant,
				Description: fmt.Sprintf("perform root-cause analysis for %s", r.ID),
			}}
	}
	return nil, nil
}

// ClinicalYearDecline flags outcomes where clinical-year achievement (year 6)
// falls below year-4 achievement. Independent of the aggregate rule; both can
// fire for the same record.
func ClinicalYearDecline(_ Thresholds, r OutcomeRecord) ([]Finding, []ActionItem) {
	y4, y6 := r.Years[3], r.Years[5]
	if y6 < y4 {
		return []Finding{{
			Severity: SeverityDecliningTrend,
			Area:     r.ID,
			Detail:   fmt.Sprintf("%s: clinical-year (%g%%) below year-4 (%g%%) achievement", r.Label, y6, y4),
		}}, nil
	}
	return nil, nil
}

// EmployerRating flags outcomes rated poorly by employers of graduates.
func EmployerRating(th Thresholds, r OutcomeRecord) ([]Finding, []ActionItem) {
	if r.Employer < th.EmployerMin {
		return []Finding{{
			Severity: SeverityNeedsImprovement,
			Area:     r.ID,
			Detail:   fmt.Sprintf("employer rating for %s is %g/5.0", r.Label, r.Employer),
		}}, nil
	}
	return nil, nil
}

// ExamBelowNational flags licensing exams passing below the national average.
func ExamBelowNational(_ Thresholds, r LicensingExamRecord) ([]Finding, []ActionItem) {
	if r.PassRate < r.NationalAvg {
		return []Finding{{
			Severity: SeverityNeedsImprovement,
			Area:     r.Label,
			Detail:   fmt.Sprintf("pass rate %g%% below national average %g%%", r.PassRate, r.NationalAvg),
		}}, nil
	}
	return nil, nil
}

// ExamBelowMinimum flags licensing exams passing below the absolute minimum.
// Evaluated independently of ExamBelowNational; both may fire for one record.
func ExamBelowMinimum(th Thresholds, r LicensingExamRecord) ([]Finding, []ActionItem) {
	if r.PassRate < th.ExamMin {
		return []Finding{{
			Severity: SeverityCritical,
			Area:     r.Label,
			Detail:   fmt.Sprintf("pass rate %g%% below minimum threshold", r.PassRate),
		}}, nil
	}
	return nil, nil
}

// CourseReliability flags courses whose assessment instrument has a low
// internal-consistency coefficient.
func CourseReliability(th Thresholds, r CourseQualityRecord) ([]Finding, []ActionItem) {
	if r.Reliability < th.ReliabilityMin {
		return []Finding{{
				Severity: SeverityQualityIssue,
				Area:     r.Label,
				Detail:   fmt.Sprintf("reliability (α=%g) below %.2f", r.Reliability, th.ReliabilityMin),
			}}, []ActionItem{{
				Priority:    PriorityImportant,
				Description: fmt.Sprintf("revise the assessment instrument for %s", r.Label),
			}}
	}
	return nil, nil
}

// CourseDiscrimination flags assessment instruments that fail to separate
// higher- from lower-performing students. This indicates instrument failure
// rather than routine drift, so it ranks with critical findings.
func CourseDiscrimination(th Thresholds, r CourseQualityRecord) ([]Finding, []ActionItem) {
	if r.Discrimination < th.DiscriminationMin {
		return []Finding{{
			Severity: SeverityInstrumentFailure,
			Area:     r.Label,
			Detail:   fmt.Sprintf("discrimination index (%g) too low; instrument fails to differentiate learners", r.Discrimination),
		}}, nil
	}
	return nil, nil
}

// LicensingPassDecline flags a multi-year drop in licensing pass rates. It
// looks at the trailing TrendWindow years and fires when every later year
// sits below the oldest of the window. Note this is not a strict
// year-over-year decline check: the condition compares each later year to
// the window's oldest value only.
func LicensingPassDecline(th Thresholds, trends []TrendRecord) ([]Finding, []ActionItem) {
	if len(trends) < th.TrendWindow || th.TrendWindow < 3 {
		return nil, nil
	}
	window := trends[len(trends)-th.TrendWindow:]
	oldest := window[0]
	declining := true
	for _, t := range window[1:] {
		if t.LicensingPass >= oldest.LicensingPass {
			declining = false
			break
		}
	}
	if !declining {
		return nil, nil
	}
	return []Finding{{
			Severity: SeverityDecliningTrend,
			Area:     "licensing pass rate",
			Detail:   "licensing pass rate declining across recent years",
		}}, []ActionItem{{
			Priority:    PriorityUrgent,
			Description: "review curriculum and licensing-exam preparation system urgently",
		}}
}
