package engine

// Evaluator runs the registered rule set against a snapshot. It holds no
// mutable state: the same Evaluator may be shared by concurrent callers, and
// evaluating a value-equal snapshot twice yields deep-equal results.
type Evaluator struct {
	thresholds   Thresholds
	outcomeRules []OutcomeRule
	examRules    []ExamRule
	courseRules  []CourseRule
	trendRules   []TrendRule
}

// NewEvaluator creates an evaluator with all built-in rules registered in
// their canonical order: outcome rules, exam rules, course rules, then the
// cross-year trend rule. The order matters for action-plan ordering and for
// tie-breaking equally ranked findings.
func NewEvaluator(th Thresholds) *Evaluator {
	return &Evaluator{
		thresholds: th,
		outcomeRules: []OutcomeRule{
			OutcomeAchievement,
			ClinicalYearDecline,
			EmployerRating,
		},
		examRules: []ExamRule{
			ExamBelowNational,
			ExamBelowMinimum,
		},
		courseRules: []CourseRule{
			CourseReliability,
			CourseDiscrimination,
		},
		trendRules: []TrendRule{
			LicensingPassDecline,
		},
	}
}

// Evaluate validates the snapshot, applies every registered rule, and returns
// the rank-sorted findings, the action plan in emission order, and the overall
// score and status. Malformed input yields a *ComputationError and a nil
// result; threshold outcomes are never errors.
func (e *Evaluator) Evaluate(s Snapshot) (*AnalysisResult, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	var findings []Finding
	var actions []ActionItem

	collect := func(f []Finding, a []ActionItem) {
		findings = append(findings, f...)
		actions = append(actions, a...)
	}

	for _, r := range s.Outcomes {
		for _, rule := range e.outcomeRules {
			collect(rule(e.thresholds, r))
		}
	}
	for _, r := range s.Exams {
		for _, rule := range e.examRules {
			collect(rule(e.thresholds, r))
		}
	}
	for _, r := range s.Courses {
		for _, rule := range e.courseRules {
			collect(rule(e.thresholds, r))
		}
	}
	for _, rule := range e.trendRules {
		collect(rule(e.thresholds, s.Trends))
	}

	score := OverallScore(s.Outcomes)

	return &AnalysisResult{
		Findings:     RankFindings(findings),
		Actions:      actions,
		OverallScore: score,
		Status:       StatusFor(score),
	}, nil
}
