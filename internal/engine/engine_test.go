package engine

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestEvaluate_CriticalOutcomeWithPoorEmployerRating(t *testing.T) {
	s := Snapshot{
		Outcomes: []OutcomeRecord{outcome("PLO 1", [6]float64{60, 60, 60, 60, 60, 60}, 3.0)},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var critical, needsImprovement int
	for _, f := range result.Findings {
		switch f.Severity {
		case SeverityCritical:
			critical++
		case SeverityNeedsImprovement:
			needsImprovement++
		}
	}
	if critical != 1 {
		t.Errorf("expected exactly 1 Critical finding, got %d", critical)
	}
	if needsImprovement != 1 {
		t.Errorf("expected exactly 1 NeedsImprovement finding, got %d", needsImprovement)
	}
	if len(result.Actions) != 1 {
		t.Fatalf("expected exactly 1 action, got %d", len(result.Actions))
	}
	if result.Actions[0].Priority != PriorityUrgent || !strings.Contains(result.Actions[0].Description, "PLO 1") {
		t.Errorf("expected an Urgent action referencing PLO 1, got %+v", result.Actions[0])
	}
}

func TestEvaluate_DeclineWithoutThresholdFinding(t *testing.T) {
	// Averages to 85 with year 6 below year 4: only the decline rule fires.
	s := Snapshot{
		Outcomes: []OutcomeRecord{outcome("PLO 2", [6]float64{85, 90, 90, 90, 85, 70}, 4.0)},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Findings) != 1 {
		t.Fatalf("expected exactly 1 finding, got %d: %+v", len(result.Findings), result.Findings)
	}
	if result.Findings[0].Severity != SeverityDecliningTrend {
		t.Errorf("expected DecliningTrend, got %v", result.Findings[0].Severity)
	}
}

func TestEvaluate_SingleExamYieldsTwoFindings(t *testing.T) {
	s := Snapshot{
		Exams: []LicensingExamRecord{{Label: "NL1", PassRate: 75, MeanScore: 60, NationalAvg: 80}},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Findings) != 2 {
		t.Fatalf("expected 2 findings from one exam record, got %d", len(result.Findings))
	}
	// Ranked output puts the Critical below-minimum finding first.
	if result.Findings[0].Severity != SeverityCritical {
		t.Errorf("expected Critical first after ranking, got %v", result.Findings[0].Severity)
	}
	if result.Findings[1].Severity != SeverityNeedsImprovement {
		t.Errorf("expected NeedsImprovement second, got %v", result.Findings[1].Severity)
	}
}

func TestEvaluate_SingleCourseYieldsTwoQualityFindingsOneAction(t *testing.T) {
	s := Snapshot{
		Courses: []CourseQualityRecord{{Label: "Anatomy", CLOAchievement: 85, Reliability: 0.65, Difficulty: 0.5, Discrimination: 0.15, PassRate: 90}},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Findings) != 2 {
		t.Fatalf("expected 2 findings, got %d", len(result.Findings))
	}
	for _, f := range result.Findings {
		if f.Severity.String() != "QualityIssue" {
			t.Errorf("expected QualityIssue label, got %q", f.Severity)
		}
	}
	if len(result.Actions) != 1 || result.Actions[0].Priority != PriorityImportant {
		t.Fatalf("expected exactly one Important action, got %+v", result.Actions)
	}
}

func TestEvaluate_OverallScoreAndStatus(t *testing.T) {
	s := Snapshot{
		Outcomes: []OutcomeRecord{
			outcome("PLO 1", [6]float64{70, 70, 70, 70, 70, 70}, 4.0),
			outcome("PLO 2", [6]float64{80, 80, 80, 80, 80, 80}, 4.0),
			outcome("PLO 3", [6]float64{90, 90, 90, 90, 90, 90}, 4.0),
		},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OverallScore != 80.0 {
		t.Errorf("expected overall score exactly 80.0, got %v", result.OverallScore)
	}
	if result.Status != StatusGood {
		t.Errorf("expected status Good, got %q", result.Status)
	}
}

func TestEvaluate_FindingsPartitionedByRank(t *testing.T) {
	s := Snapshot{
		Outcomes: []OutcomeRecord{
			outcome("PLO 1", [6]float64{60, 60, 60, 60, 60, 60}, 3.0),
			outcome("PLO 2", [6]float64{90, 90, 90, 95, 90, 85}, 4.0),
		},
		Exams: []LicensingExamRecord{{Label: "NL1", PassRate: 75, MeanScore: 60, NationalAvg: 80}},
		Courses: []CourseQualityRecord{
			{Label: "Anatomy", CLOAchievement: 85, Reliability: 0.65, Difficulty: 0.5, Discrimination: 0.15, PassRate: 90},
		},
		Trends: trendSeries(95, 90, 88),
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lastRank := 0
	for i, f := range result.Findings {
		if f.Severity.Rank() < lastRank {
			t.Fatalf("finding %d (rank %d) appears after rank %d", i, f.Severity.Rank(), lastRank)
		}
		lastRank = f.Severity.Rank()
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := Snapshot{
		Outcomes: []OutcomeRecord{outcome("PLO 1", [6]float64{60, 70, 75, 80, 72, 68}, 3.2)},
		Exams:    []LicensingExamRecord{{Label: "NL1", PassRate: 75, MeanScore: 60, NationalAvg: 80}},
		Courses:  []CourseQualityRecord{{Label: "Anatomy", CLOAchievement: 85, Reliability: 0.65, Difficulty: 0.5, Discrimination: 0.15, PassRate: 90}},
		Trends:   trendSeries(95, 90, 88),
	}
	ev := NewEvaluator(DefaultThresholds())
	first, err := ev.Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ev.Evaluate(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("evaluating the same snapshot twice produced different results")
	}
}

func TestEvaluate_EmptySnapshot(t *testing.T) {
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(Snapshot{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Findings) != 0 || len(result.Actions) != 0 {
		t.Errorf("expected no findings or actions, got %d/%d", len(result.Findings), len(result.Actions))
	}
	if result.OverallScore != 0 || result.Status != StatusCritical {
		t.Errorf("expected score 0 and Critical status, got %v/%q", result.OverallScore, result.Status)
	}
}

func TestEvaluate_MalformedSnapshotFailsFast(t *testing.T) {
	s := Snapshot{
		Outcomes: []OutcomeRecord{{
			ID:    "PLO 1",
			Label: "Medical knowledge",
			Years: []float64{80, 80, 80, 80}, // only four years
		}},
	}
	result, err := NewEvaluator(DefaultThresholds()).Evaluate(s)
	if result != nil {
		t.Errorf("expected nil result on malformed input, got %+v", result)
	}
	var compErr *ComputationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *ComputationError, got %T: %v", err, err)
	}
	if compErr.Record != "PLO 1" || compErr.Field != "years" {
		t.Errorf("expected error to name the record and field, got %+v", compErr)
	}
}
