package engine

import (
	"fmt"
	"math"
)

// ComputationError reports a malformed snapshot field reaching the engine.
// The engine fails fast on malformed input rather than coercing to a default,
// since any coercion silently changes the meaning of the analysis.
type ComputationError struct {
	Record string // record id or label
	Field  string
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation error: record %q field %q: %s", e.Record, e.Field, e.Reason)
}

// Validate checks every record in the snapshot for completeness and numeric
// sanity. It returns the first problem found as a *ComputationError.
func Validate(s Snapshot) error {
	for _, r := range s.Outcomes {
		if len(r.Years) != YearCount {
			return &ComputationError{
				Record: r.ID,
				Field:  "years",
				Reason: fmt.Sprintf("expected %d yearly values, got %d", YearCount, len(r.Years)),
			}
		}
		for i, y := range r.Years {
			if err := checkNumeric(r.ID, fmt.Sprintf("years[%d]", i), y); err != nil {
				return err
			}
		}
		if err := checkNumeric(r.ID, "employer", r.Employer); err != nil {
			return err
		}
		if err := checkNumeric(r.ID, "graduate", r.Graduate); err != nil {
			return err
		}
	}

	for _, r := range s.Exams {
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"pass_rate", r.PassRate},
			{"mean_score", r.MeanScore},
			{"national_avg", r.NationalAvg},
		} {
			if err := checkNumeric(r.Label, f.name, f.value); err != nil {
				return err
			}
		}
	}

	for _, r := range s.Courses {
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"clo_achievement", r.CLOAchievement},
			{"reliability", r.Reliability},
			{"difficulty", r.Difficulty},
			{"discrimination", r.Discrimination},
			{"pass_rate", r.PassRate},
		} {
			if err := checkNumeric(r.Label, f.name, f.value); err != nil {
				return err
			}
		}
	}

	for _, r := range s.Trends {
		for _, f := range []struct {
			name  string
			value float64
		}{
			{"graduation", r.Graduation},
			{"licensing_pass", r.LicensingPass},
			{"employer", r.Employer},
			{"retention", r.Retention},
		} {
			if err := checkNumeric(r.Year, f.name, f.value); err != nil {
				return err
			}
		}
	}

	return nil
}

func checkNumeric(record, field string, v float64) error {
	if math.IsNaN(v) {
		return &ComputationError{Record: record, Field: field, Reason: "value is NaN"}
	}
	if math.IsInf(v, 0) {
		return &ComputationError{Record: record, Field: field, Reason: "value is infinite"}
	}
	return nil
}
