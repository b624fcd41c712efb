package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
)

// FetchOutcomes returns every outcome row in stored order.
func (db *DB) FetchOutcomes() ([]engine.OutcomeRecord, error) {
	rows, err := db.conn.Query(`
		SELECT outcome_id, label, y1, y2, y3, y4, y5, y6, employer, graduate, target
		FROM outcomes ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.OutcomeRecord
	for rows.Next() {
		var r engine.OutcomeRecord
		years := make([]float64, engine.YearCount)
		if err := rows.Scan(&r.ID, &r.Label,
			&years[0], &years[1], &years[2], &years[3], &years[4], &years[5],
			&r.Employer, &r.Graduate, &r.Target); err != nil {
			return nil, err
		}
		r.Years = years
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceOutcomes atomically discards all outcome rows and writes the given
// ones, appending one audit entry for the actor.
func (db *DB) ReplaceOutcomes(records []engine.OutcomeRecord, actor string) error {
	return db.replaceAll(CategoryOutcome, actor, len(records), "outcomes", func(tx *sql.Tx, now string) error {
		for i, r := range records {
			if len(r.Years) != engine.YearCount {
				return fmt.Errorf("outcome %q: expected %d yearly values, got %d", r.ID, engine.YearCount, len(r.Years))
			}
			if _, err := tx.Exec(`
				INSERT INTO outcomes
				(position, outcome_id, label, y1, y2, y3, y4, y5, y6, employer, graduate, target, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				i, r.ID, r.Label,
				r.Years[0], r.Years[1], r.Years[2], r.Years[3], r.Years[4], r.Years[5],
				r.Employer, r.Graduate, r.Target, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// FetchLicensingExams returns every licensing exam row in stored order.
func (db *DB) FetchLicensingExams() ([]engine.LicensingExamRecord, error) {
	rows, err := db.conn.Query(`
		SELECT label, pass_rate, mean_score, national_avg
		FROM licensing_exams ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.LicensingExamRecord
	for rows.Next() {
		var r engine.LicensingExamRecord
		if err := rows.Scan(&r.Label, &r.PassRate, &r.MeanScore, &r.NationalAvg); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceLicensingExams atomically replaces the licensing exam table.
func (db *DB) ReplaceLicensingExams(records []engine.LicensingExamRecord, actor string) error {
	return db.replaceAll(CategoryLicensingExam, actor, len(records), "licensing_exams", func(tx *sql.Tx, now string) error {
		for i, r := range records {
			if _, err := tx.Exec(`
				INSERT INTO licensing_exams
				(position, label, pass_rate, mean_score, national_avg, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				i, r.Label, r.PassRate, r.MeanScore, r.NationalAvg, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// FetchCourseQuality returns every course quality row in stored order.
func (db *DB) FetchCourseQuality() ([]engine.CourseQualityRecord, error) {
	rows, err := db.conn.Query(`
		SELECT label, clo_achievement, reliability, difficulty, discrimination, pass_rate
		FROM course_quality ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.CourseQualityRecord
	for rows.Next() {
		var r engine.CourseQualityRecord
		if err := rows.Scan(&r.Label, &r.CLOAchievement, &r.Reliability,
			&r.Difficulty, &r.Discrimination, &r.PassRate); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceCourseQuality atomically replaces the course quality table.
func (db *DB) ReplaceCourseQuality(records []engine.CourseQualityRecord, actor string) error {
	return db.replaceAll(CategoryCourseQuality, actor, len(records), "course_quality", func(tx *sql.Tx, now string) error {
		for i, r := range records {
			if _, err := tx.Exec(`
				INSERT INTO course_quality
				(position, label, clo_achievement, reliability, difficulty, discrimination, pass_rate, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				i, r.Label, r.CLOAchievement, r.Reliability, r.Difficulty,
				r.Discrimination, r.PassRate, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// FetchTrends returns every trend row in stored (ascending-year) order.
func (db *DB) FetchTrends() ([]engine.TrendRecord, error) {
	rows, err := db.conn.Query(`
		SELECT year, graduation, licensing_pass, employer, retention
		FROM trends ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []engine.TrendRecord
	for rows.Next() {
		var r engine.TrendRecord
		if err := rows.Scan(&r.Year, &r.Graduation, &r.LicensingPass, &r.Employer, &r.Retention); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// ReplaceTrends atomically replaces the trend table. Rows are stored in the
// order given, which callers keep ascending by year.
func (db *DB) ReplaceTrends(records []engine.TrendRecord, actor string) error {
	return db.replaceAll(CategoryTrend, actor, len(records), "trends", func(tx *sql.Tx, now string) error {
		for i, r := range records {
			if _, err := tx.Exec(`
				INSERT INTO trends
				(position, year, graduation, licensing_pass, employer, retention, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				i, r.Year, r.Graduation, r.LicensingPass, r.Employer, r.Retention, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// LoadSnapshot assembles an engine snapshot from all four categories.
func (db *DB) LoadSnapshot() (engine.Snapshot, error) {
	var s engine.Snapshot
	var err error

	if s.Outcomes, err = db.FetchOutcomes(); err != nil {
		return engine.Snapshot{}, fmt.Errorf("fetching outcomes: %w", err)
	}
	if s.Exams, err = db.FetchLicensingExams(); err != nil {
		return engine.Snapshot{}, fmt.Errorf("fetching licensing exams: %w", err)
	}
	if s.Courses, err = db.FetchCourseQuality(); err != nil {
		return engine.Snapshot{}, fmt.Errorf("fetching course quality: %w", err)
	}
	if s.Trends, err = db.FetchTrends(); err != nil {
		return engine.Snapshot{}, fmt.Errorf("fetching trends: %w", err)
	}
	return s, nil
}

// replaceAll clears one category table and reinserts the given rows inside a
// single transaction, together with the audit entry. The whole replacement
// either commits or rolls back; last write wins.
func (db *DB) replaceAll(category Category, actor string, count int, table string, insert func(tx *sql.Tx, now string) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if err := insert(tx, now); err != nil {
		return fmt.Errorf("writing %s: %w", table, err)
	}

	detail := fmt.Sprintf("replaced %s with %d rows", category, count)
	if _, err := tx.Exec(
		"INSERT INTO audit_log (logged_at, actor, action, detail) VALUES (?, ?, ?, ?)",
		now, actor, "REPLACE_"+string(category), detail); err != nil {
		return fmt.Errorf("appending audit entry: %w", err)
	}

	return tx.Commit()
}
