// Package sample provides deterministic demonstration data so a fresh
// install has something to show before real programme data is loaded.
package sample

import (
	"errors"

	"github.com/google/uuid"

	"github.com/curriculumwatch/curriculumwatch/internal/auth"
	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

// Actor is the audit-log identity used for seeded writes.
const Actor = "seed"

// Snapshot returns the demo dataset. The values are fixed so repeated
// seeding and the analysis of the result are reproducible.
func Snapshot() engine.Snapshot {
	return engine.Snapshot{
		Outcomes: []engine.OutcomeRecord{
			outcome("PLO 1", "Ethics and professionalism", 82, 84, 86, 88, 90, 92, 4.5, 4.6),
			outcome("PLO 2", "Medical knowledge", 78, 80, 83, 85, 87, 89, 4.2, 4.3),
			outcome("PLO 3", "Analytical and diagnostic skills", 76, 79, 81, 84, 86, 88, 4.0, 4.2),
			outcome("PLO 4", "Communication", 80, 82, 84, 86, 88, 90, 4.4, 4.5),
			outcome("PLO 5", "Interprofessional teamwork", 77, 80, 82, 85, 87, 90, 4.1, 4.3),
			outcome("PLO 6", "Lifelong learning", 75, 78, 81, 83, 86, 88, 3.9, 4.1),
			outcome("PLO 7", "Community-based practice", 79, 81, 83, 85, 88, 91, 4.3, 4.4),
		},
		Exams: []engine.LicensingExamRecord{
			{Label: "NL1 (Year 3)", PassRate: 91, MeanScore: 66, NationalAvg: 84},
			{Label: "NL2 (Year 5)", PassRate: 94, MeanScore: 70, NationalAvg: 86},
			{Label: "NL3 (Year 6)", PassRate: 96, MeanScore: 72, NationalAvg: 88},
		},
		Courses: []engine.CourseQualityRecord{
			course("Gross Anatomy", 88, 0.84, 0.52, 0.34, 94),
			course("Physiology", 85, 0.81, 0.48, 0.30, 92),
			course("Pharmacology", 82, 0.78, 0.55, 0.28, 90),
			course("Pathology", 86, 0.83, 0.50, 0.32, 93),
			course("Microbiology", 84, 0.80, 0.46, 0.29, 91),
			course("Clinical Medicine I", 89, 0.87, 0.58, 0.38, 95),
			course("Community Medicine", 87, 0.82, 0.44, 0.31, 94),
			course("Pediatrics", 90, 0.88, 0.54, 0.40, 96),
		},
		Trends: []engine.TrendRecord{
			{Year: "2564", Graduation: 92, LicensingPass: 88, Employer: 4.0, Retention: 85},
			{Year: "2565", Graduation: 93, LicensingPass: 90, Employer: 4.1, Retention: 87},
			{Year: "2566", Graduation: 94, LicensingPass: 91, Employer: 4.2, Retention: 88},
			{Year: "2567", Graduation: 95, LicensingPass: 93, Employer: 4.3, Retention: 90},
			{Year: "2568", Graduation: 96, LicensingPass: 94, Employer: 4.4, Retention: 91},
		},
	}
}

// Account describes one default login.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     string
}

// Accounts returns the default logins created by seeding.
func Accounts() []Account {
	return []Account{
		{Email: "chair@med.edu", Password: "chair123", Name: "Programme Chair", Role: "CHAIR"},
		{Email: "faculty@med.edu", Password: "faculty123", Name: "Faculty Member", Role: "FACULTY"},
		{Email: "qa@med.edu", Password: "qa1234", Name: "Quality Assurance Officer", Role: "QA"},
		{Email: "admin@med.edu", Password: "admin123", Name: "System Administrator", Role: "ADMIN"},
	}
}

var avatars = map[string]string{
	"CHAIR":   "👑",
	"FACULTY": "🎓",
	"QA":      "📋",
	"ADMIN":   "⚙️",
}

// Seed writes the demo dataset and default accounts into the store.
// Existing category data is replaced; existing accounts are kept.
func Seed(db *store.DB) error {
	snap := Snapshot()
	if err := db.ReplaceOutcomes(snap.Outcomes, Actor); err != nil {
		return err
	}
	if err := db.ReplaceLicensingExams(snap.Exams, Actor); err != nil {
		return err
	}
	if err := db.ReplaceCourseQuality(snap.Courses, Actor); err != nil {
		return err
	}
	if err := db.ReplaceTrends(snap.Trends, Actor); err != nil {
		return err
	}

	for _, acct := range Accounts() {
		hash, err := auth.HashPassword(acct.Password)
		if err != nil {
			return err
		}
		err = db.CreateUser(store.User{
			ID:           "u-" + uuid.NewString(),
			Email:        acct.Email,
			PasswordHash: hash,
			Name:         acct.Name,
			Role:         acct.Role,
			Avatar:       avatars[acct.Role],
		})
		if err != nil && !errors.Is(err, store.ErrDuplicateEmail) {
			return err
		}
	}
	return nil
}

func outcome(id, label string, y1, y2, y3, y4, y5, y6, employer, graduate float64) engine.OutcomeRecord {
	return engine.OutcomeRecord{
		ID:       id,
		Label:    label,
		Years:    []float64{y1, y2, y3, y4, y5, y6},
		Employer: employer,
		Graduate: graduate,
		Target:   engine.DefaultTarget,
	}
}

func course(label string, clo, reliability, difficulty, discrimination, passRate float64) engine.CourseQualityRecord {
	return engine.CourseQualityRecord{
		Label:          label,
		CLOAchievement: clo,
		Reliability:    reliability,
		Difficulty:     difficulty,
		Discrimination: discrimination,
		PassRate:       passRate,
	}
}
