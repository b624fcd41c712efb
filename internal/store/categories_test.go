package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testOutcomes() []engine.OutcomeRecord {
	return []engine.OutcomeRecord{
		{
			ID: "PLO 1", Label: "Medical knowledge",
			Years:    []float64{78, 80, 82, 84, 86, 88},
			Employer: 4.2, Graduate: 4.4, Target: engine.DefaultTarget,
		},
		{
			ID: "PLO 2", Label: "Communication",
			Years:    []float64{70, 72, 71, 74, 73, 75},
			Employer: 3.8, Graduate: 4.0, Target: engine.DefaultTarget,
		},
	}
}

func TestReplaceAndFetchOutcomes(t *testing.T) {
	db := testDB(t)

	want := testOutcomes()
	require.NoError(t, db.ReplaceOutcomes(want, "qa@med.edu"))

	got, err := db.FetchOutcomes()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceOutcomes_DiscardsPreviousRows(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.ReplaceOutcomes(testOutcomes(), "qa@med.edu"))

	replacement := testOutcomes()[:1]
	require.NoError(t, db.ReplaceOutcomes(replacement, "chair@med.edu"))

	got, err := db.FetchOutcomes()
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestReplaceOutcomes_AppendsAuditEntry(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.ReplaceOutcomes(testOutcomes(), "qa@med.edu"))

	entries, err := db.RecentAudit(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "qa@med.edu", entries[0].Actor)
	assert.Equal(t, "REPLACE_outcome", entries[0].Action)
	assert.Contains(t, entries[0].Detail, "2 rows")
}

func TestReplaceOutcomes_ShortYearSliceRollsBack(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.ReplaceOutcomes(testOutcomes(), "qa@med.edu"))

	bad := []engine.OutcomeRecord{{ID: "PLO 9", Label: "broken", Years: []float64{80, 80}}}
	err := db.ReplaceOutcomes(bad, "qa@med.edu")
	require.Error(t, err)

	// The previous rows survive a failed replacement.
	got, err := db.FetchOutcomes()
	require.NoError(t, err)
	assert.Equal(t, testOutcomes(), got)
}

func TestReplaceAndFetchLicensingExams(t *testing.T) {
	db := testDB(t)

	want := []engine.LicensingExamRecord{
		{Label: "NL1 (Year 3)", PassRate: 92, MeanScore: 66, NationalAvg: 85},
		{Label: "NL2 (Year 5)", PassRate: 94, MeanScore: 69, NationalAvg: 87},
	}
	require.NoError(t, db.ReplaceLicensingExams(want, "qa@med.edu"))

	got, err := db.FetchLicensingExams()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceAndFetchCourseQuality(t *testing.T) {
	db := testDB(t)

	want := []engine.CourseQualityRecord{
		{Label: "Anatomy", CLOAchievement: 88, Reliability: 0.82, Difficulty: 0.55, Discrimination: 0.31, PassRate: 94},
	}
	require.NoError(t, db.ReplaceCourseQuality(want, "qa@med.edu"))

	got, err := db.FetchCourseQuality()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReplaceAndFetchTrends_PreservesOrder(t *testing.T) {
	db := testDB(t)

	want := []engine.TrendRecord{
		{Year: "2564", Graduation: 94, LicensingPass: 90, Employer: 4.2, Retention: 88},
		{Year: "2565", Graduation: 95, LicensingPass: 92, Employer: 4.3, Retention: 89},
		{Year: "2566", Graduation: 93, LicensingPass: 91, Employer: 4.1, Retention: 87},
	}
	require.NoError(t, db.ReplaceTrends(want, "qa@med.edu"))

	got, err := db.FetchTrends()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSnapshot_CombinesAllCategories(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.ReplaceOutcomes(testOutcomes(), "seed"))
	require.NoError(t, db.ReplaceLicensingExams([]engine.LicensingExamRecord{
		{Label: "NL1 (Year 3)", PassRate: 92, MeanScore: 66, NationalAvg: 85},
	}, "seed"))
	require.NoError(t, db.ReplaceTrends([]engine.TrendRecord{
		{Year: "2564", Graduation: 94, LicensingPass: 90, Employer: 4.2, Retention: 88},
	}, "seed"))

	s, err := db.LoadSnapshot()
	require.NoError(t, err)
	assert.Len(t, s.Outcomes, 2)
	assert.Len(t, s.Exams, 1)
	assert.Empty(t, s.Courses)
	assert.Len(t, s.Trends, 1)
}

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCategory("bogus")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRecentAudit_NewestFirst(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.AppendAudit("a@med.edu", "LOGIN", "first"))
	require.NoError(t, db.AppendAudit("b@med.edu", "LOGIN", "second"))
	require.NoError(t, db.AppendAudit("c@med.edu", "LOGIN", "third"))

	entries, err := db.RecentAudit(2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "c@med.edu", entries[0].Actor)
	assert.Equal(t, "b@med.edu", entries[1].Actor)
	assert.WithinDuration(t, time.Now(), entries[0].LoggedAt, time.Minute)
}
