package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculumwatch/curriculumwatch/internal/engine"
	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

func TestSnapshot_IsValidAndHealthy(t *testing.T) {
	snap := Snapshot()
	require.NoError(t, engine.Validate(snap))

	assert.Len(t, snap.Outcomes, 7)
	assert.Len(t, snap.Exams, 3)
	assert.Len(t, snap.Courses, 8)
	assert.Len(t, snap.Trends, 5)

	// The demo programme evaluates clean: no findings at default thresholds.
	result, err := engine.NewEvaluator(engine.DefaultThresholds()).Evaluate(snap)
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.GreaterOrEqual(t, result.OverallScore, 80.0)
}

func TestSeed(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Seed(db))

	snap, err := db.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, Snapshot(), snap)

	for _, acct := range Accounts() {
		u, err := db.GetUserByEmail(acct.Email)
		require.NoError(t, err)
		assert.Equal(t, acct.Role, u.Role)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Seed(db))
	require.NoError(t, Seed(db))

	snap, err := db.LoadSnapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Outcomes, 7)
}
