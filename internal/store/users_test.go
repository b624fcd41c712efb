package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	db := testDB(t)

	u := User{
		ID:           "u-1",
		Email:        "chair@med.edu",
		PasswordHash: "$2a$10$notarealhash",
		Name:         "Programme Chair",
		Role:         "CHAIR",
		Avatar:       "C",
	}
	require.NoError(t, db.CreateUser(u))

	got, err := db.GetUserByEmail("chair@med.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, u.PasswordHash, got.PasswordHash)
	assert.Equal(t, u.Role, got.Role)
	assert.True(t, got.LastLogin.IsZero())
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateUser(User{ID: "u-1", Email: "QA@Med.edu", PasswordHash: "h", Name: "QA", Role: "QA"}))

	got, err := db.GetUserByEmail("qa@med.edu")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateUser(User{ID: "u-1", Email: "qa@med.edu", PasswordHash: "h", Name: "QA", Role: "QA"}))

	err := db.CreateUser(User{ID: "u-2", Email: "qa@med.edu", PasswordHash: "h2", Name: "QA Two", Role: "QA"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetUserByEmail("nobody@med.edu")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateUser(User{ID: "u-1", Email: "qa@med.edu", PasswordHash: "h", Name: "QA", Role: "QA"}))
	require.NoError(t, db.TouchLastLogin("qa@med.edu"))

	got, err := db.GetUserByEmail("qa@med.edu")
	require.NoError(t, err)
	assert.False(t, got.LastLogin.IsZero())
}

func TestUpdatePasswordHash(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.CreateUser(User{ID: "u-1", Email: "qa@med.edu", PasswordHash: "old", Name: "QA", Role: "QA"}))
	require.NoError(t, db.UpdatePasswordHash("qa@med.edu", "new"))

	got, err := db.GetUserByEmail("qa@med.edu")
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	assert.ErrorIs(t, db.UpdatePasswordHash("nobody@med.edu", "x"), ErrUserNotFound)
}
