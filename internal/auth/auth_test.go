package auth

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

type captureSender struct {
	email string
	code  string
}

func (c *captureSender) SendResetCode(email, code string) error {
	c.email = email
	c.code = code
	return nil
}

func testService(t *testing.T) (*Service, *captureSender) {
	t.Helper()
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	sender := &captureSender{}
	return NewService(db, sender), sender
}

func register(t *testing.T, svc *Service, email, password, role string) *store.User {
	t.Helper()
	user, err := svc.Register(email, password, "Test User", role)
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := testService(t)

	user := register(t, svc, "chair@med.edu", "secret123", "CHAIR")
	assert.Equal(t, "CHAIR", user.Role)
	assert.Equal(t, "👑", user.Avatar)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	got, token, err := svc.Login("chair@med.edu", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	require.NotEmpty(t, token)

	sess, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "chair@med.edu", sess.Email)
	assert.Equal(t, "CHAIR", sess.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")

	_, _, err := svc.Login("qa@med.edu", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	svc, _ := testService(t)

	_, _, err := svc.Login("nobody@med.edu", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_DefaultsRoleToFaculty(t *testing.T) {
	svc, _ := testService(t)

	user := register(t, svc, "new@med.edu", "secret123", "")
	assert.Equal(t, "FACULTY", user.Role)
	assert.Equal(t, "🎓", user.Avatar)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := testService(t)

	cases := []struct {
		name     string
		email    string
		password string
		userName string
		role     string
		field    string
	}{
		{"missing email", "", "secret123", "A", "QA", "email"},
		{"missing name", "a@med.edu", "secret123", "", "QA", "name"},
		{"short password", "a@med.edu", "abc", "A", "QA", "password"},
		{"unknown role", "a@med.edu", "secret123", "A", "WIZARD", "role"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.email, tc.password, tc.userName, tc.role)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")

	_, err := svc.Register("QA@med.edu", "another1", "Other", "QA")
	assert.ErrorIs(t, err, store.ErrDuplicateEmail)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, sender := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")

	require.NoError(t, svc.RequestPasswordReset("qa@med.edu"))
	assert.Equal(t, "qa@med.edu", sender.email)
	require.Len(t, sender.code, 6)

	require.NoError(t, svc.ChangePassword("qa@med.edu", sender.code, "fresh-pass"))

	_, _, err := svc.Login("qa@med.edu", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login("qa@med.edu", "fresh-pass")
	assert.NoError(t, err)
}

func TestChangePassword_WrongCode(t *testing.T) {
	svc, sender := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")
	require.NoError(t, svc.RequestPasswordReset("qa@med.edu"))

	wrong := "000000"
	if sender.code == wrong {
		wrong = "000001"
	}
	err := svc.ChangePassword("qa@med.edu", wrong, "fresh-pass")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestChangePassword_CodeIsSingleUse(t *testing.T) {
	svc, sender := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")
	require.NoError(t, svc.RequestPasswordReset("qa@med.edu"))

	require.NoError(t, svc.ChangePassword("qa@med.edu", sender.code, "fresh-pass"))
	err := svc.ChangePassword("qa@med.edu", sender.code, "another-pass")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestChangePassword_ExpiredCode(t *testing.T) {
	svc, sender := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")

	base := time.Now()
	svc.now = func() time.Time { return base }
	require.NoError(t, svc.RequestPasswordReset("qa@med.edu"))

	svc.now = func() time.Time { return base.Add(resetCodeTTL + time.Second) }
	err := svc.ChangePassword("qa@med.edu", sender.code, "fresh-pass")
	assert.ErrorIs(t, err, ErrInvalidResetCode)
}

func TestRequestPasswordReset_UnknownAccount(t *testing.T) {
	svc, _ := testService(t)

	err := svc.RequestPasswordReset("nobody@med.edu")
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestAudit_FailureIsLoggedNotFatal(t *testing.T) {
	db, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	svc := NewService(db, &captureSender{})

	var buf bytes.Buffer
	svc.logger = slog.New(slog.NewTextHandler(&buf, nil))

	register(t, svc, "qa@med.edu", "secret123", "QA")

	// Break the audit table; the login itself must still succeed.
	_, err = db.Conn().Exec("DROP TABLE audit_log")
	require.NoError(t, err)

	_, token, err := svc.Login("qa@med.edu", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.Contains(t, buf.String(), "audit write failed")
	assert.Contains(t, buf.String(), "LOGIN")
}

func TestLogout(t *testing.T) {
	svc, _ := testService(t)
	register(t, svc, "qa@med.edu", "secret123", "QA")

	_, token, err := svc.Login("qa@med.edu", "secret123")
	require.NoError(t, err)

	svc.Logout(token)
	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
