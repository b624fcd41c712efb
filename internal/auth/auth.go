// Package auth implements account management and session handling for
// the curriculum dashboard: bcrypt password storage, opaque session
// tokens, and a one-time-code password reset flow.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/curriculumwatch/curriculumwatch/internal/store"
)

// Sentinel errors surfaced to the transport layer, which maps them to
// HTTP status codes.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidResetCode   = errors.New("invalid or expired reset code")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// ValidationError reports a rejected registration or password field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// MinPasswordLength is enforced on registration and password change.
const MinPasswordLength = 6

// resetCodeTTL bounds how long a requested reset code stays usable.
const resetCodeTTL = 15 * time.Minute

var roleAvatars = map[string]string{
	"CHAIR":   "👑",
	"FACULTY": "🎓",
	"QA":      "📋",
	"ADMIN":   "⚙️",
}

// DefaultRole is assigned when registration omits a role.
const DefaultRole = "FACULTY"

// CodeSender delivers a password-reset code out of band. The code is
// never included in any API response.
type CodeSender interface {
	SendResetCode(email, code string) error
}

// LogCodeSender writes reset codes to the structured log. It stands in
// for a mail integration in development deployments.
type LogCodeSender struct {
	Logger *slog.Logger
}

func (s LogCodeSender) SendResetCode(email, code string) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("password reset code issued", "email", email, "code", code)
	return nil
}

type resetCode struct {
	code      string
	expiresAt time.Time
}

// Service implements login, registration, and password reset against
// the user store.
type Service struct {
	db     *store.DB
	sender CodeSender
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]Session
	codes    map[string]resetCode

	now func() time.Time
}

// Session identifies an authenticated caller for the lifetime of the
// server process.
type Session struct {
	Token    string    `json:"token"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IssuedAt time.Time `json:"issuedAt"`
}

// NewService wires a Service over the given store. sender must not be
// nil; use LogCodeSender{} when no mail transport is configured.
func NewService(db *store.DB, sender CodeSender) *Service {
	return &Service{
		db:       db,
		sender:   sender,
		logger:   slog.Default(),
		sessions: make(map[string]Session),
		codes:    make(map[string]resetCode),
		now:      time.Now,
	}
}

// audit appends an audit entry. A failed write never fails the calling
// operation, but it is not silent either.
func (s *Service) audit(actor, action, detail string) {
	if err := s.db.AppendAudit(actor, action, detail); err != nil {
		s.logger.Warn("audit write failed", "actor", actor, "action", action, "error", err)
	}
}

// Login verifies the credentials and returns the account plus a fresh
// session token. Unknown emails and wrong passwords are reported
// identically as ErrInvalidCredentials.
func (s *Service) Login(email, password string) (*store.User, string, error) {
	user, err := s.db.GetUserByEmail(email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.db.TouchLastLogin(user.Email); err != nil {
		return nil, "", err
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = Session{Token: token, Email: user.Email, Role: user.Role, IssuedAt: s.now()}
	s.mu.Unlock()

	s.audit(user.Email, "LOGIN", "signed in")
	return user, token, nil
}

// Register creates a new account. The role defaults to FACULTY and
// picks the matching avatar.
func (s *Service) Register(email, password, name, role string) (*store.User, error) {
	email = store.NormalizeEmail(email)
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required"}
	}
	if name = strings.TrimSpace(name); name == "" {
		return nil, &ValidationError{Field: "name", Reason: "required"}
	}
	if len(password) < MinPasswordLength {
		return nil, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}
	role = strings.ToUpper(strings.TrimSpace(role))
	avatar, ok := roleAvatars[role]
	if !ok {
		if role != "" {
			return nil, &ValidationError{Field: "role", Reason: "unknown role"}
		}
		role = DefaultRole
		avatar = roleAvatars[DefaultRole]
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := store.User{
		ID:           "u-" + uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Avatar:       avatar,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.db.CreateUser(user); err != nil {
		return nil, err
	}
	s.audit(email, "REGISTER", "registered with role "+role)
	return &user, nil
}

// RequestPasswordReset issues a six digit code for the account and
// hands it to the configured sender. The caller learns only whether
// the account exists.
func (s *Service) RequestPasswordReset(email string) error {
	user, err := s.db.GetUserByEmail(email)
	if err != nil {
		return err
	}

	code, err := newResetCode()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.codes[user.Email] = resetCode{code: code, expiresAt: s.now().Add(resetCodeTTL)}
	s.mu.Unlock()

	if err := s.sender.SendResetCode(user.Email, code); err != nil {
		return err
	}
	s.audit(user.Email, "RESET_PASSWORD", "reset code requested")
	return nil
}

// ChangePassword verifies the reset code and stores a new hash. The
// code is single use.
func (s *Service) ChangePassword(email, code, newPassword string) error {
	email = store.NormalizeEmail(email)
	if len(newPassword) < MinPasswordLength {
		return &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLength),
		}
	}

	s.mu.Lock()
	pending, ok := s.codes[email]
	if ok && (pending.code != code || s.now().After(pending.expiresAt)) {
		ok = false
	}
	if ok {
		delete(s.codes, email)
	}
	s.mu.Unlock()
	if !ok {
		return ErrInvalidResetCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.db.UpdatePasswordHash(email, string(hash)); err != nil {
		return err
	}
	s.audit(email, "CHANGE_PASSWORD", "password changed")
	return nil
}

// Validate resolves a session token.
func (s *Service) Validate(token string) (Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[token]
	s.mu.Unlock()
	if !ok {
		return Session{}, ErrInvalidSession
	}
	return sess, nil
}

// Logout discards the session token. Unknown tokens are a no-op.
func (s *Service) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// HashPassword is exported for seeding default accounts.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
