package store

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ErrDuplicateEmail is returned when creating a user whose email exists.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrUserNotFound is returned when no user matches the given email.
var ErrUserNotFound = errors.New("user not found")

// NormalizeEmail lowercases and trims an email address. All lookups and
// writes go through it so that case never splits an identity.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser inserts a new account row.
func (db *DB) CreateUser(u User) error {
	email := NormalizeEmail(u.Email)

	var exists int
	if err := db.conn.QueryRow("SELECT COUNT(1) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return ErrDuplicateEmail
	}

	_, err := db.conn.Exec(`
		INSERT INTO users (id, email, password_hash, name, role, avatar, created_at, last_login)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, email, u.PasswordHash, u.Name, u.Role, u.Avatar,
		u.CreatedAt.UTC().Format(time.RFC3339), "",
	)
	return err
}

// GetUserByEmail returns the account for an email, or ErrUserNotFound.
func (db *DB) GetUserByEmail(email string) (*User, error) {
	row := db.conn.QueryRow(`
		SELECT id, email, password_hash, name, role, avatar, created_at, last_login
		FROM users WHERE email = ?`, NormalizeEmail(email))

	var u User
	var createdAt, lastLogin string
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Avatar, &createdAt, &lastLogin)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if lastLogin != "" {
		u.LastLogin, _ = time.Parse(time.RFC3339, lastLogin)
	}
	return &u, nil
}

// TouchLastLogin stamps the user's last successful login time.
func (db *DB) TouchLastLogin(email string) error {
	_, err := db.conn.Exec(
		"UPDATE users SET last_login = ? WHERE email = ?",
		time.Now().UTC().Format(time.RFC3339), NormalizeEmail(email),
	)
	return err
}

// UpdatePasswordHash replaces the stored hash for the given email.
func (db *DB) UpdatePasswordHash(email, hash string) error {
	result, err := db.conn.Exec(
		"UPDATE users SET password_hash = ? WHERE email = ?",
		hash, NormalizeEmail(email),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}
