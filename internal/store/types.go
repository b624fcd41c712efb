// Package store provides SQLite persistence for curriculum metric categories,
// user accounts, and the audit log.
package store

import (
	"errors"
	"fmt"
	"time"
)

// Category names a metric table. Each category is read and replaced as a
// whole; there are no row-level operations.
type Category string

const (
	CategoryOutcome       Category = "outcome"
	CategoryLicensingExam Category = "licensingExam"
	CategoryCourseQuality Category = "courseQuality"
	CategoryTrend         Category = "trend"
)

// Categories lists every known category in a fixed order.
var Categories = []Category{
	CategoryOutcome,
	CategoryLicensingExam,
	CategoryCourseQuality,
	CategoryTrend,
}

// ErrUnknownCategory is returned for a category name the store does not know.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory validates a category name.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// User is one account row.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitzero"`
}

// AuditEntry is one audit-log row. Entries are append-only.
type AuditEntry struct {
	ID       int64     `json:"id"`
	LoggedAt time.Time `json:"logged_at"`
	Actor    string    `json:"actor"`
	Action   string    `json:"action"`
	Detail   string    `json:"detail,omitempty"`
}
