package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes. One table per metric
// category plus users and the audit log. The position column preserves the
// row order handed to ReplaceAll.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			position   INTEGER PRIMARY KEY,
			outcome_id TEXT NOT NULL,
			label      TEXT NOT NULL,
			y1         REAL NOT NULL,
			y2         REAL NOT NULL,
			y3         REAL NOT NULL,
			y4         REAL NOT NULL,
			y5         REAL NOT NULL,
			y6         REAL NOT NULL,
			employer   REAL NOT NULL,
			graduate   REAL NOT NULL,
			target     REAL NOT NULL,
			updated_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS licensing_exams (
			position     INTEGER PRIMARY KEY,
			label        TEXT NOT NULL,
			pass_rate    REAL NOT NULL,
			mean_score   REAL NOT NULL,
			national_avg REAL NOT NULL,
			updated_at   TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS course_quality (
			position        INTEGER PRIMARY KEY,
			label           TEXT NOT NULL,
			clo_achievement REAL NOT NULL,
			reliability     REAL NOT NULL,
			difficulty      REAL NOT NULL,
			discrimination  REAL NOT NULL,
			pass_rate       REAL NOT NULL,
			updated_at      TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS trends (
			position       INTEGER PRIMARY KEY,
			year           TEXT NOT NULL,
			graduation     REAL NOT NULL,
			licensing_pass REAL NOT NULL,
			employer       REAL NOT NULL,
			retention      REAL NOT NULL,
			updated_at     TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name          TEXT NOT NULL,
			role          TEXT NOT NULL,
			avatar        TEXT NOT NULL,
			created_at    TEXT NOT NULL,
			last_login    TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS audit_log (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			logged_at TEXT NOT NULL,
			actor     TEXT NOT NULL,
			action    TEXT NOT NULL,
			detail    TEXT
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_logged_at ON audit_log(logged_at)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
