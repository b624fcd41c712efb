package store

import "time"

// AppendAudit records one audit-log entry with the current time.
func (db *DB) AppendAudit(actor, action, detail string) error {
	_, err := db.conn.Exec(
		"INSERT INTO audit_log (logged_at, actor, action, detail) VALUES (?, ?, ?, ?)",
		time.Now().UTC().Format(time.RFC3339), actor, action, detail,
	)
	return err
}

// RecentAudit returns up to limit audit entries, newest first.
func (db *DB) RecentAudit(limit int) ([]AuditEntry, error) {
	rows, err := db.conn.Query(
		"SELECT id, logged_at, actor, action, detail FROM audit_log ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var loggedAt string
		var detail *string
		if err := rows.Scan(&e.ID, &loggedAt, &e.Actor, &e.Action, &detail); err != nil {
			return nil, err
		}
		e.LoggedAt, _ = time.Parse(time.RFC3339, loggedAt)
		if detail != nil {
			e.Detail = *detail
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
