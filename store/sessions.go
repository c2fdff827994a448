package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zukunftstag/workshop-server/models"
)

// ErrSessionNotFound is returned when an operation names a session
// that was never created.
var ErrSessionNotFound = errors.New("session not found")

// defaultSessions are created at bootstrap. The test session starts
// active so the app works before a facilitator touches the admin panel.
var defaultSessions = []models.Session{
	{SessionID: models.SessionMorning, SessionName: "Vormittags-Session"},
	{SessionID: models.SessionAfternoon, SessionName: "Nachmittags-Session"},
	{SessionID: models.SessionTest, SessionName: "Test-Session", IsActive: true},
}

// EnsureDefaultSessions creates the well-known sessions if they are
// missing and guarantees exactly one session is active afterwards.
// Idempotent: an existing active session is never displaced.
func EnsureDefaultSessions(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, s := range defaultSessions {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO sessions (session_id, session_name, is_active)
			VALUES (?, ?, 0)
		`, s.SessionID, s.SessionName)
		if err != nil {
			return fmt.Errorf("failed to insert session %s: %w", s.SessionID, err)
		}
	}

	var active int
	err = tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE is_active = 1`).Scan(&active)
	if err != nil {
		return fmt.Errorf("failed to count active sessions: %w", err)
	}

	if active == 0 {
		_, err = tx.Exec(`UPDATE sessions SET is_active = 1 WHERE session_id = ?`,
			models.SessionTest)
		if err != nil {
			return fmt.Errorf("failed to activate default session: %w", err)
		}
	}

	return tx.Commit()
}

// CurrentSessionID returns the id of the single active session. If no
// session exists yet (fresh database hit by a request before startup
// bootstrap, or a manually wiped table) the defaults are re-created.
func CurrentSessionID(db *sql.DB) (string, error) {
	var id string
	err := db.QueryRow(`SELECT session_id FROM sessions WHERE is_active = 1`).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to query active session: %w", err)
	}

	if err := EnsureDefaultSessions(db); err != nil {
		return "", err
	}

	err = db.QueryRow(`SELECT session_id FROM sessions WHERE is_active = 1`).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to query active session after bootstrap: %w", err)
	}
	return id, nil
}

// ListSessions returns all sessions, active first, then by creation time.
func ListSessions(db *sql.DB) ([]models.Session, error) {
	rows, err := db.Query(`
		SELECT session_id, session_name, is_active, created_at
		FROM sessions ORDER BY is_active DESC, created_at, session_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.Session{}
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.SessionID, &s.SessionName, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// CreateSession creates (or renames) a session and makes it the active
// one. Creation always switches: a facilitator adding a session wants
// the next teams to land in it.
func CreateSession(db *sql.DB, sessionID, sessionName string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (session_id, session_name, is_active)
		VALUES (?, ?, 0)
		ON CONFLICT(session_id) DO UPDATE SET session_name = excluded.session_name
	`, sessionID, sessionName)
	if err != nil {
		return fmt.Errorf("failed to upsert session: %w", err)
	}

	if err := activate(tx, sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

// SetActiveSession switches the active session. Unknown ids are
// rejected so a typo cannot silently strand new registrations.
func SetActiveSession(db *sql.DB, sessionID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, sessionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	if err := activate(tx, sessionID); err != nil {
		return err
	}
	return tx.Commit()
}

// activate deactivates every session, then activates the given one.
// Runs inside the caller's transaction so the one-active invariant is
// never observable as violated.
func activate(tx *sql.Tx, sessionID string) error {
	if _, err := tx.Exec(`UPDATE sessions SET is_active = 0`); err != nil {
		return fmt.Errorf("failed to deactivate sessions: %w", err)
	}
	if _, err := tx.Exec(`UPDATE sessions SET is_active = 1 WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("failed to activate session: %w", err)
	}
	return nil
}

// sessionTables are the session-scoped tables, in clearing order.
// secret_trial is deliberately absent: assignments survive a reset.
var sessionTables = []string{
	"teams",
	"game1_heights",
	"game2_perimeter",
	"game3_memory",
	"game4_clinical",
	"feedback",
}

// ClearSessionData deletes every record belonging to the session while
// keeping the session row itself. Returns the number of deleted rows.
func ClearSessionData(db *sql.DB, sessionID string) (int64, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE session_id = ?`, sessionID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return 0, ErrSessionNotFound
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, table := range sessionTables {
		res, err := tx.Exec(`DELETE FROM `+table+` WHERE session_id = ?`, sessionID)
		if err != nil {
			return 0, fmt.Errorf("failed to clear %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count deleted rows in %s: %w", table, err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}
