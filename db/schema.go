package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path and applies the pragmas the
// service depends on (WAL for concurrent form submissions, busy_timeout
// so simultaneous writers queue instead of failing).
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sessions: at most one row has is_active = 1 at any time. The store
-- enforces this transactionally; the schema cannot express it.
CREATE TABLE IF NOT EXISTS sessions (
    session_id TEXT PRIMARY KEY,
    session_name TEXT NOT NULL,
    is_active INTEGER NOT NULL DEFAULT 0 CHECK (is_active IN (0, 1)),
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_sessions_active ON sessions(is_active);

-- Teams: identity is (session_id, team_name) so the same roster name can
-- be reused across workshop runs.
CREATE TABLE IF NOT EXISTS teams (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    team_indication TEXT NOT NULL,
    parent_name TEXT NOT NULL,
    child_name TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name)
);

-- Game 1: one row per team per session, replaced on resubmission
CREATE TABLE IF NOT EXISTS game1_heights (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    parent_height REAL NOT NULL,
    child_height REAL NOT NULL,
    submitted_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name)
);

-- Game 2: deltas against the ground truth are denormalized at write time
CREATE TABLE IF NOT EXISTS game2_perimeter (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    parent_estimate REAL NOT NULL,
    child_estimate REAL NOT NULL,
    parent_delta REAL NOT NULL,
    child_delta REAL NOT NULL,
    parent_abs_delta REAL NOT NULL,
    child_abs_delta REAL NOT NULL,
    submitted_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name)
);

-- Game 3: one row per round, overwritten if the round is resubmitted
CREATE TABLE IF NOT EXISTS game3_memory (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    round_number INTEGER NOT NULL CHECK (round_number >= 1),
    correct_answer TEXT NOT NULL,
    team_answer TEXT NOT NULL,
    is_correct INTEGER NOT NULL CHECK (is_correct IN (0, 1)),
    submitted_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name, round_number)
);

-- Game 4: editable copy of the secret assignment for the active session
CREATE TABLE IF NOT EXISTS game4_clinical (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    parent_treatment TEXT NOT NULL CHECK (parent_treatment IN ('placebo', 'medicine')),
    child_treatment TEXT NOT NULL CHECK (child_treatment IN ('placebo', 'medicine')),
    parent_before INTEGER NOT NULL CHECK (parent_before BETWEEN 0 AND 10),
    parent_after INTEGER NOT NULL CHECK (parent_after BETWEEN 0 AND 10),
    child_before INTEGER NOT NULL CHECK (child_before BETWEEN 0 AND 10),
    child_after INTEGER NOT NULL CHECK (child_after BETWEEN 0 AND 10),
    submitted_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name)
);

-- Feedback
CREATE TABLE IF NOT EXISTS feedback (
    session_id TEXT NOT NULL,
    team_name TEXT NOT NULL,
    overall_rating INTEGER NOT NULL CHECK (overall_rating BETWEEN 1 AND 5),
    favorite_game TEXT NOT NULL,
    comments TEXT NOT NULL DEFAULT '',
    submitted_at TEXT NOT NULL DEFAULT (datetime('now')),
    PRIMARY KEY (session_id, team_name)
);

-- Secret trial assignments: session-independent, generated once from the
-- full roster with a fixed seed. Both arms' scores are stored per team.
CREATE TABLE IF NOT EXISTS secret_trial (
    team_name TEXT PRIMARY KEY,
    parent_treatment TEXT NOT NULL CHECK (parent_treatment IN ('placebo', 'medicine')),
    child_treatment TEXT NOT NULL CHECK (child_treatment IN ('placebo', 'medicine')),
    placebo_before INTEGER NOT NULL CHECK (placebo_before BETWEEN 0 AND 10),
    placebo_after INTEGER NOT NULL CHECK (placebo_after BETWEEN 0 AND 10),
    medicine_before INTEGER NOT NULL CHECK (medicine_before BETWEEN 0 AND 10),
    medicine_after INTEGER NOT NULL CHECK (medicine_after BETWEEN 0 AND 10)
);
`
