package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/zukunftstag/workshop-server/models"
)

// ErrTeamNotFound is returned when a team has not registered in the
// given session.
var ErrTeamNotFound = errors.New("team not found")

// RegisterTeam creates or updates a team's registration in the session
// and returns the stored row. Re-registering the same team name
// replaces the parent and child names, which covers the "we typo'd it
// on the tablet" case without a dedicated edit endpoint.
func RegisterTeam(db *sql.DB, sessionID, teamName, indication, parentName, childName string) (*models.Team, error) {
	_, err := db.Exec(`
		INSERT INTO teams (session_id, team_name, team_indication, parent_name, child_name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, team_name) DO UPDATE SET
			team_indication = excluded.team_indication,
			parent_name = excluded.parent_name,
			child_name = excluded.child_name
	`, sessionID, teamName, indication, parentName, childName)
	if err != nil {
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	return GetTeam(db, sessionID, teamName)
}

// GetTeam returns one team's registration, or ErrTeamNotFound.
func GetTeam(db *sql.DB, sessionID, teamName string) (*models.Team, error) {
	var t models.Team
	err := db.QueryRow(`
		SELECT session_id, team_name, team_indication, parent_name, child_name, created_at
		FROM teams WHERE session_id = ? AND team_name = ?
	`, sessionID, teamName).Scan(
		&t.SessionID, &t.TeamName, &t.Indication, &t.ParentName, &t.ChildName, &t.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query team: %w", err)
	}

	return &t, nil
}

// TeamsForSession returns every registered team in the session,
// ordered by team name.
func TeamsForSession(db *sql.DB, sessionID string) ([]models.Team, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, team_indication, parent_name, child_name, created_at
		FROM teams WHERE session_id = ? ORDER BY team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams: %w", err)
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(
			&t.SessionID, &t.TeamName, &t.Indication, &t.ParentName, &t.ChildName, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}

	return teams, rows.Err()
}
