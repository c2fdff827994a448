package store

import (
	"database/sql"
	"fmt"

	"github.com/zukunftstag/workshop-server/models"
)

// TeamProgress derives the team's completion flags from submitted data.
// Nothing is stored: deleting a record immediately reopens the station,
// and the quiz flag flips only once all rounds are in.
func TeamProgress(db *sql.DB, sessionID, teamName string) (*models.Progress, error) {
	var p models.Progress
	err := db.QueryRow(`
		SELECT
			EXISTS(SELECT 1 FROM teams WHERE session_id = ? AND team_name = ?),
			EXISTS(SELECT 1 FROM game1_heights WHERE session_id = ? AND team_name = ?),
			EXISTS(SELECT 1 FROM game2_perimeter WHERE session_id = ? AND team_name = ?),
			(SELECT COUNT(*) FROM game3_memory WHERE session_id = ? AND team_name = ?) >= ?,
			EXISTS(SELECT 1 FROM game4_clinical WHERE session_id = ? AND team_name = ?),
			EXISTS(SELECT 1 FROM feedback WHERE session_id = ? AND team_name = ?)
	`,
		sessionID, teamName,
		sessionID, teamName,
		sessionID, teamName,
		sessionID, teamName, models.MemoryTotalRounds,
		sessionID, teamName,
		sessionID, teamName,
	).Scan(&p.TechCheck, &p.Game1, &p.Game2, &p.Game3, &p.Game4, &p.Feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to derive progress: %w", err)
	}

	return &p, nil
}
