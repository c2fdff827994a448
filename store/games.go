package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/zukunftstag/workshop-server/models"
)

// ErrNoRecord is returned by single-record reads when a team has not
// submitted the game in question.
var ErrNoRecord = errors.New("no record for team")

// SaveHeights stores a team's height measurements, replacing any
// earlier submission in the same session.
func SaveHeights(db *sql.DB, sessionID, teamName string, parentHeight, childHeight float64) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO game1_heights
		(session_id, team_name, parent_height, child_height)
		VALUES (?, ?, ?, ?)
	`, sessionID, teamName, parentHeight, childHeight)
	if err != nil {
		return fmt.Errorf("failed to save heights: %w", err)
	}
	return nil
}

// SavePerimeter stores a team's perimeter estimates. Deltas against the
// ground truth are computed here, once, so ranking never recomputes them.
func SavePerimeter(db *sql.DB, sessionID, teamName string, parentEstimate, childEstimate float64) error {
	parentDelta := parentEstimate - models.PerimeterGroundTruth
	childDelta := childEstimate - models.PerimeterGroundTruth

	_, err := db.Exec(`
		INSERT OR REPLACE INTO game2_perimeter
		(session_id, team_name, parent_estimate, child_estimate,
		 parent_delta, child_delta, parent_abs_delta, child_abs_delta)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, teamName, parentEstimate, childEstimate,
		parentDelta, childDelta, math.Abs(parentDelta), math.Abs(childDelta))
	if err != nil {
		return fmt.Errorf("failed to save perimeter estimates: %w", err)
	}
	return nil
}

// SaveMemoryRound stores one quiz round. Correctness is decided here by
// comparing the submitted answer to the canonical one, case-insensitively
// and ignoring surrounding whitespace. Resubmitting a round overwrites it.
func SaveMemoryRound(db *sql.DB, sessionID, teamName string, round int, teamAnswer, correctAnswer string) error {
	isCorrect := strings.EqualFold(strings.TrimSpace(teamAnswer), correctAnswer)

	_, err := db.Exec(`
		INSERT OR REPLACE INTO game3_memory
		(session_id, team_name, round_number, correct_answer, team_answer, is_correct)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, teamName, round, correctAnswer, teamAnswer, isCorrect)
	if err != nil {
		return fmt.Errorf("failed to save memory round: %w", err)
	}
	return nil
}

// SaveClinical stores a team's filled-in trial record for the session.
func SaveClinical(db *sql.DB, sessionID string, rec models.ClinicalRecord) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO game4_clinical
		(session_id, team_name, parent_treatment, child_treatment,
		 parent_before, parent_after, child_before, child_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, rec.TeamName, rec.ParentArm, rec.ChildArm,
		rec.ParentBefore, rec.ParentAfter, rec.ChildBefore, rec.ChildAfter)
	if err != nil {
		return fmt.Errorf("failed to save clinical record: %w", err)
	}
	return nil
}

// SaveFeedback stores a team's workshop feedback.
func SaveFeedback(db *sql.DB, sessionID string, req models.SaveFeedbackRequest) error {
	_, err := db.Exec(`
		INSERT OR REPLACE INTO feedback
		(session_id, team_name, overall_rating, favorite_game, comments)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, req.TeamName, req.OverallRating, req.FavoriteGame, req.Comments)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// GetClinical returns a team's saved trial record, or ErrNoRecord.
func GetClinical(db *sql.DB, sessionID, teamName string) (*models.ClinicalRecord, error) {
	var r models.ClinicalRecord
	err := db.QueryRow(`
		SELECT session_id, team_name, parent_treatment, child_treatment,
		       parent_before, parent_after, child_before, child_after, submitted_at
		FROM game4_clinical WHERE session_id = ? AND team_name = ?
	`, sessionID, teamName).Scan(
		&r.SessionID, &r.TeamName, &r.ParentArm, &r.ChildArm,
		&r.ParentBefore, &r.ParentAfter, &r.ChildBefore, &r.ChildAfter, &r.SubmittedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNoRecord
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query clinical record: %w", err)
	}

	return &r, nil
}

// HeightsForSession returns all height submissions, ordered by team name.
func HeightsForSession(db *sql.DB, sessionID string) ([]models.HeightsRecord, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, parent_height, child_height, submitted_at
		FROM game1_heights WHERE session_id = ? ORDER BY team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query heights: %w", err)
	}
	defer rows.Close()

	records := []models.HeightsRecord{}
	for rows.Next() {
		var r models.HeightsRecord
		if err := rows.Scan(
			&r.SessionID, &r.TeamName, &r.ParentHeight, &r.ChildHeight, &r.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan heights record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// PerimeterForSession returns all perimeter submissions ordered by the
// parent's absolute delta, closest estimate first.
func PerimeterForSession(db *sql.DB, sessionID string) ([]models.PerimeterRecord, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, parent_estimate, child_estimate,
		       parent_delta, child_delta, parent_abs_delta, child_abs_delta, submitted_at
		FROM game2_perimeter WHERE session_id = ?
		ORDER BY parent_abs_delta, team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query perimeter estimates: %w", err)
	}
	defer rows.Close()

	records := []models.PerimeterRecord{}
	for rows.Next() {
		var r models.PerimeterRecord
		if err := rows.Scan(
			&r.SessionID, &r.TeamName, &r.ParentEstimate, &r.ChildEstimate,
			&r.ParentDelta, &r.ChildDelta, &r.ParentAbsDelta, &r.ChildAbsDelta, &r.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan perimeter record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// MemoryForSession returns all quiz rounds, grouped by team and round.
func MemoryForSession(db *sql.DB, sessionID string) ([]models.MemoryRound, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, round_number, correct_answer, team_answer,
		       is_correct, submitted_at
		FROM game3_memory WHERE session_id = ? ORDER BY team_name, round_number
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory rounds: %w", err)
	}
	defer rows.Close()

	return scanMemoryRounds(rows)
}

// MemoryRoundsForTeam returns one team's quiz rounds in round order.
func MemoryRoundsForTeam(db *sql.DB, sessionID, teamName string) ([]models.MemoryRound, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, round_number, correct_answer, team_answer,
		       is_correct, submitted_at
		FROM game3_memory WHERE session_id = ? AND team_name = ? ORDER BY round_number
	`, sessionID, teamName)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory rounds: %w", err)
	}
	defer rows.Close()

	return scanMemoryRounds(rows)
}

func scanMemoryRounds(rows *sql.Rows) ([]models.MemoryRound, error) {
	rounds := []models.MemoryRound{}
	for rows.Next() {
		var r models.MemoryRound
		if err := rows.Scan(
			&r.SessionID, &r.TeamName, &r.RoundNumber, &r.CorrectAnswer, &r.TeamAnswer,
			&r.IsCorrect, &r.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan memory round: %w", err)
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

// MemoryScores aggregates quiz results per team, best score first.
func MemoryScores(db *sql.DB, sessionID string) ([]models.MemoryScore, error) {
	rows, err := db.Query(`
		SELECT team_name, SUM(is_correct), COUNT(*)
		FROM game3_memory WHERE session_id = ?
		GROUP BY team_name ORDER BY SUM(is_correct) DESC, team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query memory scores: %w", err)
	}
	defer rows.Close()

	scores := []models.MemoryScore{}
	for rows.Next() {
		var s models.MemoryScore
		if err := rows.Scan(&s.TeamName, &s.Correct, &s.Rounds); err != nil {
			return nil, fmt.Errorf("failed to scan memory score: %w", err)
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}

// ClinicalForSession returns all filled-in trial records, by team name.
func ClinicalForSession(db *sql.DB, sessionID string) ([]models.ClinicalRecord, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, parent_treatment, child_treatment,
		       parent_before, parent_after, child_before, child_after, submitted_at
		FROM game4_clinical WHERE session_id = ? ORDER BY team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clinical records: %w", err)
	}
	defer rows.Close()

	records := []models.ClinicalRecord{}
	for rows.Next() {
		var r models.ClinicalRecord
		if err := rows.Scan(
			&r.SessionID, &r.TeamName, &r.ParentArm, &r.ChildArm,
			&r.ParentBefore, &r.ParentAfter, &r.ChildBefore, &r.ChildAfter, &r.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan clinical record: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// FeedbackForSession returns all feedback entries, by team name.
func FeedbackForSession(db *sql.DB, sessionID string) ([]models.Feedback, error) {
	rows, err := db.Query(`
		SELECT session_id, team_name, overall_rating, favorite_game, comments, submitted_at
		FROM feedback WHERE session_id = ? ORDER BY team_name
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	entries := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(
			&f.SessionID, &f.TeamName, &f.OverallRating, &f.FavoriteGame, &f.Comments, &f.SubmittedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		entries = append(entries, f)
	}

	return entries, rows.Err()
}

// SubmissionCounts returns per-game submission counts for the session's
// dashboard header.
func SubmissionCounts(db *sql.DB, sessionID string) (map[string]int, error) {
	counts := map[string]int{}
	queries := map[string]string{
		"heights":   `SELECT COUNT(*) FROM game1_heights WHERE session_id = ?`,
		"perimeter": `SELECT COUNT(*) FROM game2_perimeter WHERE session_id = ?`,
		"memory":    `SELECT COUNT(DISTINCT team_name) FROM game3_memory WHERE session_id = ?`,
		"clinical":  `SELECT COUNT(*) FROM game4_clinical WHERE session_id = ?`,
		"feedback":  `SELECT COUNT(*) FROM feedback WHERE session_id = ?`,
	}

	for name, q := range queries {
		var n int
		if err := db.QueryRow(q, sessionID).Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to count %s submissions: %w", name, err)
		}
		counts[name] = n
	}

	return counts, nil
}

// RepairMemoryAnswers re-derives correct_answer and is_correct for every
// stored quiz round across ALL sessions from the canonical answer key.
// This is the recovery path for rows written while the key was wrong.
func RepairMemoryAnswers(db *sql.DB) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, q := range models.MoleculeQuestions() {
		res, err := tx.Exec(`
			UPDATE game3_memory
			SET correct_answer = ?,
			    is_correct = (UPPER(TRIM(team_answer)) = ?)
			WHERE round_number = ?
			  AND (correct_answer <> ?
			       OR is_correct <> (UPPER(TRIM(team_answer)) = ?))
		`, q.Correct, q.Correct, q.Round, q.Correct, q.Correct)
		if err != nil {
			return 0, fmt.Errorf("failed to repair round %d: %w", q.Round, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count repaired rows: %w", err)
		}
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}
