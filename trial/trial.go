package trial

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zukunftstag/workshop-server/models"
)

// ErrNoAssignment is returned when a team has no secret trial row,
// i.e. the team was not part of the roster at generation time.
var ErrNoAssignment = errors.New("no trial assignment for team")

// Generate produces the hidden placebo/medicine assignment for every
// roster team and persists it, session-independent, keyed by team name.
//
// The same seed and the same team order produce identical rows, which is
// what allows team cards to be printed before the first session exists.
// Re-running overwrites each row with the same values.
func Generate(db *sql.DB, teams []string, seed uint64) error {
	n := len(teams)
	if n == 0 {
		return errors.New("empty team roster")
	}

	src := rand.NewSource(seed)
	rng := rand.New(src)
	placeboEffect := distuv.Normal{Mu: 0, Sigma: 1, Src: src}
	medicineEffect := distuv.Normal{Mu: 3, Sigma: 1, Src: src}

	// Draw order is part of the determinism contract: placebo scores for
	// the whole roster first, then medicine scores, then the partition.
	placeboBefore := make([]int, n)
	placeboAfter := make([]int, n)
	for i := range teams {
		placeboBefore[i] = drawBefore(rng)
	}
	for i := range teams {
		placeboAfter[i] = clampScore(placeboBefore[i] - int(placeboEffect.Rand()))
	}

	medicineBefore := make([]int, n)
	medicineAfter := make([]int, n)
	for i := range teams {
		medicineBefore[i] = drawBefore(rng)
	}
	for i := range teams {
		medicineAfter[i] = clampScore(medicineBefore[i] - int(medicineEffect.Rand()))
	}

	// Half the teams (rounded down) get a placebo parent; the child arm
	// is always the mirror of the parent arm.
	parentPlacebo := make(map[int]bool, n/2)
	for _, idx := range rng.Perm(n)[:n/2] {
		parentPlacebo[idx] = true
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, team := range teams {
		parentArm, childArm := models.ArmMedicine, models.ArmPlacebo
		if parentPlacebo[i] {
			parentArm, childArm = models.ArmPlacebo, models.ArmMedicine
		}

		_, err = tx.Exec(`
			INSERT OR REPLACE INTO secret_trial
			(team_name, parent_treatment, child_treatment,
			 placebo_before, placebo_after, medicine_before, medicine_after)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, team, parentArm, childArm,
			placeboBefore[i], placeboAfter[i], medicineBefore[i], medicineAfter[i])
		if err != nil {
			return fmt.Errorf("failed to insert assignment for %s: %w", team, err)
		}
	}

	return tx.Commit()
}

// drawBefore draws a starting pain score uniformly from [5, 10].
func drawBefore(rng *rand.Rand) int {
	return 5 + rng.Intn(6)
}

func clampScore(v int) int {
	if v < models.PainScoreMin {
		return models.PainScoreMin
	}
	if v > models.PainScoreMax {
		return models.PainScoreMax
	}
	return v
}

// Assignment returns a team's raw secret row, or ErrNoAssignment.
func Assignment(db *sql.DB, teamName string) (*models.TrialAssignment, error) {
	var a models.TrialAssignment
	err := db.QueryRow(`
		SELECT team_name, parent_treatment, child_treatment,
		       placebo_before, placebo_after, medicine_before, medicine_after
		FROM secret_trial WHERE team_name = ?
	`, teamName).Scan(
		&a.TeamName, &a.ParentArm, &a.ChildArm,
		&a.PlaceboBefore, &a.PlaceboAfter, &a.MedicineBefore, &a.MedicineAfter,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNoAssignment
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query trial assignment: %w", err)
	}

	return &a, nil
}

// View resolves a team's assignment to the values for its actual arms.
func View(db *sql.DB, teamName string) (*models.ClinicalView, error) {
	a, err := Assignment(db, teamName)
	if err != nil {
		return nil, err
	}

	v := models.ClinicalView{ParentArm: a.ParentArm, ChildArm: a.ChildArm}
	v.ParentBefore, v.ParentAfter = armValues(a, a.ParentArm)
	v.ChildBefore, v.ChildAfter = armValues(a, a.ChildArm)
	return &v, nil
}

func armValues(a *models.TrialAssignment, arm string) (before, after int) {
	if arm == models.ArmPlacebo {
		return a.PlaceboBefore, a.PlaceboAfter
	}
	return a.MedicineBefore, a.MedicineAfter
}

// All returns every secret assignment ordered by team name, for the
// facilitator's secret-data view.
func All(db *sql.DB) ([]models.TrialAssignment, error) {
	rows, err := db.Query(`
		SELECT team_name, parent_treatment, child_treatment,
		       placebo_before, placebo_after, medicine_before, medicine_after
		FROM secret_trial ORDER BY team_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query trial assignments: %w", err)
	}
	defer rows.Close()

	assignments := []models.TrialAssignment{}
	for rows.Next() {
		var a models.TrialAssignment
		if err := rows.Scan(
			&a.TeamName, &a.ParentArm, &a.ChildArm,
			&a.PlaceboBefore, &a.PlaceboAfter, &a.MedicineBefore, &a.MedicineAfter,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trial assignment: %w", err)
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}
