package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/roster"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/trial"
)

var favoriteGames = []string{"heights", "perimeter", "memory", "clinical"}

// Populate fills sessionID with generated sample data for teamCount
// roster teams: registrations with random parent/child first names,
// correlated heights, perimeter estimates around the ground truth, quiz
// rounds with a mix of right and wrong answers, clinical records copied
// from the trial assignment, and feedback. Existing rows for the chosen
// teams are overwritten. Returns the number of teams seeded.
//
// Same seed, same roster, same count gives identical data.
func Populate(db *sql.DB, r *roster.Roster, sessionID string, teamCount int, seedVal uint64) (int, error) {
	teams := r.Teams()
	parents := r.ParentNames()
	children := r.ChildNames()
	if len(parents) == 0 || len(children) == 0 {
		return 0, errors.New("seed: empty first-name lists")
	}
	if teamCount <= 0 || teamCount > len(teams) {
		teamCount = len(teams)
	}

	src := rand.NewSource(seedVal)
	rng := rand.New(src)

	picked := make([]string, 0, teamCount)
	for _, i := range rng.Perm(len(teams))[:teamCount] {
		picked = append(picked, teams[i])
	}
	sort.Strings(picked)

	// Parent and child heights are correlated, as they are in real
	// families. Means and covariance follow the workshop's analysis
	// notebook.
	heightDist, ok := distmv.NewNormal(
		[]float64{180, 120},
		mat.NewSymDense(2, []float64{15, 7, 7, 15}),
		src,
	)
	if !ok {
		return 0, errors.New("seed: height covariance not positive definite")
	}
	parentPerim := distuv.Normal{Mu: models.PerimeterGroundTruth * 1.2, Sigma: 5, Src: src}
	childPerim := distuv.Normal{Mu: models.PerimeterGroundTruth * 0.9, Sigma: 8, Src: src}

	for _, team := range picked {
		indication, ok := r.Indication(team)
		if !ok {
			indication = models.IndicationUnknown
		}
		parent := parents[rng.Intn(len(parents))]
		child := children[rng.Intn(len(children))]
		if _, err := store.RegisterTeam(db, sessionID, team, indication, parent, child); err != nil {
			return 0, fmt.Errorf("seed %s: %w", team, err)
		}

		hs := heightDist.Rand(nil)
		err := store.SaveHeights(db, sessionID, team,
			clamp(float64(int(hs[0])), models.HeightMin, models.HeightMax),
			clamp(float64(int(hs[1])), models.HeightMin, models.HeightMax))
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", team, err)
		}

		err = store.SavePerimeter(db, sessionID, team,
			clamp(parentPerim.Rand(), models.PerimeterMin, models.PerimeterMax),
			clamp(childPerim.Rand(), models.PerimeterMin, models.PerimeterMax))
		if err != nil {
			return 0, fmt.Errorf("seed %s: %w", team, err)
		}

		for _, q := range models.MoleculeQuestions() {
			answer := q.Correct
			if rng.Intn(2) == 0 {
				answer = wrongAnswer(rng, q)
			}
			if err := store.SaveMemoryRound(db, sessionID, team, q.Round, answer, q.Correct); err != nil {
				return 0, fmt.Errorf("seed %s round %d: %w", team, q.Round, err)
			}
		}

		view, err := trial.View(db, team)
		switch {
		case errors.Is(err, trial.ErrNoAssignment):
			// No trial row for this team means the generator has not
			// run; the other games are still seeded.
		case err != nil:
			return 0, fmt.Errorf("seed %s: %w", team, err)
		default:
			rec := models.ClinicalRecord{
				TeamName:     team,
				ParentArm:    view.ParentArm,
				ChildArm:     view.ChildArm,
				ParentBefore: view.ParentBefore,
				ParentAfter:  view.ParentAfter,
				ChildBefore:  view.ChildBefore,
				ChildAfter:   view.ChildAfter,
			}
			if err := store.SaveClinical(db, sessionID, rec); err != nil {
				return 0, fmt.Errorf("seed %s: %w", team, err)
			}
		}

		fb := models.SaveFeedbackRequest{
			TeamName:      team,
			OverallRating: models.RatingMin + rng.Intn(models.RatingMax-models.RatingMin+1),
			FavoriteGame:  favoriteGames[rng.Intn(len(favoriteGames))],
			Comments:      "Generated sample entry",
		}
		if err := store.SaveFeedback(db, sessionID, fb); err != nil {
			return 0, fmt.Errorf("seed %s: %w", team, err)
		}
	}

	return len(picked), nil
}

func wrongAnswer(rng *rand.Rand, q models.MemoryQuestion) string {
	wrong := make([]string, 0, len(q.Options)-1)
	for _, opt := range q.Options {
		if opt != q.Correct {
			wrong = append(wrong, opt)
		}
	}
	if len(wrong) == 0 {
		return q.Correct
	}
	return wrong[rng.Intn(len(wrong))]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
