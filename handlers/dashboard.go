package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/store"
)

// perimeterWinnerCount is how many podium places the closing ceremony
// announces.
const perimeterWinnerCount = 3

type DashboardHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDashboardHandler(db *sql.DB, cfg cliparse.Config) *DashboardHandler {
	return &DashboardHandler{db: db, cfg: cfg}
}

// Dashboard handles GET /admin/dashboard. It aggregates everything the
// facilitator shows during the closing ceremony for one session.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		var err error
		sessionID, err = store.CurrentSessionID(h.db)
		if err != nil {
			slog.Error("failed to resolve active session", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve session")
			return
		}
	}

	teams, err := store.TeamsForSession(h.db, sessionID)
	if err != nil {
		slog.Error("failed to load teams", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	counts, err := store.SubmissionCounts(h.db, sessionID)
	if err != nil {
		slog.Error("failed to count submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	heights, err := store.HeightsForSession(h.db, sessionID)
	if err != nil {
		slog.Error("failed to load heights", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	perimeter, err := store.PerimeterForSession(h.db, sessionID)
	if err != nil {
		slog.Error("failed to load perimeter records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	memory, err := store.MemoryScores(h.db, sessionID)
	if err != nil {
		slog.Error("failed to load memory scores", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	clinical, err := store.ClinicalForSession(h.db, sessionID)
	if err != nil {
		slog.Error("failed to load clinical records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}

	parentHeights := make([]float64, 0, len(heights))
	childHeights := make([]float64, 0, len(heights))
	for _, rec := range heights {
		parentHeights = append(parentHeights, rec.ParentHeight)
		childHeights = append(childHeights, rec.ChildHeight)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		SessionID:        sessionID,
		TeamsRegistered:  len(teams),
		Submissions:      counts,
		ParentHeights:    summarize(parentHeights),
		ChildHeights:     summarize(childHeights),
		PerimeterWinners: perimeterWinners(perimeter, teams),
		MemoryScores:     memory,
		ClinicalOutcomes: armOutcomes(clinical),
	})
}

// summarize computes descriptive statistics over a sample. An empty
// sample yields the zero value rather than NaNs, which keeps the JSON
// encodable.
func summarize(values []float64) models.ValueStats {
	if len(values) == 0 {
		return models.ValueStats{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	s := models.ValueStats{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
	if len(sorted) > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// perimeterWinners flattens each team's two estimates into individual
// entries and ranks them by stored distance to the true course length.
func perimeterWinners(records []models.PerimeterRecord, teams []models.Team) []models.PerimeterWinner {
	names := make(map[string]models.Team, len(teams))
	for _, t := range teams {
		names[t.TeamName] = t
	}

	entries := make([]models.PerimeterWinner, 0, len(records)*2)
	for _, rec := range records {
		team := names[rec.TeamName]
		entries = append(entries,
			models.PerimeterWinner{
				TeamName:   rec.TeamName,
				PersonName: team.ParentName,
				Role:       "parent",
				Estimate:   rec.ParentEstimate,
				AbsDelta:   rec.ParentAbsDelta,
			},
			models.PerimeterWinner{
				TeamName:   rec.TeamName,
				PersonName: team.ChildName,
				Role:       "child",
				Estimate:   rec.ChildEstimate,
				AbsDelta:   rec.ChildAbsDelta,
			},
		)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AbsDelta < entries[j].AbsDelta
	})

	if len(entries) > perimeterWinnerCount {
		entries = entries[:perimeterWinnerCount]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// armOutcomes aggregates before/after pain scores per treatment arm,
// pooling parents and children. This is the reveal moment: the medicine
// arm's mean drop against the placebo arm's.
func armOutcomes(records []models.ClinicalRecord) []models.ArmOutcome {
	type sample struct {
		before []float64
		after  []float64
	}
	arms := map[string]*sample{
		models.ArmPlacebo:  {},
		models.ArmMedicine: {},
	}

	for _, rec := range records {
		if s, ok := arms[rec.ParentArm]; ok {
			s.before = append(s.before, float64(rec.ParentBefore))
			s.after = append(s.after, float64(rec.ParentAfter))
		}
		if s, ok := arms[rec.ChildArm]; ok {
			s.before = append(s.before, float64(rec.ChildBefore))
			s.after = append(s.after, float64(rec.ChildAfter))
		}
	}

	outcomes := []models.ArmOutcome{}
	for _, arm := range []string{models.ArmPlacebo, models.ArmMedicine} {
		s := arms[arm]
		o := models.ArmOutcome{Arm: arm, N: len(s.before)}
		if o.N > 0 {
			o.MeanBefore = stat.Mean(s.before, nil)
			o.MeanAfter = stat.Mean(s.after, nil)
			o.MeanDrop = o.MeanBefore - o.MeanAfter
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}
