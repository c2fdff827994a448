package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/roster"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/trial"
)

type TeamHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	roster *roster.Roster
}

func NewTeamHandler(db *sql.DB, cfg cliparse.Config, r *roster.Roster) *TeamHandler {
	return &TeamHandler{db: db, cfg: cfg, roster: r}
}

// Register handles POST /teams/register
func (h *TeamHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterTeamRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	req.ParentName = strings.TrimSpace(req.ParentName)
	req.ChildName = strings.TrimSpace(req.ChildName)

	if len(req.TeamName) < models.NameMinLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}
	if len(req.ParentName) < models.NameMinLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "parent_name is required")
		return
	}
	if len(req.ChildName) < models.NameMinLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "child_name is required")
		return
	}

	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register team")
		return
	}

	// Teams outside the printed roster still register; they just get no
	// indication on their card.
	indication, ok := h.roster.Indication(req.TeamName)
	if !ok {
		indication = models.IndicationUnknown
	}

	team, err := store.RegisterTeam(h.db, sessionID, req.TeamName, indication, req.ParentName, req.ChildName)
	if err != nil {
		slog.Error("failed to register team", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register team")
		return
	}

	slog.Info("team registered", "team", team.TeamName, "session", sessionID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterTeamResponse{
		Team:      *team,
		SessionID: sessionID,
	})
}

// Get handles GET /teams/{name}
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamName := r.PathValue("name")

	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to look up team")
		return
	}

	team, err := store.GetTeam(h.db, sessionID, teamName)
	if err == store.ErrTeamNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Team not registered in this session")
		return
	}
	if err != nil {
		slog.Error("failed to look up team", "team", teamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to look up team")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, team)
}

// Progress handles GET /teams/{name}/progress
func (h *TeamHandler) Progress(w http.ResponseWriter, r *http.Request) {
	teamName := r.PathValue("name")

	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to derive progress")
		return
	}

	progress, err := store.TeamProgress(h.db, sessionID, teamName)
	if err != nil {
		slog.Error("failed to derive progress", "team", teamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to derive progress")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, progress)
}

// Clinical handles GET /teams/{name}/clinical. It returns the saved
// trial record if the team already submitted, otherwise the prefill
// derived from the secret assignment.
func (h *TeamHandler) Clinical(w http.ResponseWriter, r *http.Request) {
	teamName := r.PathValue("name")

	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load clinical data")
		return
	}

	rec, err := store.GetClinical(h.db, sessionID, teamName)
	if err == nil {
		middleware.JSONResponse(w, http.StatusOK, models.ClinicalView{
			ParentArm:    rec.ParentArm,
			ChildArm:     rec.ChildArm,
			ParentBefore: rec.ParentBefore,
			ParentAfter:  rec.ParentAfter,
			ChildBefore:  rec.ChildBefore,
			ChildAfter:   rec.ChildAfter,
		})
		return
	}
	if err != store.ErrNoRecord {
		slog.Error("failed to load clinical record", "team", teamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load clinical data")
		return
	}

	view, err := trial.View(h.db, teamName)
	if err == trial.ErrNoAssignment {
		middleware.ErrorResponse(w, http.StatusNotFound, "No trial assignment for this team")
		return
	}
	if err != nil {
		slog.Error("failed to resolve trial assignment", "team", teamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load clinical data")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}
