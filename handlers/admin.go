package handlers

import (
	"database/sql"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/roster"
	"github.com/zukunftstag/workshop-server/seed"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/trial"
)

type AdminHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	roster *roster.Roster
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config, r *roster.Roster) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg, roster: r}
}

// sessionFromRequest resolves the session an admin read targets: the
// session_id query parameter if present, otherwise the active session.
func (h *AdminHandler) sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	if requested := r.URL.Query().Get("session_id"); requested != "" {
		return requested, true
	}

	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve session")
		return "", false
	}
	return sessionID, true
}

// ListSessions handles GET /admin/sessions
func (h *AdminHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := store.ListSessions(h.db)
	if err != nil {
		slog.Error("failed to list sessions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sessions)
}

// CreateSession handles POST /admin/sessions
func (h *AdminHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	req.SessionName = strings.TrimSpace(req.SessionName)
	if req.SessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}
	if req.SessionName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_name is required")
		return
	}

	if err := store.CreateSession(h.db, req.SessionID, req.SessionName); err != nil {
		slog.Error("failed to create session", "session", req.SessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session", req.SessionID)
	middleware.JSONResponse(w, http.StatusCreated, models.SaveResponse{Saved: true})
}

// ActivateSession handles POST /admin/sessions/{id}/activate
func (h *AdminHandler) ActivateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	err := store.SetActiveSession(h.db, sessionID)
	if err == store.ErrSessionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown session")
		return
	}
	if err != nil {
		slog.Error("failed to activate session", "session", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to activate session")
		return
	}

	slog.Info("session activated", "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

// ClearSession handles POST /admin/sessions/{id}/clear
func (h *AdminHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	deleted, err := store.ClearSessionData(h.db, sessionID)
	if err == store.ErrSessionNotFound {
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown session")
		return
	}
	if err != nil {
		slog.Error("failed to clear session", "session", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear session")
		return
	}

	slog.Info("session cleared", "session", sessionID, "rows_deleted", deleted)
	middleware.JSONResponse(w, http.StatusOK, models.RepairResponse{RowsUpdated: deleted})
}

// Export handles GET /admin/export/{table}, streaming the table as CSV.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	sessionID, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	records, err := store.ExportTable(h.db, table, sessionID)
	if err == store.ErrUnknownTable {
		middleware.ErrorResponse(w, http.StatusNotFound,
			"Unknown table; exportable: "+strings.Join(store.ExportableTables(), ", "))
		return
	}
	if err != nil {
		slog.Error("failed to export table", "table", table, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export table")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+table+`.csv"`)
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		slog.Error("failed to write CSV", "table", table, "error", err)
	}
}

// ExportAll handles GET /admin/export, a JSON dump of every exportable
// table for full-session backups.
func (h *AdminHandler) ExportAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	dump, err := store.ExportSession(h.db, sessionID)
	if err != nil {
		slog.Error("failed to export session", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to export session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, dump)
}

// GamesData handles GET /admin/games/{game}, the facilitator's raw view
// of one game's submissions.
func (h *AdminHandler) GamesData(w http.ResponseWriter, r *http.Request) {
	game := r.PathValue("game")

	sessionID, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var data interface{}
	var err error
	switch game {
	case "teams":
		data, err = store.TeamsForSession(h.db, sessionID)
	case "heights":
		data, err = store.HeightsForSession(h.db, sessionID)
	case "perimeter":
		data, err = store.PerimeterForSession(h.db, sessionID)
	case "memory":
		data, err = store.MemoryForSession(h.db, sessionID)
	case "clinical":
		data, err = store.ClinicalForSession(h.db, sessionID)
	case "feedback":
		data, err = store.FeedbackForSession(h.db, sessionID)
	default:
		middleware.ErrorResponse(w, http.StatusNotFound, "Unknown game")
		return
	}

	if err != nil {
		slog.Error("failed to load game data", "game", game, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load game data")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, data)
}

// Trial handles GET /admin/trial, the secret-data view. This is the
// only place assignments leave the server in bulk, and it sits behind
// the admin password.
func (h *AdminHandler) Trial(w http.ResponseWriter, r *http.Request) {
	assignments, err := trial.All(h.db)
	if err != nil {
		slog.Error("failed to load trial assignments", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load trial data")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, assignments)
}

// TeamCards handles GET /admin/teamcards, the data feed for printing
// table cards. Roster order is preserved so cards come out in the order
// the organizers wrote the file.
func (h *AdminHandler) TeamCards(w http.ResponseWriter, r *http.Request) {
	teams := h.roster.Teams()
	cards := make([]models.TeamCard, 0, len(teams))
	for _, name := range teams {
		indication, _ := h.roster.Indication(name)
		cards = append(cards, models.TeamCard{
			TeamName:   name,
			Indication: indication,
			LandingURL: h.cfg.BaseURL,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, cards)
}

// RepairMemory handles POST /admin/memory/repair
func (h *AdminHandler) RepairMemory(w http.ResponseWriter, r *http.Request) {
	updated, err := store.RepairMemoryAnswers(h.db)
	if err != nil {
		slog.Error("failed to repair memory answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to repair answers")
		return
	}

	slog.Info("memory answers repaired", "rows_updated", updated)
	middleware.JSONResponse(w, http.StatusOK, models.RepairResponse{RowsUpdated: updated})
}

// Seed handles POST /admin/seed
func (h *AdminHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req models.SeedRequest
	if r.ContentLength != 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	sessionID, ok := h.sessionFromRequest(w, r)
	if !ok {
		return
	}

	seeded, err := seed.Populate(h.db, h.roster, sessionID, req.TeamCount, h.cfg.TrialSeed)
	if err != nil {
		slog.Error("failed to seed sample data", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to seed sample data")
		return
	}

	slog.Info("sample data seeded", "session_id", sessionID, "teams", seeded)
	middleware.JSONResponse(w, http.StatusOK, models.SeedResponse{
		SessionID:   sessionID,
		TeamsSeeded: seeded,
	})
}
