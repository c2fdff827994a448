package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/trial"
)

type GameHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewGameHandler(db *sql.DB, cfg cliparse.Config) *GameHandler {
	return &GameHandler{db: db, cfg: cfg}
}

// activeSession resolves the session once per request so a mid-request
// switch by the facilitator cannot split a team's writes.
func (h *GameHandler) activeSession(w http.ResponseWriter) (string, bool) {
	sessionID, err := store.CurrentSessionID(h.db)
	if err != nil {
		slog.Error("failed to resolve active session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve session")
		return "", false
	}
	return sessionID, true
}

// SaveHeights handles POST /games/heights
func (h *GameHandler) SaveHeights(w http.ResponseWriter, r *http.Request) {
	var req models.SaveHeightsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}
	if !heightValid(req.ParentHeight) || !heightValid(req.ChildHeight) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("heights must be between %.0f and %.0f cm", models.HeightMin, models.HeightMax))
		return
	}

	sessionID, ok := h.activeSession(w)
	if !ok {
		return
	}

	if err := store.SaveHeights(h.db, sessionID, req.TeamName, req.ParentHeight, req.ChildHeight); err != nil {
		slog.Error("failed to save heights", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save heights")
		return
	}

	slog.Info("heights saved", "team", req.TeamName, "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

// SavePerimeter handles POST /games/perimeter
func (h *GameHandler) SavePerimeter(w http.ResponseWriter, r *http.Request) {
	var req models.SavePerimeterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}
	if !perimeterValid(req.ParentEstimate) || !perimeterValid(req.ChildEstimate) {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("estimates must be between %.0f and %.0f meters", models.PerimeterMin, models.PerimeterMax))
		return
	}

	sessionID, ok := h.activeSession(w)
	if !ok {
		return
	}

	if err := store.SavePerimeter(h.db, sessionID, req.TeamName, req.ParentEstimate, req.ChildEstimate); err != nil {
		slog.Error("failed to save perimeter estimates", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save estimates")
		return
	}

	slog.Info("perimeter estimates saved", "team", req.TeamName, "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

// SaveMemory handles POST /games/memory. The canonical answer is
// resolved server-side from the round number; clients never see it.
func (h *GameHandler) SaveMemory(w http.ResponseWriter, r *http.Request) {
	var req models.SaveMemoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}

	question, ok := models.QuestionForRound(req.RoundNumber)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("round_number must be between 1 and %d", models.MemoryTotalRounds))
		return
	}
	if strings.TrimSpace(req.TeamAnswer) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_answer is required")
		return
	}

	sessionID, ok := h.activeSession(w)
	if !ok {
		return
	}

	err := store.SaveMemoryRound(h.db, sessionID, req.TeamName, req.RoundNumber, req.TeamAnswer, question.Correct)
	if err != nil {
		slog.Error("failed to save memory round", "team", req.TeamName, "round", req.RoundNumber, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save answer")
		return
	}

	slog.Info("memory round saved", "team", req.TeamName, "round", req.RoundNumber, "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

// MemoryQuestions handles GET /games/memory/questions. Correct answers
// are excluded from serialization.
func (h *GameHandler) MemoryQuestions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"total_rounds": models.MemoryTotalRounds,
		"questions":    models.MoleculeQuestions(),
	})
}

// SaveClinical handles POST /games/clinical. Scores left out of the
// request are filled from the team's secret assignment, so the form can
// submit only what the participants actually measured.
func (h *GameHandler) SaveClinical(w http.ResponseWriter, r *http.Request) {
	var req models.SaveClinicalRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}
	for _, score := range []*int{req.ParentBefore, req.ParentAfter, req.ChildBefore, req.ChildAfter} {
		if score != nil && (*score < models.PainScoreMin || *score > models.PainScoreMax) {
			middleware.ErrorResponse(w, http.StatusBadRequest,
				fmt.Sprintf("pain scores must be between %d and %d", models.PainScoreMin, models.PainScoreMax))
			return
		}
	}

	view, err := trial.View(h.db, req.TeamName)
	if err == trial.ErrNoAssignment {
		middleware.ErrorResponse(w, http.StatusNotFound, "No trial assignment for this team")
		return
	}
	if err != nil {
		slog.Error("failed to resolve trial assignment", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save trial record")
		return
	}

	rec := models.ClinicalRecord{
		TeamName:     req.TeamName,
		ParentArm:    view.ParentArm,
		ChildArm:     view.ChildArm,
		ParentBefore: override(view.ParentBefore, req.ParentBefore),
		ParentAfter:  override(view.ParentAfter, req.ParentAfter),
		ChildBefore:  override(view.ChildBefore, req.ChildBefore),
		ChildAfter:   override(view.ChildAfter, req.ChildAfter),
	}

	sessionID, ok := h.activeSession(w)
	if !ok {
		return
	}

	if err := store.SaveClinical(h.db, sessionID, rec); err != nil {
		slog.Error("failed to save clinical record", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save trial record")
		return
	}

	slog.Info("clinical record saved", "team", req.TeamName, "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

// SaveFeedback handles POST /feedback
func (h *GameHandler) SaveFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.SaveFeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.TeamName = strings.TrimSpace(req.TeamName)
	if req.TeamName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "team_name is required")
		return
	}
	if req.OverallRating < models.RatingMin || req.OverallRating > models.RatingMax {
		middleware.ErrorResponse(w, http.StatusBadRequest,
			fmt.Sprintf("overall_rating must be between %d and %d", models.RatingMin, models.RatingMax))
		return
	}

	sessionID, ok := h.activeSession(w)
	if !ok {
		return
	}

	if err := store.SaveFeedback(h.db, sessionID, req); err != nil {
		slog.Error("failed to save feedback", "team", req.TeamName, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	slog.Info("feedback saved", "team", req.TeamName, "session", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.SaveResponse{Saved: true})
}

func heightValid(cm float64) bool {
	return cm >= models.HeightMin && cm <= models.HeightMax
}

func perimeterValid(m float64) bool {
	return m >= models.PerimeterMin && m <= models.PerimeterMax
}

func override(base int, value *int) int {
	if value != nil {
		return *value
	}
	return base
}
