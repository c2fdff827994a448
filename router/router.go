package router

import (
	"database/sql"
	"net/http"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/handlers"
	"github.com/zukunftstag/workshop-server/middleware"
	"github.com/zukunftstag/workshop-server/roster"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, teamRoster *roster.Roster) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	teamHandler := handlers.NewTeamHandler(db, cfg, teamRoster)
	gameHandler := handlers.NewGameHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, teamRoster)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("zukunftstag workshop API v1"))
	})

	// Team registration and self-service reads (public)
	mux.HandleFunc("POST /teams/register", middleware.WithLogging(teamHandler.Register))
	mux.HandleFunc("GET /teams/{name}", middleware.WithLogging(teamHandler.Get))
	mux.HandleFunc("GET /teams/{name}/progress", middleware.WithLogging(teamHandler.Progress))
	mux.HandleFunc("GET /teams/{name}/clinical", middleware.WithLogging(teamHandler.Clinical))

	// Game stations (public)
	mux.HandleFunc("POST /games/heights", middleware.WithLogging(gameHandler.SaveHeights))
	mux.HandleFunc("POST /games/perimeter", middleware.WithLogging(gameHandler.SavePerimeter))
	mux.HandleFunc("POST /games/memory", middleware.WithLogging(gameHandler.SaveMemory))
	mux.HandleFunc("GET /games/memory/questions", middleware.WithLogging(gameHandler.MemoryQuestions))
	mux.HandleFunc("POST /games/clinical", middleware.WithLogging(gameHandler.SaveClinical))
	mux.HandleFunc("POST /feedback", middleware.WithLogging(gameHandler.SaveFeedback))

	// Facilitator operations (password protected)
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.AdminOnly(cfg.AdminPassword, h))
	}
	mux.HandleFunc("GET /admin/sessions", admin(adminHandler.ListSessions))
	mux.HandleFunc("POST /admin/sessions", admin(adminHandler.CreateSession))
	mux.HandleFunc("POST /admin/sessions/{id}/activate", admin(adminHandler.ActivateSession))
	mux.HandleFunc("POST /admin/sessions/{id}/clear", admin(adminHandler.ClearSession))
	mux.HandleFunc("GET /admin/export", admin(adminHandler.ExportAll))
	mux.HandleFunc("GET /admin/export/{table}", admin(adminHandler.Export))
	mux.HandleFunc("GET /admin/games/{game}", admin(adminHandler.GamesData))
	mux.HandleFunc("GET /admin/dashboard", admin(dashboardHandler.Dashboard))
	mux.HandleFunc("GET /admin/trial", admin(adminHandler.Trial))
	mux.HandleFunc("GET /admin/teamcards", admin(adminHandler.TeamCards))
	mux.HandleFunc("POST /admin/memory/repair", admin(adminHandler.RepairMemory))
	mux.HandleFunc("POST /admin/seed", admin(adminHandler.Seed))

	return mux
}
