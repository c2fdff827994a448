/*
Package router defines HTTP routes for the workshop server.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, teamRoster)

# Endpoints

Health:

	GET /health
	GET /

Teams (public):

	POST /teams/register         - Register in the active session
	GET  /teams/{name}           - Registration details
	GET  /teams/{name}/progress  - Derived completion flags
	GET  /teams/{name}/clinical  - Trial prefill or saved record

Games (public):

	POST /games/heights          - Game 1 measurements
	POST /games/perimeter        - Game 2 estimates
	POST /games/memory           - Game 3, one round per call
	GET  /games/memory/questions - Quiz rounds without answers
	POST /games/clinical         - Game 4 trial record
	POST /feedback               - Workshop feedback

Facilitator (requires X-Admin-Password):

	GET  /admin/sessions                  - List sessions
	POST /admin/sessions                  - Create and activate a session
	POST /admin/sessions/{id}/activate    - Switch the active session
	POST /admin/sessions/{id}/clear       - Wipe a session's records
	GET  /admin/export                    - JSON dump of every table
	GET  /admin/export/{table}            - CSV download
	GET  /admin/games/{game}              - Raw game data
	GET  /admin/dashboard                 - Aggregates for the ceremony
	GET  /admin/trial                     - Secret assignments
	GET  /admin/teamcards                 - Printable card data
	POST /admin/memory/repair             - Re-grade quiz rounds
	POST /admin/seed                      - Fill a session with sample data

# Handler Initialization

The router creates handler instances with dependency injection:

	teamHandler := handlers.NewTeamHandler(db, cfg, teamRoster)
	gameHandler := handlers.NewGameHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg, teamRoster)
	dashboardHandler := handlers.NewDashboardHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
