/*
Package handlers contains HTTP request handlers for the workshop server.

# Handler Types

Each handler is a struct with database and config dependencies:

  - TeamHandler: Registration and team self-service reads
  - GameHandler: Submissions for the four game stations and feedback
  - AdminHandler: Session management, exports, repair, sample seeding,
    secret data
  - DashboardHandler: Aggregated results for the closing ceremony

Handlers are created via constructor functions that accept *sql.DB and
Config; TeamHandler and AdminHandler additionally take the roster:

	teamHandler := handlers.NewTeamHandler(db, cfg, teamRoster)

# Session Handling

Public handlers resolve the active session exactly once per request and
pass it into every store call, so a facilitator switching sessions while
a form is in flight cannot split a team's writes.

# A Team's Day

	POST /teams/register          → Register (tech check)
	POST /games/heights           → SaveHeights (game 1)
	POST /games/perimeter         → SavePerimeter (game 2)
	POST /games/memory            → SaveMemory (game 3, per round)
	POST /games/clinical          → SaveClinical (game 4)
	POST /feedback                → SaveFeedback
	GET  /teams/{name}/progress   → Progress (derived flags)

The quiz handler resolves the correct answer server-side from the round
number; the clinical handler fills unmeasured scores from the team's
secret assignment.

# Facilitator Operations

Admin handlers sit behind the X-Admin-Password header (enforced by the
router via middleware.AdminOnly) and accept an optional session_id query
parameter to look at a session other than the active one.
*/
package handlers
