/*
Package main provides the entry point for the Zukunftstag workshop server.

The server runs a guided multi-station workshop for parent/child teams:
registration, two estimation games, a molecule memory quiz, a simulated
clinical trial with a hidden placebo/medicine assignment, and a feedback
form. A password-protected facilitator surface manages sessions and
aggregates results for the closing ceremony.

# Starting the Server

The server requires the facilitator password via environment variable or
CLI flag:

	ADMIN_PASSWORD=... go run main.go

Or with flags:

	go run main.go -p 8517 -d zukunftstag.db -data ./data -admin-password ...

# Configuration

Required settings:

  - ADMIN_PASSWORD (-admin-password): Facilitator password for /admin routes

Optional settings:

  - PORT (-p): Server port (default: 8517)
  - DATABASE_PATH (-d): SQLite database file (default: zukunftstag.db)
  - DATA_DIR (-data): Roster directory with team and name files (default: data)
  - BASE_URL (-base-url): Public URL printed on team cards
  - TRIAL_SEED (-seed): Seed for the trial assignment (default: 1887)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (teams, games, admin, dashboard)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin gate, JSON helpers
  - models: Request/response types and the quiz answer key
  - store: All SQLite reads and writes
  - trial: Seeded secret assignment generation and lookup
  - roster: Printed team roster and name pools
  - seed: Sample data generation for dry runs
  - db: Schema creation and connection pragmas
  - auth: Facilitator password check
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
