/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8517)
  - DatabasePath: SQLite database file (default: zukunftstag.db)
  - DataDir: Directory holding the roster files (default: data)
  - AdminPassword: Shared facilitator password (required)
  - BaseURL: Public base URL printed on team cards
  - TrialSeed: Seed for the deterministic trial generator (default: 1887)

# CLI Flags

	-p              Server port
	-d              SQLite database file path
	-data           Roster file directory
	-base-url       Public base URL
	-seed           Trial assignment seed
	-admin-password Facilitator password

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_PATH  → -d
	DATA_DIR       → -data
	BASE_URL       → -base-url
	TRIAL_SEED     → -seed
	ADMIN_PASSWORD → -admin-password

CLI flags take precedence over environment variables. main loads a .env
file (if present) before parsing, so either source works in development.

# Validation

ParseFlags returns an error if ADMIN_PASSWORD is missing; everything else
has a sensible default.
*/
package cliparse
