/*
Package db handles opening the SQLite database and creating the schema.

# Opening

Open applies the pragmas the service depends on (WAL, busy_timeout,
foreign_keys) before returning the handle:

	conn, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal(err)
	}

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

  - sessions: named data partitions; exactly one active at a time
  - teams: registrations, keyed (session_id, team_name)
  - game1_heights: height measurements, one row per team per session
  - game2_perimeter: estimates plus denormalized deltas
  - game3_memory: one row per quiz round per team per session
  - game4_clinical: editable clinical trial results
  - feedback: one row per team per session
  - secret_trial: session-independent hidden trial assignments

# Keys

Every session-scoped table uses a composite primary key starting with
session_id, which is what makes game saves natural upserts. game3_memory
adds round_number to the key; secret_trial is keyed by team name alone.
*/
package db
