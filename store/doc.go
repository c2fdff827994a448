/*
Package store implements all database reads and writes for the workshop.

Every function takes the *sql.DB and, where applicable, an explicit
session id. The session is resolved once per request at the handler
layer and threaded down, so a mid-request session switch can never split
one team's writes across two sessions.

# Sessions

Exactly one session is active at any time. EnsureDefaultSessions
bootstraps the well-known sessions and is safe to re-run; activation
happens inside a transaction so the one-active invariant is never
observably violated. ClearSessionData wipes a session's records while
preserving the session row and the secret trial table.

# Game records

Each game table is keyed by (session_id, team_name), the quiz
additionally by round. All saves use INSERT OR REPLACE: resubmitting is
an overwrite, never a duplicate. Perimeter deltas against the known
course length are computed at write time and stored.

# Progress

TeamProgress derives the completion flags from the stored records on
every call. The quiz counts as complete once all rounds have a row.

# Repair and export

RepairMemoryAnswers re-derives quiz correctness across all sessions
from the canonical answer key. ExportTable dumps whitelisted tables as
string records for CSV download.
*/
package store
