/*
Package trial generates and resolves the hidden clinical trial assignment.

Every roster team is assigned a parent arm and the mirrored child arm,
plus pre-drawn before/after pain scores for both the placebo and the
medicine arm. Generation is seeded, so the same roster and seed always
yield the same table; this lets facilitators print team cards with the
assignment before any session data exists.

# Generation

Generate draws all placebo scores, then all medicine scores, then
partitions the roster so that half the teams (rounded down) have a
placebo parent. It writes via INSERT OR REPLACE, so re-running at
startup is harmless.

# Lookup

Assignment returns the raw secret row, View resolves it to the team's
actual arms, and All lists the whole table for the facilitator's
secret-data view. A team outside the roster yields ErrNoAssignment.
*/
package trial
