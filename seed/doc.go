/*
Package seed generates sample workshop data for rehearsals and demos.

Facilitators run the workshop once without participants to check the
dashboard, the podium, and the export files. Populate fills a session
with plausible data for a subset of roster teams:

	n, err := seed.Populate(db, teamRoster, sessionID, 10, 42)

Heights come from a correlated bivariate normal, perimeter estimates
from normals around the real building perimeter, quiz answers are a
coin-flip mix of right and wrong, and clinical records mirror the
team's secret assignment. Everything goes through the same store
functions as real submissions, so derived values like deltas and
correctness behave identically.
*/
package seed
