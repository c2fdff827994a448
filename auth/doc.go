/*
Package auth provides the facilitator password check.

There is exactly one credential in this system: the shared admin
password that gates every /admin route. Participants are identified by
their team name alone, which is intentional for a one-day workshop of
invited families.

The comparison hashes both sides before comparing:

	err := auth.CheckAdminPassword(r.Header.Get(auth.HeaderName), cfg.AdminPassword)

so it is constant time regardless of input lengths. A blank configured
password rejects all requests rather than accepting all of them.
*/
package auth
