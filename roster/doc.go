/*
Package roster loads the static reference data the workshop runs on: the
team→indication mapping and the parent/child first-name lists.

The team file has one "Team Name:Indication" pair per line; a line
without the separator aborts startup. The name lists are one name per
line. All three files are read exactly once; the Roster is immutable
afterwards and safe for concurrent readers.

The order of Teams() follows the file, which the deterministic trial
generator relies on for reproducible draws.
*/
package roster
