/*
Package models defines the request, response, and domain types shared by
the store and the HTTP layer, plus the fixed game constants (perimeter
ground truth, memory round count, validation ranges) and the canonical
molecule quiz.

# Conventions

Domain types mirror table rows one to one. Every session-scoped row
carries its session_id; the secret trial assignment is the only
session-independent table. The correct quiz answer is tagged `json:"-"`
so it can never leak through an API response.
*/
package models
