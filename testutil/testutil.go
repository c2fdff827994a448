package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/zukunftstag/workshop-server/cliparse"
	"github.com/zukunftstag/workshop-server/db"
	"github.com/zukunftstag/workshop-server/models"
)

// SetupTestDB creates a fresh file-backed SQLite database with the full
// schema. A file under t.TempDir() is used instead of :memory: because
// the connection pool would otherwise hand each connection its own
// empty in-memory database.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          8517,
		DatabasePath:  "test.db",
		DataDir:       "data",
		BaseURL:       "http://localhost:8517",
		TrialSeed:     models.DefaultTrialSeed,
		AdminPassword: "test-admin-password",
	}
}

// RegisterTestTeam inserts a team registration for the session.
func RegisterTestTeam(t *testing.T, conn *sql.DB, sessionID, teamName string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO teams (session_id, team_name, team_indication, parent_name, child_name)
		VALUES (?, ?, 'Kopfschmerzen', 'Anna', 'Ben')
	`, sessionID, teamName)
	if err != nil {
		t.Fatalf("Failed to register test team: %v", err)
	}
}

// SeedTestTrial inserts a secret trial assignment for the team.
func SeedTestTrial(t *testing.T, conn *sql.DB, teamName, parentArm string) {
	t.Helper()

	childArm := models.ArmPlacebo
	if parentArm == models.ArmPlacebo {
		childArm = models.ArmMedicine
	}
	_, err := conn.Exec(`
		INSERT INTO secret_trial
		(team_name, parent_treatment, child_treatment,
		 placebo_before, placebo_after, medicine_before, medicine_after)
		VALUES (?, ?, ?, 7, 7, 8, 4)
	`, teamName, parentArm, childArm)
	if err != nil {
		t.Fatalf("Failed to seed test trial assignment: %v", err)
	}
}

// WriteTestRoster writes a minimal roster directory and returns its path.
func WriteTestRoster(t *testing.T, teams map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	var lines bytes.Buffer
	for name, indication := range teams {
		lines.WriteString(name + ":" + indication + "\n")
	}

	files := map[string]string{
		"team_namen.txt":      lines.String(),
		"eltern_vornamen.txt": "Anna\nJonas\n",
		"kinder_vornamen.txt": "Ben\nLea\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write roster file %s: %v", name, err)
		}
	}

	return dir
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
