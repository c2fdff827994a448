package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zukunftstag/workshop-server/auth"
	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/testutil"
)

func TestAdminOnly(t *testing.T) {
	called := false
	handler := AdminOnly("geheim", func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		password   string
		wantStatus int
		wantCalled bool
	}{
		{"correct password", "geheim", http.StatusNoContent, true},
		{"wrong password", "falsch", http.StatusUnauthorized, false},
		{"missing header", "", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			headers := map[string]string{}
			if tt.password != "" {
				headers[auth.HeaderName] = tt.password
			}

			req := testutil.MakeRequest("POST", "/admin/sessions", nil, headers)
			w := httptest.NewRecorder()
			handler(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
			if called != tt.wantCalled {
				t.Errorf("Handler called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusBadRequest, "team_name is required")

	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Bad Request" || resp.Message != "team_name is required" {
		t.Errorf("Unexpected error body: %+v", resp)
	}
}

func TestParseJSONBody(t *testing.T) {
	req := testutil.MakeRequest("POST", "/teams/register", models.RegisterTeamRequest{
		TeamName:   "Team Aspirin",
		ParentName: "Anna",
		ChildName:  "Ben",
	}, nil)

	var parsed models.RegisterTeamRequest
	if err := ParseJSONBody(req, &parsed); err != nil {
		t.Fatalf("Failed to parse body: %v", err)
	}
	if parsed.TeamName != "Team Aspirin" || parsed.ChildName != "Ben" {
		t.Errorf("Unexpected parsed body: %+v", parsed)
	}
}

func TestParseJSONBody_Invalid(t *testing.T) {
	req := httptest.NewRequest("POST", "/teams/register", strings.NewReader("{not json"))

	var parsed models.RegisterTeamRequest
	if err := ParseJSONBody(req, &parsed); err == nil {
		t.Error("Expected error for malformed JSON, got nil")
	}
}

func TestCORS_Preflight(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Preflight must not reach the wrapped handler")
	}))

	req := httptest.NewRequest("OPTIONS", "/teams/register", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin = %q", got)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Headers"), auth.HeaderName) {
		t.Error("Admin password header missing from Allow-Headers")
	}
}
