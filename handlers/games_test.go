package handlers

import (
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/store"
	"github.com/zukunftstag/workshop-server/testutil"
)

func setupGameHandler(t *testing.T) (*GameHandler, *sql.DB) {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	if err := store.EnsureDefaultSessions(conn); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	testutil.RegisterTestTeam(t, conn, models.SessionTest, "Team Aspirin")

	return NewGameHandler(conn, testutil.GetTestConfig()), conn
}

func TestSaveHeights(t *testing.T) {
	tests := []struct {
		name       string
		request    models.SaveHeightsRequest
		wantStatus int
	}{
		{
			name: "valid heights",
			request: models.SaveHeightsRequest{
				TeamName: "Team Aspirin", ParentHeight: 172.5, ChildHeight: 138.0,
			},
			wantStatus: 200,
		},
		{
			name: "missing team name",
			request: models.SaveHeightsRequest{
				ParentHeight: 172.5, ChildHeight: 138.0,
			},
			wantStatus: 400,
		},
		{
			name: "parent height too low",
			request: models.SaveHeightsRequest{
				TeamName: "Team Aspirin", ParentHeight: 12.0, ChildHeight: 138.0,
			},
			wantStatus: 400,
		},
		{
			name: "child height too high",
			request: models.SaveHeightsRequest{
				TeamName: "Team Aspirin", ParentHeight: 172.5, ChildHeight: 312.0,
			},
			wantStatus: 400,
		},
		{
			name: "zero heights",
			request: models.SaveHeightsRequest{
				TeamName: "Team Aspirin",
			},
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, conn := setupGameHandler(t)

			req := testutil.MakeRequest("POST", "/games/heights", tt.request, nil)
			w := httptest.NewRecorder()
			h.SaveHeights(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)

			records, _ := store.HeightsForSession(conn, models.SessionTest)
			if tt.wantStatus == 200 && len(records) != 1 {
				t.Errorf("Expected 1 stored record, got %d", len(records))
			}
			if tt.wantStatus != 200 && len(records) != 0 {
				t.Errorf("Rejected request must not store data, got %d records", len(records))
			}
		})
	}
}

func TestSavePerimeter(t *testing.T) {
	tests := []struct {
		name       string
		request    models.SavePerimeterRequest
		wantStatus int
	}{
		{
			name: "valid estimates",
			request: models.SavePerimeterRequest{
				TeamName: "Team Aspirin", ParentEstimate: 30.0, ChildEstimate: 25.5,
			},
			wantStatus: 200,
		},
		{
			name: "estimate below minimum",
			request: models.SavePerimeterRequest{
				TeamName: "Team Aspirin", ParentEstimate: 2.0, ChildEstimate: 25.5,
			},
			wantStatus: 400,
		},
		{
			name: "estimate above maximum",
			request: models.SavePerimeterRequest{
				TeamName: "Team Aspirin", ParentEstimate: 30.0, ChildEstimate: 150.0,
			},
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupGameHandler(t)

			req := testutil.MakeRequest("POST", "/games/perimeter", tt.request, nil)
			w := httptest.NewRecorder()
			h.SavePerimeter(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestSaveMemory(t *testing.T) {
	tests := []struct {
		name       string
		request    models.SaveMemoryRequest
		wantStatus int
	}{
		{
			name: "valid answer",
			request: models.SaveMemoryRequest{
				TeamName: "Team Aspirin", RoundNumber: 1, TeamAnswer: "C",
			},
			wantStatus: 200,
		},
		{
			name: "round zero",
			request: models.SaveMemoryRequest{
				TeamName: "Team Aspirin", RoundNumber: 0, TeamAnswer: "C",
			},
			wantStatus: 400,
		},
		{
			name: "round past the quiz",
			request: models.SaveMemoryRequest{
				TeamName: "Team Aspirin", RoundNumber: 4, TeamAnswer: "C",
			},
			wantStatus: 400,
		},
		{
			name: "empty answer",
			request: models.SaveMemoryRequest{
				TeamName: "Team Aspirin", RoundNumber: 1,
			},
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupGameHandler(t)

			req := testutil.MakeRequest("POST", "/games/memory", tt.request, nil)
			w := httptest.NewRecorder()
			h.SaveMemory(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}

func TestSaveMemory_GradesAgainstCanonicalAnswer(t *testing.T) {
	h, conn := setupGameHandler(t)

	req := testutil.MakeRequest("POST", "/games/memory", models.SaveMemoryRequest{
		TeamName: "Team Aspirin", RoundNumber: 2, TeamAnswer: "a",
	}, nil)
	w := httptest.NewRecorder()
	h.SaveMemory(w, req)
	testutil.AssertStatus(t, w, 200)

	rounds, err := store.MemoryRoundsForTeam(conn, models.SessionTest, "Team Aspirin")
	if err != nil {
		t.Fatalf("Failed to read rounds: %v", err)
	}
	if len(rounds) != 1 || !rounds[0].IsCorrect || rounds[0].CorrectAnswer != "A" {
		t.Errorf("Round not graded against canonical answer: %+v", rounds)
	}
}

func TestMemoryQuestions_HidesAnswers(t *testing.T) {
	h, _ := setupGameHandler(t)

	req := testutil.MakeRequest("GET", "/games/memory/questions", nil, nil)
	w := httptest.NewRecorder()
	h.MemoryQuestions(w, req)

	testutil.AssertStatus(t, w, 200)

	var resp struct {
		TotalRounds int                      `json:"total_rounds"`
		Questions   []map[string]interface{} `json:"questions"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.TotalRounds != models.MemoryTotalRounds {
		t.Errorf("total_rounds = %d, want %d", resp.TotalRounds, models.MemoryTotalRounds)
	}
	if len(resp.Questions) != models.MemoryTotalRounds {
		t.Fatalf("Expected %d questions, got %d", models.MemoryTotalRounds, len(resp.Questions))
	}
	for _, q := range resp.Questions {
		if _, leaked := q["correct"]; leaked {
			t.Errorf("Correct answer leaked in question payload: %v", q)
		}
	}
}

func TestSaveClinical_FillsFromAssignment(t *testing.T) {
	h, conn := setupGameHandler(t)
	testutil.SeedTestTrial(t, conn, "Team Aspirin", models.ArmMedicine)

	// Only the parent's after-score was measured; the rest prefills.
	after := 3
	req := testutil.MakeRequest("POST", "/games/clinical", models.SaveClinicalRequest{
		TeamName:    "Team Aspirin",
		ParentAfter: &after,
	}, nil)
	w := httptest.NewRecorder()
	h.SaveClinical(w, req)

	testutil.AssertStatus(t, w, 200)

	rec, err := store.GetClinical(conn, models.SessionTest, "Team Aspirin")
	if err != nil {
		t.Fatalf("Failed to read record: %v", err)
	}
	if rec.ParentArm != models.ArmMedicine {
		t.Errorf("Arm not taken from assignment: %+v", rec)
	}
	// Seeded assignment: medicine 8 -> 4, placebo 7 -> 7.
	if rec.ParentBefore != 8 || rec.ChildBefore != 7 || rec.ChildAfter != 7 {
		t.Errorf("Missing scores not filled from assignment: %+v", rec)
	}
	if rec.ParentAfter != 3 {
		t.Errorf("Override not applied: parent_after = %d, want 3", rec.ParentAfter)
	}
}

func TestSaveClinical_NoAssignment(t *testing.T) {
	h, _ := setupGameHandler(t)

	req := testutil.MakeRequest("POST", "/games/clinical", models.SaveClinicalRequest{
		TeamName: "Team Eigenbau",
	}, nil)
	w := httptest.NewRecorder()
	h.SaveClinical(w, req)

	testutil.AssertStatus(t, w, 404)
}

func TestSaveClinical_RejectsOutOfRangeOverride(t *testing.T) {
	h, conn := setupGameHandler(t)
	testutil.SeedTestTrial(t, conn, "Team Aspirin", models.ArmMedicine)

	bad := 11
	req := testutil.MakeRequest("POST", "/games/clinical", models.SaveClinicalRequest{
		TeamName:    "Team Aspirin",
		ParentAfter: &bad,
	}, nil)
	w := httptest.NewRecorder()
	h.SaveClinical(w, req)

	testutil.AssertStatus(t, w, 400)
}

func TestSaveFeedback(t *testing.T) {
	tests := []struct {
		name       string
		request    models.SaveFeedbackRequest
		wantStatus int
	}{
		{
			name: "valid feedback",
			request: models.SaveFeedbackRequest{
				TeamName: "Team Aspirin", OverallRating: 5, FavoriteGame: "memory", Comments: "super!",
			},
			wantStatus: 200,
		},
		{
			name: "rating zero",
			request: models.SaveFeedbackRequest{
				TeamName: "Team Aspirin", FavoriteGame: "memory",
			},
			wantStatus: 400,
		},
		{
			name: "rating too high",
			request: models.SaveFeedbackRequest{
				TeamName: "Team Aspirin", OverallRating: 6, FavoriteGame: "memory",
			},
			wantStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := setupGameHandler(t)

			req := testutil.MakeRequest("POST", "/feedback", tt.request, nil)
			w := httptest.NewRecorder()
			h.SaveFeedback(w, req)

			testutil.AssertStatus(t, w, tt.wantStatus)
		})
	}
}
