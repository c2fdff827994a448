package store

import (
	"database/sql"
	"math"
	"testing"

	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/testutil"
)

func setupSession(t *testing.T) (*sql.DB, string) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	if err := EnsureDefaultSessions(conn); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}
	testutil.RegisterTestTeam(t, conn, models.SessionTest, "Team Aspirin")
	return conn, models.SessionTest
}

func TestSaveHeights_ResubmitOverwrites(t *testing.T) {
	conn, session := setupSession(t)

	if err := SaveHeights(conn, session, "Team Aspirin", 170.0, 135.0); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := SaveHeights(conn, session, "Team Aspirin", 172.5, 138.0); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	records, err := HeightsForSession(conn, session)
	if err != nil {
		t.Fatalf("Failed to read heights: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record after resubmission, got %d", len(records))
	}
	if records[0].ParentHeight != 172.5 || records[0].ChildHeight != 138.0 {
		t.Errorf("Resubmission did not overwrite: %+v", records[0])
	}
}

func TestSaveHeights_SessionIsolation(t *testing.T) {
	conn, session := setupSession(t)

	if err := SaveHeights(conn, session, "Team Aspirin", 170.0, 135.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	other, err := HeightsForSession(conn, models.SessionMorning)
	if err != nil {
		t.Fatalf("Failed to read other session: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Record leaked into another session: %+v", other)
	}
}

func TestSavePerimeter_ComputesDeltas(t *testing.T) {
	conn, session := setupSession(t)

	if err := SavePerimeter(conn, session, "Team Aspirin", 30.0, 25.5); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := PerimeterForSession(conn, session)
	if err != nil {
		t.Fatalf("Failed to read perimeter records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	r := records[0]
	if math.Abs(r.ParentDelta-2.0) > 1e-9 || math.Abs(r.ParentAbsDelta-2.0) > 1e-9 {
		t.Errorf("Parent delta wrong: delta=%v abs=%v", r.ParentDelta, r.ParentAbsDelta)
	}
	if math.Abs(r.ChildDelta-(-2.5)) > 1e-9 || math.Abs(r.ChildAbsDelta-2.5) > 1e-9 {
		t.Errorf("Child delta wrong: delta=%v abs=%v", r.ChildDelta, r.ChildAbsDelta)
	}
}

func TestPerimeterForSession_OrdersByAccuracy(t *testing.T) {
	conn, session := setupSession(t)
	testutil.RegisterTestTeam(t, conn, session, "Team Dopamin")

	// Team Dopamin's parent is closer to the true length.
	if err := SavePerimeter(conn, session, "Team Aspirin", 35.0, 20.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SavePerimeter(conn, session, "Team Dopamin", 27.0, 40.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	records, err := PerimeterForSession(conn, session)
	if err != nil {
		t.Fatalf("Failed to read perimeter records: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].TeamName != "Team Dopamin" {
		t.Errorf("Expected closest estimate first, got %s", records[0].TeamName)
	}
}

func TestSaveMemoryRound_Correctness(t *testing.T) {
	conn, session := setupSession(t)

	tests := []struct {
		name        string
		teamAnswer  string
		correct     string
		wantCorrect bool
	}{
		{"exact match", "C", "C", true},
		{"lowercase answer", "c", "C", true},
		{"surrounding whitespace", "  C ", "C", true},
		{"wrong answer", "B", "C", false},
		{"empty answer", "", "C", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SaveMemoryRound(conn, session, "Team Aspirin", 1, tt.teamAnswer, tt.correct); err != nil {
				t.Fatalf("Save failed: %v", err)
			}

			rounds, err := MemoryRoundsForTeam(conn, session, "Team Aspirin")
			if err != nil {
				t.Fatalf("Failed to read rounds: %v", err)
			}
			if len(rounds) != 1 {
				t.Fatalf("Expected 1 round, got %d", len(rounds))
			}
			if rounds[0].IsCorrect != tt.wantCorrect {
				t.Errorf("Answer %q vs %q: is_correct = %v, want %v",
					tt.teamAnswer, tt.correct, rounds[0].IsCorrect, tt.wantCorrect)
			}
		})
	}
}

func TestSaveMemoryRound_ResubmitOverwrites(t *testing.T) {
	conn, session := setupSession(t)

	if err := SaveMemoryRound(conn, session, "Team Aspirin", 2, "B", "A"); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 2, "A", "A"); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	rounds, err := MemoryRoundsForTeam(conn, session, "Team Aspirin")
	if err != nil {
		t.Fatalf("Failed to read rounds: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round after resubmission, got %d", len(rounds))
	}
	if rounds[0].TeamAnswer != "A" || !rounds[0].IsCorrect {
		t.Errorf("Resubmission did not overwrite: %+v", rounds[0])
	}
}

func TestMemoryScores(t *testing.T) {
	conn, session := setupSession(t)
	testutil.RegisterTestTeam(t, conn, session, "Team Dopamin")

	for round, answer := range map[int]string{1: "C", 2: "A", 3: "D"} {
		q, _ := models.QuestionForRound(round)
		if err := SaveMemoryRound(conn, session, "Team Aspirin", round, answer, q.Correct); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if err := SaveMemoryRound(conn, session, "Team Dopamin", round, "B", q.Correct); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	scores, err := MemoryScores(conn, session)
	if err != nil {
		t.Fatalf("Failed to compute scores: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 score rows, got %d", len(scores))
	}
	if scores[0].TeamName != "Team Aspirin" || scores[0].Correct != 3 || scores[0].Rounds != 3 {
		t.Errorf("Unexpected top score: %+v", scores[0])
	}
	if scores[1].Correct != 0 {
		t.Errorf("Expected 0 correct for all-wrong team, got %d", scores[1].Correct)
	}
}

func TestSaveClinical_RoundTrip(t *testing.T) {
	conn, session := setupSession(t)

	rec := models.ClinicalRecord{
		TeamName:     "Team Aspirin",
		ParentArm:    models.ArmMedicine,
		ChildArm:     models.ArmPlacebo,
		ParentBefore: 8, ParentAfter: 4,
		ChildBefore: 7, ChildAfter: 7,
	}
	if err := SaveClinical(conn, session, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := GetClinical(conn, session, "Team Aspirin")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got.ParentArm != rec.ParentArm || got.ParentBefore != 8 || got.ChildAfter != 7 {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestGetClinical_NoRecord(t *testing.T) {
	conn, session := setupSession(t)

	if _, err := GetClinical(conn, session, "Team Aspirin"); err != ErrNoRecord {
		t.Errorf("Expected ErrNoRecord, got %v", err)
	}
}

func TestSaveFeedback_ResubmitOverwrites(t *testing.T) {
	conn, session := setupSession(t)

	first := models.SaveFeedbackRequest{
		TeamName: "Team Aspirin", OverallRating: 3, FavoriteGame: "memory",
	}
	second := models.SaveFeedbackRequest{
		TeamName: "Team Aspirin", OverallRating: 5, FavoriteGame: "clinical", Comments: "super!",
	}
	if err := SaveFeedback(conn, session, first); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := SaveFeedback(conn, session, second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	entries, err := FeedbackForSession(conn, session)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry after resubmission, got %d", len(entries))
	}
	if entries[0].OverallRating != 5 || entries[0].Comments != "super!" {
		t.Errorf("Resubmission did not overwrite: %+v", entries[0])
	}
}

func TestSubmissionCounts(t *testing.T) {
	conn, session := setupSession(t)

	if err := SaveHeights(conn, session, "Team Aspirin", 170.0, 135.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 1, "C", "C"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 2, "A", "A"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	counts, err := SubmissionCounts(conn, session)
	if err != nil {
		t.Fatalf("Failed to count submissions: %v", err)
	}
	if counts["heights"] != 1 {
		t.Errorf("heights = %d, want 1", counts["heights"])
	}
	// Memory counts teams, not rows.
	if counts["memory"] != 1 {
		t.Errorf("memory = %d, want 1", counts["memory"])
	}
	if counts["perimeter"] != 0 || counts["clinical"] != 0 || counts["feedback"] != 0 {
		t.Errorf("Expected zero counts for untouched games: %v", counts)
	}
}

func TestRepairMemoryAnswers(t *testing.T) {
	conn, session := setupSession(t)
	testutil.RegisterTestTeam(t, conn, models.SessionMorning, "Team Dopamin")

	// Rows written while the answer key was wrong: round 1's canonical
	// answer is C, but these were graded against B.
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 1, "C", "B"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SaveMemoryRound(conn, models.SessionMorning, "Team Dopamin", 1, "B", "B"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// A correctly graded row in a different round must be untouched.
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 2, "A", "A"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	updated, err := RepairMemoryAnswers(conn)
	if err != nil {
		t.Fatalf("Repair failed: %v", err)
	}
	if updated != 2 {
		t.Errorf("Expected 2 repaired rows, got %d", updated)
	}

	// Repair reaches across sessions and re-grades against the real key.
	rounds, _ := MemoryRoundsForTeam(conn, session, "Team Aspirin")
	if rounds[0].CorrectAnswer != "C" || !rounds[0].IsCorrect {
		t.Errorf("Active-session row not repaired: %+v", rounds[0])
	}
	other, _ := MemoryRoundsForTeam(conn, models.SessionMorning, "Team Dopamin")
	if other[0].CorrectAnswer != "C" || other[0].IsCorrect {
		t.Errorf("Other-session row not repaired: %+v", other[0])
	}

	// Running again finds nothing left to fix.
	again, err := RepairMemoryAnswers(conn)
	if err != nil {
		t.Fatalf("Second repair failed: %v", err)
	}
	if again != 0 {
		t.Errorf("Second repair touched %d rows, want 0", again)
	}
}
