package store

import (
	"testing"

	"github.com/zukunftstag/workshop-server/models"
	"github.com/zukunftstag/workshop-server/testutil"
)

func TestTeamProgress_UnregisteredTeam(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	if err := EnsureDefaultSessions(conn); err != nil {
		t.Fatalf("Bootstrap failed: %v", err)
	}

	p, err := TeamProgress(conn, models.SessionTest, "Team Aspirin")
	if err != nil {
		t.Fatalf("Failed to derive progress: %v", err)
	}
	if *p != (models.Progress{}) {
		t.Errorf("Expected all flags false for unknown team, got %+v", p)
	}
}

func TestTeamProgress_FlagsFollowData(t *testing.T) {
	conn, session := setupSession(t)

	p, err := TeamProgress(conn, session, "Team Aspirin")
	if err != nil {
		t.Fatalf("Failed to derive progress: %v", err)
	}
	if !p.TechCheck {
		t.Error("Registration should set the tech check flag")
	}
	if p.Game1 || p.Game2 || p.Game3 || p.Game4 || p.Feedback {
		t.Errorf("Expected game flags false before submissions, got %+v", p)
	}

	if err := SaveHeights(conn, session, "Team Aspirin", 170.0, 135.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SavePerimeter(conn, session, "Team Aspirin", 30.0, 25.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SaveClinical(conn, session, models.ClinicalRecord{
		TeamName:  "Team Aspirin",
		ParentArm: models.ArmMedicine, ChildArm: models.ArmPlacebo,
		ParentBefore: 8, ParentAfter: 4, ChildBefore: 7, ChildAfter: 7,
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := SaveFeedback(conn, session, models.SaveFeedbackRequest{
		TeamName: "Team Aspirin", OverallRating: 5, FavoriteGame: "memory",
	}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	p, _ = TeamProgress(conn, session, "Team Aspirin")
	if !p.Game1 || !p.Game2 || !p.Game4 || !p.Feedback {
		t.Errorf("Expected submitted games complete, got %+v", p)
	}
	if p.Game3 {
		t.Error("Quiz flag must stay false with no rounds submitted")
	}
}

func TestTeamProgress_QuizNeedsAllRounds(t *testing.T) {
	conn, session := setupSession(t)

	for round := 1; round <= models.MemoryTotalRounds; round++ {
		p, err := TeamProgress(conn, session, "Team Aspirin")
		if err != nil {
			t.Fatalf("Failed to derive progress: %v", err)
		}
		if p.Game3 {
			t.Errorf("Quiz complete after %d of %d rounds", round-1, models.MemoryTotalRounds)
		}

		q, _ := models.QuestionForRound(round)
		if err := SaveMemoryRound(conn, session, "Team Aspirin", round, "B", q.Correct); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	p, _ := TeamProgress(conn, session, "Team Aspirin")
	if !p.Game3 {
		t.Errorf("Quiz incomplete after all %d rounds", models.MemoryTotalRounds)
	}

	// An anomalous extra round must not flip the flag back.
	if err := SaveMemoryRound(conn, session, "Team Aspirin", 4, "A", "A"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	p, _ = TeamProgress(conn, session, "Team Aspirin")
	if !p.Game3 {
		t.Error("Quiz flag regressed after an extra round")
	}
}

func TestTeamProgress_ReopensWhenDataDeleted(t *testing.T) {
	conn, session := setupSession(t)

	if err := SaveHeights(conn, session, "Team Aspirin", 170.0, 135.0); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	p, _ := TeamProgress(conn, session, "Team Aspirin")
	if !p.Game1 {
		t.Fatal("Expected game 1 complete")
	}

	if _, err := conn.Exec(`DELETE FROM game1_heights WHERE session_id = ? AND team_name = ?`,
		session, "Team Aspirin"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	p, _ = TeamProgress(conn, session, "Team Aspirin")
	if p.Game1 {
		t.Error("Progress is derived; deleting the record must reopen the game")
	}
}
