package models

// Well-known session IDs created at bootstrap
const (
	SessionMorning   = "morning_session"
	SessionAfternoon = "afternoon_session"
	SessionTest      = "test_session"
)

// Trial arm constants
const (
	ArmPlacebo  = "placebo"
	ArmMedicine = "medicine"
)

// Game constants
const (
	PerimeterGroundTruth = 28.0 // meters
	MemoryTotalRounds    = 3
	DefaultTrialSeed     = 1887
)

// Validation constraints (enforced at the handler layer, not the store)
const (
	HeightMin     = 50.0 // cm
	HeightMax     = 250.0
	PerimeterMin  = 5.0 // meters
	PerimeterMax  = 100.0
	PainScoreMin  = 0
	PainScoreMax  = 10
	RatingMin     = 1
	RatingMax     = 5
	NameMinLength = 2
)

// IndicationUnknown is the sentinel indication for teams missing from the roster.
const IndicationUnknown = "Unknown"

// Request types

type RegisterTeamRequest struct {
	TeamName   string `json:"team_name"`
	ParentName string `json:"parent_name"`
	ChildName  string `json:"child_name"`
}

type SaveHeightsRequest struct {
	TeamName     string  `json:"team_name"`
	ParentHeight float64 `json:"parent_height"`
	ChildHeight  float64 `json:"child_height"`
}

type SavePerimeterRequest struct {
	TeamName       string  `json:"team_name"`
	ParentEstimate float64 `json:"parent_estimate"`
	ChildEstimate  float64 `json:"child_estimate"`
}

type SaveMemoryRequest struct {
	TeamName    string `json:"team_name"`
	RoundNumber int    `json:"round_number"`
	TeamAnswer  string `json:"team_answer"`
}

// SaveClinicalRequest carries optional overrides; nil fields are filled
// from the team's secret trial assignment at save time.
type SaveClinicalRequest struct {
	TeamName     string `json:"team_name"`
	ParentBefore *int   `json:"parent_before,omitempty"`
	ParentAfter  *int   `json:"parent_after,omitempty"`
	ChildBefore  *int   `json:"child_before,omitempty"`
	ChildAfter   *int   `json:"child_after,omitempty"`
}

type SaveFeedbackRequest struct {
	TeamName      string `json:"team_name"`
	OverallRating int    `json:"overall_rating"`
	FavoriteGame  string `json:"favorite_game"`
	Comments      string `json:"comments"`
}

type CreateSessionRequest struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
}

// Response types

type RegisterTeamResponse struct {
	Team      Team   `json:"team"`
	SessionID string `json:"session_id"`
}

type SaveResponse struct {
	Saved   bool   `json:"saved"`
	Message string `json:"message,omitempty"`
}

type RepairResponse struct {
	RowsUpdated int64 `json:"rows_updated"`
}

// SeedRequest configures sample-data generation. A zero TeamCount seeds
// the whole roster.
type SeedRequest struct {
	TeamCount int `json:"team_count"`
}

type SeedResponse struct {
	SessionID   string `json:"session_id"`
	TeamsSeeded int    `json:"teams_seeded"`
}

// Domain types

type Session struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
}

type Team struct {
	TeamName   string `json:"team_name"`
	Indication string `json:"team_indication"`
	ParentName string `json:"parent_name"`
	ChildName  string `json:"child_name"`
	SessionID  string `json:"session_id"`
	CreatedAt  string `json:"created_at"`
}

type HeightsRecord struct {
	TeamName     string  `json:"team_name"`
	ParentHeight float64 `json:"parent_height"`
	ChildHeight  float64 `json:"child_height"`
	SessionID    string  `json:"session_id"`
	SubmittedAt  string  `json:"submitted_at"`
}

// PerimeterRecord stores the deltas against the ground truth computed at
// write time; ranking queries order by the stored absolute delta and never
// recompute it.
type PerimeterRecord struct {
	TeamName       string  `json:"team_name"`
	ParentEstimate float64 `json:"parent_estimate"`
	ChildEstimate  float64 `json:"child_estimate"`
	ParentDelta    float64 `json:"parent_delta"`
	ChildDelta     float64 `json:"child_delta"`
	ParentAbsDelta float64 `json:"parent_abs_delta"`
	ChildAbsDelta  float64 `json:"child_abs_delta"`
	SessionID      string  `json:"session_id"`
	SubmittedAt    string  `json:"submitted_at"`
}

type MemoryRound struct {
	TeamName      string `json:"team_name"`
	RoundNumber   int    `json:"round_number"`
	CorrectAnswer string `json:"correct_answer"`
	TeamAnswer    string `json:"team_answer"`
	IsCorrect     bool   `json:"is_correct"`
	SessionID     string `json:"session_id"`
	SubmittedAt   string `json:"submitted_at"`
}

type ClinicalRecord struct {
	TeamName     string `json:"team_name"`
	ParentArm    string `json:"parent_treatment"`
	ChildArm     string `json:"child_treatment"`
	ParentBefore int    `json:"parent_before"`
	ParentAfter  int    `json:"parent_after"`
	ChildBefore  int    `json:"child_before"`
	ChildAfter   int    `json:"child_after"`
	SessionID    string `json:"session_id"`
	SubmittedAt  string `json:"submitted_at"`
}

type Feedback struct {
	TeamName      string `json:"team_name"`
	OverallRating int    `json:"overall_rating"`
	FavoriteGame  string `json:"favorite_game"`
	Comments      string `json:"comments"`
	SessionID     string `json:"session_id"`
	SubmittedAt   string `json:"submitted_at"`
}

// TrialAssignment is one row of the session-independent secret table.
// Both arms' scores are stored so resolving a team's current-arm values
// is a pure lookup, never a re-roll.
type TrialAssignment struct {
	TeamName       string `json:"team_name"`
	ParentArm      string `json:"parent_treatment"`
	ChildArm       string `json:"child_treatment"`
	PlaceboBefore  int    `json:"placebo_before"`
	PlaceboAfter   int    `json:"placebo_after"`
	MedicineBefore int    `json:"medicine_before"`
	MedicineAfter  int    `json:"medicine_after"`
}

// ClinicalView is a team's assignment resolved to its actual arms.
type ClinicalView struct {
	ParentArm    string `json:"parent_treatment"`
	ChildArm     string `json:"child_treatment"`
	ParentBefore int    `json:"parent_before"`
	ParentAfter  int    `json:"parent_after"`
	ChildBefore  int    `json:"child_before"`
	ChildAfter   int    `json:"child_after"`
}

// Progress is the six-flag completion vector that gates navigation.
type Progress struct {
	TechCheck bool `json:"tech_check"`
	Game1     bool `json:"game1"`
	Game2     bool `json:"game2"`
	Game3     bool `json:"game3"`
	Game4     bool `json:"game4"`
	Feedback  bool `json:"feedback"`
}

// MemoryQuestion is one round of the molecule quiz. The correct answer is
// never serialized; the save path resolves it server-side.
type MemoryQuestion struct {
	Round       int      `json:"round"`
	Molecule    string   `json:"molecule"`
	Description string   `json:"description"`
	Options     []string `json:"options"`
	Correct     string   `json:"-"`
}

// Dashboard types

type ValueStats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

type PerimeterWinner struct {
	Rank       int     `json:"rank"`
	TeamName   string  `json:"team_name"`
	PersonName string  `json:"person_name"`
	Role       string  `json:"role"`
	Estimate   float64 `json:"estimate"`
	AbsDelta   float64 `json:"abs_delta"`
}

type MemoryScore struct {
	TeamName string `json:"team_name"`
	Correct  int    `json:"correct"`
	Rounds   int    `json:"rounds"`
}

type ArmOutcome struct {
	Arm        string  `json:"arm"`
	N          int     `json:"n"`
	MeanBefore float64 `json:"mean_before"`
	MeanAfter  float64 `json:"mean_after"`
	MeanDrop   float64 `json:"mean_drop"`
}

type DashboardResponse struct {
	SessionID        string            `json:"session_id"`
	TeamsRegistered  int               `json:"teams_registered"`
	Submissions      map[string]int    `json:"submissions"`
	ParentHeights    ValueStats        `json:"parent_heights"`
	ChildHeights     ValueStats        `json:"child_heights"`
	PerimeterWinners []PerimeterWinner `json:"perimeter_winners"`
	MemoryScores     []MemoryScore     `json:"memory_scores"`
	ClinicalOutcomes []ArmOutcome      `json:"clinical_outcomes"`
}

// TeamCard is the data feed for one printed table card.
type TeamCard struct {
	TeamName   string `json:"team_name"`
	Indication string `json:"team_indication"`
	LandingURL string `json:"landing_url"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
