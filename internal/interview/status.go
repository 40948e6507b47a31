package interview

// Interview phases, advanced solely by the engine. The client only displays
// them and never enforces advancement rules.
const (
	PhaseGreeting  = "greeting"
	PhaseEasy      = "easy"
	PhaseModerate  = "moderate"
	PhaseScenario  = "scenario"
	PhaseHard      = "hard"
	PhaseExpert    = "expert"
	PhaseCompleted = "completed"
)

// Status is the engine-owned session status. The client caches the last
// fetched value and replaces it wholesale on every successful fetch; it is
// stale between fetches and is never written back.
type Status struct {
	QuestionCount      int     `json:"question_count"`
	CurrentPhase       string  `json:"current_phase"`
	TotalQuestions     int     `json:"total_questions"`
	InterviewCompleted bool    `json:"interview_completed"`
	ManuallyEnded      bool    `json:"manually_ended"`
	ProgressPercentage float64 `json:"progress_percentage"`
}
