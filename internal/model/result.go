package model

// TestResult is the summary returned after submission and by the results
// endpoint. Both paths produce the identical shape.
type TestResult struct {
	SessionID           int64            `json:"session_id"`
	TotalScore          float64          `json:"total_score"`
	TotalPossiblePoints float64          `json:"total_possible_points"`
	TotalScoreFraction  string           `json:"total_score_fraction"`
	ScorePercentage     float64          `json:"score_percentage"`
	TotalQuestions      int              `json:"total_questions"`
	AnsweredQuestions   int              `json:"answered_questions"`
	Status              SessionStatus    `json:"status"`
	Message             string           `json:"message"`
	QuestionResults     []QuestionResult `json:"question_results"`
}

// QuestionResult is one row of the per-question breakdown.
type QuestionResult struct {
	QuestionID    int     `json:"question_id"`
	QuestionLabel string  `json:"question_label"`
	QuestionType  string  `json:"question_type"`
	// CandidateAnswer renders the selected option's label or the raw free text.
	CandidateAnswer string `json:"candidate_answer"`
	CorrectAnswer   string `json:"correct_answer"`
	// IsCorrect is nil for answers awaiting manual review.
	IsCorrect     *bool   `json:"is_correct"`
	ScoreFraction string  `json:"score_fraction"`
	PointsEarned  float64 `json:"points_earned"`
	MaxPoints     float64 `json:"max_points"`
}

// CandidatePaper is the candidate-facing rendering of a test: ordered
// questions with answer options stripped of correctness flags.
type CandidatePaper struct {
	TestID          int                 `json:"test_id"`
	TestName        string              `json:"test_name"`
	DurationMinutes int                 `json:"duration_minutes"`
	TotalQuestions  int                 `json:"total_questions"`
	Questions       []CandidateQuestion `json:"questions"`
}

// CandidateQuestion is one paper question. Options is nil for open questions.
type CandidateQuestion struct {
	ID       int               `json:"id"`
	Label    string            `json:"label"`
	Hint     string            `json:"hint,omitempty"`
	Type     QuestionType      `json:"question_type"`
	Points   float64           `json:"points"`
	Position int               `json:"position"`
	Options  []CandidateOption `json:"options,omitempty"`
}

// CandidateOption is an answer option with its correctness withheld.
type CandidateOption struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}
