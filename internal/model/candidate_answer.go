package model

import (
	"time"
)

// CandidateAnswer is the durable record of one candidate's response to one
// question within one session. At most one row exists per (session,
// question) pair; the storage layer enforces this with a unique constraint.
type CandidateAnswer struct {
	ID             int64     `json:"id"`
	TestSessionID  int64     `json:"test_session_id"`
	QuestionID     int       `json:"question_id"`
	SelectedAnswer *int      `json:"selected_answer_id,omitempty"`
	OpenAnswerText *string   `json:"open_answer_text,omitempty"`
	// IsCorrect is nil when the answer is unresolved and awaits manual review.
	IsCorrect    *bool     `json:"is_correct"`
	PointsEarned float64   `json:"points_earned"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// SubmitAnswerRequest is one answer inside a submission batch. Exactly one
// of SelectedAnswerID or OpenAnswerText is expected to be set.
type SubmitAnswerRequest struct {
	QuestionID       int     `json:"question_id" binding:"required,gt=0"`
	SelectedAnswerID *int    `json:"selected_answer_id" binding:"omitempty,gt=0"`
	OpenAnswerText   *string `json:"open_answer_text" binding:"omitempty,max=10000"`
}

// SubmitTestRequest is the payload for submitting a session's answer batch.
type SubmitTestRequest struct {
	Answers []SubmitAnswerRequest `json:"answers" binding:"required,dive"`
}
