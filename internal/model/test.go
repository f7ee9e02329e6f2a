package model

import (
	"time"

	"github.com/google/uuid"
)

// Test is an ordered collection of questions owned by an enterprise admin.
// It is treated as immutable once a session starts consuming it.
type Test struct {
	ID              int       `json:"id"`
	EnterpriseID    uuid.UUID `json:"enterprise_id"`
	AdminAccountID  int64     `json:"admin_account_id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	IsPublic        bool      `json:"is_public"`
	CreatedAt       time.Time `json:"created_at"`
}

// CreateTestRequest is the payload for authoring a test. Question ids are
// attached in submission order, positions starting at 1.
type CreateTestRequest struct {
	Name            string `json:"name" binding:"required,min=1,max=255"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1,max=480"`
	QuestionIDs     []int  `json:"question_ids" binding:"required,min=1,dive,gt=0"`
}

// PositionedQuestion is a question joined with its position inside a test.
type PositionedQuestion struct {
	Question
	Position int `json:"position"`
}
