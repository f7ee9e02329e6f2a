package model

import (
	"time"
)

// SessionStatus enumerates test session states. Transitions only move
// forward: PLANNED/SCHEDULED → ACTIVE → FINISHED.
type SessionStatus string

const (
	SessionStatusPlanned   SessionStatus = "PLANNED"
	SessionStatusScheduled SessionStatus = "SCHEDULED"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusFinished  SessionStatus = "FINISHED"
)

// TestSession is one candidate's single attempt at a test, bounded by an
// expiration time and a single-use access code.
type TestSession struct {
	ID             int64         `json:"id"`
	TestID         int           `json:"test_id"`
	CandidateEmail string        `json:"candidate_email"`
	AccessCode     string        `json:"-"`
	CreatedAt      time.Time     `json:"created_at"`
	ExpiresAt      *time.Time    `json:"expires_at,omitempty"`
	EndTime        *time.Time    `json:"end_time,omitempty"`
	IsUsed         bool          `json:"is_used"`
	Status         SessionStatus `json:"status"`
	Score          float64       `json:"score"`
}

// CandidateLoginRequest is the payload for a candidate activating a session.
type CandidateLoginRequest struct {
	AccessCode string `json:"access_code" binding:"required,len=6"`
	Email      string `json:"email" binding:"required,email"`
}

// InviteCandidatesRequest is the payload for inviting candidates to a test.
// One session is created per email.
type InviteCandidatesRequest struct {
	Emails    []string   `json:"emails" binding:"required,min=1,dive,email"`
	ExpiresAt *time.Time `json:"expires_at" binding:"omitempty"`
}

// SessionOverview is the admin-facing view of a session, joined with its test.
type SessionOverview struct {
	SessionID       int64         `json:"session_id"`
	CandidateEmail  string        `json:"candidate_email"`
	AccessCode      string        `json:"access_code"`
	CreatedAt       time.Time     `json:"created_at"`
	ExpiresAt       *time.Time    `json:"expires_at,omitempty"`
	IsUsed          bool          `json:"is_used"`
	Status          SessionStatus `json:"status"`
	Score           float64       `json:"score"`
	TestID          int           `json:"test_id"`
	TestName        string        `json:"test_name"`
	DurationMinutes int           `json:"test_duration_minutes"`
}
