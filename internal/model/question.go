package model

import (
	"github.com/google/uuid"
)

// QuestionType is the closed set of supported question kinds. Scoring and
// authoring validation switch on this tag, never on the shape of the
// answer set.
type QuestionType string

const (
	QuestionTypeQCM         QuestionType = "QCM"
	QuestionTypeTrueOrFalse QuestionType = "TRUE_OR_FALSE"
	QuestionTypeOpen        QuestionType = "OPEN_QUESTION"
)

// DisplayName returns the human-readable name used in result breakdowns.
func (t QuestionType) DisplayName() string {
	switch t {
	case QuestionTypeQCM:
		return "qcm"
	case QuestionTypeTrueOrFalse:
		return "true or false"
	case QuestionTypeOpen:
		return "open question"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the supported question types.
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypeQCM, QuestionTypeTrueOrFalse, QuestionTypeOpen:
		return true
	}
	return false
}

// Question is a single authored question owned by an enterprise.
// Choice questions carry Answers; open questions carry an OpenAnswerSpec.
type Question struct {
	ID           int             `json:"id"`
	EnterpriseID uuid.UUID       `json:"enterprise_id"`
	Label        string          `json:"label"`
	Hint         string          `json:"hint,omitempty"`
	Type         QuestionType    `json:"question_type"`
	Points       float64         `json:"points"`
	Answers      []Answer        `json:"answers,omitempty"`
	Open         *OpenAnswerSpec `json:"open_answer,omitempty"`
}

// Answer is one discrete option of a choice question.
type Answer struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"question_id"`
	Label      string `json:"label"`
	Correct    bool   `json:"correct"`
}

// OpenAnswerSpec holds the model answer and keyword set of an open question.
type OpenAnswerSpec struct {
	ID             int      `json:"id"`
	QuestionID     int      `json:"question_id"`
	ExpectedAnswer string   `json:"expected_answer"`
	Keywords       []string `json:"keywords"`
}

// CreateQuestionRequest is the payload for authoring a question.
type CreateQuestionRequest struct {
	Label        string                `json:"label" binding:"required,min=1,max=2000"`
	Hint         string                `json:"hint" binding:"omitempty,max=2000"`
	QuestionType string                `json:"question_type" binding:"required,oneof=QCM TRUE_OR_FALSE OPEN_QUESTION"`
	Points       float64               `json:"points" binding:"required,gt=0"`
	Answers      []CreateAnswerRequest `json:"answers" binding:"omitempty,dive"`
	OpenAnswer   *CreateOpenAnswerSpec `json:"open_answer" binding:"omitempty"`
}

// CreateAnswerRequest is one option inside CreateQuestionRequest.
type CreateAnswerRequest struct {
	Label   string `json:"label" binding:"required,min=1,max=500"`
	Correct bool   `json:"correct"`
}

// CreateOpenAnswerSpec is the open-answer part of CreateQuestionRequest.
type CreateOpenAnswerSpec struct {
	ExpectedAnswer string   `json:"expected_answer" binding:"required,min=1"`
	Keywords       []string `json:"keywords" binding:"required,min=1,dive,required"`
}
