package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/jackc/pgx/v5"
)

type fakeQuestionAuthoringStore struct {
	byTest map[int][]model.PositionedQuestion
}

func (s *fakeQuestionAuthoringStore) Create(_ context.Context, _ *model.Question) error {
	return nil
}

func (s *fakeQuestionAuthoringStore) GetByID(_ context.Context, _ int) (*model.Question, error) {
	return nil, pgx.ErrNoRows
}

func (s *fakeQuestionAuthoringStore) ListByEnterprise(_ context.Context, _ uuid.UUID) ([]model.Question, error) {
	return nil, nil
}

func (s *fakeQuestionAuthoringStore) ListByTest(_ context.Context, testID int) ([]model.PositionedQuestion, error) {
	return s.byTest[testID], nil
}

type fakeTestAuthoringStore struct {
	tests map[int]*model.Test
}

func (s *fakeTestAuthoringStore) Create(_ context.Context, _ *model.Test, _ []int) error {
	return nil
}

func (s *fakeTestAuthoringStore) GetByIDAndEnterprise(_ context.Context, id int, enterpriseID uuid.UUID) (*model.Test, error) {
	test, ok := s.tests[id]
	if !ok || test.EnterpriseID != enterpriseID {
		return nil, pgx.ErrNoRows
	}
	return test, nil
}

func (s *fakeTestAuthoringStore) ListByEnterprise(_ context.Context, _ uuid.UUID) ([]model.Test, error) {
	return nil, nil
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question model.Question
		wantErr  bool
	}{
		{
			name: "valid qcm",
			question: model.Question{
				Type: model.QuestionTypeQCM, Points: 2,
				Answers: []model.Answer{
					{Label: "a", Correct: true},
					{Label: "b"},
				},
			},
		},
		{
			name: "qcm single answer",
			question: model.Question{
				Type: model.QuestionTypeQCM, Points: 2,
				Answers: []model.Answer{{Label: "a", Correct: true}},
			},
			wantErr: true,
		},
		{
			name: "qcm no correct answer",
			question: model.Question{
				Type: model.QuestionTypeQCM, Points: 2,
				Answers: []model.Answer{{Label: "a"}, {Label: "b"}},
			},
			wantErr: true,
		},
		{
			name: "valid true or false",
			question: model.Question{
				Type: model.QuestionTypeTrueOrFalse, Points: 1,
				Answers: []model.Answer{
					{Label: "True", Correct: true},
					{Label: "False"},
				},
			},
		},
		{
			name: "true or false three answers",
			question: model.Question{
				Type: model.QuestionTypeTrueOrFalse, Points: 1,
				Answers: []model.Answer{
					{Label: "True", Correct: true},
					{Label: "False"},
					{Label: "Maybe"},
				},
			},
			wantErr: true,
		},
		{
			name: "true or false no true label",
			question: model.Question{
				Type: model.QuestionTypeTrueOrFalse, Points: 1,
				Answers: []model.Answer{
					{Label: "Yes", Correct: true},
					{Label: "No"},
				},
			},
			wantErr: true,
		},
		{
			name: "true or false correct is the false option",
			question: model.Question{
				Type: model.QuestionTypeTrueOrFalse, Points: 1,
				Answers: []model.Answer{
					{Label: "True"},
					{Label: "False", Correct: true},
				},
			},
			wantErr: true,
		},
		{
			name: "true or false both correct",
			question: model.Question{
				Type: model.QuestionTypeTrueOrFalse, Points: 1,
				Answers: []model.Answer{
					{Label: "True", Correct: true},
					{Label: "False", Correct: true},
				},
			},
			wantErr: true,
		},
		{
			name: "valid open question",
			question: model.Question{
				Type: model.QuestionTypeOpen, Points: 5,
				Open: &model.OpenAnswerSpec{
					ExpectedAnswer: "the answer",
					Keywords:       []string{"answer"},
				},
			},
		},
		{
			name: "open question without spec",
			question: model.Question{
				Type: model.QuestionTypeOpen, Points: 5,
			},
			wantErr: true,
		},
		{
			name: "open question without keywords",
			question: model.Question{
				Type: model.QuestionTypeOpen, Points: 5,
				Open: &model.OpenAnswerSpec{ExpectedAnswer: "the answer"},
			},
			wantErr: true,
		},
		{
			name: "zero points",
			question: model.Question{
				Type: model.QuestionTypeQCM, Points: 0,
				Answers: []model.Answer{
					{Label: "a", Correct: true},
					{Label: "b"},
				},
			},
			wantErr: true,
		},
		{
			name:     "unknown type",
			question: model.Question{Type: "ESSAY", Points: 1},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(&tt.question)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidQuestion) {
					t.Errorf("err = %v, want ErrInvalidQuestion", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestListTestQuestions(t *testing.T) {
	owner := uuid.New()
	questions := &fakeQuestionAuthoringStore{byTest: map[int][]model.PositionedQuestion{
		7: {choiceQuestion(1, 2, 100), openQuestion(2, 5)},
	}}
	tests := &fakeTestAuthoringStore{tests: map[int]*model.Test{
		7: {ID: 7, EnterpriseID: owner, Name: "backend screen"},
	}}
	svc := NewTestService(questions, tests, nil, nil)

	got, err := svc.ListTestQuestions(context.Background(), owner, 7)
	if err != nil {
		t.Fatalf("ListTestQuestions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("questions = %d, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("question order = %d,%d, want 1,2", got[0].ID, got[1].ID)
	}

	// Another tenant's test id must read as nonexistent.
	if _, err := svc.ListTestQuestions(context.Background(), uuid.New(), 7); !errors.Is(err, ErrTestNotFound) {
		t.Errorf("err = %v, want ErrTestNotFound", err)
	}
}

func TestGenerateAccessCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z]{4}[0-9]{2}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateAccessCode()
		if err != nil {
			t.Fatalf("GenerateAccessCode: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match AAAA00 shape", code)
		}
		seen[code] = true
	}

	// 100 draws from a ~45M space colliding down to a handful would mean
	// the randomness is broken.
	if len(seen) < 95 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}
