package grader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// Request carries everything the model needs to score one open answer.
type Request struct {
	Question        string
	ExpectedAnswer  string
	Keywords        []string
	CandidateAnswer string
	MaxPoints       int
}

// Result is a graded open answer.
type Result struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// Grader scores free-text answers.
type Grader interface {
	Grade(ctx context.Context, req Request) (Result, error)
}

const systemPrompt = "You are an expert teacher. Always respond with valid JSON only."

// jsonObjectPattern pulls the first flat JSON object out of a completion, in
// case the model wraps it in prose or a code fence.
var jsonObjectPattern = regexp.MustCompile(`\{[^}]+\}`)

// OpenAIGrader scores answers through an OpenAI-compatible chat completion
// endpoint.
type OpenAIGrader struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewOpenAIGrader creates a grader against the given OpenAI-compatible
// endpoint.
func NewOpenAIGrader(baseURL, apiKey, model string, timeout time.Duration) *OpenAIGrader {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIGrader{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  log.With().Str("component", "grader").Logger(),
	}
}

// Grade asks the model to score the candidate answer between 0 and
// req.MaxPoints. A completion that cannot be parsed, or a non-success
// response from the endpoint, yields a zero-score Result with the reason
// as feedback; only transport failures return an error.
func (g *OpenAIGrader) Grade(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(req)},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		// The endpoint answered but refused the request (rate limit,
		// server error). The answer scores zero rather than failing the
		// whole submission.
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			g.logger.Warn().Int("status", apiErr.HTTPStatusCode).Msg("grader request rejected")
			return Result{Score: 0, Feedback: "grading unavailable"}, nil
		}
		return Result{}, fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		g.logger.Warn().Msg("grader returned no choices")
		return Result{Score: 0, Feedback: "grading unavailable"}, nil
	}

	result, ok := parseResult(resp.Choices[0].Message.Content)
	if !ok {
		g.logger.Warn().Str("content", resp.Choices[0].Message.Content).Msg("unparseable grading response")
		return Result{Score: 0, Feedback: "grading response could not be parsed"}, nil
	}

	result.Score = clamp(result.Score, 0, float64(req.MaxPoints))
	return result, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grade the candidate's answer to the following question on a scale from 0 to %d.\n\n", req.MaxPoints)
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	fmt.Fprintf(&b, "Expected answer: %s\n", req.ExpectedAnswer)
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Key concepts to look for: %s\n", strings.Join(req.Keywords, ", "))
	}
	fmt.Fprintf(&b, "Candidate's answer: %s\n\n", req.CandidateAnswer)
	fmt.Fprintf(&b, `Respond with a JSON object of the form {"score": <number between 0 and %d>, "feedback": "<one short sentence>"}.`, req.MaxPoints)
	return b.String()
}

func parseResult(content string) (Result, bool) {
	match := jsonObjectPattern.FindString(content)
	if match == "" {
		return Result{}, false
	}
	var result Result
	if err := json.Unmarshal([]byte(match), &result); err != nil {
		return Result{}, false
	}
	return result, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
