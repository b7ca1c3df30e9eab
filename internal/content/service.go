package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nkohli/algoprep/internal/grade"
	"github.com/nkohli/algoprep/internal/llm"
	"github.com/nkohli/algoprep/internal/problems"
	"github.com/nkohli/algoprep/internal/program"
	"github.com/nkohli/algoprep/internal/quiz"
)

// Service generates problem sets, coding patterns, and quizzes using
// the LLM provider. Output is validated for shape before it is handed
// to callers; persistence is the caller's job.
type Service struct {
	provider llm.Provider
	config   Config
}

// NewService creates a Service with the given provider and config.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// AlgorithmSetInput is the context for an algorithm problem-set request.
type AlgorithmSetInput struct {
	Language   string
	Difficulty problems.Difficulty
	Count      int

	// ExistingTitles are titles already created for this user, included
	// in the prompt so the model avoids repeats.
	ExistingTitles []string
}

// PatternInput is the context for a coding-pattern request.
type PatternInput struct {
	Language     string
	Topic        string // optional: a specific pattern to generate
	ProblemCount int

	ExistingTitles   []string
	ExistingPatterns []string
}

// QuizInput is the context for a quiz request.
type QuizInput struct {
	Language      string
	QuestionCount int
}

// problemOutput is one raw generated problem before validation.
type problemOutput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Hint        string `json:"hint"`
}

// AlgorithmSet generates a set of standalone algorithm problem drafts.
func (s *Service) AlgorithmSet(ctx context.Context, in AlgorithmSetInput) ([]problems.Draft, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	var raw struct {
		Problems []problemOutput `json:"problems"`
	}
	if err := s.generate(ctx, ProblemSetSchema, problemSetSystemPrompt, buildProblemSetMessage(in, s.config), &raw); err != nil {
		return nil, err
	}
	if len(raw.Problems) == 0 {
		return nil, &ValidationError{Field: "problems", Message: "empty problem set"}
	}

	drafts := make([]problems.Draft, 0, len(raw.Problems))
	for i, p := range raw.Problems {
		draft := toDraft(p, problems.KindAlgorithm)
		if err := draft.Validate(); err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("problems[%d]", i), Message: err.Error()}
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

// CodingPattern generates one coding-pattern draft with its problems.
func (s *Service) CodingPattern(ctx context.Context, in PatternInput) (*program.PatternDraft, error) {
	ctx = llm.WithPurpose(ctx, "pattern-gen")

	var raw struct {
		Title    string          `json:"title"`
		Info     string          `json:"info"`
		Problems []problemOutput `json:"problems"`
	}
	if err := s.generate(ctx, PatternSchema, patternSystemPrompt, buildPatternMessage(in, s.config), &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.Title) == "" {
		return nil, &ValidationError{Field: "title", Message: "pattern title is empty"}
	}
	if len(raw.Problems) == 0 {
		return nil, &ValidationError{Field: "problems", Message: "pattern has no problems"}
	}

	draft := &program.PatternDraft{
		Title:         raw.Title,
		Info:          raw.Info,
		TotalProblems: len(raw.Problems),
	}
	for i, p := range raw.Problems {
		pd := toDraft(p, problems.KindCodingPattern)
		if err := pd.Validate(); err != nil {
			return nil, &ValidationError{Field: fmt.Sprintf("problems[%d]", i), Message: err.Error()}
		}
		draft.Problems = append(draft.Problems, pd)
	}
	return draft, nil
}

// questionOutput is one raw generated quiz question before validation.
type questionOutput struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Answers  []string `json:"answers"`
}

// Quiz generates a quiz for one programming language.
func (s *Service) Quiz(ctx context.Context, in QuizInput) (*quiz.Quiz, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	var raw struct {
		Questions []questionOutput `json:"questions"`
	}
	if err := s.generate(ctx, QuizSchema, quizSystemPrompt, buildQuizMessage(in), &raw); err != nil {
		return nil, err
	}
	if len(raw.Questions) == 0 {
		return nil, &ValidationError{Field: "questions", Message: "empty quiz"}
	}

	q := &quiz.Quiz{Language: in.Language}
	for i, qo := range raw.Questions {
		question := grade.Question{
			Type:    grade.QuestionType(qo.Type),
			Prompt:  qo.Question,
			Options: qo.Options,
		}
		switch question.Type {
		case grade.TypeTrueFalse:
			question.AnswerBool = strings.EqualFold(qo.Answer, "true")
		case grade.TypeSingleChoice:
			question.AnswerText = qo.Answer
		case grade.TypeMultipleChoice:
			question.AnswerMulti = qo.Answers
		}
		if verr := validateQuestion(fmt.Sprintf("questions[%d]", i), question); verr != nil {
			return nil, verr
		}
		q.Questions = append(q.Questions, question)
	}
	return q, nil
}

// generate sends one schema-constrained request and decodes the response
// into out.
func (s *Service) generate(ctx context.Context, schema *llm.Schema, system, userMsg string, out any) error {
	resp, err := s.provider.Generate(ctx, llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      schema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}

func toDraft(p problemOutput, kind problems.Kind) problems.Draft {
	return problems.Draft{
		Title:       p.Title,
		Description: p.Description,
		Difficulty:  problems.Difficulty(p.Difficulty),
		Kind:        kind,
		Hint:        p.Hint,
	}
}
