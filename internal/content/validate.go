package content

import (
	"fmt"
	"strings"

	"github.com/nkohli/algoprep/internal/grade"
)

// ValidationError describes why a generated payload failed validation.
// Validation failures are retryable: regeneration usually fixes them.
type ValidationError struct {
	Field   string // which part of the payload failed, e.g. "questions[2]"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid generated content at %s: %s", e.Field, e.Message)
}

const choiceOptionCount = 4

// validateQuestion checks a generated quiz question's shape: options
// counts per type, answers referencing real options, TOF carrying no
// options.
func validateQuestion(field string, q grade.Question) *ValidationError {
	if !q.Type.Valid() {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown question type %q", q.Type)}
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return &ValidationError{Field: field, Message: "question text is empty"}
	}

	switch q.Type {
	case grade.TypeTrueFalse:
		if len(q.Options) != 0 {
			return &ValidationError{Field: field, Message: "true/false question carries options"}
		}

	case grade.TypeSingleChoice:
		if len(q.Options) != choiceOptionCount {
			return &ValidationError{Field: field, Message: fmt.Sprintf("expected %d options, got %d", choiceOptionCount, len(q.Options))}
		}
		if !containsOption(q.Options, q.AnswerText) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("answer %q is not one of the options", q.AnswerText)}
		}

	case grade.TypeMultipleChoice:
		if len(q.Options) != choiceOptionCount {
			return &ValidationError{Field: field, Message: fmt.Sprintf("expected %d options, got %d", choiceOptionCount, len(q.Options))}
		}
		if len(q.AnswerMulti) == 0 {
			return &ValidationError{Field: field, Message: "multiple-choice question has no correct answers"}
		}
		for _, ans := range q.AnswerMulti {
			if !containsOption(q.Options, ans) {
				return &ValidationError{Field: field, Message: fmt.Sprintf("answer %q is not one of the options", ans)}
			}
		}
	}
	return nil
}

func containsOption(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}
