package content

import (
	"strings"
	"testing"

	"github.com/nkohli/algoprep/internal/problems"
)

func TestBuildDedup_Empty(t *testing.T) {
	if got := buildDedup(nil, 10); got != "None" {
		t.Errorf("got %q, want None", got)
	}
}

func TestBuildDedup_Numbered(t *testing.T) {
	got := buildDedup([]string{"Two Sum", "Binary Search"}, 10)
	want := "1. Two Sum\n2. Binary Search"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestBuildDedup_KeepsMostRecent(t *testing.T) {
	titles := []string{"a", "b", "c", "d", "e"}
	got := buildDedup(titles, 2)
	if strings.Contains(got, "c") {
		t.Errorf("expected only the last 2 titles, got %q", got)
	}
	if !strings.Contains(got, "d") || !strings.Contains(got, "e") {
		t.Errorf("missing recent titles in %q", got)
	}
}

func TestBuildProblemSetMessage(t *testing.T) {
	msg := buildProblemSetMessage(AlgorithmSetInput{
		Language:       "typescript",
		Difficulty:     problems.DifficultyAdvanced,
		Count:          5,
		ExistingTitles: []string{"Two Sum"},
	}, DefaultConfig())

	for _, want := range []string{
		"Language: typescript",
		"Difficulty: advanced",
		"Number of problems: 5",
		"1. Two Sum",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestBuildPatternMessage_OptionalTopic(t *testing.T) {
	msg := buildPatternMessage(PatternInput{Language: "go", ProblemCount: 3}, DefaultConfig())
	if strings.Contains(msg, "Requested pattern") {
		t.Errorf("empty topic should be omitted:\n%s", msg)
	}

	msg = buildPatternMessage(PatternInput{Language: "go", Topic: "Two Pointers", ProblemCount: 3}, DefaultConfig())
	if !strings.Contains(msg, "Requested pattern: Two Pointers") {
		t.Errorf("topic missing:\n%s", msg)
	}
}

func TestBuildQuizMessage(t *testing.T) {
	msg := buildQuizMessage(QuizInput{Language: "python", QuestionCount: 10})
	if !strings.Contains(msg, "Language: python") || !strings.Contains(msg, "Number of questions: 10") {
		t.Errorf("unexpected message:\n%s", msg)
	}
}
