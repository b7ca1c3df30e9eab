package content

import (
	"fmt"
	"strings"
)

const problemSetSystemPrompt = `You are a technical interviewer creating algorithm practice problems for software engineers.

Rules:
- Generate standalone algorithm problems for the given programming language and difficulty.
- Each problem statement must be self-contained: describe the input, the expected output, and include at least one worked example.
- Use plain ASCII text. Express code fragments in the target language.
- Titles must be short and unique. Do not repeat any title from the "already created" list.
- The hint should point at the intended technique (e.g. "think about what a hash map buys you") without spelling out the solution.
- Problems must be solvable without external libraries beyond the language's standard library.`

const patternSystemPrompt = `You are a technical interviewer teaching coding patterns to software engineers.

Rules:
- Generate one coding pattern (e.g. Sliding Window, Two Pointers, Fast & Slow Pointers) with practice problems that exercise it.
- The info section must explain when the pattern applies, how it works, and what problem shapes signal it.
- Every problem must genuinely require the pattern; do not pad with unrelated problems.
- Each problem statement must be self-contained with input/output format and at least one example.
- Do not repeat any pattern from the "patterns already studied" list, and do not repeat any problem title from the "already created" list.
- Order the problems from easiest to hardest.`

const quizSystemPrompt = `You are a technical interviewer assessing a software engineer's knowledge of a programming language.

Rules:
- Generate quiz questions about the given programming language: syntax, semantics, standard library, idioms, and common pitfalls.
- Each question is answerable in under 10 seconds by someone who knows the material; no questions that require working out code on paper.
- Use type "TOF" for true/false statements, "singleChoice" when exactly one option is correct, and "multipleChoice" when two or more options are correct.
- Choice questions have exactly 4 options. The correct answer(s) must match option texts exactly.
- For "TOF" the answer is the string "true" or "false" and the options array is empty.
- Mix difficulties: some questions a beginner answers, some only a senior engineer answers.`

// buildProblemSetMessage constructs the user message for an algorithm
// problem-set request.
func buildProblemSetMessage(in AlgorithmSetInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n", in.Language)
	fmt.Fprintf(&b, "Difficulty: %s\n", in.Difficulty)
	fmt.Fprintf(&b, "Number of problems: %d\n", in.Count)

	b.WriteString("\nAlready created (do not repeat):\n")
	b.WriteString(buildDedup(in.ExistingTitles, cfg.MaxExistingTitles))

	return b.String()
}

// buildPatternMessage constructs the user message for a coding-pattern
// request.
func buildPatternMessage(in PatternInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n", in.Language)
	if in.Topic != "" {
		fmt.Fprintf(&b, "Requested pattern: %s\n", in.Topic)
	}
	fmt.Fprintf(&b, "Number of problems: %d\n", in.ProblemCount)

	b.WriteString("\nPatterns already studied (do not repeat):\n")
	b.WriteString(buildDedup(in.ExistingPatterns, cfg.MaxExistingTitles))

	b.WriteString("\nAlready created (do not repeat):\n")
	b.WriteString(buildDedup(in.ExistingTitles, cfg.MaxExistingTitles))

	return b.String()
}

// buildQuizMessage constructs the user message for a quiz request.
func buildQuizMessage(in QuizInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Language: %s\n", in.Language)
	fmt.Fprintf(&b, "Number of questions: %d\n", in.QuestionCount)
	return b.String()
}

// buildDedup formats prior titles for the prompt, respecting the max
// limit. Returns "None" if there are none.
func buildDedup(titles []string, max int) string {
	if len(titles) == 0 {
		return "None"
	}

	// Keep only the most recent N titles.
	if max > 0 && len(titles) > max {
		titles = titles[len(titles)-max:]
	}

	var b strings.Builder
	for i, title := range titles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, title)
	}
	return strings.TrimRight(b.String(), "\n")
}
