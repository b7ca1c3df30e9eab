package content

import "github.com/nkohli/algoprep/internal/llm"

// problemProperties is the shared schema fragment for one generated problem.
var problemProperties = map[string]any{
	"title": map[string]any{
		"type":        "string",
		"description": "Short, unique problem title, e.g. \"Two Sum\"",
	},
	"description": map[string]any{
		"type":        "string",
		"description": "Full problem statement with input/output format and at least one example",
	},
	"difficulty": map[string]any{
		"type":        "string",
		"enum":        []any{"easy", "mid", "advanced"},
		"description": "Problem difficulty",
	},
	"hint": map[string]any{
		"type":        "string",
		"description": "A short nudge toward the intended approach, without giving it away",
	},
}

// ProblemSetSchema defines the JSON schema for algorithm problem-set
// generation responses.
var ProblemSetSchema = &llm.Schema{
	Name:        "problem-set",
	Description: "A set of standalone algorithm practice problems",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"properties":           problemProperties,
					"required":             []any{"title", "description", "difficulty", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"problems"},
		"additionalProperties": false,
	},
}

// PatternSchema defines the JSON schema for coding-pattern generation
// responses: the pattern's write-up plus its member problems.
var PatternSchema = &llm.Schema{
	Name:        "coding-pattern",
	Description: "A coding pattern with an explanation and practice problems that exercise it",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "The pattern name, e.g. \"Sliding Window\"",
			},
			"info": map[string]any{
				"type":        "string",
				"description": "An explanation of the pattern: when it applies and how it works",
			},
			"problems": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"properties":           problemProperties,
					"required":             []any{"title", "description", "difficulty", "hint"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"title", "info", "problems"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for quiz generation responses.
var QuizSchema = &llm.Schema{
	Name:        "language-quiz",
	Description: "A timed skill-assessment quiz for one programming language",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type": map[string]any{
							"type":        "string",
							"enum":        []any{"TOF", "singleChoice", "multipleChoice"},
							"description": "Question kind: true/false, pick one, or pick all that apply",
						},
						"question": map[string]any{
							"type":        "string",
							"description": "The question text",
						},
						"options": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "Exactly 4 options for choice questions. Empty array for TOF.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "For TOF: \"true\" or \"false\". For singleChoice: the text of the correct option. Empty for multipleChoice.",
						},
						"answers": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "string",
							},
							"description": "For multipleChoice: the texts of all correct options. Empty array otherwise.",
						},
					},
					"required":             []any{"type", "question", "options", "answer", "answers"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
