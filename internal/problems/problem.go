package problems

import (
	"fmt"
	"strings"
)

// Difficulty grades a problem.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMid      Difficulty = "mid"
	DifficultyAdvanced Difficulty = "advanced"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMid, DifficultyAdvanced:
		return true
	}
	return false
}

// Kind distinguishes standalone algorithm problems from problems that
// belong to a coding-pattern group.
type Kind string

const (
	KindAlgorithm     Kind = "algorithm"
	KindCodingPattern Kind = "coding-pattern"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindAlgorithm || k == KindCodingPattern
}

// Problem is a canonical challenge, created exactly once per slug.
// Immutable once created.
type Problem struct {
	ID          string
	Slug        string // derived from Title; the de-duplication key
	Title       string
	Description string
	Difficulty  Difficulty
	Kind        Kind
	Hint        string
}

// Draft is generated problem content that has not been persisted yet.
// The repository resolves a draft to a canonical Problem by slug; when
// the slug already exists the draft content is discarded.
type Draft struct {
	Title       string
	Description string
	Difficulty  Difficulty
	Kind        Kind
	Hint        string
}

// Validate checks that the draft can become a canonical problem.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("draft title is empty")
	}
	if !d.Difficulty.Valid() {
		return fmt.Errorf("unknown difficulty %q", d.Difficulty)
	}
	if !d.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", d.Kind)
	}
	if Slugify(d.Title) == "" {
		return fmt.Errorf("title %q yields an empty slug", d.Title)
	}
	return nil
}

// Slugify derives the deterministic slug for a title: lowercase, runs of
// non-alphanumerics collapse to single hyphens, no leading or trailing
// hyphen. The same title always yields the same slug.
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}
	return b.String()
}
