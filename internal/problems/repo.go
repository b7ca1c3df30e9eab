package problems

import (
	"context"
	"errors"
	"fmt"
)

// Store is the persistence boundary for canonical problems. FindBySlug
// returns ErrNotFound on a miss; Create returns ErrDuplicateSlug when the
// slug already exists. Single-record reads observe prior writes.
type Store interface {
	Get(ctx context.Context, id string) (*Problem, error)
	FindBySlug(ctx context.Context, slug string) (*Problem, error)
	Create(ctx context.Context, p *Problem) (string, error)
	Delete(ctx context.Context, id string) error
}

// Repository provides fetch-or-create access to problems keyed by slug.
// Generated content may repeat a concept across calls; the repository
// guarantees every caller asking for the same slug converges on the same
// canonical record.
type Repository struct {
	store Store
}

// NewRepository creates a Repository over store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// FindBySlug looks up a problem by slug. No side effects.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Problem, error) {
	p, err := r.store.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "find-by-slug", Slug: slug, Err: err}
	}
	return p, nil
}

// FindOrCreate resolves a draft to a canonical problem. On a slug hit the
// existing problem wins and the draft content is discarded. On a miss the
// draft is persisted. A create-vs-create race is resolved by re-reading
// the winner, never by surfacing the conflict.
func (r *Repository) FindOrCreate(ctx context.Context, draft Draft) (*Problem, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid draft: %w", err)
	}
	slug := Slugify(draft.Title)

	existing, err := r.store.FindBySlug(ctx, slug)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, &PersistenceError{Op: "find-by-slug", Slug: slug, Err: err}
	}

	p := &Problem{
		Slug:        slug,
		Title:       draft.Title,
		Description: draft.Description,
		Difficulty:  draft.Difficulty,
		Kind:        draft.Kind,
		Hint:        draft.Hint,
	}
	id, err := r.store.Create(ctx, p)
	if err == nil {
		p.ID = id
		return p, nil
	}

	// Lost a create race: another caller persisted this slug first.
	// Re-read and return the winner.
	if errors.Is(err, ErrDuplicateSlug) {
		winner, rerr := r.store.FindBySlug(ctx, slug)
		if rerr == nil {
			return winner, nil
		}
		return nil, &PersistenceError{Op: "find-by-slug", Slug: slug, Err: rerr}
	}

	return nil, &PersistenceError{Op: "create", Slug: slug, Err: err}
}

// DraftFailure reports one draft that could not be resolved in a batch.
type DraftFailure struct {
	Slug  string
	Draft Draft
	Err   error
}

// FindOrCreateMany resolves a batch of drafts. Failures are isolated: one
// bad draft is reported in the failure list and does not affect its
// siblings. The result map is keyed by slug; drafts sharing a slug
// resolve to the same problem.
func (r *Repository) FindOrCreateMany(ctx context.Context, drafts []Draft) (map[string]*Problem, []DraftFailure) {
	resolved := make(map[string]*Problem, len(drafts))
	var failures []DraftFailure

	for _, draft := range drafts {
		slug := Slugify(draft.Title)
		if _, ok := resolved[slug]; ok && slug != "" {
			continue
		}
		p, err := r.FindOrCreate(ctx, draft)
		if err != nil {
			failures = append(failures, DraftFailure{Slug: slug, Draft: draft, Err: err})
			continue
		}
		resolved[p.Slug] = p
	}

	return resolved, failures
}
