package problems

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

// mockStore implements Store in memory for testing.
type mockStore struct {
	mu       sync.Mutex
	bySlug   map[string]*Problem
	nextID   int
	creates  int
	findErr  error
	createFn func(p *Problem) error // optional per-create hook
}

func newMockStore() *mockStore {
	return &mockStore{bySlug: make(map[string]*Problem)}
}

func (m *mockStore) Get(_ context.Context, id string) (*Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.bySlug {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockStore) FindBySlug(_ context.Context, slug string) (*Problem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.bySlug[slug]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *mockStore) Create(_ context.Context, p *Problem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createFn != nil {
		if err := m.createFn(p); err != nil {
			return "", err
		}
	}
	if _, ok := m.bySlug[p.Slug]; ok {
		return "", ErrDuplicateSlug
	}
	m.nextID++
	stored := *p
	stored.ID = fmt.Sprintf("p-%d", m.nextID)
	m.bySlug[p.Slug] = &stored
	return stored.ID, nil
}

func (m *mockStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for slug, p := range m.bySlug {
		if p.ID == id {
			delete(m.bySlug, slug)
			return nil
		}
	}
	return ErrNotFound
}

func testDraft(title string) Draft {
	return Draft{
		Title:       title,
		Description: "Statement.",
		Difficulty:  DifficultyEasy,
		Kind:        KindAlgorithm,
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Two Sum", "two-sum"},
		{"  Two   Sum  ", "two-sum"},
		{"Kadane's Algorithm", "kadane-s-algorithm"},
		{"3Sum", "3sum"},
		{"Top-K Elements!", "top-k-elements"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.title); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestFindOrCreate_CreatesOnMiss(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)

	p, err := repo.FindOrCreate(context.Background(), testDraft("Two Sum"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Slug != "two-sum" {
		t.Errorf("slug = %q", p.Slug)
	}
	if p.ID == "" {
		t.Error("expected assigned id")
	}
}

func TestFindOrCreate_Idempotent(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)
	ctx := context.Background()

	first, err := repo.FindOrCreate(ctx, testDraft("Two Sum"))
	if err != nil {
		t.Fatalf("first: %v", err)
	}

	// Same title with different content: the existing problem wins and
	// the new draft's content is discarded.
	second, err := repo.FindOrCreate(ctx, Draft{
		Title:       "Two Sum",
		Description: "A different statement.",
		Difficulty:  DifficultyAdvanced,
		Kind:        KindAlgorithm,
	})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("ids differ: %q vs %q", second.ID, first.ID)
	}
	if second.Difficulty != DifficultyEasy {
		t.Errorf("existing content replaced: difficulty = %q", second.Difficulty)
	}
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
}

func TestFindOrCreate_TitleNormalization(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)
	ctx := context.Background()

	first, _ := repo.FindOrCreate(ctx, testDraft("Two Sum"))
	second, err := repo.FindOrCreate(ctx, testDraft("  two   SUM "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Error("differently-spelled titles should resolve to the same problem")
	}
}

func TestFindOrCreate_InvalidDraft(t *testing.T) {
	repo := NewRepository(newMockStore())
	ctx := context.Background()

	cases := []Draft{
		{Title: "", Difficulty: DifficultyEasy, Kind: KindAlgorithm},
		{Title: "Two Sum", Difficulty: "impossible", Kind: KindAlgorithm},
		{Title: "Two Sum", Difficulty: DifficultyEasy, Kind: "challenge"},
		{Title: "!!!", Difficulty: DifficultyEasy, Kind: KindAlgorithm}, // empty slug
	}
	for i, draft := range cases {
		if _, err := repo.FindOrCreate(ctx, draft); err == nil {
			t.Errorf("case %d: expected validation error", i)
		}
	}
}

func TestFindOrCreate_LostRaceReturnsWinner(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)
	ctx := context.Background()

	// Simulate another caller creating the slug between this caller's
	// miss and its create.
	raced := false
	store.createFn = func(p *Problem) error {
		if !raced {
			raced = true
			store.nextID++
			winner := *p
			winner.ID = "p-winner"
			winner.Description = "The winner's content."
			store.bySlug[p.Slug] = &winner
		}
		return nil
	}

	p, err := repo.FindOrCreate(ctx, testDraft("Two Sum"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != "p-winner" {
		t.Errorf("id = %q, want the race winner", p.ID)
	}
}

func TestFindOrCreate_StoreFailure(t *testing.T) {
	store := newMockStore()
	store.findErr = errors.New("connection lost")
	repo := NewRepository(store)

	_, err := repo.FindOrCreate(context.Background(), testDraft("Two Sum"))
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PersistenceError, got %v", err)
	}
	if perr.Op != "find-by-slug" {
		t.Errorf("op = %q", perr.Op)
	}
	if !errors.Is(err, store.findErr) {
		t.Error("PersistenceError should wrap the cause")
	}
}

func TestFindBySlug_Miss(t *testing.T) {
	repo := NewRepository(newMockStore())
	_, err := repo.FindBySlug(context.Background(), "no-such")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindOrCreateMany_IsolatesFailures(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)

	drafts := []Draft{
		testDraft("Two Sum"),
		{Title: "Bad Draft", Difficulty: "impossible", Kind: KindAlgorithm},
		testDraft("Binary Search"),
	}
	resolved, failures := repo.FindOrCreateMany(context.Background(), drafts)

	if len(resolved) != 2 {
		t.Errorf("resolved = %d, want 2", len(resolved))
	}
	if len(failures) != 1 {
		t.Fatalf("failures = %d, want 1", len(failures))
	}
	if failures[0].Draft.Title != "Bad Draft" {
		t.Errorf("failed draft = %q", failures[0].Draft.Title)
	}
	if _, ok := resolved["two-sum"]; !ok {
		t.Error("two-sum missing from resolved map")
	}
}

func TestFindOrCreateMany_SharedSlugResolvesOnce(t *testing.T) {
	store := newMockStore()
	repo := NewRepository(store)

	drafts := []Draft{testDraft("Two Sum"), testDraft("two sum")}
	resolved, failures := repo.FindOrCreateMany(context.Background(), drafts)

	if len(failures) != 0 {
		t.Fatalf("failures = %d, want 0", len(failures))
	}
	if len(resolved) != 1 {
		t.Errorf("resolved = %d, want 1", len(resolved))
	}
	if store.creates != 1 {
		t.Errorf("creates = %d, want 1", store.creates)
	}
}
