package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/askjudy/relay/memory"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newMemory(fact string, category memory.Category, at time.Time) memory.Memory {
	return memory.Memory{
		ID:        uuid.New().String(),
		Owner:     memory.DefaultOwner,
		Fact:      fact,
		Category:  category,
		CreatedAt: at,
	}
}

func TestInsertAndListMemories(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	older := newMemory("Jake loves pizza", memory.CategoryFavorite, base.Add(-time.Hour))
	newer := newMemory("Kendall is allergic to tree nuts", memory.CategoryAllergy, base)

	if err := store.InsertMemories(ctx, []memory.Memory{older, newer}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	memories, err := store.ListMemories(ctx, memory.DefaultOwner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(memories) != 2 {
		t.Fatalf("expected 2 memories, got %d", len(memories))
	}
	// Newest first.
	if memories[0].ID != newer.ID {
		t.Errorf("expected newest memory first, got %q", memories[0].Fact)
	}
	if memories[1].ID != older.ID {
		t.Errorf("expected oldest memory last, got %q", memories[1].Fact)
	}
	if memories[0].Category != memory.CategoryAllergy {
		t.Errorf("category not round-tripped: %q", memories[0].Category)
	}
	if !memories[0].CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("created_at not round-tripped: got %v, want %v", memories[0].CreatedAt, newer.CreatedAt)
	}
}

func TestInsertMemoriesEmptyBatch(t *testing.T) {
	store := newTestStore(t)
	if err := store.InsertMemories(context.Background(), nil); err != nil {
		t.Fatalf("empty batch insert failed: %v", err)
	}
}

func TestListMemoriesEmpty(t *testing.T) {
	store := newTestStore(t)
	memories, err := store.ListMemories(context.Background(), memory.DefaultOwner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if memories == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(memories) != 0 {
		t.Fatalf("expected 0 memories, got %d", len(memories))
	}
}

func TestDeleteMemory(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := newMemory("Dinner is at 6pm", memory.CategorySchedule, time.Now().UTC())
	if err := store.InsertMemories(ctx, []memory.Memory{m}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := store.DeleteMemory(ctx, memory.DefaultOwner, m.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	memories, err := store.ListMemories(ctx, memory.DefaultOwner)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(memories) != 0 {
		t.Fatalf("expected 0 memories after delete, got %d", len(memories))
	}

	if err := store.DeleteMemory(ctx, memory.DefaultOwner, m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
	if err := store.DeleteMemory(ctx, memory.DefaultOwner, "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown id, got %v", err)
	}
}

func TestDeleteMemoryOwnerScoped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	m := newMemory("Jake loves pizza", memory.CategoryFavorite, time.Now().UTC())
	if err := store.InsertMemories(ctx, []memory.Memory{m}); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := store.DeleteMemory(ctx, "someone-else", m.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for wrong owner, got %v", err)
	}
	memories, _ := store.ListMemories(ctx, memory.DefaultOwner)
	if len(memories) != 1 {
		t.Errorf("memory deleted through wrong owner, %d remaining", len(memories))
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	p, err := store.GetProfile(ctx, memory.DefaultOwner)
	if err != nil {
		t.Fatalf("get empty profile failed: %v", err)
	}
	if *p != (Profile{}) {
		t.Errorf("expected empty profile before first save, got %+v", p)
	}

	want := &Profile{
		FamilySize:   "4",
		KidsAges:     "6, 9",
		DietaryNeeds: "no tree nuts",
		Dislikes:     "mushrooms",
		Budget:       "$100/week",
		CookingSkill: "intermediate",
		BusyNights:   "Tue, Thu",
		Favorites:    "pizza, tacos",
		Equipment:    "instant pot",
	}
	if err := store.ReplaceProfile(ctx, memory.DefaultOwner, want); err != nil {
		t.Fatalf("replace failed: %v", err)
	}

	got, err := store.GetProfile(ctx, memory.DefaultOwner)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *got != *want {
		t.Errorf("profile not round-tripped: got %+v, want %+v", got, want)
	}

	// Replace overwrites every field, cleared ones included.
	want.Dislikes = ""
	want.Budget = "$120/week"
	if err := store.ReplaceProfile(ctx, memory.DefaultOwner, want); err != nil {
		t.Fatalf("second replace failed: %v", err)
	}
	got, err = store.GetProfile(ctx, memory.DefaultOwner)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if *got != *want {
		t.Errorf("profile not overwritten: got %+v, want %+v", got, want)
	}
}
