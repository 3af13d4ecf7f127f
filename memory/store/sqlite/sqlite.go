// Package sqlite provides SQLite-backed storage for memories and the
// household profile. The database file is created on first open and the
// schema is applied automatically.
package sqlite

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/askjudy/relay/memory"
)

// Profile is the single fixed-identity household profile record. All fields
// are free text maintained through the profile endpoints.
type Profile struct {
	FamilySize   string `json:"family_size"`
	KidsAges     string `json:"kids_ages"`
	DietaryNeeds string `json:"dietary_needs"`
	Dislikes     string `json:"dislikes"`
	Budget       string `json:"budget"`
	CookingSkill string `json:"cooking_skill"`
	BusyNights   string `json:"busy_nights"`
	Favorites    string `json:"favorites"`
	Equipment    string `json:"equipment"`
}

// Store provides SQLite-backed storage for memories and the profile.
// Memory rows are append-only: inserts never target an existing row, so
// concurrent extractions for different exchanges never contend.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ memory.Store = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS memories (
	id TEXT PRIMARY KEY,
	owner TEXT NOT NULL,
	fact TEXT NOT NULL,
	category TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_memories_owner_created ON memories(owner, created_at DESC);
CREATE TABLE IF NOT EXISTS profile (
	owner TEXT PRIMARY KEY,
	family_size TEXT NOT NULL DEFAULT '',
	kids_ages TEXT NOT NULL DEFAULT '',
	dietary_needs TEXT NOT NULL DEFAULT '',
	dislikes TEXT NOT NULL DEFAULT '',
	budget TEXT NOT NULL DEFAULT '',
	cooking_skill TEXT NOT NULL DEFAULT '',
	busy_nights TEXT NOT NULL DEFAULT '',
	favorites TEXT NOT NULL DEFAULT '',
	equipment TEXT NOT NULL DEFAULT '',
	updated_at DATETIME NOT NULL
);`

// New opens (or creates) the database at path and initializes the schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	// WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create schema")
	}

	return &Store{db: db}, nil
}

// InsertMemories appends a batch of memories in a single transaction.
func (s *Store) InsertMemories(ctx context.Context, memories []memory.Memory) error {
	if len(memories) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin insert")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO memories (id, owner, fact, category, created_at) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for _, m := range memories {
		_, err := stmt.ExecContext(ctx,
			m.ID, m.Owner, m.Fact, string(m.Category),
			m.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return errors.Wrap(err, "insert memory")
		}
	}

	return errors.Wrap(tx.Commit(), "commit insert")
}

// ListMemories returns the owner's memories, newest first.
func (s *Store) ListMemories(ctx context.Context, owner string) ([]memory.Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, owner, fact, category, created_at
		 FROM memories WHERE owner = ? ORDER BY created_at DESC, rowid DESC`, owner)
	if err != nil {
		return nil, errors.Wrap(err, "list memories")
	}
	defer rows.Close()

	memories := []memory.Memory{}
	for rows.Next() {
		var m memory.Memory
		var category, createdAt string
		if err := rows.Scan(&m.ID, &m.Owner, &m.Fact, &category, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scan memory")
		}
		m.Category = memory.Category(category)
		m.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		memories = append(memories, m)
	}
	return memories, rows.Err()
}

// ErrNotFound is returned when a delete targets a memory that does not
// exist for the owner.
var ErrNotFound = errors.New("memory not found")

// DeleteMemory removes a memory by ID, scoped to the owner.
func (s *Store) DeleteMemory(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM memories WHERE id = ? AND owner = ?`, id, owner)
	if err != nil {
		return errors.Wrap(err, "delete memory")
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProfile returns the owner's profile, or an empty record when none has
// been saved yet.
func (s *Store) GetProfile(ctx context.Context, owner string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT family_size, kids_ages, dietary_needs, dislikes, budget,
		        cooking_skill, busy_nights, favorites, equipment
		 FROM profile WHERE owner = ?`, owner).Scan(
		&p.FamilySize, &p.KidsAges, &p.DietaryNeeds, &p.Dislikes, &p.Budget,
		&p.CookingSkill, &p.BusyNights, &p.Favorites, &p.Equipment)
	if err == sql.ErrNoRows {
		return &Profile{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	return &p, nil
}

// ReplaceProfile overwrites the owner's profile record.
func (s *Store) ReplaceProfile(ctx context.Context, owner string, p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (owner, family_size, kids_ages, dietary_needs, dislikes,
		                      budget, cooking_skill, busy_nights, favorites, equipment, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(owner) DO UPDATE SET
			family_size = excluded.family_size,
			kids_ages = excluded.kids_ages,
			dietary_needs = excluded.dietary_needs,
			dislikes = excluded.dislikes,
			budget = excluded.budget,
			cooking_skill = excluded.cooking_skill,
			busy_nights = excluded.busy_nights,
			favorites = excluded.favorites,
			equipment = excluded.equipment,
			updated_at = excluded.updated_at`,
		owner, p.FamilySize, p.KidsAges, p.DietaryNeeds, p.Dislikes,
		p.Budget, p.CookingSkill, p.BusyNights, p.Favorites, p.Equipment,
		time.Now().UTC().Format(time.RFC3339Nano))
	return errors.Wrap(err, "replace profile")
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
