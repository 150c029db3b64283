// Package favorites persists the favorited idea list in a local sqlite
// key/value table. The whole list lives under a single key and is
// rewritten on every toggle, so the stored payload is always the exact
// current state.
package favorites

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"go.uber.org/zap"

	"ideaforge/internal/types"
)

const storageKey = "favoriteIdeas"

// Store holds the favorite ideas with sqlite-backed persistence.
type Store struct {
	db  *sql.DB
	log *zap.Logger

	mu    sync.Mutex
	ideas []types.StartupIdea
}

// Open creates or opens the favorites database at path and loads the
// saved list. A corrupted payload loads as empty rather than failing.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			log.Debug("pragma failed", zap.String("pragma", pragma), zap.Error(err))
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	s := &Store{db: db, log: log}
	s.ideas = s.load()
	log.Info("favorites loaded", zap.String("path", path), zap.Int("count", len(s.ideas)))
	return s, nil
}

func (s *Store) load() []types.StartupIdea {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, storageKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		s.log.Warn("failed to read favorites", zap.Error(err))
		return nil
	}

	var ideas []types.StartupIdea
	if err := json.Unmarshal([]byte(value), &ideas); err != nil {
		s.log.Warn("malformed favorites payload, starting empty", zap.Error(err))
		return nil
	}
	return ideas
}

// Toggle adds the idea when absent and removes it when present, keyed by
// title. The updated list is persisted before the in-memory state moves.
func (s *Store) Toggle(idea types.StartupIdea) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.ideas[:0:0]
	removed := false
	for _, existing := range s.ideas {
		if existing.Title == idea.Title {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, idea)
	}

	if err := s.persist(kept); err != nil {
		return err
	}
	s.ideas = kept
	return nil
}

func (s *Store) persist(ideas []types.StartupIdea) error {
	payload, err := json.Marshal(ideas)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		storageKey, string(payload))
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

// All returns a copy of the current favorites, in insertion order.
func (s *Store) All() []types.StartupIdea {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.StartupIdea, len(s.ideas))
	copy(out, s.ideas)
	return out
}

// IsFavorite reports whether an idea with the given title is saved.
func (s *Store) IsFavorite(title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, idea := range s.ideas {
		if idea.Title == title {
			return true
		}
	}
	return false
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
