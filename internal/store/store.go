// Package store is the local secure store: a small sqlite-backed key-value
// table holding the credential bundle, onboarding answers, property selection
// and the last conversation id. Records are overwritten wholesale on save.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Fixed key names, mirroring the original secure-store layout.
const (
	KeyAPIConfig        = "api_config"
	KeySelectedProperty = "selected_property"
	KeyPropertyContext  = "property_context"
	KeyLastConversation = "last_conversation_id"
)

// recordVersion tags every stored value so future field changes can be
// migrated instead of breaking old installs.
const recordVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the store at path. The database file is
// chmodded to 0600 since it holds the API key.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	schema := `
    CREATE TABLE IF NOT EXISTS secure_kv (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL,
        updated_at DATETIME NOT NULL
    );`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init store schema: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		db.Close()
		return nil, fmt.Errorf("restrict store permissions: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Set marshals v into a versioned envelope and upserts it under key.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	value, err := json.Marshal(envelope{Version: recordVersion, Data: data})
	if err != nil {
		return fmt.Errorf("encode %s envelope: %w", key, err)
	}
	_, err = s.db.Exec(
		`INSERT INTO secure_kv (key, value, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Get unmarshals the record stored under key into out. The second return is
// false when the key has never been written; that is not an error.
func (s *Store) Get(key string, out any) (bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM secure_kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	var env envelope
	if err := json.Unmarshal([]byte(value), &env); err == nil && env.Version > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return false, fmt.Errorf("decode %s: %w", key, err)
		}
		return true, nil
	}
	// Pre-versioning record written by an older build; read it bare.
	if err := json.Unmarshal([]byte(value), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM secure_kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
