// Package storage provides SQLite-based persistence for recordings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies;
// recording payloads are stored as zstd-compressed JSON blobs.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arcade-sim/internal/replay"
)

// Store manages the SQLite database connection for recording persistence.
type Store struct {
	db  *sql.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// RecordingInfo summarizes a stored recording without its payload.
type RecordingInfo struct {
	ID          string
	Game        string
	Seed        string
	Description string
	Version     string
	TotalTicks  int64
	EventCount  int
	CreatedAt   time.Time
}

// Open creates or opens a recording database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot create decompressor: %w", err)
	}

	store := &Store{db: db, enc: enc, dec: dec}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			version TEXT NOT NULL,
			total_ticks INTEGER NOT NULL,
			event_count INTEGER NOT NULL,
			created_at_ms INTEGER NOT NULL,
			payload BLOB NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_recordings_game_id ON recordings(game_id);
		CREATE INDEX IF NOT EXISTS idx_recordings_created ON recordings(created_at_ms DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection and releases the compressors.
func (s *Store) Close() error {
	s.enc.Close()
	s.dec.Close()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRecording persists a finished recording under a fresh ID.
func (s *Store) SaveRecording(gameID string, rec *replay.Recording) (string, error) {
	data, err := replay.Encode(rec)
	if err != nil {
		return "", fmt.Errorf("storage: cannot encode recording: %w", err)
	}
	blob := s.enc.EncodeAll(data, nil)

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO recordings
		 (id, game_id, seed, description, version, total_ticks, event_count, created_at_ms, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, gameID, rec.Seed, rec.Metadata.Description, rec.Metadata.Version,
		int64(rec.TotalTicks), len(rec.Events), rec.Metadata.CreatedAt, blob,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save recording: %w", err)
	}

	return id, nil
}

// LoadRecording retrieves and decodes a stored recording.
func (s *Store) LoadRecording(id string) (*replay.Recording, error) {
	var blob []byte
	err := s.db.QueryRow(
		"SELECT payload FROM recordings WHERE id = ?", id,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("storage: recording %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load recording: %w", err)
	}

	data, err := s.dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot decompress recording %q: %w", id, err)
	}

	rec, err := replay.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("storage: recording %q is corrupt: %w", id, err)
	}
	return rec, nil
}

// GameID returns the simulation ID a recording was captured from.
func (s *Store) GameID(id string) (string, error) {
	var gameID string
	err := s.db.QueryRow(
		"SELECT game_id FROM recordings WHERE id = ?", id,
	).Scan(&gameID)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("storage: recording %q not found", id)
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query recording: %w", err)
	}
	return gameID, nil
}

// ListRecordings returns summaries of all stored recordings, newest first.
func (s *Store) ListRecordings() ([]RecordingInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, seed, description, version, total_ticks, event_count, created_at_ms
		 FROM recordings
		 ORDER BY created_at_ms DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recordings: %w", err)
	}
	defer rows.Close()

	var entries []RecordingInfo
	for rows.Next() {
		var e RecordingInfo
		var createdMs int64
		if err := rows.Scan(&e.ID, &e.Game, &e.Seed, &e.Description, &e.Version,
			&e.TotalTicks, &e.EventCount, &createdMs); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdMs)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DeleteRecording removes a stored recording.
func (s *Store) DeleteRecording(id string) error {
	res, err := s.db.Exec("DELETE FROM recordings WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete recording: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: recording %q not found", id)
	}
	return nil
}
