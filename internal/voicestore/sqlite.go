package voicestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/msto63/mSW/internal/npy"
)

// SQLiteVoiceStore implements Store using SQLite. Style vectors are stored
// as NPY blobs so the database stays readable by NumPy-based tooling.
type SQLiteVoiceStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds SQLite store configuration
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default SQLite configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/voices.db",
	}
}

// NewSQLiteVoiceStore creates a new SQLite-based voice store
func NewSQLiteVoiceStore(cfg SQLiteConfig) (*SQLiteVoiceStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteVoiceStore{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the voices table. The layout matches the catalogs
// written by the original Python tooling, blob format included.
func (s *SQLiteVoiceStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS voices (
		name TEXT PRIMARY KEY,
		gender TEXT NOT NULL,
		language TEXT NOT NULL,
		quality INTEGER NOT NULL,
		training_duration TEXT,
		style_vector BLOB NOT NULL,
		is_synthetic BOOLEAN NOT NULL DEFAULT 0,
		notes TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_voices_gender ON voices(gender);
	CREATE INDEX IF NOT EXISTS idx_voices_language ON voices(language);
	`

	_, err := s.db.Exec(schema)
	return err
}

const voiceColumns = "name, gender, language, quality, training_duration, style_vector, is_synthetic, notes, created_at"

// Upsert inserts or replaces a voice by name. This is the bulk-load path.
func (s *SQLiteVoiceStore) Upsert(ctx context.Context, rec *VoiceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO voices
		(name, gender, language, quality, training_duration, style_vector, is_synthetic, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Name, string(rec.Gender), rec.Language, rec.Quality,
		nullable(rec.TrainingDuration), npy.Encode(rec.StyleVector),
		rec.IsSynthetic, nullable(rec.Notes), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert voice %q: %w", rec.Name, err)
	}

	return nil
}

// Insert adds a new voice, failing with a *DuplicateKeyError if the name
// already exists. This is the synthetic-voice path.
func (s *SQLiteVoiceStore) Insert(ctx context.Context, rec *VoiceRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voices
		(name, gender, language, quality, training_duration, style_vector, is_synthetic, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.Name, string(rec.Gender), rec.Language, rec.Quality,
		nullable(rec.TrainingDuration), npy.Encode(rec.StyleVector),
		rec.IsSynthetic, nullable(rec.Notes), time.Now().UTC())
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) {
			if sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
				sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return &DuplicateKeyError{Name: rec.Name}
			}
		}
		return fmt.Errorf("failed to insert voice %q: %w", rec.Name, err)
	}

	return nil
}

// Get retrieves a voice by name
func (s *SQLiteVoiceStore) Get(ctx context.Context, name string) (*VoiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		`SELECT `+voiceColumns+` FROM voices WHERE name = ?`, name)

	rec, err := scanVoice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Name: name}
		}
		return nil, err
	}
	return rec, nil
}

// Select returns all voices matching the selector in storage order
func (s *SQLiteVoiceStore) Select(ctx context.Context, sel Selector) ([]*VoiceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := sel.whereClause()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+voiceColumns+` FROM voices`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select voices: %w", err)
	}
	defer rows.Close()

	var matched []*VoiceRecord
	for rows.Next() {
		rec, err := scanVoice(rows)
		if err != nil {
			return nil, err
		}
		matched = append(matched, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read voices: %w", err)
	}

	return matched, nil
}

// Count returns the number of voices in the catalog
func (s *SQLiteVoiceStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM voices`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count voices: %w", err)
	}
	return count, nil
}

// Close closes the database connection
func (s *SQLiteVoiceStore) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

// scanVoice reads one row and decodes the style vector blob. A blob that
// cannot be decoded is data corruption and is surfaced, never masked.
func scanVoice(row scanner) (*VoiceRecord, error) {
	var rec VoiceRecord
	var gender string
	var trainingDuration, notes sql.NullString
	var blob []byte
	var createdAt sql.NullTime

	err := row.Scan(&rec.Name, &gender, &rec.Language, &rec.Quality,
		&trainingDuration, &blob, &rec.IsSynthetic, &notes, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan voice: %w", err)
	}

	rec.Gender = Gender(gender)
	if trainingDuration.Valid {
		rec.TrainingDuration = trainingDuration.String
	}
	if notes.Valid {
		rec.Notes = notes.String
	}
	if createdAt.Valid {
		rec.CreatedAt = createdAt.Time
	}

	vec, err := npy.Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("style vector of voice %q: %w", rec.Name, err)
	}
	rec.StyleVector = vec

	return &rec, nil
}

// nullable maps an empty string to NULL
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
