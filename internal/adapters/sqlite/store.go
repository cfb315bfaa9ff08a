package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"skylog/internal/application"
	"skylog/internal/domain"
	"skylog/internal/ports"
)

const schemaVersion = "1"

// Store implements ports.AnnotationStore on SQLite. Annotations are user
// property: they are keyed by pilot serial and never touched by a sync.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger

	// Recovered reports whether Open found the file corrupt and started
	// over with an empty store.
	Recovered bool
}

var _ ports.AnnotationStore = (*Store)(nil)

// Open opens or creates the store at path. A corrupt file is moved aside
// and replaced by an empty store; losing annotations is repairable by the
// user, a permanently failing store is not.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	store := &Store{path: path, log: log}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := store.open(); err != nil {
		corrupt := &application.StoreCorruptError{Path: path, Err: err}
		log.Warn("annotation store corrupt, re-initializing", zap.Error(corrupt))
		if moveErr := os.Rename(path, path+".corrupt"); moveErr != nil && !errors.Is(moveErr, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to move corrupt store aside: %w", moveErr)
		}
		if retryErr := store.open(); retryErr != nil {
			return nil, fmt.Errorf("failed to re-initialize store: %w", retryErr)
		}
		store.Recovered = true
	}
	return store, nil
}

func (s *Store) open() error {
	db, err := sql.Open("sqlite", s.path+"?_journal_mode=WAL")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Pragmas + schema in a single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS annotations (
			serial      INTEGER PRIMARY KEY,
			birth_date  TEXT NOT NULL DEFAULT '',
			birth_place TEXT NOT NULL DEFAULT '',
			notes       TEXT NOT NULL DEFAULT '',
			photo_path  TEXT NOT NULL DEFAULT '',
			updated_at  INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	_, err = db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	s.db = db
	return nil
}

// Get returns the record for a serial, or nil when none exists.
func (s *Store) Get(serial int64) (*domain.AnnotationRecord, error) {
	row := s.db.QueryRow(`
		SELECT serial, birth_date, birth_place, notes, photo_path, updated_at
		FROM annotations WHERE serial = ?`, serial)

	var record domain.AnnotationRecord
	var updatedAt int64
	err := row.Scan(&record.Serial, &record.BirthDate, &record.BirthPlace,
		&record.Notes, &record.PhotoPath, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read annotation: %w", err)
	}
	record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &record, nil
}

// Put inserts or replaces the record for its serial.
func (s *Store) Put(record *domain.AnnotationRecord) error {
	if record == nil || record.Serial == 0 {
		return fmt.Errorf("annotation record needs a pilot serial")
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO annotations
			(serial, birth_date, birth_place, notes, photo_path, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		record.Serial, record.BirthDate, record.BirthPlace,
		record.Notes, record.PhotoPath, updatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to store annotation: %w", err)
	}
	return nil
}

// All returns every stored record ordered by serial.
func (s *Store) All() ([]domain.AnnotationRecord, error) {
	rows, err := s.db.Query(`
		SELECT serial, birth_date, birth_place, notes, photo_path, updated_at
		FROM annotations ORDER BY serial`)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	defer rows.Close()

	var records []domain.AnnotationRecord
	for rows.Next() {
		var record domain.AnnotationRecord
		var updatedAt int64
		if err := rows.Scan(&record.Serial, &record.BirthDate, &record.BirthPlace,
			&record.Notes, &record.PhotoPath, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to read annotation: %w", err)
		}
		record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
