package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"platter/internal/config"
)

// ErrNotFound reports a disc ID with no library row.
var ErrNotFound = errors.New("disc not found in library")

// Store persists the disc library in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the library database under the configured cache directory
// and initializes the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.CacheDir, "library.db"))
}

// OpenPath connects to the library database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_info LIMIT 1").Scan(&version)
	switch {
	case err == nil && version == schemaVersion:
		return nil
	case err == nil:
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS discs; DROP TABLE IF EXISTS schema_info"); err != nil {
			return fmt.Errorf("drop stale schema: %w", err)
		}
	}

	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM schema_info"); err != nil {
		return fmt.Errorf("reset schema version: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO schema_info (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// SaveRip records a completed rip, replacing any previous row for the same
// disc ID (re-rips reset the disc to ripped).
func (s *Store) SaveRip(ctx context.Context, disc *Disc) error {
	now := timestamp()
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO discs (disc_id, status, track_count, toc_path, cue_path, wav_path, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(disc_id) DO UPDATE SET
            status = excluded.status,
            track_count = excluded.track_count,
            toc_path = excluded.toc_path,
            cue_path = excluded.cue_path,
            wav_path = excluded.wav_path,
            flac_path = '',
            error_text = '',
            updated_at = excluded.updated_at`,
		disc.DiscID, StatusRipped, disc.TrackCount,
		disc.TOCPath, disc.CuePath, disc.WAVPath, now, now)
	if err != nil {
		return fmt.Errorf("save rip %s: %w", disc.DiscID, err)
	}
	return nil
}

// MarkEncoded transitions a disc to encoded and records the flac output path.
func (s *Store) MarkEncoded(ctx context.Context, discID, flacPath string) error {
	return s.transition(ctx, discID, StatusEncoded, "flac_path", flacPath)
}

// MarkFailed transitions a disc to failed and records the failure reason.
func (s *Store) MarkFailed(ctx context.Context, discID, reason string) error {
	return s.transition(ctx, discID, StatusFailed, "error_text", reason)
}

func (s *Store) transition(ctx context.Context, discID string, status Status, column, value string) error {
	query := fmt.Sprintf("UPDATE discs SET status = ?, %s = ?, updated_at = ? WHERE disc_id = ?", column)
	res, err := s.db.ExecContext(ctx, query, status, value, timestamp(), discID)
	if err != nil {
		return fmt.Errorf("update %s: %w", discID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s: %w", discID, err)
	}
	if affected == 0 {
		return fmt.Errorf("update %s: %w", discID, ErrNotFound)
	}
	return nil
}

const discColumns = `id, disc_id, status, track_count, toc_path, cue_path, wav_path, flac_path, error_text, created_at, updated_at`

func scanDisc(row interface{ Scan(...any) error }) (*Disc, error) {
	var (
		disc               Disc
		createdAt, updated string
	)
	err := row.Scan(&disc.ID, &disc.DiscID, &disc.Status, &disc.TrackCount,
		&disc.TOCPath, &disc.CuePath, &disc.WAVPath, &disc.FlacPath,
		&disc.ErrorText, &createdAt, &updated)
	if err != nil {
		return nil, err
	}
	if disc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if disc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &disc, nil
}

// Get returns the library row for a disc ID.
func (s *Store) Get(ctx context.Context, discID string) (*Disc, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+discColumns+" FROM discs WHERE disc_id = ?", discID)
	disc, err := scanDisc(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", discID, err)
	}
	return disc, nil
}

// List returns all library rows, most recently updated first.
func (s *Store) List(ctx context.Context) ([]*Disc, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+discColumns+" FROM discs ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list discs: %w", err)
	}
	defer rows.Close()

	var discs []*Disc
	for rows.Next() {
		disc, err := scanDisc(rows)
		if err != nil {
			return nil, fmt.Errorf("list discs: %w", err)
		}
		discs = append(discs, disc)
	}
	return discs, rows.Err()
}

// Stats returns per-status counts.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(*) FROM discs GROUP BY status")
	if err != nil {
		return Stats{}, fmt.Errorf("library stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var (
			status Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("library stats: %w", err)
		}
		stats.Total += count
		switch status {
		case StatusRipped:
			stats.Ripped = count
		case StatusEncoded:
			stats.Encoded = count
		case StatusFailed:
			stats.Failed = count
		}
	}
	return stats, rows.Err()
}
