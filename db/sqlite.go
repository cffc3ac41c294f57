package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/user/vidnotes/notes"
)

// SQLiteStore implements notes.Persistence with one row per note. The position
// column preserves insertion order.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already migrated database.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens the database at path and returns a store over it.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteStore(db), nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Get implements notes.Persistence.
func (s *SQLiteStore) Get(ctx context.Context, videoID string) ([]notes.Note, bool, error) {
	rows, err := s.db.QueryContext(ctx, SelectNotesByVideoSQL, videoID)
	if err != nil {
		return nil, false, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	var result []notes.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, false, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate notes: %w", err)
	}
	return result, len(result) > 0, nil
}

// Set implements notes.Persistence. The video's rows are replaced in one transaction.
func (s *SQLiteStore) Set(ctx context.Context, videoID string, list []notes.Note) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, DeleteNotesByVideoSQL, videoID); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, InsertNoteSQL)
	if err != nil {
		return fmt.Errorf("prepare insert note: %w", err)
	}
	defer stmt.Close()

	for i, n := range list {
		var ts sql.NullInt64
		if n.Timestamp != nil {
			ts = sql.NullInt64{Int64: int64(*n.Timestamp), Valid: true}
		}
		var updated sql.NullString
		if n.UpdatedAt != nil {
			updated = sql.NullString{String: formatTime(*n.UpdatedAt), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			n.ID, videoID, i, n.Title, n.Content, ts, formatTime(n.CreatedAt), updated)
		if err != nil {
			return fmt.Errorf("insert note %s: %w", n.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit notes: %w", err)
	}
	return nil
}

// Delete implements notes.Persistence.
func (s *SQLiteStore) Delete(ctx context.Context, videoID string) error {
	if _, err := s.db.ExecContext(ctx, DeleteNotesByVideoSQL, videoID); err != nil {
		return fmt.Errorf("delete notes: %w", err)
	}
	return nil
}

// Videos implements notes.Persistence.
func (s *SQLiteStore) Videos(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, SelectVideosSQL)
	if err != nil {
		return nil, fmt.Errorf("select videos: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan video id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return ids, nil
}

func scanNote(rows *sql.Rows) (notes.Note, error) {
	var (
		n       notes.Note
		ts      sql.NullInt64
		created string
		updated sql.NullString
	)
	if err := rows.Scan(&n.ID, &n.VideoID, &n.Title, &n.Content, &ts, &created, &updated); err != nil {
		return notes.Note{}, fmt.Errorf("scan note: %w", err)
	}

	if ts.Valid {
		v := int(ts.Int64)
		n.Timestamp = &v
	}

	createdAt, err := parseTime(created)
	if err != nil {
		return notes.Note{}, fmt.Errorf("note %s created_at: %w", n.ID, err)
	}
	n.CreatedAt = createdAt

	if updated.Valid {
		updatedAt, err := parseTime(updated.String)
		if err != nil {
			return notes.Note{}, fmt.Errorf("note %s updated_at: %w", n.ID, err)
		}
		n.UpdatedAt = &updatedAt
	}
	return n, nil
}

// Times are stored in UTC and read back in local time, like the other backends.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Local(), nil
}
