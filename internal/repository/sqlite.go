package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL CHECK (length(name) <= 100),
		views INTEGER NOT NULL CHECK (views >= 0),
		likes INTEGER NOT NULL CHECK (likes >= 0)
	)
`

// checkViolationMessage describes the table's CHECK constraints.
var checkViolationMessage = fmt.Sprintf("name must be at most %d characters and views/likes must be non-negative", video.MaxNameLength)

// SQLiteRepository implements VideoRepository on a single-file SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

var _ VideoRepository = (*SQLiteRepository)(nil)

// OpenSQLite opens (creating if needed) the database file at path and
// ensures the videos table exists.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepository, error) {
	// _txlock=immediate takes the write lock at BEGIN, so two writers never
	// both read a row and then race to upgrade.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_txlock=immediate", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Create inserts a new video record
func (s *SQLiteRepository) Create(ctx context.Context, v *video.Video) (*video.Video, error) {
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO videos (id, name, views, likes) VALUES (?, ?, ?, ?)",
			v.ID, v.Name, v.Views, v.Likes,
		)
		if err != nil {
			return handleSQLiteError(err, "failed to create video")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	created := *v
	return &created, nil
}

// GetByID retrieves a video by its ID
func (s *SQLiteRepository) GetByID(ctx context.Context, id int64) (*video.Video, error) {
	row := s.db.QueryRowContext(ctx, "SELECT id, name, views, likes FROM videos WHERE id = ?", id)
	return scanSQLiteVideo(row)
}

// Update applies a partial update inside one transaction
func (s *SQLiteRepository) Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error) {
	if patch.Empty() {
		return nil, apperrors.InvalidInput("no fields supplied")
	}

	var updated *video.Video
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, "SELECT id, name, views, likes FROM videos WHERE id = ?", id)
		current, err := scanSQLiteVideo(row)
		if err != nil {
			return err
		}

		patch.Apply(current)
		_, err = tx.ExecContext(ctx,
			"UPDATE videos SET name = ?, views = ?, likes = ? WHERE id = ?",
			current.Name, current.Views, current.Likes, id,
		)
		if err != nil {
			return handleSQLiteError(err, "failed to update video")
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete deletes a video by its ID
func (s *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
		if err != nil {
			return handleSQLiteError(err, "failed to delete video")
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return handleSQLiteError(err, "failed to get rows affected")
		}
		if rowsAffected == 0 {
			return apperrors.New(apperrors.CodeNotFound, "video not found")
		}
		return nil
	})
}

// List retrieves all videos ordered by id
func (s *SQLiteRepository) List(ctx context.Context) ([]*video.Video, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, views, likes FROM videos ORDER BY id")
	if err != nil {
		return nil, handleSQLiteError(err, "failed to list videos")
	}
	defer rows.Close()

	videos := []*video.Video{}
	for rows.Next() {
		var v video.Video
		if err := rows.Scan(&v.ID, &v.Name, &v.Views, &v.Likes); err != nil {
			return nil, handleSQLiteError(err, "failed to scan video row")
		}
		videos = append(videos, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, handleSQLiteError(err, "failed to iterate video rows")
	}

	return videos, nil
}

// Ping checks the database connection
func (s *SQLiteRepository) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return handleSQLiteError(err, "database unavailable")
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteRepository) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return handleSQLiteError(err, "failed to begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return handleSQLiteError(err, "failed to commit transaction")
	}
	return nil
}

func scanSQLiteVideo(row *sql.Row) (*video.Video, error) {
	var v video.Video
	if err := row.Scan(&v.ID, &v.Name, &v.Views, &v.Likes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handleSQLiteError(err, "failed to get video")
	}
	return &v, nil
}

// handleSQLiteError converts SQLite constraint errors to AppError codes
func handleSQLiteError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return apperrors.Wrap(err, apperrors.CodeStorage, operation)
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
		return apperrors.Wrap(err, apperrors.CodeConflict, "video with this ID already exists")
	case sqlite3.ErrConstraintCheck:
		return apperrors.Wrap(err, apperrors.CodeIntegrity, checkViolationMessage)
	case sqlite3.ErrConstraintNotNull:
		return apperrors.Wrap(err, apperrors.CodeIntegrity, "required field is missing")
	default:
		return apperrors.Wrap(err, apperrors.CodeStorage, operation)
	}
}
