package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS videos (
		id BIGINT PRIMARY KEY,
		name VARCHAR(100) NOT NULL CHECK (char_length(name) <= 100),
		views BIGINT NOT NULL CHECK (views >= 0),
		likes BIGINT NOT NULL CHECK (likes >= 0)
	)
`

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// PostgresRepository implements VideoRepository using PostgreSQL
type PostgresRepository struct {
	pool Pool
}

var _ VideoRepository = (*PostgresRepository)(nil)

// NewPostgresRepository creates a repository on an existing pool.
func NewPostgresRepository(pool Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// OpenPostgres connects to databaseURL and ensures the videos table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 60 * time.Minute
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return repo, nil
}

// EnsureSchema creates the videos table if it does not exist.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, postgresSchema); err != nil {
		return handlePostgreSQLError(err, "failed to create table")
	}
	return nil
}

// Create creates a new video record
func (r *PostgresRepository) Create(ctx context.Context, v *video.Video) (*video.Video, error) {
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		sql := "INSERT INTO videos (id, name, views, likes) VALUES ($1, $2, $3, $4)"
		if _, err := tx.Exec(ctx, sql, v.ID, v.Name, v.Views, v.Likes); err != nil {
			return handlePostgreSQLError(err, "failed to create video")
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
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*video.Video, error) {
	sql := "SELECT id, name, views, likes FROM videos WHERE id = $1"
	return scanPostgresVideo(r.pool.QueryRow(ctx, sql, id))
}

// Update locks the row, applies the patch and writes it back
func (r *PostgresRepository) Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error) {
	if patch.Empty() {
		return nil, apperrors.InvalidInput("no fields supplied")
	}

	var updated *video.Video
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		sql := "SELECT id, name, views, likes FROM videos WHERE id = $1 FOR UPDATE"
		current, err := scanPostgresVideo(tx.QueryRow(ctx, sql, id))
		if err != nil {
			return err
		}

		patch.Apply(current)
		sql = "UPDATE videos SET name = $2, views = $3, likes = $4 WHERE id = $1"
		if _, err := tx.Exec(ctx, sql, id, current.Name, current.Views, current.Likes); err != nil {
			return handlePostgreSQLError(err, "failed to update video")
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
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, "DELETE FROM videos WHERE id = $1", id)
		if err != nil {
			return handlePostgreSQLError(err, "failed to delete video")
		}
		if tag.RowsAffected() == 0 {
			return apperrors.New(apperrors.CodeNotFound, "video not found")
		}
		return nil
	})
}

// List retrieves all videos ordered by id
func (r *PostgresRepository) List(ctx context.Context) ([]*video.Video, error) {
	rows, err := r.pool.Query(ctx, "SELECT id, name, views, likes FROM videos ORDER BY id")
	if err != nil {
		return nil, handlePostgreSQLError(err, "failed to list videos")
	}
	defer rows.Close()

	videos := []*video.Video{}
	for rows.Next() {
		var v video.Video
		if err := rows.Scan(&v.ID, &v.Name, &v.Views, &v.Likes); err != nil {
			return nil, handlePostgreSQLError(err, "failed to scan video row")
		}
		videos = append(videos, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, handlePostgreSQLError(err, "failed to iterate video rows")
	}

	return videos, nil
}

// Ping checks the pool connection
func (r *PostgresRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return handlePostgreSQLError(err, "database unavailable")
	}
	return nil
}

// Close closes the pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return handlePostgreSQLError(err, "failed to begin transaction")
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return handlePostgreSQLError(err, "failed to commit transaction")
	}
	return nil
}

func scanPostgresVideo(row pgx.Row) (*video.Video, error) {
	var v video.Video
	if err := row.Scan(&v.ID, &v.Name, &v.Views, &v.Likes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "video not found")
		}
		return nil, handlePostgreSQLError(err, "failed to get video")
	}
	return &v, nil
}
