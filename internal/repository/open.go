package repository

import (
	"context"
	"strings"

	"github.com/zhouzirui/video-catalog/backend/internal/config"
)

// Open picks the backend from cfg: PostgreSQL when a postgres URL is set,
// otherwise the single-file SQLite database at cfg.Path.
func Open(ctx context.Context, cfg config.StoreConfig) (VideoRepository, error) {
	if isPostgresURL(cfg.DatabaseURL) {
		repo, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return repo, nil
	}

	repo, err := OpenSQLite(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func isPostgresURL(raw string) bool {
	return strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://")
}
