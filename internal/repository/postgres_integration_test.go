//go:build integration

package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

// setupPostgres starts a PostgreSQL testcontainer and opens a repository on it
func setupPostgres(t *testing.T) *PostgresRepository {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { container.Terminate(ctx) })

	databaseURL, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	repo, err := OpenPostgres(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestPostgresIntegration_Lifecycle(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &video.Video{ID: 0, Name: "hello", Views: 300, Likes: 22})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &video.Video{ID: 0, Name: "again", Views: 1, Likes: 1})
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

	likes := int64(99)
	updated, err := repo.Update(ctx, 0, video.Patch{Likes: &likes})
	require.NoError(t, err)
	assert.Equal(t, video.Video{ID: 0, Name: "hello", Views: 300, Likes: 99}, *updated)

	negative := int64(-1)
	_, err = repo.Update(ctx, 0, video.Patch{Views: &negative})
	assert.True(t, apperrors.Is(err, apperrors.CodeIntegrity))

	got, err := repo.GetByID(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, repo.Delete(ctx, 0))
	assert.True(t, apperrors.Is(repo.Delete(ctx, 0), apperrors.CodeNotFound))
}

func TestPostgresIntegration_ConcurrentCreate(t *testing.T) {
	repo := setupPostgres(t)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &video.Video{ID: 42, Name: "race", Views: 0, Likes: 0})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.True(t, apperrors.Is(err, apperrors.CodeConflict), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, successes)
}
