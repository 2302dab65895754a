package video_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
	"github.com/zhouzirui/video-catalog/backend/internal/repository"
	"github.com/zhouzirui/video-catalog/backend/internal/service/events"
	videoservice "github.com/zhouzirui/video-catalog/backend/internal/service/video"
)

type recordingPublisher struct {
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.events = append(p.events, e)
}

func newService(t *testing.T) (*videoservice.Service, *recordingPublisher) {
	t.Helper()
	repo, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "videos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	pub := &recordingPublisher{}
	return videoservice.NewService(repo, pub, time.Second), pub
}

func TestServicePublishesCommittedChanges(t *testing.T) {
	svc, pub := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &video.Video{ID: 1, Name: "hello", Views: 1, Likes: 2})
	require.NoError(t, err)

	likes := int64(3)
	_, err = svc.Update(ctx, 1, video.Patch{Likes: &likes})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, 1))

	require.Len(t, pub.events, 3)
	assert.Equal(t, events.Created, pub.events[0].Type)
	assert.Equal(t, events.Updated, pub.events[1].Type)
	assert.Equal(t, int64(3), pub.events[1].Video.Likes)
	assert.Equal(t, events.Deleted, pub.events[2].Type)
	assert.Nil(t, pub.events[2].Video)
}

func TestServiceDoesNotPublishFailures(t *testing.T) {
	svc, pub := newService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &video.Video{ID: 1, Name: "a", Views: 0, Likes: 0})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &video.Video{ID: 1, Name: "b", Views: 0, Likes: 0})
	require.Error(t, err)

	_, err = svc.Update(ctx, 1, video.Patch{})
	require.Error(t, err)

	err = svc.Delete(ctx, 2)
	require.Error(t, err)

	assert.Len(t, pub.events, 1)
}

// blockingRepo waits for the context on every call.
type blockingRepo struct {
	repository.VideoRepository
}

func (blockingRepo) GetByID(ctx context.Context, _ int64) (*video.Video, error) {
	<-ctx.Done()
	return nil, apperrors.Wrap(ctx.Err(), apperrors.CodeStorage, "failed to get video")
}

func TestServiceBoundsStoreCalls(t *testing.T) {
	svc := videoservice.NewService(blockingRepo{}, nil, 20*time.Millisecond)

	start := time.Now()
	_, err := svc.Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
