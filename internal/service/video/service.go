package video

import (
	"context"
	"log/slog"
	"time"

	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
	"github.com/zhouzirui/video-catalog/backend/internal/repository"
	"github.com/zhouzirui/video-catalog/backend/internal/service/events"
)

// DefaultTimeout bounds each store call when none is configured.
const DefaultTimeout = 5 * time.Second

// Publisher receives committed changes.
type Publisher interface {
	Publish(e events.Event)
}

// Service runs catalog operations against the repository, bounding each
// call with a timeout and announcing successful mutations.
type Service struct {
	repo      repository.VideoRepository
	publisher Publisher
	timeout   time.Duration
}

// NewService wires a repository. publisher may be nil.
func NewService(repo repository.VideoRepository, publisher Publisher, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Service{repo: repo, publisher: publisher, timeout: timeout}
}

// Create stores a new record under v.ID.
func (s *Service) Create(ctx context.Context, v *video.Video) (*video.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	created, err := s.repo.Create(ctx, v)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "video created", "id", created.ID)
	s.publish(events.Event{Type: events.Created, ID: created.ID, Video: created})
	return created, nil
}

// Get fetches one record.
func (s *Service) Get(ctx context.Context, id int64) (*video.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	slog.DebugContext(ctx, "video updated", "id", id)
	s.publish(events.Event{Type: events.Updated, ID: id, Video: updated})
	return updated, nil
}

// Delete removes one record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	slog.DebugContext(ctx, "video deleted", "id", id)
	s.publish(events.Event{Type: events.Deleted, ID: id})
	return nil
}

// List returns every record.
func (s *Service) List(ctx context.Context) ([]*video.Video, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.List(ctx)
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.Ping(ctx)
}

func (s *Service) publish(e events.Event) {
	if s.publisher != nil {
		s.publisher.Publish(e)
	}
}
