package repository

import (
	"context"

	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

// VideoRepository defines operations for Video persistence.
// Every mutating call runs in its own transaction; on failure nothing is
// written.
type VideoRepository interface {
	// Create inserts a new record. CodeConflict if the id is taken.
	Create(ctx context.Context, v *video.Video) (*video.Video, error)

	// GetByID retrieves a record. CodeNotFound if absent.
	GetByID(ctx context.Context, id int64) (*video.Video, error)

	// Update applies the supplied fields of patch. CodeNotFound if absent,
	// CodeInvalidInput if patch is empty.
	Update(ctx context.Context, id int64, patch video.Patch) (*video.Video, error)

	// Delete removes a record. CodeNotFound if absent.
	Delete(ctx context.Context, id int64) error

	// List returns every record ordered by id.
	List(ctx context.Context) ([]*video.Video, error)

	// Ping checks the storage connection.
	Ping(ctx context.Context) error

	Close() error
}
