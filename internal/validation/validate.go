package validation

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
	"github.com/zhouzirui/video-catalog/backend/internal/model/video"
)

// CreateInput is a validated create request.
type CreateInput struct {
	Name  string
	Views int64
	Likes int64
}

// Video builds the record to insert under id.
func (in CreateInput) Video(id int64) *video.Video {
	return &video.Video{ID: id, Name: in.Name, Views: in.Views, Likes: in.Likes}
}

// ValidateCreate requires name, views and likes.
func ValidateCreate(fields Fields) (CreateInput, error) {
	var in CreateInput

	name, ok, err := stringField(fields, "name")
	if err != nil {
		return in, err
	}
	if !ok {
		return in, apperrors.InvalidInput("name is required")
	}

	views, ok, err := intField(fields, "views")
	if err != nil {
		return in, err
	}
	if !ok {
		return in, apperrors.InvalidInput("views is required")
	}

	likes, ok, err := intField(fields, "likes")
	if err != nil {
		return in, err
	}
	if !ok {
		return in, apperrors.InvalidInput("likes is required")
	}

	in.Name, in.Views, in.Likes = name, views, likes
	return in, nil
}

// ValidatePatch accepts any non-empty subset of name, views and likes.
func ValidatePatch(fields Fields) (video.Patch, error) {
	var patch video.Patch

	if name, ok, err := stringField(fields, "name"); err != nil {
		return patch, err
	} else if ok {
		patch.Name = &name
	}
	if views, ok, err := intField(fields, "views"); err != nil {
		return patch, err
	} else if ok {
		patch.Views = &views
	}
	if likes, ok, err := intField(fields, "likes"); err != nil {
		return patch, err
	} else if ok {
		patch.Likes = &likes
	}

	if patch.Empty() {
		return patch, apperrors.InvalidInput("no fields supplied")
	}
	return patch, nil
}

// ParseID parses a path identifier.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.Wrap(err, apperrors.CodeInvalidInput, "video id must be an integer")
	}
	return id, nil
}

// stringField returns (value, present, error). JSON null counts as absent.
func stringField(fields Fields, key string) (string, bool, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, apperrors.InvalidInput(key + " must be a string")
	}
	return s, true, nil
}

func intField(fields Fields, key string) (int64, bool, error) {
	raw, ok := fields[key]
	if !ok || raw == nil {
		return 0, false, nil
	}

	var text string
	switch v := raw.(type) {
	case json.Number:
		text = v.String()
	case string:
		text = strings.TrimSpace(v)
	default:
		return 0, false, apperrors.InvalidInput(key + " must be an integer")
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false, apperrors.Wrap(err, apperrors.CodeInvalidInput, key+" must be an integer")
	}
	return n, true, nil
}
