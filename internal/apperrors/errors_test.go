package apperrors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", InvalidInput("name is required"), http.StatusBadRequest},
		{"integrity", New(CodeIntegrity, "name too long"), http.StatusBadRequest},
		{"not found", New(CodeNotFound, "video not found"), http.StatusNotFound},
		{"conflict", New(CodeConflict, "exists"), http.StatusConflict},
		{"storage", Wrap(sql.ErrConnDone, CodeStorage, "failed"), http.StatusInternalServerError},
		{"plain error", fmt.Errorf("boom"), http.StatusInternalServerError},
		{"wrapped app error", fmt.Errorf("ctx: %w", New(CodeNotFound, "gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessageHidesStorageCause(t *testing.T) {
	err := Wrap(fmt.Errorf("disk I/O error at /var/lib/videos.db"), CodeStorage, "failed to update video")
	assert.Equal(t, "internal error", PublicMessage(err))

	assert.Equal(t, "video not found", PublicMessage(New(CodeNotFound, "video not found")))
	assert.Equal(t, "internal error", PublicMessage(fmt.Errorf("raw")))
}

func TestWrapUnwrap(t *testing.T) {
	err := Wrap(sql.ErrNoRows, CodeNotFound, "video not found")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(nil, CodeNotFound))
	assert.Contains(t, err.Error(), "NOT_FOUND: video not found")
}
