package lookup

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/video-catalog/backend/internal/model/lookup"
	"github.com/zhouzirui/video-catalog/backend/pkg/utils"
)

// Handler serves the hello-world name lookup.
type Handler struct {
	people lookup.Store
}

// New creates a lookup handler.
func New(people lookup.Store) *Handler {
	return &Handler{people: people}
}

// RegisterRoutes registers the lookup routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/helloworld/{name}", h.handleGet)
	r.Post("/helloworld", h.handlePost)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	person, ok := h.people.Find(chi.URLParam(r, "name"))
	if !ok {
		utils.RespondError(w, http.StatusNotFound, "name not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, person)
}

func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"data": "Posted"})
}
