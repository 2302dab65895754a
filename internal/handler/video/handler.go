package video

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/video-catalog/backend/internal/validation"
	videoservice "github.com/zhouzirui/video-catalog/backend/internal/service/video"
	"github.com/zhouzirui/video-catalog/backend/pkg/utils"
)

// Handler serves the video record endpoints.
type Handler struct {
	svc *videoservice.Service
}

// New creates a video handler.
func New(svc *videoservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the video routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/video/{id}", h.handleGet)
	r.Put("/video/{id}", h.handleCreate)
	r.Patch("/video/{id}", h.handleUpdate)
	r.Delete("/video/{id}", h.handleDelete)
	r.Get("/videos", h.handleList)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, v)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	fields, err := validation.DecodeRequest(w, r)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	input, err := validation.ValidateCreate(fields)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	created, err := h.svc.Create(r.Context(), input.Video(id))
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	fields, err := validation.DecodeRequest(w, r)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	patch, err := validation.ValidatePatch(fields)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	updated, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := validation.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	videos, err := h.svc.List(r.Context())
	if err != nil {
		utils.RespondAppError(w, r, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, videos)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "health check failed", "err", err)
		utils.RespondError(w, http.StatusServiceUnavailable, "store unavailable")
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
