package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/video-catalog/backend/internal/config"
	eventsHandler "github.com/zhouzirui/video-catalog/backend/internal/handler/events"
	lookupHandler "github.com/zhouzirui/video-catalog/backend/internal/handler/lookup"
	videoHandler "github.com/zhouzirui/video-catalog/backend/internal/handler/video"
	middlewarePkg "github.com/zhouzirui/video-catalog/backend/internal/middleware"
	"github.com/zhouzirui/video-catalog/backend/internal/model/lookup"
	"github.com/zhouzirui/video-catalog/backend/internal/service/events"
	videoService "github.com/zhouzirui/video-catalog/backend/internal/service/video"
	"github.com/zhouzirui/video-catalog/backend/pkg/utils"
)

// Deps bundles what the router needs. Limiter may be nil.
type Deps struct {
	Server  config.ServerConfig
	Videos  *videoService.Service
	People  lookup.Store
	Hub     *events.Hub
	Limiter *middlewarePkg.Limiter
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.Server.CORSOrigins))
	if deps.Limiter != nil {
		r.Use(middlewarePkg.RateLimit(deps.Limiter))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	lookupHandler.New(deps.People).RegisterRoutes(r)
	videoHandler.New(deps.Videos).RegisterRoutes(r)
	if deps.Hub != nil {
		eventsHandler.New(deps.Hub).RegisterRoutes(r)
	}

	return r
}
