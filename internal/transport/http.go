package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// RouteRegistrar is implemented by every HTTP handler.
type RouteRegistrar interface {
	RegisterRoutes(router chi.Router)
}

// NewRouter mounts the handlers under apiPrefix behind the shared middleware
// stack. Each request is logged through logger.
func NewRouter(logger zerolog.Logger, apiPrefix string, requestTimeout time.Duration, handlers ...RouteRegistrar) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(logger))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request handled")
	}))
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Route(apiPrefix, func(api chi.Router) {
		for _, h := range handlers {
			h.RegisterRoutes(api)
		}
	})

	return r
}
