package server

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"parfumerie/internal/handlers"
	applog "parfumerie/internal/log"
	"parfumerie/internal/metrics"
	"parfumerie/internal/middleware"
)

type routerDeps struct {
	api            *handlers.API
	studio         *handlers.Studio
	sessions       *scs.SessionManager
	health         handlers.Pinger
	limiter        *middleware.RateLimiter
	allowedOrigins []string
}

func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()
	applog.Debug(context.Background(), "registering http routes")

	r.Use(middleware.RequestLogger)
	r.Use(metrics.InstrumentHandler)
	if deps.limiter != nil {
		r.Use(deps.limiter.Handler)
	}

	r.Get("/healthz", handlers.Health(deps.health))
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	applog.Debug(context.Background(), "route registered", "path", "/metrics")

	if deps.api != nil {
		r.With(middleware.CORS(deps.allowedOrigins)).Mount("/api", deps.api.Routes())
		applog.Debug(context.Background(), "route registered", "path", "/api")
	}
	if deps.studio != nil && deps.sessions != nil {
		r.With(deps.sessions.LoadAndSave).Mount("/studio", deps.studio.Routes())
		applog.Debug(context.Background(), "route registered", "path", "/studio", "session", true)
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api", http.StatusFound)
	})
	return r
}
