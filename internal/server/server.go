package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"parfumerie/internal/db"
	"parfumerie/internal/handlers"
	applog "parfumerie/internal/log"
	"parfumerie/internal/metrics"
	"parfumerie/internal/middleware"
	"parfumerie/internal/repository"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr           string
	Session        SessionConfig
	Database       *gorm.DB
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
	EnforceTotal   bool
	Theme          string
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
	stop       chan struct{}
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"enforceTotal", cfg.EnforceTotal,
	)

	if cfg.Database == nil {
		return nil, errors.New("server requires a database handle")
	}

	sessionCfg := cfg.Session
	if sessionCfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		sessionCfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(sessionCfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		sessionCfg.CookieName = "parfumerie_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = sessionCfg.Lifetime
	sessionManager.Cookie.Name = sessionCfg.CookieName
	sessionManager.Cookie.Domain = sessionCfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = sessionCfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", sessionCfg.CookieName,
		"cookieDomain", sessionCfg.CookieDomain,
		"cookieSecure", sessionCfg.CookieSecure,
	)

	set := repository.New(cfg.Database,
		repository.WithTotalEnforcement(cfg.EnforceTotal),
		repository.OnCreated(metrics.RecordComposition),
	)

	deps := routerDeps{
		api: handlers.NewAPIFromSet(set),
		studio: handlers.NewStudio(handlers.StudioConfig{
			Sessions:     sessionManager,
			Customers:    set.Customers,
			Fragrances:   set.Fragrances,
			Compositions: set.Compositions,
			Theme:        cfg.Theme,
		}),
		sessions: sessionManager,
		health: func(ctx context.Context) error {
			return db.Ping(ctx, cfg.Database)
		},
		allowedOrigins: cfg.AllowedOrigins,
	}

	stop := make(chan struct{})
	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		limiter.StartCleanup(time.Minute, stop)
		deps.limiter = limiter
		applog.Debug(context.Background(), "rate limiting enabled", "rps", cfg.RateLimitRPS, "burst", cfg.RateLimitBurst)
	}

	handler := newRouter(deps)

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		stop: stop,
	}, nil
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}
