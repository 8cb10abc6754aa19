package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/ytget/playlist-demo/internal/config"
	"github.com/ytget/playlist-demo/internal/download"
	"github.com/ytget/playlist-demo/internal/logger"
	"github.com/ytget/playlist-demo/internal/model"
	"github.com/ytget/playlist-demo/internal/notify"
	"github.com/ytget/playlist-demo/internal/platform"
	"github.com/ytget/playlist-demo/internal/storage"
)

const shutdownTimeout = 30 * time.Second

// Notifier receives every forwarded session event.
type Notifier interface {
	Publish(ctx context.Context, sessionID string, event model.Event) error
}

// Deps are the optional collaborators of the server. Store defaults to a
// LocalStore under the configured download directory.
type Deps struct {
	Store    storage.Store
	Redis    *redis.Client
	Notifier Notifier
	Rand     platform.Random
}

// Server is the HTTP rendition of the demo
type Server struct {
	router   *chi.Mux
	cfg      *config.ServerConfig
	deps     Deps
	api      *API
	hub      *Hub
	registry *Registry
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new server instance and starts its hub
func NewServer(cfg *config.ServerConfig, deps Deps) *Server {
	if deps.Store == nil {
		deps.Store = storage.NewLocalStore(cfg.DownloadDir)
	}
	if deps.Rand == nil {
		deps.Rand = platform.NewRandom(cfg.Pipeline.Seed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		deps:   deps,
		hub:    hub,
		ctx:    ctx,
		cancel: cancel,
	}
	s.registry = NewRegistry(cfg.Sessions.Max, s.newSession)
	s.registry.OnRemove(s.sessionRemoved)
	s.api = &API{registry: s.registry, store: deps.Store, hub: hub}

	s.setupMiddleware()
	s.setupRoutes()

	go hub.Run(ctx)

	return s
}

// newSession builds a session and wires its events to the hub and notifier.
func (s *Server) newSession(id string) *download.Session {
	p := s.cfg.Pipeline
	faults := platform.NewRandomFaults(p.FailureRate, s.deps.Rand)
	session := download.NewSession(id, s.deps.Store.Saver(id, faults), download.Options{
		AnalyzeDelay: p.AnalyzeDelay,
		MinDelay:     p.MinDelay,
		MaxDelay:     p.MaxDelay,
		Sleep:        platform.SleepContext,
		Rand:         s.deps.Rand,
	})

	download.Listen(session.Bus(), func(e model.Event) {
		s.hub.Broadcast(id, e)
		if s.deps.Notifier != nil && notify.ShouldForward(e) {
			if err := s.deps.Notifier.Publish(s.ctx, id, e); err != nil {
				logger.Logger.Warn("Notify publish failed", "session_id", id, "error", err.Error())
			}
		}
	})
	return session
}

func (s *Server) sessionRemoved(id string) {
	s.hub.DropSession(id)
	if err := s.deps.Store.RemoveSession(s.ctx, id); err != nil {
		logger.Logger.Warn("Remove session files failed", "session_id", id, "error", err.Error())
	}
	logger.Logger.Info("Session removed", "session_id", id)
}

// setupMiddleware configures Chi middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(RequestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(CORSMiddleware(s.cfg.Server.AllowedOrigins))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.api.HealthCheck)

	s.router.Route("/sessions", func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

		r.Post("/", s.api.CreateSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.api.GetSession)
			r.Delete("/", s.api.DeleteSession)
			r.With(s.analyzeLimiter()...).Post("/analyze", s.api.Analyze)
			r.Post("/download", s.api.StartDownload)
			r.Post("/cancel", s.api.Cancel)
			r.Post("/reset", s.api.Reset)
			r.Get("/files/{name}", s.api.GetFile)
		})
	})

	s.router.Get("/ws/sessions/{id}", s.api.HandleWebSocket)
}

func (s *Server) analyzeLimiter() []func(http.Handler) http.Handler {
	if s.deps.Redis == nil || s.cfg.Redis.RateLimit <= 0 {
		return nil
	}
	return []func(http.Handler) http.Handler{
		RateLimitMiddleware(s.deps.Redis, s.cfg.Redis.RateLimit, time.Minute),
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry exposes the session registry
func (s *Server) Registry() *Registry {
	return s.registry
}

// Close stops every session and the hub
func (s *Server) Close() {
	s.registry.CloseAll()
	s.cancel()
}

func (s *Server) cleanupLoop() {
	interval := s.cfg.Sessions.IdleTTL / 2
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.registry.CleanupIdle(now, s.cfg.Sessions.IdleTTL); len(removed) > 0 {
				logger.Logger.Info("Idle sessions removed", "count", len(removed))
			}
		}
	}
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go s.cleanupLoop()

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info("Server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-quit:
	}

	logger.Logger.Info("Server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(ctx)
	s.Close()
	if err != nil {
		logger.Logger.Error("Server forced to shutdown", "error", err.Error())
		return err
	}

	logger.Logger.Info("Server stopped")
	return nil
}
