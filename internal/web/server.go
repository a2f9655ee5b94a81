package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vbonduro/mealai/internal/domain"
	"github.com/vbonduro/mealai/internal/resolve"
	"github.com/vbonduro/mealai/internal/shortcut"
)

// mealService is the subset of service.MealService the handlers require.
type mealService interface {
	Resolve(ctx context.Context, in resolve.Input) (*domain.MealResult, error)
	SaveHistory(ctx context.Context, result domain.MealResult, thumbnail *domain.Image) (*domain.HistoryEntry, error)
	ListHistory(ctx context.Context) ([]*domain.HistoryEntry, error)
	DeleteHistory(ctx context.Context, id string) error
	Thumbnail(ctx context.Context, id string) (domain.Image, error)
	AddFavorite(ctx context.Context, name string, result domain.MealResult) (*domain.Favorite, error)
	ListFavorites(ctx context.Context) ([]*domain.Favorite, error)
	DeleteFavorite(ctx context.Context, id string) error
	ShortcutPayload(result domain.MealResult) shortcut.Payload
}

type Server struct {
	service           mealService
	foodSearchEnabled bool
	router            chi.Router
	logger            *slog.Logger
}

// NewServer builds the JSON API. With foodSearchEnabled false the resolve
// endpoints answer 503 and storage endpoints keep working.
func NewServer(svc mealService, foodSearchEnabled bool, logger *slog.Logger) *Server {
	s := &Server{
		service:           svc,
		foodSearchEnabled: foodSearchEnabled,
		router:            chi.NewRouter(),
		logger:            logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(securityHeaders)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireFoodSearch)
			r.Post("/resolve", s.handleResolve)
			r.Post("/resolve/images", s.handleResolveImages)
		})

		r.Get("/history", s.handleListHistory)
		r.Post("/history", s.handleSaveHistory)
		r.Delete("/history/{id}", s.handleDeleteHistory)
		r.Get("/history/{id}/thumbnail", s.handleGetThumbnail)

		r.Get("/favorites", s.handleListFavorites)
		r.Post("/favorites", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleDeleteFavorite)

		r.Post("/shortcut", s.handleShortcut)
	})
}

// securityHeaders sets the security response headers on every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}

func (s *Server) requireFoodSearch(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.foodSearchEnabled {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "food search is disabled"}, s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}
