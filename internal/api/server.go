package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/limbo/squirrels/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	mx      *chi.Mux
	tracker service.TrackerI
}

type ServicesList struct {
	Tracker service.TrackerI
	// Browser origins allowed to call the API. Empty disables CORS headers
	AllowedOrigins []string
}

func New(servicesOptions *ServicesList) *Server {
	s := &Server{
		mx:      chi.NewMux(),
		tracker: servicesOptions.Tracker,
	}
	s.mountHandlers(servicesOptions.AllowedOrigins)
	return s
}

func (s *Server) mountHandlers(origins []string) {
	s.mx.Use(middleware.Recoverer)
	if len(origins) > 0 {
		s.mx.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware, s.LoggerExtensionMiddleware)

	s.mx.Get("/catalog", s.GetCatalog)
	s.mx.Get("/view", s.GetView)
	s.mx.Get("/users", s.GetUsers)

	s.mx.Post("/register", s.Register)
	s.mx.Post("/login", s.Login)
	s.mx.Post("/logout", s.Logout)

	s.mx.Route("/activities", func(r chi.Router) {
		r.Get("/", s.GetActivities)
		r.Post("/", s.AddActivity)
		r.Delete("/{id}", s.DeleteActivity)
	})
	s.mx.Post("/friends/{id}/toggle", s.ToggleFriend)

	s.mx.Get("/leaderboard", s.GetLeaderboard)
	s.mx.Get("/progress", s.GetProgress)
	s.mx.Get("/series", s.GetSeries)

	s.mx.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mx.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mx,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      requestTimeout,
		IdleTimeout:       60 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("api listening", slog.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.New("graceful shutdown error: " + err.Error())
	}
	return nil
}
