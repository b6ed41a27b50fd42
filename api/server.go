package api

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/calebdws/inkwell/config"
	"github.com/calebdws/inkwell/database"
	"github.com/calebdws/inkwell/services"
)

type Server struct {
	*http.Server
}

func NewServer(cfg *config.Config, db database.Database, notifier services.Notifier) (Server, error) {
	sessions := newSessionManager(cfg.IsDevelopment())
	router := newRouter(cfg, db, sessions, notifier, time.Now())

	server := &http.Server{
		Addr: cfg.ServerAddr(),
		// LoadAndSave wraps everything so public handlers can read the
		// viewer identity too
		Handler:      sessions.LoadAndSave(router),
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
	}

	return Server{server}, nil
}

func newRouter(cfg *config.Config, db database.Database, sessions *scs.SessionManager, notifier services.Notifier, startupTime time.Time) *chi.Mux {
	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	handlers := initializeHandlers(cfg, db, sessions, notifier)
	authMiddleware := newAuthMiddleware(sessions)

	setupRoutes(chiRouter, handlers, authMiddleware)
	chiRouter.Get("/health", healthCheck(startupTime))

	return chiRouter
}

// healthCheck reports liveness and uptime since process start.
func healthCheck(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthCheck").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]string{
			"status": "ok",
			"uptime": time.Since(startupTime).Round(time.Second).String(),
		})
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
