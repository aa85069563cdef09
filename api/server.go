package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/student-portfolio-backend/config"
	"github.com/rpupo63/student-portfolio-backend/services"
	"github.com/rpupo63/student-portfolio-backend/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(c map[string]string, portfolio *services.Portfolio, auth *services.Authenticator, store storage.Store) (Server, error) {
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	startupTime := time.Now()

	router := newRouter(portfolio, auth, withConfig(c), withStartupTime(startupTime), withStore(store))

	// Get timeout values from config with sensible defaults
	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 180)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 180)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 180)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	store       storage.Store
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// withStore serves a filesystem store's objects under its media URL
func withStore(store storage.Store) func(*router) {
	return func(r *router) {
		r.store = store
	}
}

func newRouter(portfolio *services.Portfolio, auth *services.Authenticator, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)

	maxUploadBytes := int64(config.GetInt(router.config, "MAX_UPLOAD_MB", 20)) << 20

	// Initialize all handlers
	handlers := initializeHandlers(auth, maxUploadBytes)

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(auth, portfolio)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	chiRouter.Get("/healthz", healthCheck(router.startupTime))
	if fs, ok := router.store.(*storage.FilesystemStore); ok {
		mountMedia(chiRouter, fs)
	}

	setupRoutes(chiRouter, handlers, authMiddleware)

	return chiRouter
}

// mountMedia serves uploaded files from a filesystem store
func mountMedia(r chi.Router, fs *storage.FilesystemStore) {
	prefix := fs.MediaURL()
	if u, err := url.Parse(prefix); err == nil {
		prefix = u.Path
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(fs.Dir())))
	r.Get(prefix+"*", func(w http.ResponseWriter, req *http.Request) {
		// no directory listings
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		fileServer.ServeHTTP(w, req)
	})
}

func healthCheck(startupTime time.Time) http.HandlerFunc {
	responder := NewResponder(log.With().Str("handlerName", "healthCheck").Logger())
	return func(w http.ResponseWriter, r *http.Request) {
		responder.WriteJSON(w, map[string]interface{}{
			"status":    "ok",
			"startedAt": startupTime,
			"uptime":    time.Since(startupTime).Round(time.Second).String(),
		})
	}
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
