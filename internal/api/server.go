// Package api exposes the cipher pipeline over HTTP.
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gorilla/mux"
	"github.com/saylorsolutions/avscipher/internal/config"
)

const (
	serviceName    = "AVS Cipher API"
	serviceVersion = "2.0.0"
)

// Server serves the cipher endpoints.
type Server struct {
	cfg    *config.Config
	log    *log.Logger
	router *mux.Router
}

// New creates a Server and registers its routes.
// A nil logger logs to stderr.
func New(cfg *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "[avs-api] ", log.LstdFlags|log.Lmsgprefix)
	}
	s := &Server{
		cfg: cfg,
		log: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(s.corsMiddleware, s.limitMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods("GET", "OPTIONS")
	router.HandleFunc("/info", s.handleInfo).Methods("GET", "OPTIONS")
	router.HandleFunc("/encrypt", s.handleEncrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/decrypt", s.handleDecrypt).Methods("POST", "OPTIONS")
	router.HandleFunc("/cipher", s.handleCipher).Methods("POST", "OPTIONS")
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}

// Handler returns the http.Handler for the service, useful for testing or embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until ctx is cancelled, and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.ReadTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Printf("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	s.log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(origin) > 0 && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Add("Vary", "Origin")
		}

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	return slices.Contains(s.cfg.AllowedOrigins, "*") || slices.Contains(s.cfg.AllowedOrigins, origin)
}

func (s *Server) limitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		next.ServeHTTP(w, r)
	})
}
