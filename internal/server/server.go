package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ParthGupta1304/CLARIX/internal/cache"
	"github.com/ParthGupta1304/CLARIX/internal/model"
	"github.com/ParthGupta1304/CLARIX/internal/pipeline"
)

// Runner executes one verification request end to end
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*model.PipelineResult, error)
}

// Server is the HTTP shell around the verification pipeline. It owns
// routing, auth, CORS, validation, and the result cache; the pipeline itself
// stays unaware of HTTP.
type Server struct {
	runner  Runner
	results *cache.ResultCache
	config  *model.Config
	logger  *zap.Logger
}

// New creates a server. The result cache may be nil to disable caching.
func New(runner Runner, results *cache.ResultCache, config *model.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		runner:  runner,
		results: results,
		config:  config,
		logger:  logger,
	}
}

// verifyRequest mirrors the wire shape consumed by the upstream backend
type verifyRequest struct {
	Content     string `json:"content"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	ContentType string `json:"contentType,omitempty"`
	SourceType  string `json:"sourceType,omitempty"`
	RequestID   string `json:"requestId,omitempty"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// Router builds the chi routing tree
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Post("/verify", s.handleVerify)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("clarix engine listening",
			zap.String("addr", addr),
			zap.Bool("auth", s.config.Server.InternalToken != ""))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"engine":  "clarix",
		"version": "0.2.0",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body", Detail: err.Error()})
		return
	}

	if strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "content is required"})
		return
	}
	if max := s.config.Pipeline.MaxContentLength; len(req.Content) > max {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: fmt.Sprintf("content exceeds maximum length of %d characters", max),
		})
		return
	}

	key := cache.Key(req.Content, req.URL, req.Title, req.ContentType)
	if s.results != nil {
		if cached, found := s.results.Get(key); found {
			// Results are immutable: copy before re-stamping the request id
			out := *cached
			out.RequestID = req.RequestID
			s.logger.Info("cache hit", zap.String("request_id", req.RequestID))
			writeJSON(w, http.StatusOK, &out)
			return
		}
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		Content:     req.Content,
		URL:         req.URL,
		Title:       req.Title,
		ContentType: req.ContentType,
		RequestID:   req.RequestID,
	})
	if err != nil {
		s.logger.Error("pipeline failed", zap.Error(err), zap.String("request_id", req.RequestID))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "verification failed", Detail: err.Error()})
		return
	}

	if s.results != nil {
		s.results.Set(key, result)
	}

	writeJSON(w, http.StatusOK, result)
}

// authMiddleware rejects requests without the shared internal token.
// Skipped entirely when no token is configured (dev mode).
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := s.config.Server.InternalToken
		if expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		got := r.Header.Get("X-Internal-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid or missing internal token"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// corsMiddleware applies the configured allowed origins
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	origins := strings.Split(s.config.Server.AllowedOrigins, ",")
	allowAll := false
	allowed := make(map[string]bool)
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			allowAll = true
		} else if o != "" {
			allowed[o] = true
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && (allowAll || allowed[origin]) {
			if allowAll {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Internal-Token")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
