// Package server exposes the completion engine over a small local HTTP API
// for editor experiments and manual testing.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tentacle-scylla/sqlcomplete/internal/logging"
	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/hover"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves completion requests.
type Server struct {
	engine   *complete.Engine
	provider schema.Provider
	hover    *hover.Resolver
	log      *zap.Logger
}

// New creates a server. provider backs the table listing and may be nil.
func New(engine *complete.Engine, provider schema.Provider, log *zap.Logger) *Server {
	return &Server{
		engine:   engine,
		provider: provider,
		hover:    hover.NewResolver(provider),
		log:      logging.OrNop(log).With(zap.String(logging.FieldComponent, "server")),
	}
}

// CompleteRequest is the body of POST /v1/complete.
type CompleteRequest struct {
	Text   string `json:"text"`
	Cursor int    `json:"cursor"`
}

// HoverResponse is the body of POST /v1/hover. Hover is null when there is
// nothing to describe.
type HoverResponse struct {
	Hover *hover.Info `json:"hover"`
}

// TablesResponse is the body of GET /v1/tables.
type TablesResponse struct {
	Tables []schema.Object `json:"tables"`
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/complete", s.handleComplete)
		r.Post("/hover", s.handleHover)
		r.Get("/tables", s.handleTables)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String(logging.FieldAddr, addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serve")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	}
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body: "+err.Error())
		return
	}

	res, err := s.engine.Analyze(r.Context(), complete.Request{Text: req.Text, Cursor: req.Cursor})
	if err != nil {
		if types.IsInvalidArgument(err) {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}
		s.log.Error("completion failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	var req hover.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON body: "+err.Error())
		return
	}

	info, err := s.hover.Hover(r.Context(), req)
	if err != nil {
		if types.IsInvalidArgument(err) {
			writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
			return
		}
		s.log.Warn("hover failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, HoverResponse{Hover: info})
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	resp := TablesResponse{Tables: []schema.Object{}}
	if s.provider != nil {
		tables, err := s.provider.ListTables(r.Context())
		if err != nil {
			s.log.Warn("provider failed to list tables", zap.Error(err))
			writeError(w, http.StatusBadGateway, "PROVIDER_ERROR", err.Error())
			return
		}
		if tables != nil {
			resp.Tables = tables
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String(logging.FieldMethod, r.Method),
			zap.String(logging.FieldPath, r.URL.Path),
			zap.Int(logging.FieldStatus, ww.Status()),
			zap.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()))
	})
}

// writeJSON marshals v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
