package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/brickforge/brickstep/internal/config"
	apperrors "github.com/brickforge/brickstep/pkg/errors"
	"github.com/brickforge/brickstep/pkg/ldraw"
	"github.com/brickforge/brickstep/pkg/pipeline"
	"github.com/brickforge/brickstep/pkg/store"
)

// newServeCmd creates the serve command running the HTTP unwrap service.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP unwrap service",
		Long: `Run an HTTP service exposing the unwrap pipeline. Summaries are
cached by source fingerprint; full runs can be persisted and listed.

Endpoints:
  GET    /health        liveness check
  POST   /unwrap        unwrap source text, return the step summary
  POST   /runs          unwrap source text and persist the run
  GET    /runs          list recent runs
  GET    /runs/{id}     fetch one run
  DELETE /runs/{id}     delete one run

Examples:
  brickstep serve
  brickstep serve --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			runs, err := newRunStore(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer runs.Close(context.Background())

			runner := newRunner(ctx, cfg, false)
			defer runner.Close()

			srv := &server{
				runner: runner,
				store:  runs,
				cfg:    cfg,
				logger: logger,
			}

			printInfo("Serving on %s", cfg.Server.Addr)
			httpServer := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           srv.routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return httpServer.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}

// newRunStore picks the configured run storage backend. MongoDB is used
// when a URI is configured, in-memory storage otherwise.
func newRunStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Store, error) {
	if cfg.Mongo.URI == "" {
		logger.Debug("using in-memory run store")
		return store.NewMemoryStore(), nil
	}
	logger.Debug("connecting to mongodb", "database", cfg.Mongo.Database)
	return store.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
}

// server holds the HTTP service dependencies.
type server struct {
	runner *pipeline.Runner
	store  store.Store
	cfg    *config.Config
	logger *log.Logger
}

// routes builds the service router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/health", s.handleHealth)
	r.Post("/unwrap", s.handleUnwrap)
	r.Post("/runs", s.handleCreateRun)
	r.Get("/runs", s.handleListRuns)
	r.Get("/runs/{id}", s.handleGetRun)
	r.Delete("/runs/{id}", s.handleDeleteRun)
	return r
}

// logRequests logs one line per request through the structured logger.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// unwrapRequest is the body of POST /unwrap and POST /runs.
type unwrapRequest struct {
	Source  string           `json:"source"`
	Options pipeline.Options `json:"options"`
}

// unwrapResponse wraps a summary with its cache status.
type unwrapResponse struct {
	Summary *pipeline.Summary `json:"summary"`
	Cached  bool              `json:"cached"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUnwrap unwraps source text and returns the step summary. Results
// are cached by source fingerprint and view options.
func (s *server) handleUnwrap(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUnwrap(w, r)
	if !ok {
		return
	}
	summary, cached, err := s.runner.SummaryWithCacheInfo(r.Context(), req.Source, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unwrapResponse{Summary: summary, Cached: cached})
}

// handleCreateRun unwraps source text and persists the run record.
func (s *server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUnwrap(w, r)
	if !ok {
		return
	}
	result, err := s.runner.Run(r.Context(), req.Source, req.Options)
	if err != nil {
		s.writeError(w, err)
		return
	}
	rootName := req.Options.RootName
	if rootName == "" {
		rootName = ldraw.RootName
	}
	run := store.BuildRun(result.Build, result.SourceHash, rootName)
	if err := s.store.SaveRun(r.Context(), run); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, run)
}

func (s *server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	if hash := r.URL.Query().Get("source_hash"); hash != "" {
		run, err := s.store.LatestBySourceHash(r.Context(), hash)
		if err != nil {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, []*store.Run{run})
		return
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteRun(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeUnwrap reads and validates an unwrap request body.
func (s *server) decodeUnwrap(w http.ResponseWriter, r *http.Request) (*unwrapRequest, bool) {
	var req unwrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "invalid request body: %v", err))
		return nil, false
	}
	if req.Source == "" {
		s.writeError(w, apperrors.New(apperrors.ErrCodeInvalidInput, "source must not be empty"))
		return nil, false
	}
	return &req, true
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError maps an application error onto an HTTP status.
func (s *server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	case code == apperrors.ErrCodeModelNotFound,
		code == apperrors.ErrCodeNotFound,
		code == apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case code == apperrors.ErrCodeInvalidInput,
		code == apperrors.ErrCodeInvalidFormat,
		code == apperrors.ErrCodeInvalidLine,
		code == apperrors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	case code == apperrors.ErrCodeCyclicModel:
		status = http.StatusUnprocessableEntity
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(code)})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
