package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru"

	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/expr"
	"github.com/agbru/largeint/internal/format"
	"github.com/agbru/largeint/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// Config holds the server settings.
type Config struct {
	// Port is the TCP port to listen on.
	Port string
	// MaxBits bounds every intermediate value. Zero means unlimited.
	MaxBits int
	// CacheSize is the number of results kept in the LRU cache.
	CacheSize int
	// EvalTimeout bounds a single evaluation.
	EvalTimeout time.Duration
	// Security controls headers, CORS and the expression length limit.
	Security SecurityConfig
}

// Server is the HTTP API: /eval, /health and /metrics.
type Server struct {
	cfg     Config
	cache   *lru.Cache
	metrics *Metrics
	logger  logging.Logger
	opts    []expr.Option
	mux     *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics shares an existing Metrics instance.
func WithMetrics(m *Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithExprOptions passes extra options to every evaluation environment.
func WithExprOptions(opts ...expr.Option) Option {
	return func(s *Server) { s.opts = append(s.opts, opts...) }
}

// New creates a Server.
func New(cfg Config, logger logging.Logger, opts ...Option) (*Server, error) {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = 1
	}
	if cfg.EvalTimeout <= 0 {
		cfg.EvalTimeout = 30 * time.Second
	}
	cache, err := lru.New(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, cache: cache, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.logger == nil {
		s.logger = logging.Nop{}
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/eval", s.wrap(s.handleEval))
	s.mux.HandleFunc("/health", s.wrap(s.handleHealth))
	s.mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	return s, nil
}

func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(h))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe serves on the configured port until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", net.JoinHostPort("", s.cfg.Port))
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordRequest(r.URL.Path, rec.status)
	}
}

// EvalResponse is the JSON body returned by /eval.
type EvalResponse struct {
	Expr     string `json:"expr"`
	Binary   string `json:"binary"`
	Decimal  string `json:"decimal"`
	Bits     int    `json:"bits"`
	Negative bool   `json:"negative"`
	Duration string `json:"duration"`
	Cached   bool   `json:"cached"`
}

// ErrorResponse is the JSON body returned on failure.
type ErrorResponse struct {
	Error    string `json:"error"`
	Position *int   `json:"position,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	input := r.URL.Query().Get("expr")
	if input == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("missing expr parameter"))
		return
	}
	if limit := s.cfg.Security.MaxExprLength; limit > 0 && len(input) > limit {
		s.writeError(w, http.StatusRequestEntityTooLarge,
			apperrors.ValidationError{Field: "expr", Message: "expression too long"})
		return
	}

	if cached, ok := s.cache.Get(input); ok {
		resp := cached.(EvalResponse)
		resp.Cached = true
		s.writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.EvalTimeout)
	defer cancel()

	opts := append([]expr.Option{
		expr.WithMaxBits(s.cfg.MaxBits),
		expr.WithObserver(s.metrics.ObserveOp),
	}, s.opts...)
	res, err := expr.NewEnv(opts...).Eval(ctx, input)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	decimal, err := res.Value.DecimalContext(ctx)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}

	resp := EvalResponse{
		Expr:     input,
		Binary:   res.Value.String(),
		Decimal:  decimal,
		Bits:     res.Value.BitLen(),
		Negative: res.Value.Negative(),
		Duration: format.FormatExecutionDuration(res.Duration),
	}
	s.metrics.registry.EvalDuration.Observe(res.Duration.Seconds())
	s.cache.Add(input, resp)
	s.writeJSON(w, http.StatusOK, resp)
}

// statusFor maps evaluation errors to HTTP status codes.
func statusFor(err error) int {
	var (
		parseErr apperrors.ParseError
		valErr   apperrors.ValidationError
		calcErr  apperrors.CalculationError
		sizeErr  apperrors.SizeError
	)
	switch {
	case errors.As(err, &parseErr), errors.As(err, &valErr):
		return http.StatusBadRequest
	case errors.As(err, &sizeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &calcErr):
		return http.StatusUnprocessableEntity
	case apperrors.IsContextError(err):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var pe apperrors.ParseError
	if errors.As(err, &pe) {
		pos := pe.Pos
		resp.Position = &pos
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.Int("status", status))
	} else {
		s.logger.Warn("request rejected", logging.Int("status", status), logging.Err(err))
	}
	s.writeJSON(w, status, resp)
}
