package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/fanchart/pkg/buildinfo"
	"github.com/matzehuels/fanchart/pkg/errors"
	"github.com/matzehuels/fanchart/pkg/pipeline"
)

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	runner    *pipeline.Runner
	defaults  pipeline.Options
	maxUpload int64
	logger    *log.Logger
}

// New creates a server. defaults seeds every chart request before query
// parameters are applied; maxUpload bounds request bodies in bytes.
func New(runner *pipeline.Runner, defaults pipeline.Options, maxUpload int64, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if maxUpload <= 0 {
		maxUpload = pipeline.MaxInputSize
	}
	return &Server{runner: runner, defaults: defaults, maxUpload: maxUpload, logger: logger}
}

// Handler returns the router with all routes and middleware registered.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/charts", s.handleChart)
		r.Post("/individuals", s.handleIndividuals)
		r.Post("/tree", s.handleTree)
	})
	return r
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleChart handles POST /v1/charts.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	opts, err := parseChartOptions(r.URL.Query(), s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = loggerFrom(r.Context(), s.logger)

	res, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "MISS"
	if res.CacheInfo.ChartHit {
		cacheStatus = "HIT"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

// handleIndividuals handles POST /v1/individuals.
func (s *Server) handleIndividuals(w http.ResponseWriter, r *http.Request) {
	data, err := s.readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	list, err := s.runner.Individuals(r.Context(), data)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":       len(list),
		"individuals": list,
	})
}

// handleTree handles POST /v1/tree.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts, err := parseChartOptions(q, s.defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatDOT
	}
	// PDF and PNG need rsvg-convert on the host; the API sticks to text formats.
	if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "format %q is not served over HTTP (use dot or svg)", format))
		return
	}
	data, err := s.readBody(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = loggerFrom(r.Context(), s.logger)

	t, err := s.runner.Tree(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := pipeline.RenderTree(r.Context(), t, format, q.Has("detailed"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render pedigree"))
		return
	}

	contentType := "text/vnd.graphviz; charset=utf-8"
	if format == pipeline.FormatSVG {
		contentType = "image/svg+xml"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// readBody reads the GEDCOM payload, rejecting empty and oversized bodies.
func (s *Server) readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.maxUpload+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if err := errors.ValidateSize(int64(len(data)), s.maxUpload); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body must contain a GEDCOM file")
	}
	return data, nil
}

// =============================================================================
// Responses
// =============================================================================

// errorResponse is the JSON body of every error.
type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code"`
	RequestID string      `json:"request_id,omitempty"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGEDCOM,
		errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidXref:
		return http.StatusBadRequest
	case errors.ErrCodeTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeNotFound, errors.ErrCodeRootNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNoIndividuals:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context(), s.logger).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: RequestID(r.Context()),
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
