// Package httpapi serves a directory.Directory over HTTP using the JSON wire
// format the remote client speaks.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/utahvbr/bizdirctl/internal/directory"
	"github.com/utahvbr/bizdirctl/internal/record"
)

const requestIDHeader = "X-Request-Id"

var (
	filterRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bizdirctl_filter_requests_total",
		Help: "The total number of filter queries served",
	})
	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bizdirctl_request_errors_total",
		Help: "The total number of failed API requests by route",
	}, []string{"route"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bizdirctl_request_duration_seconds",
		Help:    "API request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

// Server exposes a directory over HTTP.
type Server struct {
	dir     directory.Directory
	decoder *schema.Decoder
}

// New creates a server backed by dir.
func New(dir directory.Directory) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	return &Server{dir: dir, decoder: decoder}
}

// Handler returns the routed HTTP handler, including /metrics and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/records", s.instrument("records", s.FilterRecords))
	mux.HandleFunc("GET /api/v1/records/{id}", s.instrument("record", s.GetRecord))
	mux.HandleFunc("GET /api/v1/object-info/{object}", s.instrument("object_info", s.ObjectInfo))
	mux.HandleFunc("GET /api/v1/picklist-values/{recordTypeId}/{field}", s.instrument("picklist_values", s.PicklistValues))

	return mux
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)

		elapsed := time.Since(start)
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		if rec.status >= 400 {
			requestErrors.WithLabelValues(route).Inc()
		}

		slog.Debug("API request served",
			slog.String("route", route),
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestID),
			slog.Int("status", rec.status),
			slog.Int64("duration_ms", elapsed.Milliseconds()),
		)
	}
}

// FilterRecords handles GET /api/v1/records?q=&category=&county=.
func (s *Server) FilterRecords(w http.ResponseWriter, r *http.Request) {
	filterRequests.Inc()

	var q directory.Query
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter query: "+err.Error())
		return
	}

	records, err := s.dir.FilterRecords(r.Context(), q.Normalize())
	if err != nil {
		writeFailure(w, err)
		return
	}
	if records == nil {
		records = []record.Summary{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

// GetRecord handles GET /api/v1/records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.dir.GetRecord(r.Context(), r.PathValue("id"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ObjectInfo handles GET /api/v1/object-info/{object}.
func (s *Server) ObjectInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.dir.ObjectInfo(r.Context(), r.PathValue("object"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// PicklistValues handles GET /api/v1/picklist-values/{recordTypeId}/{field}.
func (s *Server) PicklistValues(w http.ResponseWriter, r *http.Request) {
	p, err := s.dir.PicklistValues(r.Context(), directory.PicklistRequest{
		Field:        r.PathValue("field"),
		RecordTypeID: r.PathValue("recordTypeId"),
	})
	if err != nil {
		writeFailure(w, err)
		return
	}
	values := p.Values
	if values == nil {
		values = []directory.PicklistValue{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"values": values})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encoding response", slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeFailure maps directory sentinel errors onto HTTP status codes.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, directory.ErrNotFound):
		writeError(w, http.StatusNotFound, directory.FailureMessage(err))
	case errors.Is(err, directory.ErrValidation):
		writeError(w, http.StatusBadRequest, directory.FailureMessage(err))
	case errors.Is(err, directory.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, directory.FailureMessage(err))
	default:
		slog.Error("directory request failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, directory.FailureMessage(err))
	}
}
