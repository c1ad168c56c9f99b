// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xataio/benchhistory/pkg/chart"
	"github.com/xataio/benchhistory/pkg/history"
)

const RequestIDHeader = "X-Request-Id"

const otherPath = "other"

// Server serves a benchmark history that was rendered once at
// construction. Handlers only read the pre-rendered bytes and are safe for
// concurrent use.
type Server struct {
	js, jsonData, page []byte

	mux      *http.ServeMux
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	logger   history.Logger
	routes   map[string]struct{}
}

type options struct {
	logger    history.Logger
	pageTitle string
}

type Option func(*options)

// WithLogger sets the logger used to report served requests
func WithLogger(l history.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPageTitle sets the title of the chart page served at /
func WithPageTitle(title string) Option {
	return func(o *options) {
		o.pageTitle = title
	}
}

// New renders s in every served format and returns a Server for it.
func New(s *history.Suite, opts ...Option) (*Server, error) {
	o := &options{logger: history.NewNoopLogger()}
	for _, opt := range opts {
		opt(o)
	}

	srv := &Server{
		mux:      http.NewServeMux(),
		registry: prometheus.NewRegistry(),
		logger:   o.logger,
		routes:   make(map[string]struct{}),
	}

	var err error
	if srv.js, err = history.Render(s); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := history.Serialize(&buf, s, history.FormatJSON); err != nil {
		return nil, err
	}
	srv.jsonData = buf.Bytes()

	var chartOpts []chart.Option
	if o.pageTitle != "" {
		chartOpts = append(chartOpts, chart.WithPageTitle(o.pageTitle))
	}
	var page bytes.Buffer
	if err := chart.Render(&page, s, chartOpts...); err != nil {
		return nil, err
	}
	srv.page = page.Bytes()

	srv.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "benchhistory_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "code"},
	)
	srv.duration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "benchhistory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)
	srv.registry.MustRegister(
		srv.requests,
		srv.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv.handle("/data.js", staticHandler("application/javascript; charset=utf-8", srv.js))
	srv.handle("/data.json", staticHandler("application/json", srv.jsonData))
	srv.handle("/healthz", http.HandlerFunc(healthHandler))
	srv.handle("/metrics", promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{}))
	srv.handle("/", staticHandler("text/html; charset=utf-8", srv.page))

	return srv, nil
}

// handle registers h for GET requests to exactly path.
func (s *Server) handle(path string, h http.Handler) {
	s.routes[path] = struct{}{}
	pattern := "GET " + path
	if path == "/" {
		pattern += "{$}"
	}
	s.mux.Handle(pattern, h)
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler {
	return s.track(s.mux)
}

// Registry returns the registry holding the server metrics
func (s *Server) Registry() *prometheus.Registry {
	return s.registry
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// track assigns a request id to every request and records its outcome.
func (s *Server) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		path := r.URL.Path
		if _, ok := s.routes[path]; !ok {
			path = otherPath
		}

		s.requests.WithLabelValues(path, strconv.Itoa(rw.statusCode)).Inc()
		s.duration.WithLabelValues(path).Observe(time.Since(start).Seconds())
		s.logger.Info("served request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"code", rw.statusCode,
		)
	})
}

func staticHandler(contentType string, body []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok\n"))
}

// responseWriter is a wrapper to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
