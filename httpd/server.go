// Package httpd exposes a docdex store over HTTP. Routes are
// collection-scoped under /indexes/{index}; queries against a collection
// that has never been written to answer 200 with an error body, so
// probing for collections is indistinguishable from an empty result set.
package httpd

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/docdex/docdex"
)

// Server translates HTTP requests into store operations.
type Server struct {
	store   *docdex.Store
	logger  *docdex.Logger
	limiter *rate.Limiter
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the request logger. Defaults to text logs on stderr.
func WithLogger(l *docdex.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWriteRateLimit caps the sustained rate of write requests (document,
// bulk and mapping endpoints). Zero or negative rps disables the limit.
func WithWriteRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// NewServer creates an HTTP API server on top of the store.
func NewServer(store *docdex.Store, opts ...ServerOption) *Server {
	s := &Server{
		store:  store,
		logger: docdex.NewLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(requestLogger(s.logger))
	r.Use(metricsMiddleware())

	r.Get("/", s.handleRoot)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/indexes/{index}", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(writeLimit(s.limiter))
			r.Post("/documents", s.handleInsert)
			r.Post("/bulk", s.handleBulk)
			r.Put("/mapping", s.handleSetMapping)
		})
		r.Get("/search", s.handleSearch)
		r.Post("/query", s.handleQuery)
		r.Post("/search_vector", s.handleVectorSearch)
	})

	return r
}

// ListenAndServe runs the server until the listener fails. Most callers
// should build the http.Server themselves for shutdown control; this is a
// convenience for examples and quick starts.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
