// Package api exposes the dataset views, the scenario calculator and the
// streaming chat relay over HTTP.
package api

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/chat"
	"github.com/sells-group/ev-dss/internal/dataset"
)

// AllowedHeaders are the request headers browsers may send cross-origin.
var AllowedHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

// DatasetLoader fetches a fresh dataset.
type DatasetLoader interface {
	Load(ctx context.Context, src dataset.Sources) (*dataset.Dataset, error)
}

// Options configures a Server.
type Options struct {
	Loader         DatasetLoader
	Sources        dataset.Sources
	Relay          *chat.Relay // nil disables /api/chat
	AllowedOrigins []string
	// TopCities is the number of cities on the dashboard ranking. Default: 5.
	TopCities int
}

// Server holds the current dataset and serves every route.
type Server struct {
	opts    Options
	dataset atomic.Pointer[dataset.Dataset]
}

// NewServer creates a server with no dataset. Call Reload or SetDataset
// before serving dataset views.
func NewServer(opts Options) *Server {
	if opts.TopCities <= 0 {
		opts.TopCities = 5
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Server{opts: opts}
}

// SetDataset swaps in ds for all subsequent requests.
func (s *Server) SetDataset(ds *dataset.Dataset) {
	s.dataset.Store(ds)
}

// Dataset returns the dataset currently being served, or nil.
func (s *Server) Dataset() *dataset.Dataset {
	return s.dataset.Load()
}

// Reload fetches the sources again. The served dataset is only replaced
// when the load succeeds.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.Loader == nil {
		return eris.New("api: no dataset loader configured")
	}
	start := time.Now()
	ds, err := s.opts.Loader.Load(ctx, s.opts.Sources)
	if err != nil {
		return eris.Wrap(err, "api: reload dataset")
	}
	s.SetDataset(ds)
	zap.L().Info("api: dataset swapped",
		zap.Int("records", len(ds.Records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: AllowedHeaders,
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(s.requireDataset)
			r.Get("/dashboard", s.handleDashboard)
			r.Get("/states", s.handleStates)
			r.Get("/states/{state}/cities", s.handleCitiesForState)
			r.Get("/cities", s.handleCities)
			r.Get("/cities/clusters", s.handleClusters)
			r.Get("/cities/{state}/{city}/vehicles", s.handleVehicles)
			r.Get("/cities/{state}/{city}/ownership", s.handleOwnership)
			r.Get("/scenario/base", s.handleScenarioBase)
		})
		r.Post("/scenario", s.handleScenario)
		r.Post("/chat", s.handleChat)
		r.Post("/reload", s.handleReload)
	})

	return r
}

// requestLogger logs each request with its chi request ID.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("api: request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// requireDataset rejects dataset views until a dataset has been loaded.
func (s *Server) requireDataset(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Dataset() == nil {
			writeError(w, http.StatusServiceUnavailable, "dataset not loaded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
