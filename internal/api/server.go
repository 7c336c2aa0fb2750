// Package api exposes quoting and feedback over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/renovo/internal/service"
)

// Deps are the services the API serves.
type Deps struct {
	Quotes   service.QuoteService
	Feedback service.FeedbackService
	Logger   *slog.Logger
	// RequestTimeout bounds a single request; zero means 30s.
	RequestTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	quotes   service.QuoteService
	feedback service.FeedbackService
	logger   *slog.Logger
	router   *chi.Mux
	timeout  time.Duration
}

func NewServer(deps Deps) *Server {
	s := &Server{
		quotes:   deps.Quotes,
		feedback: deps.Feedback,
		logger:   deps.Logger,
		timeout:  deps.RequestTimeout,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.timeout <= 0 {
		s.timeout = 30 * time.Second
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/quotes", func(r chi.Router) {
			r.Get("/", s.handleListQuotes)
			r.Post("/", s.handleCreateQuote)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetQuote)
				r.Get("/csv", s.handleQuoteCSV)
				r.Post("/feedback", s.handleQuoteFeedback)
			})
		})
		r.Get("/feedback", s.handleFeedbackSummary)
		r.Post("/productivity", s.handleProductivity)
		r.Get("/graph", s.handleGraph)
	})

	s.router = r
}

// loggingMiddleware logs every request through the server logger.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
