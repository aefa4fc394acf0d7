package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/supportcase/pkg/domain/model"
	"github.com/secmon-lab/supportcase/pkg/usecase"
)

type Server struct {
	router   *chi.Mux
	uc       *usecase.UseCases
	policy   model.PagePolicy
	registry *prometheus.Registry
	metrics  *metrics
}

type Options func(*Server)

// WithPagePolicy sets the bounds applied to limit/offset of message listings.
func WithPagePolicy(policy model.PagePolicy) Options {
	return func(s *Server) {
		s.policy = policy
	}
}

// WithMetricsRegistry registers request metrics on registry and exposes it
// on /metrics. Without it a private registry is used.
func WithMetricsRegistry(registry *prometheus.Registry) Options {
	return func(s *Server) {
		s.registry = registry
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
		policy: model.DefaultPagePolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(s.metrics.middleware)
	r.Use(recoverer)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Get("/health", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/cases", func(r chi.Router) {
		r.Get("/", s.listCasesHandler)
		r.Post("/", s.createCaseHandler)

		r.Route("/{case_id}", func(r chi.Router) {
			r.Get("/", s.getCaseHandler)
			r.Put("/", s.updateCaseHandler)
			r.Delete("/", s.deleteCaseHandler)

			r.Get("/messages", s.listMessagesHandler)
			r.Post("/messages", s.addMessageHandler)
			r.Delete("/messages/{message_id}", s.deleteMessageHandler)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
