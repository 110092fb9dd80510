package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web/handler"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web/middleware"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
	"github.com/riandyrn/otelchi"
)

type Handlers struct {
	Location  *handler.Location
	Ride      *handler.Ride
	Functions *handler.Functions
	Health    http.Handler
	Metrics   http.Handler
}

type RouterConfig struct {
	ServiceName string
	JWTSecret   string
	Timeout     time.Duration
}

func NewRouter(h Handlers, cfg RouterConfig, limiter *middleware.IPDispatcher, log logger.Logger, m metrics.Metrics) http.Handler {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	auth := middleware.JWTAuth(cfg.JWTSecret, log)

	r := chi.NewRouter()
	r.Use(otelchi.Middleware(cfg.ServiceName, otelchi.WithChiRoutes(r)))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.MetricsWrapper(m))

	if h.Health != nil {
		r.Handle("/health", h.Health)
	}
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(cfg.Timeout))
		if limiter != nil {
			r.Use(limiter.Handler(log))
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(auth)

			r.Route("/drivers", func(r chi.Router) {
				r.Get("/nearby", h.Location.Nearby)
				r.Put("/{id}/location", h.Location.Update)
			})

			r.Route("/rides", func(r chi.Router) {
				r.Post("/", h.Ride.Request)
				r.Get("/{id}/status", h.Ride.Status)
				r.Patch("/{id}/bid", h.Ride.UpdateBid)
				r.Post("/{id}/{action}", h.Ride.Transition)
			})
		})

		r.Route("/functions/v1", func(r chi.Router) {
			r.Post("/create-referral", h.Functions.CreateReferral)
			r.With(auth).Post("/increment-post-likes", h.Functions.IncrementPostLikes)
		})
	})

	return r
}
