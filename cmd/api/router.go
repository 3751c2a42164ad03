package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/streamtv-site/internal/infra/http/handlers"
	"github.com/xavierca1/streamtv-site/internal/infra/http/middleware"
	"github.com/xavierca1/streamtv-site/pkg/logging"
)

type routerDeps struct {
	Logger      *logging.Logger
	CORSOrigins []string
	Limiter     *middleware.RateLimiter

	Leads      *handlers.LeadHandler
	Revalidate *handlers.RevalidateHandler
	Content    *handlers.ContentHandler
	Newsletter *handlers.NewsletterHandler
	Health     *handlers.HealthHandler
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(middleware.Metrics)

	r.Get("/health", d.Health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.With(d.Limiter.Middleware).Post("/subscribe", d.Leads.SubmitForm)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.Limiter.Middleware)
			r.Post("/subscriptions", d.Leads.SubmitJSON)
			r.Post("/newsletter", d.Newsletter.Subscribe)
		})

		r.Get("/revalidate", d.Revalidate.HandleQuery)
		r.Post("/revalidate", d.Revalidate.HandleWebhook)

		r.Get("/site-settings", d.Content.SiteSettings)
		r.Get("/pricing", d.Content.Pricing)
		r.Get("/faq", d.Content.FAQ)
		r.Get("/testimonials", d.Content.Testimonials)
		r.Get("/posts", d.Content.Posts)
		r.Get("/posts/{slug}", d.Content.PostBySlug)
		r.Get("/home", d.Content.Home)
	})

	return r
}
