package http

import (
	"net/http"

	"github.com/gg-eng/portfolio-api/internal/application/analytics"
	"github.com/gg-eng/portfolio-api/internal/application/contact"
	"github.com/gg-eng/portfolio-api/internal/application/newsletter"
	"github.com/gg-eng/portfolio-api/internal/config"
	"github.com/gg-eng/portfolio-api/internal/transport/http/handler"
	appmiddleware "github.com/gg-eng/portfolio-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to public POST endpoints that
	// trigger email sends or store writes.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	newsletterSvc := newsletter.NewService(deps.Store)
	analyticsSvc := analytics.NewService(deps.Store)
	contactSvc := contact.NewService(deps.CVStore, deps.Mailer, cfg.PersonalEmail)

	healthH := handler.NewHealthHandler()
	newsletterH := handler.NewNewsletterHandler(newsletterSvc, deps.Mailer, cfg.NewsletterEnabled, cfg.PublicBaseURL)
	contactH := handler.NewContactHandler(contactSvc, analyticsSvc)
	metricsH := handler.NewMetricsHandler(analyticsSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes ────────────────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/newsletter/subscribe", newsletterH.Subscribe)
		r.Get("/newsletter/confirm", newsletterH.Confirm)
		r.With(sensitiveRL.Limit).Post("/newsletter/unsubscribe", newsletterH.Unsubscribe)
		r.With(sensitiveRL.Limit).Post("/contact/request-cv", contactH.RequestCV)
		r.With(sensitiveRL.Limit).Post("/analytics/pageview", contactH.TrackPageview)

		// ── Owner-only routes ────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireToken(cfg.AdminToken))

			r.Post("/newsletter/send", newsletterH.Broadcast)
			r.Get("/metrics", metricsH.Get)
		})
	})

	return r
}
