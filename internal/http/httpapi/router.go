package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"crowdfund/internal/http/handlers"
	"crowdfund/internal/middleware"
)

// RouterConfig carries the knobs the router needs from the application
// configuration.
type RouterConfig struct {
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires the API surface. Mutating routes sit behind the
// principal middleware; the rate limit protects the donation path from
// accidental client loops, not from hostile throughput.
func NewRouter(app *handlers.App, logger zerolog.Logger, cfg RouterConfig) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.Principal)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/", app.CampaignsList)
		r.Post("/", app.CampaignsCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.CampaignsGet)
			r.Delete("/", app.CampaignsRemove)
			r.Patch("/deadline", app.CampaignsChangeDeadline)
			r.Patch("/target", app.CampaignsChangeTarget)

			r.Get("/donations", app.DonationsList)
			r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).
				Post("/donations", app.DonationsCreate)
		})
	})

	r.Route("/v1/admin", func(r chi.Router) {
		r.Put("/change-fee", app.AdminSetChangeFee)
		r.Put("/fee-recipient", app.AdminSetFeeRecipient)
	})

	return r
}
