package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/leadflow-backend/pkg/config"
)

// Shared-secret headers accepted by the inbound webhook.
const (
	WebhookTokenHeader    = "X-DoubleTick-Token"
	WebhookTokenHeaderAlt = "X-Double-Tick-Token"
)

// CORS returns middleware that applies the configured origin allow-list.
// Entries may be exact origins or patterns with a single "*" wildcard.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", "X-Request-Id", WebhookTokenHeader, WebhookTokenHeaderAlt},
		ExposedHeaders:   []string{"Content-Disposition", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
