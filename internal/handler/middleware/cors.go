package middleware

import (
	"log/slog"
	"net/http"
	"slices"

	"github.com/deanb221/caravan/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Headers the booking API depends on, added to whatever is configured.
var (
	requiredAllowHeaders  = []string{"Content-Type", "Idempotency-Key", requestIDHeader, "traceparent"}
	requiredExposeHeaders = []string{"Location", "Idempotent-Replayed", requestIDHeader}
)

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     mergeHeaders(cfg.AllowHeaders, requiredAllowHeaders),
		ExposeHeaders:    mergeHeaders(cfg.ExposeHeaders, requiredExposeHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	slog.Info("CORS middleware initialized", "AllowOrigins", cfg.AllowOrigins)
	return cors.New(corsCfg)
}

func mergeHeaders(configured, required []string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return http.CanonicalHeaderKey(c) == http.CanonicalHeaderKey(h) }) {
			out = append(out, h)
		}
	}
	return out
}
