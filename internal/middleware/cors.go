package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds configuration for the CORS middleware.
type CORSConfig struct {
	// AllowedOrigins is the list of origins permitted to make cross-origin
	// requests. Use ["*"] to allow all (not recommended for production).
	AllowedOrigins []string
}

// CORS returns middleware that handles Cross-Origin Resource Sharing headers.
//
// This is needed for the JSON API (/api/v1/*) when external clients, such
// as widget embeds on other sites, request calendar data. The server-rendered
// pages are same-origin and do not need CORS. The API is read-only and
// unauthenticated, so credentials are never allowed.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	// Build a set for fast origin lookup.
	allowAll := false
	originSet := make(map[string]bool)
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		originSet[o] = true
	}

	if allowAll && len(cfg.AllowedOrigins) > 1 {
		slog.Warn("CORS config lists explicit origins alongside '*'; the wildcard wins")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			origin := req.Header.Get("Origin")

			// No Origin header means same-origin request -- skip CORS.
			if origin == "" {
				return next(c)
			}

			// Origin not in the whitelist: proceed without CORS headers and
			// let the browser block the response on the client side.
			if !allowAll && !originSet[origin] {
				return next(c)
			}

			res.Header().Set("Access-Control-Allow-Origin", origin)
			res.Header().Set("Vary", "Origin")

			// Handle preflight OPTIONS requests.
			if req.Method == http.MethodOptions {
				res.Header().Set("Access-Control-Allow-Methods",
					strings.Join([]string{http.MethodGet, http.MethodOptions}, ", "))
				res.Header().Set("Access-Control-Allow-Headers",
					strings.Join([]string{"Content-Type", "X-Requested-With"}, ", "))

				// Cache preflight response for 1 hour to reduce preflight requests.
				res.Header().Set("Access-Control-Max-Age", "3600")

				return c.NoContent(http.StatusNoContent)
			}

			return next(c)
		}
	}
}
