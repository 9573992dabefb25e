package httpcontroller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// configureMiddleware sets up middleware for the server.
func (s *Server) configureMiddleware() {
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(s.SecurityHeadersMiddleware())
	s.Echo.Use(s.CORSMiddleware())
	s.Echo.Use(s.GzipMiddleware())
	s.Echo.Use(middleware.BodyLimit("1M"))

	if s.Settings.RateLimit.Enabled {
		s.Echo.Use(s.RateLimiterMiddleware())
	}
}

// SecurityHeadersMiddleware applies standard security headers to every
// response.
func (s *Server) SecurityHeadersMiddleware() echo.MiddlewareFunc {
	return middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	})
}

// CORSMiddleware allows cross-origin access from any origin; the API is
// public and read-only.
func (s *Server) CORSMiddleware() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
}

// GzipMiddleware configures Gzip compression for the server
func (s *Server) GzipMiddleware() echo.MiddlewareFunc {
	return middleware.GzipWithConfig(middleware.GzipConfig{
		Level:     6,
		MinLength: 2048,
	})
}

// RateLimiterMiddleware applies a coarse per-client-address budget across the
// whole API surface. Development mode switches to the relaxed budget.
func (s *Server) RateLimiterMiddleware() echo.MiddlewareFunc {
	rl := s.Settings.RateLimit
	requestsPerMinute := rl.RequestsPerMinute
	burst := rl.Burst
	if rl.DevMode {
		requestsPerMinute = rl.DevRequestsPerMinute
		burst = rl.DevBurst
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requestsPerMinute) / 60.0),
		Burst:     burst,
		ExpiresIn: 3 * time.Minute,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded")
		},
	})
}
