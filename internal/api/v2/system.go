// system.go: service descriptor, health, documentation and statistics endpoints.
package api

import (
	"time"

	"github.com/labstack/echo/v4"
)

// initSystemRoutes registers the service-level routes
func (c *Controller) initSystemRoutes() {
	c.Group.GET("/health", c.HealthCheck)
	c.Group.GET("/docs", c.Docs)
	c.Group.GET("/stats", c.DatasetStats)
}

// endpointMap describes the API surface for the descriptor and docs payloads.
var endpointMap = map[string]string{
	"GET /api/health":                    "Liveness, uptime and engine readiness",
	"GET /api/docs":                      "API documentation",
	"GET /api/stats":                     "Dataset statistics",
	"GET /api/search":                    "Name search; q required, exact and pagination optional",
	"GET /api/taxonomy/:level/:value":    "Filter by Rank, Order or Family",
	"GET /api/conservation/:category":    "Filter by IUCN Red List category",
	"GET /api/range":                     "Filter by geographic range substring; region required",
	"GET /api/extinct":                   "Extinct or possibly extinct birds",
	"GET /api/authority":                 "Filter by naming authority substring; name required",
	"GET /api/random":                    "Random sample; count optional, capped at 100",
	"GET /api/bird/:scientificName":      "Detailed report for one bird",
	"POST /api/custom":                   "Multi-field filter; body {filters, page?, limit?}",
	"POST /api/query":                    "Raw query expression; body {query, page?, limit?}",
	"GET /api/unique/:field":             "Distinct non-empty values of a field",
}

// ServiceDescriptor handles GET / and describes the service.
func (c *Controller) ServiceDescriptor(ctx echo.Context) error {
	return c.Respond(ctx, "Bird dataset query API", map[string]any{
		"name":      c.Settings.Main.Name,
		"records":   c.Birds.Count(),
		"endpoints": endpointMap,
	})
}

// HealthCheck handles GET /api/health.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return c.Respond(ctx, "Service is healthy", map[string]any{
		"status":        "healthy",
		"uptimeSeconds": int(time.Since(c.startTime).Seconds()),
		"engineReady":   c.Birds != nil,
		"records":       c.Birds.Count(),
	})
}

// Docs handles GET /api/docs with a static documentation payload.
func (c *Controller) Docs(ctx echo.Context) error {
	return c.Respond(ctx, "API documentation", map[string]any{
		"description": "Query a static dataset of bird records. Responses use a uniform envelope; list endpoints are paginated with page and limit parameters.",
		"pagination": map[string]any{
			"page":         "1-based page number, default 1",
			"limit":        "items per page, default 50 (100 for unique values)",
			"maximumLimit": c.Settings.Query.MaxLimit,
		},
		"endpoints": endpointMap,
	})
}

// DatasetStats handles GET /api/stats.
func (c *Controller) DatasetStats(ctx echo.Context) error {
	stats, err := c.Birds.Stats(ctx.Request().Context())
	if err != nil {
		return c.HandleServiceError(ctx, err, "Failed to compute dataset statistics")
	}
	return c.Respond(ctx, "Dataset statistics", stats)
}
