// birds.go: single-bird report and random sample endpoints.
package api

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// initBirdRoutes registers the bird detail and random sample routes
func (c *Controller) initBirdRoutes() {
	c.Group.GET("/bird/:scientificName", c.BirdReport)
	c.Group.GET("/random", c.RandomBirds)
}

// BirdReport handles GET /api/bird/:scientificName. The path parameter is
// URL-encoded ("Aquila%20chrysaetos").
func (c *Controller) BirdReport(ctx echo.Context) error {
	name := ctx.Param("scientificName")
	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}
	if name == "" {
		return c.HandleError(ctx, nil, "Missing scientific name", http.StatusBadRequest)
	}

	report, err := c.Birds.BirdReport(ctx.Request().Context(), name)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Bird not found")
	}

	return c.Respond(ctx, "Bird report", report)
}

// RandomBirds handles GET /api/random. The sample is unpaginated; count
// defaults to 10 and is clamped to 100.
func (c *Controller) RandomBirds(ctx echo.Context) error {
	count, err := parsePositiveInt(ctx.QueryParam("count"), "count", DefaultRandomCount)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid count parameter", http.StatusBadRequest)
	}

	results, err := c.Birds.RandomSample(ctx.Request().Context(), count)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Random sample failed")
	}

	return c.Respond(ctx, "Random birds", results)
}
