// search.go: name search endpoint.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initSearchRoutes registers the search-related routes
func (c *Controller) initSearchRoutes() {
	c.Group.GET("/search", c.SearchBirds)
}

// SearchBirds handles GET /api/search. The q parameter is required; exact=true
// switches from case-insensitive substring to exact name matching.
func (c *Controller) SearchBirds(ctx echo.Context) error {
	q := ctx.QueryParam("q")
	if q == "" {
		return c.HandleError(ctx, nil, "Missing required query parameter 'q'", http.StatusBadRequest)
	}
	exact := ctx.QueryParam("exact") == "true"

	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.SearchByName(ctx.Request().Context(), q, exact)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Search failed")
	}

	return c.RespondPaginated(ctx, "Search results", results, params.Page, params.Limit)
}
