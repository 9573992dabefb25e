// geography.go: range and authority substring filter endpoints.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initGeographyRoutes registers the range and authority routes
func (c *Controller) initGeographyRoutes() {
	c.Group.GET("/range", c.BirdsByRange)
	c.Group.GET("/authority", c.BirdsByAuthority)
}

// BirdsByRange handles GET /api/range. The region parameter is required.
func (c *Controller) BirdsByRange(ctx echo.Context) error {
	region := ctx.QueryParam("region")
	if region == "" {
		return c.HandleError(ctx, nil, "Missing required query parameter 'region'", http.StatusBadRequest)
	}

	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.ByRange(ctx.Request().Context(), region)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Range filter failed")
	}

	return c.RespondPaginated(ctx, "Birds matching range filter", results, params.Page, params.Limit)
}

// BirdsByAuthority handles GET /api/authority. The name parameter is required.
func (c *Controller) BirdsByAuthority(ctx echo.Context) error {
	name := ctx.QueryParam("name")
	if name == "" {
		return c.HandleError(ctx, nil, "Missing required query parameter 'name'", http.StatusBadRequest)
	}

	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.ByAuthority(ctx.Request().Context(), name)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Authority filter failed")
	}

	return c.RespondPaginated(ctx, "Birds matching authority filter", results, params.Page, params.Limit)
}
