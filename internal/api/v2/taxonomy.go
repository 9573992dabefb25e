// taxonomy.go: taxonomy, conservation and extinction filter endpoints.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// initTaxonomyRoutes registers the taxonomy-related routes
func (c *Controller) initTaxonomyRoutes() {
	c.Group.GET("/taxonomy/:level/:value", c.BirdsByTaxonomy)
	c.Group.GET("/conservation/:category", c.BirdsByConservation)
	c.Group.GET("/extinct", c.ExtinctBirds)
}

// BirdsByTaxonomy handles GET /api/taxonomy/:level/:value. An unknown level
// is a client error.
func (c *Controller) BirdsByTaxonomy(ctx echo.Context) error {
	level := ctx.Param("level")
	value := ctx.Param("value")

	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.ByTaxonomy(ctx.Request().Context(), level, value)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Taxonomy filter failed")
	}

	return c.RespondPaginated(ctx, "Birds matching taxonomy filter", results, params.Page, params.Limit)
}

// BirdsByConservation handles GET /api/conservation/:category.
func (c *Controller) BirdsByConservation(ctx echo.Context) error {
	category := ctx.Param("category")

	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.ByConservationCategory(ctx.Request().Context(), category)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Conservation filter failed")
	}

	return c.RespondPaginated(ctx, "Birds matching conservation category", results, params.Page, params.Limit)
}

// ExtinctBirds handles GET /api/extinct.
func (c *Controller) ExtinctBirds(ctx echo.Context) error {
	params, err := c.parsePageParams(ctx, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.Extinct(ctx.Request().Context())
	if err != nil {
		return c.HandleServiceError(ctx, err, "Extinction filter failed")
	}

	return c.RespondPaginated(ctx, "Extinct or possibly extinct birds", results, params.Page, params.Limit)
}
