// queries.go: custom multi-filter, raw query and unique-values endpoints.
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tphakala/birddex-go/internal/errors"
)

// initQueryRoutes registers the query-related routes
func (c *Controller) initQueryRoutes() {
	c.Group.POST("/custom", c.CustomFilter)
	c.Group.POST("/query", c.RawQuery)
	c.Group.GET("/unique/:field", c.UniqueValues)
}

// CustomFilterRequest is the body of POST /api/custom.
type CustomFilterRequest struct {
	Filters map[string]any `json:"filters"`
	Page    int            `json:"page"`
	Limit   int            `json:"limit"`
}

// RawQueryRequest is the body of POST /api/query.
type RawQueryRequest struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

// CustomFilter handles POST /api/custom. Each filter entry becomes one
// condition; an empty filter object matches every record.
func (c *Controller) CustomFilter(ctx echo.Context) error {
	var req CustomFilterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if req.Filters == nil {
		return c.HandleError(ctx, nil, "Missing required field 'filters' (object)", http.StatusBadRequest)
	}

	params, err := c.validatePageBody(req.Page, req.Limit, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	results, err := c.Birds.CustomFilter(ctx.Request().Context(), req.Filters)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Custom filter failed")
	}

	return c.RespondPaginated(ctx, "Birds matching custom filter", results, params.Page, params.Limit)
}

// RawQuery handles POST /api/query: the power-user escape hatch. The
// expression runs verbatim, so syntax and evaluation failures are the
// caller's fault and map to 400. The result is paginated only when it is a
// list.
func (c *Controller) RawQuery(ctx echo.Context) error {
	var req RawQueryRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if req.Query == "" {
		return c.HandleError(ctx, nil, "Missing required field 'query'", http.StatusBadRequest)
	}

	params, err := c.validatePageBody(req.Page, req.Limit, DefaultLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	result, err := c.Birds.RawQuery(ctx.Request().Context(), req.Query)
	if err != nil {
		switch errors.CategoryOf(err) {
		case errors.CategoryQuerySyntax, errors.CategoryQueryEval:
			return c.HandleError(ctx, err, "Query expression failed", http.StatusBadRequest)
		}
		return c.HandleServiceError(ctx, err, "Query execution failed")
	}

	if list, ok := result.([]any); ok {
		return c.RespondPaginated(ctx, "Query results", list, params.Page, params.Limit)
	}
	return c.Respond(ctx, "Query result", result)
}

// UniqueValues handles GET /api/unique/:field.
func (c *Controller) UniqueValues(ctx echo.Context) error {
	field := ctx.Param("field")

	params, err := c.parsePageParams(ctx, DefaultUniqueLimit)
	if err != nil {
		return c.HandleError(ctx, err, "Invalid pagination parameters", http.StatusBadRequest)
	}

	values, err := c.Birds.UniqueValues(ctx.Request().Context(), field)
	if err != nil {
		return c.HandleServiceError(ctx, err, "Unique values lookup failed")
	}

	return c.RespondPaginated(ctx, "Unique field values", values, params.Page, params.Limit)
}
