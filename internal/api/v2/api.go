// internal/api/v2/api.go
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tphakala/birddex-go/internal/birddex"
	"github.com/tphakala/birddex-go/internal/conf"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
	"github.com/tphakala/birddex-go/internal/query"
)

// Default page sizes per endpoint family.
const (
	DefaultLimit       = 50
	DefaultUniqueLimit = 100
	DefaultRandomCount = 10
)

// Controller manages the API routes and handlers. Dependencies are injected
// at construction; there is no ambient singleton.
type Controller struct {
	Echo      *echo.Echo
	Group     *echo.Group
	Settings  *conf.Settings
	Birds     *birddex.Service
	startTime time.Time
	apiLogger *slog.Logger
}

// New creates the API controller and registers all routes on e.
func New(e *echo.Echo, settings *conf.Settings, birds *birddex.Service) *Controller {
	c := &Controller{
		Echo:      e,
		Settings:  settings,
		Birds:     birds,
		startTime: time.Now(),
		apiLogger: logging.ForService("api"),
	}

	c.Group = e.Group("/api")
	c.initRoutes()

	return c
}

// initRoutes registers all API endpoints.
func (c *Controller) initRoutes() {
	c.Echo.GET("/", c.ServiceDescriptor)

	c.initSystemRoutes()
	c.initSearchRoutes()
	c.initTaxonomyRoutes()
	c.initGeographyRoutes()
	c.initBirdRoutes()
	c.initQueryRoutes()
}

// SuccessResponse is the uniform success envelope.
type SuccessResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Timestamp  string            `json:"timestamp"`
	Data       any               `json:"data"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success    bool   `json:"success"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`
	StatusCode int    `json:"statusCode"`
	Details    string `json:"details,omitempty"`
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Respond writes a success envelope without pagination.
func (c *Controller) Respond(ctx echo.Context, message string, data any) error {
	return ctx.JSON(http.StatusOK, &SuccessResponse{
		Success:   true,
		Message:   message,
		Timestamp: timestamp(),
		Data:      data,
	})
}

// RespondPaginated slices data into the requested page and writes a success
// envelope with page metadata.
func (c *Controller) RespondPaginated(ctx echo.Context, message string, data []any, page, limit int) error {
	pageItems, pagination := query.Paginate(data, page, limit)
	return ctx.JSON(http.StatusOK, &SuccessResponse{
		Success:    true,
		Message:    message,
		Timestamp:  timestamp(),
		Data:       pageItems,
		Pagination: pagination,
	})
}

// HandleError writes an error envelope. Server-side failures (5xx) never
// expose internal detail; client failures carry the underlying message so the
// caller can fix the request.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	correlationID := uuid.New().String()[:8]

	var details string
	if err != nil && code < http.StatusInternalServerError {
		details = err.Error()
	}

	if c.apiLogger != nil {
		c.apiLogger.Error("API Error",
			"correlation_id", correlationID,
			"message", message,
			"error", errString(err),
			"code", code,
			"path", ctx.Request().URL.Path,
			"method", ctx.Request().Method,
			"ip", ctx.RealIP(),
		)
	}

	return ctx.JSON(code, &ErrorResponse{
		Success:    false,
		Error:      message,
		Timestamp:  timestamp(),
		StatusCode: code,
		Details:    details,
	})
}

// HandleServiceError maps a derived-operation failure onto the nearest HTTP
// status. Evaluator failures from internally-built expressions are server
// errors; only the raw-query handler maps those to 400.
func (c *Controller) HandleServiceError(ctx echo.Context, err error, message string) error {
	switch errors.CategoryOf(err) {
	case errors.CategoryValidation:
		return c.HandleError(ctx, err, message, http.StatusBadRequest)
	case errors.CategoryNotFound:
		return c.HandleError(ctx, err, message, http.StatusNotFound)
	case errors.CategoryTimeout:
		return c.HandleError(ctx, err, message, http.StatusGatewayTimeout)
	default:
		return c.HandleError(ctx, err, message, http.StatusInternalServerError)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// pageParams holds validated pagination input.
type pageParams struct {
	Page  int
	Limit int
}

// parsePageParams validates page and limit query parameters explicitly:
// non-numeric, zero, negative, or over-cap values are validation failures
// rather than silent defaults.
func (c *Controller) parsePageParams(ctx echo.Context, defaultLimit int) (pageParams, error) {
	params := pageParams{Page: 1, Limit: defaultLimit}

	var err error
	if params.Page, err = parsePositiveInt(ctx.QueryParam("page"), "page", 1); err != nil {
		return params, err
	}
	if params.Limit, err = parsePositiveInt(ctx.QueryParam("limit"), "limit", defaultLimit); err != nil {
		return params, err
	}

	if maxLimit := c.Settings.Query.MaxLimit; params.Limit > maxLimit {
		return params, errors.Newf("limit %d exceeds the maximum of %d", params.Limit, maxLimit).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}

	return params, nil
}

// validatePageBody applies the same rules to pagination fields of a JSON body.
func (c *Controller) validatePageBody(page, limit, defaultLimit int) (pageParams, error) {
	params := pageParams{Page: page, Limit: limit}
	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = defaultLimit
	}
	if params.Page < 1 || params.Limit < 1 {
		return params, errors.Newf("page and limit must be positive").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	if maxLimit := c.Settings.Query.MaxLimit; params.Limit > maxLimit {
		return params, errors.Newf("limit %d exceeds the maximum of %d", params.Limit, maxLimit).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return params, nil
}

func parsePositiveInt(raw, name string, defaultValue int) (int, error) {
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, errors.Newf("%s must be a positive integer, got %q", name, raw).
			Component("api").
			Category(errors.CategoryValidation).
			Context("parameter", name).
			Build()
	}
	return value, nil
}
