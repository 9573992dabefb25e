// internal/httpcontroller/server.go
package httpcontroller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	api "github.com/tphakala/birddex-go/internal/api/v2"
	"github.com/tphakala/birddex-go/internal/birddex"
	"github.com/tphakala/birddex-go/internal/conf"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
)

// Server encapsulates the Echo server and related configuration.
type Server struct {
	Echo     *echo.Echo
	Settings *conf.Settings
	API      *api.Controller

	webLogger *slog.Logger
}

// New initializes the HTTP server with the given settings and bird service.
// The dataset must already be loaded; this layer never touches the file.
func New(settings *conf.Settings, birds *birddex.Service) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	s := &Server{
		Echo:      e,
		Settings:  settings,
		webLogger: logging.ForService("webserver"),
	}

	e.HTTPErrorHandler = s.httpErrorHandler
	e.Server.ReadTimeout = settings.WebServer.ReadTimeout
	e.Server.WriteTimeout = settings.WebServer.WriteTimeout

	s.configureMiddleware()

	s.API = api.New(e, settings, birds)

	return s
}

// Start begins listening and serving HTTP requests. It blocks until the
// server stops.
func (s *Server) Start() error {
	if s.webLogger != nil {
		s.webLogger.Info("HTTP server starting", "port", s.Settings.WebServer.Port)
	}

	err := s.Echo.Start(":" + s.Settings.WebServer.Port)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.New(err).
			Component("httpcontroller").
			Category(errors.CategoryHTTP).
			Context("port", s.Settings.WebServer.Port).
			Build()
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Echo.Shutdown(ctx); err != nil {
		return errors.New(err).
			Component("httpcontroller").
			Category(errors.CategoryHTTP).
			Build()
	}
	logging.Info("HTTP server stopped")
	return nil
}

// httpErrorHandler renders every error that escapes a handler in the uniform
// error envelope. Unmatched routes carry the method and path as detail;
// anything unanticipated is a generic 500 with no internal detail exposed.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"
	details := ""

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		switch code {
		case http.StatusNotFound:
			message = "Route not found"
			details = c.Request().Method + " " + c.Request().URL.Path
		case http.StatusMethodNotAllowed:
			message = "Method not allowed"
			details = c.Request().Method + " " + c.Request().URL.Path
		default:
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		}
	}

	if s.webLogger != nil && code >= http.StatusInternalServerError {
		s.webLogger.Error("Unhandled request error",
			"error", err.Error(),
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"ip", c.RealIP(),
		)
	}

	_ = c.JSON(code, &api.ErrorResponse{
		Success:    false,
		Error:      message,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		StatusCode: code,
		Details:    details,
	})
}
