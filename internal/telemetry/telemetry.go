// Package telemetry wires optional Sentry error reporting into the
// application's enhanced error type.
package telemetry

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/tphakala/birddex-go/internal/conf"
	"github.com/tphakala/birddex-go/internal/errors"
	"github.com/tphakala/birddex-go/internal/logging"
)

var initialized bool

// Init configures Sentry from settings and registers the error reporter.
// When telemetry is disabled in the configuration this is a no-op.
func Init(settings *conf.Settings) error {
	if settings == nil || !settings.Sentry.Enabled {
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              settings.Sentry.DSN,
		AttachStacktrace: true,
		Release:          settings.Main.Name,
	})
	if err != nil {
		return errors.New(err).
			Component("telemetry").
			Category(errors.CategoryConfiguration).
			Build()
	}

	initialized = true
	errors.SetTelemetryReporter(captureEnhancedError)
	logging.Info("Telemetry initialized")
	return nil
}

// captureEnhancedError delivers one enhanced error to Sentry with its
// component, category and context attached.
func captureEnhancedError(ee *errors.EnhancedError) {
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("component", ee.Component)
		scope.SetTag("category", string(ee.Category))
		for k, v := range ee.GetContext() {
			scope.SetExtra(k, v)
		}
		sentry.CaptureException(ee.Err)
	})
}

// Flush drains pending telemetry events. Safe to call when telemetry is
// disabled.
func Flush(timeout time.Duration) {
	if !initialized {
		return
	}
	sentry.Flush(timeout)
}
