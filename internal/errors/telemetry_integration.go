// telemetry_integration.go hooks enhanced errors into the telemetry package
// without creating an import cycle.
package errors

import (
	"sync/atomic"
)

// Reporter receives enhanced errors for delivery to an external sink.
type Reporter func(ee *EnhancedError)

var telemetryReporter atomic.Pointer[Reporter]

// SetTelemetryReporter registers the function used to deliver errors to
// telemetry. Passing nil disables reporting.
func SetTelemetryReporter(r Reporter) {
	if r == nil {
		telemetryReporter.Store(nil)
		return
	}
	telemetryReporter.Store(&r)
}

// reportToTelemetry delivers the error to the registered reporter, if any.
func reportToTelemetry(ee *EnhancedError) {
	rp := telemetryReporter.Load()
	if rp == nil {
		return
	}
	(*rp)(ee)
	ee.MarkReported()
}
