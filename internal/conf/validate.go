// conf/validate.go settings validation
package conf

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidateSettings checks the loaded settings for values that would prevent
// the server from starting correctly.
func ValidateSettings(settings *Settings) error {
	var errs []error

	if err := validateWebServerSettings(&settings.WebServer); err != nil {
		errs = append(errs, err)
	}

	if settings.Dataset.Path == "" {
		errs = append(errs, errors.New("dataset path must not be empty"))
	}

	if settings.Query.Timeout <= 0 {
		errs = append(errs, errors.New("query timeout must be positive"))
	}

	if settings.Query.MaxLimit < 1 {
		errs = append(errs, errors.New("query max limit must be at least 1"))
	}

	if settings.RateLimit.Enabled {
		if settings.RateLimit.RequestsPerMinute < 1 {
			errs = append(errs, errors.New("rate limit requests per minute must be at least 1"))
		}
		if settings.RateLimit.Burst < 1 {
			errs = append(errs, errors.New("rate limit burst must be at least 1"))
		}
	}

	if settings.Sentry.Enabled && settings.Sentry.DSN == "" {
		errs = append(errs, errors.New("sentry enabled but no DSN configured"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func validateWebServerSettings(ws *WebServerSettings) error {
	port, err := strconv.Atoi(ws.Port)
	if err != nil {
		return fmt.Errorf("invalid web server port %q: %w", ws.Port, err)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("web server port %d out of range", port)
	}
	return nil
}
