// internal/conf/config.go configuration loading for birddex-go
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Log rotation types
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// MainSettings contains top-level application settings
type MainSettings struct {
	Name string    // name of the running node
	Log  LogConfig // logging configuration
}

// LogConfig defines the configuration for a log file
type LogConfig struct {
	Enabled  bool   // true to enable this log
	Path     string // path to log file
	Rotation string // rotation type, daily, weekly or size
	MaxSize  int64  // max size in bytes for size rotation
}

// WebServerSettings contains settings for the HTTP server
type WebServerSettings struct {
	Port         string // port for HTTP server
	Debug        bool   // true to enable debug logging for web server
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatasetSettings contains settings for the bird dataset file
type DatasetSettings struct {
	Path string // path to the JSON dataset file
}

// QuerySettings contains settings for the query engine
type QuerySettings struct {
	Timeout  time.Duration // per-query evaluation timeout
	MaxLimit int           // uniform upper bound for page size
}

// RateLimitSettings contains settings for per-client rate limiting
type RateLimitSettings struct {
	Enabled              bool
	RequestsPerMinute    int  // budget in normal mode
	Burst                int  // burst allowance in normal mode
	DevMode              bool // true switches to the relaxed development budget
	DevRequestsPerMinute int
	DevBurst             int
}

// SentrySettings contains settings for optional error telemetry
type SentrySettings struct {
	Enabled bool
	DSN     string
}

// Settings contains all application settings
type Settings struct {
	Debug bool // true to enable debug mode

	Main      MainSettings
	WebServer WebServerSettings
	Dataset   DatasetSettings
	Query     QuerySettings
	RateLimit RateLimitSettings
	Sentry    SentrySettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.RLock()
	s := settingsInstance
	settingsMutex.RUnlock()
	if s != nil {
		return s
	}

	s, err := Load()
	if err != nil {
		return nil
	}
	return s
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// function defined in defaults.go
	setDefaultConfig()

	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, defaults apply
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPaths returns the list of directories searched for config.yaml,
// in priority order: working directory first, then the user config directory.
func GetDefaultConfigPaths() ([]string, error) {
	paths := []string{"."}

	configDir, err := os.UserConfigDir()
	if err == nil {
		paths = append(paths, filepath.Join(configDir, "birddex-go"))
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "birddex-go"))
	}

	return paths, nil
}
