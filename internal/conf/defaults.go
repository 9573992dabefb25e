// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Birddex-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "birddex.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.readtimeout", 30*time.Second)
	viper.SetDefault("webserver.writetimeout", 30*time.Second)

	viper.SetDefault("dataset.path", "data/birds.json")

	viper.SetDefault("query.timeout", 10*time.Second)
	viper.SetDefault("query.maxlimit", 1000)

	viper.SetDefault("ratelimit.enabled", true)
	viper.SetDefault("ratelimit.requestsperminute", 100)
	viper.SetDefault("ratelimit.burst", 20)
	viper.SetDefault("ratelimit.devmode", false)
	viper.SetDefault("ratelimit.devrequestsperminute", 1000)
	viper.SetDefault("ratelimit.devburst", 200)

	viper.SetDefault("sentry.enabled", false)
	viper.SetDefault("sentry.dsn", "")
}
