package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/birddex-go/cmd/serve"
	"github.com/tphakala/birddex-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "birddex",
		Short: "Birddex-Go bird dataset query API",
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(serve.Command(settings))

	return rootCmd
}

// setupFlags defines global flags, bound over viper so command-line
// arguments take precedence over the configuration file.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&settings.WebServer.Port, "port", "p", viper.GetString("webserver.port"), "Port for HTTP server")
	rootCmd.PersistentFlags().StringVar(&settings.Dataset.Path, "dataset", viper.GetString("dataset.path"), "Path to the JSON dataset file")
	rootCmd.PersistentFlags().BoolVar(&settings.RateLimit.DevMode, "dev", viper.GetBool("ratelimit.devmode"), "Use relaxed development rate limits")
}
