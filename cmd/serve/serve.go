// Package serve implements the serve command, the only runtime mode of the
// service.
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tphakala/birddex-go/internal/birddex"
	"github.com/tphakala/birddex-go/internal/conf"
	"github.com/tphakala/birddex-go/internal/dataset"
	"github.com/tphakala/birddex-go/internal/httpcontroller"
	"github.com/tphakala/birddex-go/internal/logging"
	"github.com/tphakala/birddex-go/internal/query"
)

// Command creates the serve command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load the dataset and serve the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}
}

// runServer loads the dataset, wires the service and serves until a
// termination signal arrives. A dataset load failure is fatal: the server
// must not accept traffic without its data.
func runServer(settings *conf.Settings) error {
	store, err := dataset.Load(settings.Dataset.Path)
	if err != nil {
		return err
	}

	engine := query.NewEngine(settings.Query.Timeout)
	birds := birddex.New(store, engine)
	server := httpcontroller.New(settings, birds)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-quit:
		logging.Info("Shutting down", "signal", sig.String())
		return server.Shutdown()
	}
}
