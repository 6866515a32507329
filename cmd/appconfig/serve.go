package main

import (
	"github.com/spf13/cobra"

	"github.com/kkarski/appconfig"
	"github.com/kkarski/appconfig/listener"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Keep the configuration fresh and serve it over HTTP",
		Long: `Serve resolves the configuration on start and exposes it as JSON:

  GET /            every key with the cache state
  GET /?key=NAME   a single value

The snapshot is reloaded on the first request after its time-to-live expires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := flags.settings(cmd)
			if err != nil {
				return err
			}

			app := appconfig.NewApp(
				appconfig.WithLogLevel(settings.LogLevel),
				appconfig.WithLogOutput(cmd.ErrOrStderr()),
				appconfig.WithEngine(settings.Options()...),
				appconfig.WithConfigEndpoint(address),
			)

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", listener.DefaultAddress, "listen address")

	return cmd
}
