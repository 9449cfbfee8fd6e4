package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/mockapi"
	"github.com/tinytelemetry/chuckle/internal/model"
)

func newMockAPICmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve a local stand-in for the joke API",
		Long: `mock-api serves /jokes/random, /jokes/random?category=<name> and
/jokes/categories from a YAML fixture file, or from the built-in catalogue.

Point the client at it with --base-url http://127.0.0.1:3000.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := mockapi.LoadFixtures(c.cfg.Fixtures)
			if err != nil {
				return err
			}

			srv := mockapi.NewServer(c.cfg.MockAddr, fixtures, mockapi.WithLogger(c.logger.Named("mockapi")))
			if err := srv.Start(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Mock API listening on http://%s\n", srv.Addr())

			<-cmd.Context().Done()
			c.logger.Info("shutting down mock api", zap.Error(cmd.Context().Err()))
			return srv.Stop()
		},
	}
	cmd.Flags().String("mock-addr", model.DefaultMockAddr, "listen address")
	cmd.Flags().String("fixtures", "", "YAML fixture file (default is the built-in catalogue)")
	return cmd
}
