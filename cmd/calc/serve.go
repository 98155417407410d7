package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/calc/internal/infrastructure/logging"
	"github.com/GriffinCanCode/calc/internal/infrastructure/server"
)

func newServeCmd(c *cli) *cobra.Command {
	var host, port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket evaluation server",
		Long: `Starts the evaluation server. Settings come from the CALC_CONFIG file
and environment variables (PORT, HOST, LOG_LEVEL, RATE_LIMIT_*, CALC_*);
flags override both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != "" {
				cfg.Server.Port = port
			}
			if c.logLevel != "" {
				cfg.Logging.Level = c.logLevel
			}

			logger, err := logging.New(logging.FromAppConfig(cfg.Logging))
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			srv, err := server.NewServer(cfg, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Listen address (overrides HOST)")
	cmd.Flags().StringVar(&port, "port", "", "Listen port (overrides PORT)")
	return cmd
}
