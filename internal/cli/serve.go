package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stitchkit/pkg/buildinfo"
	"github.com/matzehuels/stitchkit/pkg/cache"
	"github.com/matzehuels/stitchkit/pkg/config"
	"github.com/matzehuels/stitchkit/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, logFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		Long: `Run the HTTP service.

Endpoints:
  GET  /healthz
  POST /render?from=dst&format=svg
  POST /verify?codec=dst&iterations=2
  POST /convert?from=dst&to=json

The server shuts down gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Server.Addr
			}
			if logFile == "" {
				logFile = c.cfg.Server.LogFile
			}
			return c.runServe(cmd.Context(), addr, logFile)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+config.DefaultAddr+")")
	cmd.Flags().StringVar(&logFile, "log-file", "", "also write logs to this rotating file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, logFile string) error {
	logger := c.Logger
	if logFile != "" {
		fileLogger, closer := newFileLogger(logFile, c.Logger.GetLevel())
		defer closer.Close()
		logger = fileLogger
		c.Logger.Info("logging to file", "path", logFile)
	}

	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()
	runner.Logger = logger
	// Uploaded patterns share the backend with CLI runs; keep their keys apart.
	runner.Keyer = cache.NewScopedKeyer(runner.Keyer, "server:")

	srv := server.New(runner, logger, server.Options{
		MaxUploadBytes: c.cfg.Server.MaxUploadBytes,
		Defaults:       c.defaultOptions(),
		Version:        buildinfo.Short(),
	})
	printInfo("Listening on %s", addr)
	return srv.ListenAndServe(ctx, addr)
}
