package main

import (
	"context"

	"github.com/desertthunder/artx/internal/models"
	"github.com/desertthunder/artx/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve exposes artist search over HTTP until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	explorer, err := r.explorer(cmd, models.SourceServer)
	if err != nil {
		return err
	}

	addr := r.config.Server.Addr()
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	srv := server.New(addr, server.NewRouter(explorer, r.logger), r.logger)
	r.logger.Info("starting server", "addr", srv.Addr())

	if err := srv.Run(ctx); err != nil {
		return err
	}

	r.logger.Info("server stopped")
	return nil
}
