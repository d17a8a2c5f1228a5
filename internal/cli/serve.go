package cli

import (
	"context"
	"fmt"

	"github.com/NikitaCOEUR/mcfcomplete/internal/repl"
	"github.com/NikitaCOEUR/mcfcomplete/internal/server"
)

// ServeParams contains parameters for the Serve command
type ServeParams struct {
	Options
	Addr string
}

// Serve runs the HTTP completion service until ctx is cancelled
func Serve(ctx context.Context, params ServeParams) error {
	c, err := initializeComponents(ctx, params.Options)
	if err != nil {
		return err
	}

	readTimeout, err := c.cfg.ReadTimeout()
	if err != nil {
		return fmt.Errorf("invalid server.read_timeout: %w", err)
	}

	addr := c.cfg.Server.Addr
	if params.Addr != "" {
		addr = params.Addr
	}

	srv := server.NewServer(server.Config{
		Addr:        addr,
		ReadTimeout: readTimeout,
		Engine:      c.engine,
		Logger:      c.log,
	})
	return srv.Run(ctx)
}

// ReplParams contains parameters for the Repl command
type ReplParams struct {
	Options
}

// Repl starts the interactive prompt
func Repl(ctx context.Context, params ReplParams) error {
	c, err := initializeComponents(ctx, params.Options)
	if err != nil {
		return err
	}

	return repl.New(repl.Config{
		Prompt:      c.cfg.Repl.Prompt,
		HistoryFile: c.cfg.Repl.HistoryFile,
		Engine:      c.engine,
		Logger:      c.log,
		Stdout:      params.Out,
	}).Run()
}
