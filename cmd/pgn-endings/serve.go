package main

import (
	"context"
	"flag"
	"time"

	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/httpapi"
	"github.com/lgbarn/pgn-endings-go/internal/obslog"
)

// runServe starts the HTTP API and shuts it down when ctx is cancelled.
func runServe(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", cfg.Server.Addr, "Listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := httpapi.New(cfg, obslog.L())
	errc := make(chan error, 1)
	go func() { errc <- srv.Listen(*addr) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
