package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/ingest"
	"github.com/lgbarn/pgn-endings-go/internal/obslog"
)

// runExtract converts a PGN dump into cleaned parquet game chunks that a
// later classification run can read.
func runExtract(ctx context.Context, cfg *config.Config, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("extract", flag.ContinueOnError)
	chunk := fs.Int("chunk", config.DefaultShardSize, "Games per parquet chunk")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("extract needs an input file and an output directory")
	}
	in, dir := fs.Arg(0), fs.Arg(1)

	src, err := ingest.OpenPGN(in)
	if err != nil {
		return err
	}
	defer src.Close()

	cw, err := ingest.NewChunkWriter(dir, *chunk)
	if err != nil {
		return err
	}
	defer cw.Close() //nolint:errcheck // closed by Extract on success
	stats, err := ingest.Extract(ctx, src, ingest.NewFilter(cfg.Input.Filter), cw, cfg.Input.SampleGames)
	if err != nil {
		return err
	}

	obslog.L().Info("extract finished",
		zap.String("input", in),
		zap.Int("read", stats.Read),
		zap.Int("filtered", stats.Filtered),
		zap.Int("written", stats.Written),
		zap.Int("chunks", len(stats.Chunks)))
	_, err = fmt.Fprintf(w, "%d game(s) written to %d chunk(s) in %s, %d filtered out of %d.\n",
		stats.Written, len(stats.Chunks), dir, stats.Filtered, stats.Read)
	return err
}
