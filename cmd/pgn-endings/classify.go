package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/checkpoint"
	"github.com/lgbarn/pgn-endings-go/internal/classify"
	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/ingest"
	"github.com/lgbarn/pgn-endings-go/internal/obslog"
	"github.com/lgbarn/pgn-endings-go/internal/output"
	"github.com/lgbarn/pgn-endings-go/internal/processing"
)

// runClassify runs the batch pipeline over the inputs and prints a summary
// to w.
func runClassify(ctx context.Context, cfg *config.Config, inputs []string, w io.Writer) error {
	runID := processing.NewRunID()
	logger := obslog.L()

	sink, err := output.Open(ctx, cfg.Output, runID)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	store, err := openCheckpoint(ctx, &cfg.Checkpoint, len(inputs))
	if err != nil {
		sink.Close() //nolint:errcheck,gosec // G104: cleanup on error
		return err
	}
	opts := []processing.Option{processing.WithRunID(runID), processing.WithLogger(logger)}
	if store != nil {
		defer store.Close()
		opts = append(opts, processing.WithCheckpoint(store))
	}

	var total processing.Stats
	total.RunID = runID
	for _, path := range inputs {
		in := cfg.Input
		in.Path = path
		src, err := ingest.Open(in)
		if err != nil {
			sink.Close() //nolint:errcheck,gosec // G104: cleanup on error
			return err
		}
		logger.Info("classifying", zap.String("input", path))
		stats, err := processing.Run(ctx, cfg.Pipeline, src, sink, opts...)
		src.Close() //nolint:errcheck,gosec // G104: read-only source
		merge(&total, &stats)
		if err != nil {
			sink.Close() //nolint:errcheck,gosec // G104: cleanup on error
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if store != nil {
		if n, err := store.Count(ctx); err == nil {
			logger.Info("checkpoint", zap.Int64("done", n))
		}
	}
	return printSummary(w, &total)
}

// openCheckpoint returns the Redis store when one is configured. Without
// Redis, runs over several inputs share a memory store so that a game
// present in two files is classified once; a single input needs none.
func openCheckpoint(ctx context.Context, cfg *config.CheckpointConfig, inputs int) (checkpoint.Store, error) {
	if cfg.RedisAddr == "" {
		if inputs > 1 {
			return checkpoint.NewMemoryStore(), nil
		}
		return nil, nil
	}
	store, err := checkpoint.DialRedis(ctx, cfg.RedisAddr, cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("connect checkpoint store: %w", err)
	}
	if cfg.Reset {
		if err := store.Reset(ctx); err != nil {
			store.Close() //nolint:errcheck,gosec // G104: cleanup on error
			return nil, fmt.Errorf("reset checkpoint store: %w", err)
		}
	}
	return store, nil
}

func merge(total, s *processing.Stats) {
	total.Read += s.Read
	total.Filtered += s.Filtered
	total.Duplicates += s.Duplicates
	total.Skipped += s.Skipped
	total.Classified += s.Classified
	total.Rejected += s.Rejected
	total.Elapsed += s.Elapsed
	for i := range total.ByCode {
		total.ByCode[i] += s.ByCode[i]
	}
}

// printSummary writes a per-code table followed by the run counters.
func printSummary(w io.Writer, s *processing.Stats) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "code\treason\tgames\t\n")
	for _, code := range classify.AllEndCodes() {
		fmt.Fprintf(tw, "%d\t%s\t%d\t\n", code, code.Reason(), s.ByCode[code])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nrun %s: %d read, %d filtered, %d duplicate(s), %d skipped, %d classified, %d rejected in %s\n",
		s.RunID, s.Read, s.Filtered, s.Duplicates, s.Skipped, s.Classified, s.Rejected, s.Elapsed.Round(time.Millisecond))
	return err
}
