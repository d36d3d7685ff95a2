// pgn-endings classifies how chess games ended: checkmate, resignation,
// timeout, stalemate, repetition, the fifty-move rule, insufficient
// material or agreement.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/obslog"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()
	os.Exit(run(flag.Args(), setFlags(flag.CommandLine), os.Stdout))
}

// run executes the command named by args and returns the exit status. set
// holds the flags given on the command line.
func run(args []string, set map[string]bool, stdout io.Writer) int {
	if *help {
		usage()
		return 0
	}
	if *version {
		fmt.Fprintf(stdout, "pgn-endings version %s\n", programVersion)
		return 0
	}

	cfg, err := loadConfig(*configFile, set)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger, err := obslog.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	restore := obslog.ReplaceGlobals(logger)
	defer restore()
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(args) == 0 {
		usage()
		return 2
	}

	switch args[0] {
	case "serve":
		err = runServe(ctx, cfg, args[1:])
	case "extract":
		err = runExtract(ctx, cfg, args[1:], stdout)
	default:
		err = runClassify(ctx, cfg, args, stdout)
	}
	if err != nil {
		logger.Error("failed", zap.Error(err))
		return 1
	}
	return 0
}

// loadConfig reads the optional configuration file, applies the command
// line over it and validates the result.
func loadConfig(path string, set map[string]bool) (*config.Config, error) {
	cfg := config.NewConfig()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	applyFlags(cfg, set)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pgn-endings [options] <input>\n")
	fmt.Fprintf(os.Stderr, "       pgn-endings [options] serve [-addr :8080]\n")
	fmt.Fprintf(os.Stderr, "       pgn-endings [options] extract [-chunk N] <games.pgn[.zst]> <dir>\n\n")
	fmt.Fprintf(os.Stderr, "Classifies how each game in <input> ended. <input> is a parquet file or\n")
	fmt.Fprintf(os.Stderr, "directory, a PGN file (optionally .zst) or a JSON Lines file.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEnd codes:\n")
	fmt.Fprintf(os.Stderr, "  0 unknown                  6 threefold_repetition\n")
	fmt.Fprintf(os.Stderr, "  1 checkmate                7 fifty_move_rule\n")
	fmt.Fprintf(os.Stderr, "  2 resignation              8 insufficient_material_claimed\n")
	fmt.Fprintf(os.Stderr, "  3 timeout_win              9 insufficient_material_automatic\n")
	fmt.Fprintf(os.Stderr, "  4 insufficient_material_timeout_draw\n")
	fmt.Fprintf(os.Stderr, "  5 stalemate               10 agreement_draw\n")
}
