// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"

	"github.com/lgbarn/pgn-endings-go/internal/config"
)

var (
	configFile = flag.String("config", "", "YAML configuration file")

	// Input options
	inputFormat = flag.String("format", "", "Input format: parquet, pgn, jsonl (default: from extension)")
	sampleGames = flag.Int("sample", 0, "Stop after N games (0 = all)")
	keepBots    = flag.Bool("keep-bots", false, "Keep games played by BOT accounts")

	// Output options
	outputPath   = flag.String("out", "", "Output directory, file or sqlite database")
	outputFormat = flag.String("out-format", "", "Output format: parquet, jsonl, sqlite, postgres")
	shardSize    = flag.Int("shard-size", 0, "Rows per parquet shard or SQL transaction")
	dsn          = flag.String("dsn", "", "Postgres connection string")

	// Pipeline options
	workers  = flag.Int("workers", 0, "Number of classification workers")
	maxPlies = flag.Int("max-plies", 0, "Give up on games longer than N plies")
	strict   = flag.Bool("strict", false, "Abort on the first malformed record")

	// Checkpointing
	redisAddr  = flag.String("redis", "", "Redis address for resumable runs (host:port or redis:// URL)")
	resetStore = flag.Bool("reset-checkpoint", false, "Forget previously classified games before the run")

	// Logging
	logLevel  = flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFormat = flag.String("log-format", "", "Log format: json, console")

	version = flag.Bool("version", false, "Print version and exit")
	help    = flag.Bool("h", false, "Show help")
)

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

// applyFlags applies the flags given on the command line over cfg, so that
// values from a configuration file survive unless overridden.
func applyFlags(cfg *config.Config, set map[string]bool) {
	applyInputFlags(cfg, set)
	applyOutputFlags(cfg, set)
	applyPipelineFlags(cfg, set)
	applyLogFlags(cfg, set)

	if set["redis"] {
		cfg.Checkpoint.RedisAddr = *redisAddr
	}
	if set["reset-checkpoint"] {
		cfg.Checkpoint.Reset = *resetStore
	}
}

// applyInputFlags configures the input and its filters.
func applyInputFlags(cfg *config.Config, set map[string]bool) {
	if set["format"] {
		cfg.Input.Format = *inputFormat
	}
	if set["sample"] {
		cfg.Input.SampleGames = *sampleGames
	}
	if set["keep-bots"] {
		cfg.Input.Filter.ExcludeBots = !*keepBots
	}
}

// applyOutputFlags configures where results go.
func applyOutputFlags(cfg *config.Config, set map[string]bool) {
	if set["out"] {
		cfg.Output.Path = *outputPath
	}
	if set["out-format"] {
		cfg.Output.Format = *outputFormat
	}
	if set["shard-size"] {
		cfg.Output.ShardSize = *shardSize
	}
	if set["dsn"] {
		cfg.Output.DSN = *dsn
		if !set["out-format"] {
			cfg.Output.Format = config.OutputPostgres
		}
	}
}

// applyPipelineFlags sizes the worker pool.
func applyPipelineFlags(cfg *config.Config, set map[string]bool) {
	if set["workers"] {
		cfg.Pipeline.Workers = *workers
		cfg.Pipeline.BufferSize = 4 * *workers
	}
	if set["max-plies"] {
		cfg.Pipeline.MaxPlies = *maxPlies
	}
	if set["strict"] {
		cfg.Pipeline.Strict = *strict
	}
}

// applyLogFlags configures the logger.
func applyLogFlags(cfg *config.Config, set map[string]bool) {
	if set["log-level"] {
		cfg.Log.Level = *logLevel
	}
	if set["log-format"] {
		cfg.Log.Format = *logFormat
	}
}
