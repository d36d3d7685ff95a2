// Package ingest reads game records from parquet, PGN and JSON Lines input
// and applies the intake filters.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// Source yields game records one at a time. Next returns io.EOF after the
// last record.
type Source interface {
	Next(ctx context.Context) (chess.GameRecord, error)
	Close() error
}

// DetectFormat infers the input format from a path. Directories are read
// as parquet shards.
func DetectFormat(path string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return config.FormatParquet, nil
	}
	name := strings.ToLower(filepath.Base(path))
	name = strings.TrimSuffix(name, ".zst")
	switch {
	case strings.HasSuffix(name, ".parquet"):
		return config.FormatParquet, nil
	case strings.HasSuffix(name, ".pgn"):
		return config.FormatPGN, nil
	case strings.HasSuffix(name, ".jsonl"), strings.HasSuffix(name, ".ndjson"):
		return config.FormatJSONL, nil
	}
	return "", fmt.Errorf("cannot detect input format of %s: %w", path, errors.ErrInvalidConfig)
}

// Open opens the source described by cfg, wrapped with its filter and
// sample limit.
func Open(cfg config.InputConfig) (*FilteredSource, error) {
	format := cfg.Format
	if format == "" {
		var err error
		if format, err = DetectFormat(cfg.Path); err != nil {
			return nil, err
		}
	}

	var (
		src Source
		err error
	)
	switch format {
	case config.FormatParquet:
		src, err = OpenParquet(cfg.Path)
	case config.FormatPGN:
		src, err = OpenPGN(cfg.Path)
	case config.FormatJSONL:
		src, err = OpenJSONL(cfg.Path)
	default:
		err = fmt.Errorf("unknown input format %q: %w", format, errors.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}
	return NewFilteredSource(src, NewFilter(cfg.Filter), cfg.SampleGames), nil
}
