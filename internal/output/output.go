package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lgbarn/pgn-endings-go/internal/config"
	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// Open creates the writer described by cfg. Parquet shards continue the
// numbering already present in the output directory, and JSON Lines files
// are appended to, so a resumed run never overwrites earlier output.
func Open(ctx context.Context, cfg config.OutputConfig, runID string) (ResultWriter, error) {
	switch cfg.Format {
	case config.OutputParquet:
		return NewParquetWriter(cfg.Path, cfg.ShardSize, NextShardIndex(cfg.Path))
	case config.OutputJSONL:
		if cfg.Path == "-" {
			return NewJSONWriter(struct{ io.Writer }{os.Stdout}), nil
		}
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
		f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		return NewJSONWriter(f), nil
	case config.OutputSQLite:
		return OpenSQL(ctx, SQLite, cfg.Path, runID, cfg.ShardSize)
	case config.OutputPostgres:
		return OpenSQL(ctx, Postgres, cfg.DSN, runID, cfg.ShardSize)
	}
	return nil, fmt.Errorf("unknown output format %q: %w", cfg.Format, errors.ErrInvalidConfig)
}
