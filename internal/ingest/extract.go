package ingest

import (
	"context"
	stderrors "errors"
	"io"
)

// ExtractStats counts the games seen by Extract.
type ExtractStats struct {
	Read     int
	Filtered int
	Written  int
	Chunks   []string
}

// Extract streams games from src through filter into parquet chunks. A
// limit above zero stops after that many written games.
func Extract(ctx context.Context, src *PGNSource, filter *Filter, w *ChunkWriter, limit int) (ExtractStats, error) {
	var stats ExtractStats
	for limit <= 0 || stats.Written < limit {
		game, rec, err := src.nextGame(ctx)
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		stats.Read++
		if ok, _ := filter.Keep(&rec); !ok {
			stats.Filtered++
			continue
		}
		if err := w.Write(ParquetGameFromRecord(rec, Movetext(game))); err != nil {
			return stats, err
		}
		stats.Written++
	}
	if err := w.Close(); err != nil {
		return stats, err
	}
	stats.Chunks = w.Files()
	return stats, nil
}
