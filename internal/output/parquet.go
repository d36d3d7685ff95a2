package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
)

// ResultRow is one row of a result shard.
type ResultRow struct {
	GameID    string `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	EndCode   int32  `parquet:"name=end_reason_code, type=INT32"`
	EndReason string `parquet:"name=end_reason, type=BYTE_ARRAY, convertedtype=UTF8"`
	IsDraw    bool   `parquet:"name=is_draw, type=BOOLEAN"`
	Winner    string `parquet:"name=winner, type=BYTE_ARRAY, convertedtype=UTF8"`
	Plies     int32  `parquet:"name=plies, type=INT32"`
	Detail    string `parquet:"name=detail, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// NewResultRow converts a result into a shard row.
func NewResultRow(res classify.Result) ResultRow {
	return ResultRow{
		GameID:    res.ID,
		EndCode:   int32(res.EndCode),
		EndReason: res.EndReason,
		IsDraw:    res.IsDraw,
		Winner:    res.Winner,
		Plies:     int32(res.Plies),
		Detail:    res.Detail,
	}
}

// Result converts the row back into a classify.Result.
func (r ResultRow) Result() classify.Result {
	return classify.Result{
		ID:        r.GameID,
		EndCode:   classify.EndCode(r.EndCode),
		EndReason: r.EndReason,
		IsDraw:    r.IsDraw,
		Winner:    r.Winner,
		Plies:     int(r.Plies),
		Detail:    r.Detail,
	}
}

// ParquetWriter buffers results and writes them as numbered shards of
// shardSize rows: shard_000000.parquet, shard_000001.parquet and so on.
type ParquetWriter struct {
	dir       string
	shardSize int
	parallel  int64
	next      int
	rows      []ResultRow
	shards    []string
}

// NewParquetWriter creates dir if needed. Shard numbering starts at
// firstShard so that resumed runs do not overwrite earlier shards.
func NewParquetWriter(dir string, shardSize, firstShard int) (*ParquetWriter, error) {
	if shardSize < 1 {
		return nil, fmt.Errorf("shard size must be positive, got %d", shardSize)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ParquetWriter{
		dir:       dir,
		shardSize: shardSize,
		parallel:  4,
		next:      firstShard,
		rows:      make([]ResultRow, 0, shardSize),
	}, nil
}

// NextShardIndex returns one past the highest shard number in dir, or 0
// when there are none.
func NextShardIndex(dir string) int {
	files, _ := shardFiles(dir)
	next := 0
	for _, f := range files {
		var n int
		if _, err := fmt.Sscanf(filepath.Base(f), "shard_%06d.parquet", &n); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}

// WriteResult buffers res, writing a shard once shardSize rows are held.
func (pw *ParquetWriter) WriteResult(res classify.Result) error {
	pw.rows = append(pw.rows, NewResultRow(res))
	if len(pw.rows) >= pw.shardSize {
		return pw.Flush()
	}
	return nil
}

// Buffered returns the number of rows waiting for the next shard.
func (pw *ParquetWriter) Buffered() int {
	return len(pw.rows)
}

// Flush writes the buffered rows as one shard, even a short one.
func (pw *ParquetWriter) Flush() error {
	if len(pw.rows) == 0 {
		return nil
	}
	path := filepath.Join(pw.dir, fmt.Sprintf("shard_%06d.parquet", pw.next))
	if err := writeShard(path, pw.rows, pw.parallel); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	pw.next++
	pw.shards = append(pw.shards, path)
	pw.rows = pw.rows[:0]
	return nil
}

// Shards returns the shard paths written so far.
func (pw *ParquetWriter) Shards() []string {
	return pw.shards
}

// Close writes any remaining rows.
func (pw *ParquetWriter) Close() error {
	return pw.Flush()
}

func writeShard(path string, rows []ResultRow, parallel int64) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(ResultRow), parallel)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

// ReadResults reads every result from a shard file or a directory of
// shards, in shard order.
func ReadResults(path string) ([]classify.Result, error) {
	files, err := shardFiles(path)
	if err != nil {
		return nil, err
	}
	var results []classify.Result
	for _, f := range files {
		rows, err := readShard(f)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f, err)
		}
		for _, row := range rows {
			results = append(results, row.Result())
		}
	}
	return results, nil
}

func shardFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "shard_") && strings.HasSuffix(e.Name(), ".parquet") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func readShard(path string) ([]ResultRow, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(ResultRow), 4)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	rows := make([]ResultRow, int(pr.GetNumRows()))
	if len(rows) == 0 {
		return nil, nil
	}
	if err := pr.Read(&rows); err != nil {
		return nil, err
	}
	return rows, nil
}
