package ingest

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/common"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/lgbarn/pgn-endings-go/internal/chess"
	"github.com/lgbarn/pgn-endings-go/internal/parser"
)

// ParquetGame is one row of a cleaned game shard. Nullable columns are
// pointers.
type ParquetGame struct {
	GameID      string  `parquet:"name=game_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	White       *string `parquet:"name=white, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Black       *string `parquet:"name=black, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	WhiteElo    *int32  `parquet:"name=white_elo, type=INT32, repetitiontype=OPTIONAL"`
	BlackElo    *int32  `parquet:"name=black_elo, type=INT32, repetitiontype=OPTIONAL"`
	WhiteTitle  *string `parquet:"name=white_title, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	BlackTitle  *string `parquet:"name=black_title, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Result      string  `parquet:"name=result, type=BYTE_ARRAY, convertedtype=UTF8"`
	Termination *string `parquet:"name=termination, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Opening     *string `parquet:"name=opening, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Event       *string `parquet:"name=event, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	MovesSAN    string  `parquet:"name=moves_san, type=BYTE_ARRAY, convertedtype=UTF8"`
	Mated       *bool   `parquet:"name=mated, type=BOOLEAN, repetitiontype=OPTIONAL"`
	StartFEN    *string `parquet:"name=start_fen, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

// Record converts the row into a GameRecord. A missing mated column falls
// back to the last move token.
func (g *ParquetGame) Record() chess.GameRecord {
	rec := chess.GameRecord{
		ID:          g.GameID,
		Moves:       parser.Tokenize(g.MovesSAN),
		Result:      g.Result,
		Termination: deref(g.Termination),
		White:       deref(g.White),
		Black:       deref(g.Black),
		WhiteTitle:  deref(g.WhiteTitle),
		BlackTitle:  deref(g.BlackTitle),
		Event:       deref(g.Event),
		Opening:     deref(g.Opening),
		StartFEN:    deref(g.StartFEN),
	}
	if g.WhiteElo != nil {
		rec.WhiteElo = *g.WhiteElo
	}
	if g.BlackElo != nil {
		rec.BlackElo = *g.BlackElo
	}
	if g.Mated != nil {
		rec.Mated = *g.Mated
	} else {
		rec.Mated = parser.EndsWithMate(g.MovesSAN)
	}
	return rec
}

// ParquetGameFromRecord builds a row from rec. movetext keeps check and
// mate markers.
func ParquetGameFromRecord(rec chess.GameRecord, movetext string) ParquetGame {
	mated := rec.Mated
	row := ParquetGame{
		GameID:      rec.ID,
		White:       optString(rec.White),
		Black:       optString(rec.Black),
		WhiteTitle:  optString(rec.WhiteTitle),
		BlackTitle:  optString(rec.BlackTitle),
		Result:      rec.Result,
		Termination: optString(rec.Termination),
		Opening:     optString(rec.Opening),
		Event:       optString(rec.Event),
		MovesSAN:    movetext,
		Mated:       &mated,
		StartFEN:    optString(rec.StartFEN),
	}
	if rec.WhiteElo != 0 {
		elo := rec.WhiteElo
		row.WhiteElo = &elo
	}
	if rec.BlackElo != 0 {
		elo := rec.BlackElo
		row.BlackElo = &elo
	}
	return row
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

const parquetBatchSize = 1024

// parquetColumn binds one column of a shard to a ParquetGame field. Shards
// written by other tools may carry only a subset of the columns; optional
// ones that are absent keep their zero value.
type parquetColumn struct {
	name     string
	required bool
	set      func(g *ParquetGame, v interface{})
}

var parquetColumns = []parquetColumn{
	{name: "game_id", required: true, set: func(g *ParquetGame, v interface{}) { g.GameID, _ = asString(v) }},
	{name: "white", set: func(g *ParquetGame, v interface{}) { g.White = optValue(asString(v)) }},
	{name: "black", set: func(g *ParquetGame, v interface{}) { g.Black = optValue(asString(v)) }},
	{name: "white_elo", set: func(g *ParquetGame, v interface{}) { g.WhiteElo = optValue(asInt32(v)) }},
	{name: "black_elo", set: func(g *ParquetGame, v interface{}) { g.BlackElo = optValue(asInt32(v)) }},
	{name: "white_title", set: func(g *ParquetGame, v interface{}) { g.WhiteTitle = optValue(asString(v)) }},
	{name: "black_title", set: func(g *ParquetGame, v interface{}) { g.BlackTitle = optValue(asString(v)) }},
	{name: "result", required: true, set: func(g *ParquetGame, v interface{}) { g.Result, _ = asString(v) }},
	{name: "termination", set: func(g *ParquetGame, v interface{}) { g.Termination = optValue(asString(v)) }},
	{name: "opening", set: func(g *ParquetGame, v interface{}) { g.Opening = optValue(asString(v)) }},
	{name: "event", set: func(g *ParquetGame, v interface{}) { g.Event = optValue(asString(v)) }},
	{name: "moves_san", required: true, set: func(g *ParquetGame, v interface{}) { g.MovesSAN, _ = asString(v) }},
	{name: "mated", set: func(g *ParquetGame, v interface{}) { g.Mated = optValue(asBool(v)) }},
	{name: "start_fen", set: func(g *ParquetGame, v interface{}) { g.StartFEN = optValue(asString(v)) }},
}

func optValue[T any](v T, ok bool) *T {
	if !ok {
		return nil
	}
	return &v
}

func asString(v interface{}) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	}
	return "", false
}

// asInt32 accepts the integer and floating encodings pandas and pyarrow use
// for rating columns.
func asInt32(v interface{}) (int32, bool) {
	switch x := v.(type) {
	case int32:
		return x, true
	case int64:
		return int32(x), true
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return int32(x), true
	case float32:
		if math.IsNaN(float64(x)) {
			return 0, false
		}
		return int32(x), true
	}
	return 0, false
}

func asBool(v interface{}) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// boundColumn is a parquetColumn resolved against one file's schema.
type boundColumn struct {
	parquetColumn
	path string
}

// ParquetSource reads cleaned game shards, one file after another.
type ParquetSource struct {
	files    []string
	next     int
	parallel int64

	file    source.ParquetFile
	reader  *reader.ParquetReader
	columns []boundColumn
	remain  int
	batch   []ParquetGame
	pos     int
}

// OpenParquet opens a single parquet file or every *.parquet file in a
// directory, in name order.
func OpenParquet(path string) (*ParquetSource, error) {
	files, err := parquetFiles(path)
	if err != nil {
		return nil, err
	}
	return &ParquetSource{files: files, parallel: 4}, nil
}

func parquetFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", path, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".parquet") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Next returns the next row as a GameRecord.
func (s *ParquetSource) Next(ctx context.Context) (chess.GameRecord, error) {
	for s.pos >= len(s.batch) {
		if err := ctx.Err(); err != nil {
			return chess.GameRecord{}, err
		}
		if err := s.fill(); err != nil {
			return chess.GameRecord{}, err
		}
	}
	row := s.batch[s.pos]
	s.pos++
	return row.Record(), nil
}

// fill loads the next batch, opening the next file when the current one
// is exhausted.
func (s *ParquetSource) fill() error {
	if s.reader == nil || s.remain == 0 {
		if err := s.closeCurrent(); err != nil {
			return err
		}
		if s.next >= len(s.files) {
			return io.EOF
		}
		if err := s.openFile(s.files[s.next]); err != nil {
			return err
		}
		s.next++
		if s.remain == 0 {
			s.batch, s.pos = nil, 0
			return nil
		}
	}

	n := parquetBatchSize
	if s.remain < n {
		n = s.remain
	}
	batch, err := s.readRows(n)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.files[s.next-1], err)
	}
	s.remain -= n
	s.batch, s.pos = batch, 0
	return nil
}

// readRows reads n rows column by column. parquet-go panics on malformed
// pages, so panics surface as errors.
func (s *ParquetSource) readRows(n int) (batch []ParquetGame, err error) {
	defer func() {
		if r := recover(); r != nil {
			batch, err = nil, fmt.Errorf("decode rows: %v", r)
		}
	}()
	batch = make([]ParquetGame, n)
	for _, col := range s.columns {
		values, _, _, err := s.reader.ReadColumnByPath(col.path, int64(n))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", col.name, err)
		}
		for i := 0; i < n && i < len(values); i++ {
			if values[i] != nil {
				col.set(&batch[i], values[i])
			}
		}
	}
	return batch, nil
}

func (s *ParquetSource) openFile(path string) error {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	pr, err := reader.NewParquetColumnReader(fr, s.parallel)
	if err != nil {
		_ = fr.Close()
		return fmt.Errorf("open parquet %s: %w", path, err)
	}
	columns, err := bindColumns(pr)
	if err != nil {
		pr.ReadStop()
		_ = fr.Close()
		return fmt.Errorf("open parquet %s: %w", path, err)
	}
	s.file, s.reader, s.columns = fr, pr, columns
	s.remain = int(pr.GetNumRows())
	return nil
}

// bindColumns resolves the known columns present in the file footer.
func bindColumns(pr *reader.ParquetReader) ([]boundColumn, error) {
	root := pr.SchemaHandler.GetRootExName()
	var bound []boundColumn
	var missing []string
	for _, col := range parquetColumns {
		path, err := pr.SchemaHandler.ConvertToInPathStr(common.PathToStr([]string{root, col.name}))
		if err != nil {
			if col.required {
				missing = append(missing, col.name)
			}
			continue
		}
		bound = append(bound, boundColumn{parquetColumn: col, path: path})
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns %s", strings.Join(missing, ", "))
	}
	return bound, nil
}

func (s *ParquetSource) closeCurrent() error {
	if s.reader == nil {
		return nil
	}
	s.reader.ReadStop()
	err := s.file.Close()
	s.file, s.reader, s.columns = nil, nil, nil
	return err
}

// Close releases the open file, if any.
func (s *ParquetSource) Close() error {
	return s.closeCurrent()
}

// ChunkWriter writes game rows into numbered parquet chunks of at most
// chunkSize rows each.
type ChunkWriter struct {
	dir       string
	chunkSize int
	chunk     int
	rows      int
	written   []string

	file   source.ParquetFile
	writer *writer.ParquetWriter
}

// NewChunkWriter creates dir if needed and returns a writer producing
// chunk_0000.parquet, chunk_0001.parquet and so on.
func NewChunkWriter(dir string, chunkSize int) (*ChunkWriter, error) {
	if chunkSize < 1 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ChunkWriter{dir: dir, chunkSize: chunkSize}, nil
}

// Write appends a row, rolling over to a new chunk when the current one
// is full.
func (w *ChunkWriter) Write(row ParquetGame) error {
	if w.writer != nil && w.rows >= w.chunkSize {
		if err := w.finish(); err != nil {
			return err
		}
	}
	if w.writer == nil {
		if err := w.open(); err != nil {
			return err
		}
	}
	if err := w.writer.Write(row); err != nil {
		return err
	}
	w.rows++
	return nil
}

func (w *ChunkWriter) open() error {
	path := filepath.Join(w.dir, fmt.Sprintf("chunk_%04d.parquet", w.chunk))
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(ParquetGame), 4)
	if err != nil {
		_ = fw.Close()
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	w.file, w.writer = fw, pw
	w.rows = 0
	w.chunk++
	w.written = append(w.written, path)
	return nil
}

func (w *ChunkWriter) finish() error {
	if w.writer == nil {
		return nil
	}
	if err := w.writer.WriteStop(); err != nil {
		_ = w.file.Close()
		return err
	}
	err := w.file.Close()
	w.file, w.writer = nil, nil
	return err
}

// Files returns the chunk paths written so far.
func (w *ChunkWriter) Files() []string {
	return w.written
}

// Close flushes the last chunk.
func (w *ChunkWriter) Close() error {
	return w.finish()
}
