package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
	"github.com/lgbarn/pgn-endings-go/internal/config"
)

func sampleResults() []classify.Result {
	return []classify.Result{
		{ID: "g1", EndCode: classify.Checkmate, EndReason: "checkmate", Plies: 4, Winner: "black"},
		{ID: "g2", EndCode: classify.AgreementDraw, EndReason: "agreement_draw", Plies: 40, IsDraw: true},
		{ID: "g3", EndCode: classify.Unknown, EndReason: "unknown", Plies: 7, Winner: "white", Detail: "game g3, ply 7: parse failure"},
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONWriter(&buf)
	for _, res := range sampleResults() {
		if err := w.WriteResult(res); err != nil {
			t.Fatalf("WriteResult() error = %v", err)
		}
	}
	if buf.Len() != 0 {
		t.Error("output should stay buffered until Flush")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines; want 3", len(lines))
	}
	var got classify.Result
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("line 2 is not JSON: %v", err)
	}
	if diff := cmp.Diff(sampleResults()[1], got); diff != "" {
		t.Errorf("decoded result mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(lines[0], `"end_code":1`) {
		t.Errorf("line 1 = %s; want numeric end_code", lines[0])
	}
}

func TestParquetWriter(t *testing.T) {
	dir := t.TempDir()
	w, err := NewParquetWriter(dir, 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, res := range sampleResults() {
		if err := w.WriteResult(res); err != nil {
			t.Fatalf("WriteResult() error = %v", err)
		}
	}
	if got := len(w.Shards()); got != 1 {
		t.Errorf("shards after 3 writes = %d; want 1", got)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want := []string{filepath.Join(dir, "shard_000000.parquet"), filepath.Join(dir, "shard_000001.parquet")}
	if diff := cmp.Diff(want, w.Shards()); diff != "" {
		t.Errorf("shards mismatch (-want +got):\n%s", diff)
	}
	if got := NextShardIndex(dir); got != 2 {
		t.Errorf("NextShardIndex() = %d; want 2", got)
	}

	results, err := ReadResults(dir)
	if err != nil {
		t.Fatalf("ReadResults() error = %v", err)
	}
	if diff := cmp.Diff(sampleResults(), results); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestNextShardIndex_Empty(t *testing.T) {
	if got := NextShardIndex(filepath.Join(t.TempDir(), "missing")); got != 0 {
		t.Errorf("NextShardIndex() = %d; want 0", got)
	}
}

func TestUpsertQuery(t *testing.T) {
	pg := upsertQuery(Postgres)
	if !strings.Contains(pg, "$9") || strings.Contains(pg, "?") {
		t.Errorf("postgres query uses wrong placeholders: %s", pg)
	}
	lite := upsertQuery(SQLite)
	if strings.Count(lite, "?") != len(upsertColumns) {
		t.Errorf("sqlite query placeholder count wrong: %s", lite)
	}
	if strings.Contains(lite, "game_id=EXCLUDED") {
		t.Error("primary key must not be updated")
	}
}

func TestSQLWriter_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "endings.db")
	w, err := OpenSQL(ctx, SQLite, path, "run-1", 2)
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	defer w.Close()

	for _, res := range sampleResults() {
		if err := w.WriteResult(res); err != nil {
			t.Fatalf("WriteResult() error = %v", err)
		}
	}
	// Reclassify g2 as a repetition; the row is replaced.
	if err := w.WriteResult(classify.Result{ID: "g2", EndCode: classify.ThreefoldRepetition, EndReason: "threefold_repetition", IsDraw: true}); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	counts, err := w.CountByCode(ctx)
	if err != nil {
		t.Fatalf("CountByCode() error = %v", err)
	}
	want := map[classify.EndCode]int{classify.Checkmate: 1, classify.Unknown: 1, classify.ThreefoldRepetition: 1}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("counts mismatch (-want +got):\n%s", diff)
	}

	var runID, winner string
	if err := w.db.QueryRowContext(ctx, "SELECT run_id, winner FROM game_endings WHERE game_id = ?", "g1").Scan(&runID, &winner); err != nil {
		t.Fatal(err)
	}
	if runID != "run-1" || winner != "black" {
		t.Errorf("g1 row = (%q, %q); want (run-1, black)", runID, winner)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	path := filepath.Join(dir, "out", "results.jsonl")
	for i := 0; i < 2; i++ {
		w, err := Open(ctx, config.OutputConfig{Format: config.OutputJSONL, Path: path, ShardSize: 10}, "r")
		if err != nil {
			t.Fatalf("Open(jsonl) error = %v", err)
		}
		if err := w.WriteResult(sampleResults()[i]); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), "\n"); got != 2 {
		t.Errorf("appended lines = %d; want 2", got)
	}

	if _, err := Open(ctx, config.OutputConfig{Format: "csv"}, "r"); err == nil {
		t.Error("Open(csv) should fail")
	}

	w, err := Open(ctx, config.OutputConfig{Format: config.OutputParquet, Path: filepath.Join(dir, "shards"), ShardSize: 10}, "r")
	if err != nil {
		t.Fatalf("Open(parquet) error = %v", err)
	}
	if _, ok := w.(*ParquetWriter); !ok {
		t.Errorf("Open(parquet) returned %T", w)
	}
}
