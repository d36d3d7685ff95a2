package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Output.Format != OutputParquet {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, OutputParquet)
	}
	if cfg.Output.ShardSize != 2000 {
		t.Errorf("Output.ShardSize = %d, want 2000", cfg.Output.ShardSize)
	}
	if cfg.Pipeline.MaxPlies != 1024 {
		t.Errorf("Pipeline.MaxPlies = %d, want 1024", cfg.Pipeline.MaxPlies)
	}
	if cfg.Pipeline.Workers < 1 || cfg.Pipeline.Workers != DefaultWorkers() {
		t.Errorf("Pipeline.Workers = %d, want %d", cfg.Pipeline.Workers, DefaultWorkers())
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Errorf("Log = %+v, want info/console", cfg.Log)
	}
	if !cfg.Input.Filter.ExcludeBots {
		t.Error("ExcludeBots should be true by default")
	}
	want := []string{"Unterminated", "Rules infraction", "Abandoned"}
	if diff := cmp.Diff(want, cfg.Input.Filter.ExcludeTerminations); diff != "" {
		t.Errorf("ExcludeTerminations mismatch (-want +got):\n%s", diff)
	}
}

func TestNewConfig_Validates(t *testing.T) {
	if err := NewConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
input:
  path: games.parquet
  sample_games: 500
  filter:
    exclude_bots: false
    exclude_terminations: [Abandoned]
output:
  format: jsonl
  path: "-"
pipeline:
  workers: 3
  strict: true
log:
  level: debug
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if cfg.Input.Path != "games.parquet" || cfg.Input.SampleGames != 500 {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Input.Filter.ExcludeBots {
		t.Error("ExcludeBots should be overridden to false")
	}
	if diff := cmp.Diff([]string{"Abandoned"}, cfg.Input.Filter.ExcludeTerminations); diff != "" {
		t.Errorf("ExcludeTerminations mismatch (-want +got):\n%s", diff)
	}
	if cfg.Output.Format != OutputJSONL || cfg.Output.Path != "-" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Pipeline.Workers != 3 || !cfg.Pipeline.Strict {
		t.Errorf("Pipeline = %+v", cfg.Pipeline)
	}
	// Untouched keys keep their defaults.
	if cfg.Output.ShardSize != DefaultShardSize || cfg.Log.Format != "console" {
		t.Errorf("defaults lost: shard=%d log=%+v", cfg.Output.ShardSize, cfg.Log)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown key", "pipeline:\n  wrokers: 3\n"},
		{"wrong type", "pipeline:\n  workers: many\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Errorf("Parse() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) error: %v", err)
	}
	if diff := cmp.Diff(NewConfig(), cfg); diff != "" {
		t.Errorf("Parse(nil) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endings.yaml")
	if err := os.WriteFile(path, []byte("output:\n  shard_size: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.ShardSize != 10 {
		t.Errorf("ShardSize = %d, want 10", cfg.Output.ShardSize)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"bad input format", func(c *Config) { c.Input.Format = "csv" }, "Input.Format"},
		{"negative sample", func(c *Config) { c.Input.SampleGames = -1 }, "Input.SampleGames"},
		{"bad output format", func(c *Config) { c.Output.Format = "xml" }, "Output.Format"},
		{"zero shard size", func(c *Config) { c.Output.ShardSize = 0 }, "Output.ShardSize"},
		{"missing path", func(c *Config) { c.Output.Path = "" }, "Output.Path"},
		{"postgres without dsn", func(c *Config) { c.Output.Format = OutputPostgres }, "Output.DSN"},
		{"zero workers", func(c *Config) { c.Pipeline.Workers = 0 }, "Pipeline.Workers"},
		{"zero max plies", func(c *Config) { c.Pipeline.MaxPlies = 0 }, "Pipeline.MaxPlies"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "Log.Level"},
		{"empty checkpoint key", func(c *Config) { c.Checkpoint.Key = "" }, "Checkpoint.Key"},
		{"blank termination", func(c *Config) { c.Input.Filter.ExcludeTerminations = []string{" "} }, "empty termination"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrInvalidConfig) {
				t.Fatalf("Validate() error = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, should mention %q", err, tt.wantErr)
			}
		})
	}

	t.Run("postgres with dsn", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Output.Format = OutputPostgres
		cfg.Output.Path = ""
		cfg.Output.DSN = "postgres://localhost/endings"
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error: %v", err)
		}
	})
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithInput("games.pgn.zst", FormatPGN).
		WithSampleGames(100).
		WithBotFilter(false).
		WithExcludedTerminations("Abandoned").
		WithOutput(OutputSQLite, "results.db").
		WithShardSize(50).
		WithWorkers(2).
		WithBufferSize(8).
		WithMaxPlies(300).
		WithStrict(true).
		WithRedis("localhost:6379").
		WithLog("warn", "json").
		Build()

	if cfg.Input.Path != "games.pgn.zst" || cfg.Input.Format != FormatPGN || cfg.Input.SampleGames != 100 {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if cfg.Input.Filter.ExcludeBots || len(cfg.Input.Filter.ExcludeTerminations) != 1 {
		t.Errorf("Filter = %+v", cfg.Input.Filter)
	}
	if cfg.Output.Format != OutputSQLite || cfg.Output.Path != "results.db" || cfg.Output.ShardSize != 50 {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if cfg.Pipeline.Workers != 2 || cfg.Pipeline.BufferSize != 8 || cfg.Pipeline.MaxPlies != 300 || !cfg.Pipeline.Strict {
		t.Errorf("Pipeline = %+v", cfg.Pipeline)
	}
	if cfg.Checkpoint.RedisAddr != "localhost:6379" {
		t.Errorf("Checkpoint = %+v", cfg.Checkpoint)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("built config should be valid: %v", err)
	}
}

func TestConfigBuilder_Postgres(t *testing.T) {
	cfg := NewConfigBuilder().
		WithOutput(OutputPostgres, "").
		WithDSN("postgres://localhost/endings?sslmode=disable").
		Build()
	if err := cfg.Validate(); err != nil {
		t.Errorf("postgres with DSN should be valid: %v", err)
	}

	cfg = NewConfigBuilder().WithOutput(OutputPostgres, "").Build()
	if err := cfg.Validate(); !errors.Is(err, errors.ErrInvalidConfig) {
		t.Errorf("postgres without DSN: Validate() = %v; want ErrInvalidConfig", err)
	}
}
