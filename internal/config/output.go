package config

// Output formats.
const (
	OutputParquet  = "parquet"
	OutputJSONL    = "jsonl"
	OutputSQLite   = "sqlite"
	OutputPostgres = "postgres"
)

// DefaultShardSize is the number of results per parquet shard.
const DefaultShardSize = 2000

// OutputConfig describes where classification results go.
type OutputConfig struct {
	// Format is parquet, jsonl, sqlite or postgres.
	Format string `yaml:"format" validate:"oneof=parquet jsonl sqlite postgres"`

	// Path is the shard directory for parquet, the file for jsonl ("-" for
	// stdout) and the database file for sqlite.
	Path string `yaml:"path" validate:"required_unless=Format postgres"`

	// DSN is the postgres connection string.
	DSN string `yaml:"dsn" validate:"required_if=Format postgres"`

	// ShardSize is the number of rows per parquet shard, or per transaction
	// for the SQL sinks.
	ShardSize int `yaml:"shard_size" validate:"min=1"`
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		Format:    OutputParquet,
		Path:      "parquet_moves",
		ShardSize: DefaultShardSize,
	}
}
