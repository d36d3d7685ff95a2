package config

// Input formats.
const (
	FormatParquet = "parquet"
	FormatPGN     = "pgn"
	FormatJSONL   = "jsonl"
)

// InputConfig describes where game records come from.
type InputConfig struct {
	Path string `yaml:"path"`

	// Format is parquet, pgn or jsonl. Empty means detect from the path.
	Format string `yaml:"format" validate:"omitempty,oneof=parquet pgn jsonl"`

	// SampleGames stops intake after this many records (0 = all).
	SampleGames int `yaml:"sample_games" validate:"min=0"`

	Filter FilterConfig `yaml:"filter"`
}

// NewInputConfig creates an InputConfig with default values.
func NewInputConfig() *InputConfig {
	return &InputConfig{Filter: *NewFilterConfig()}
}
