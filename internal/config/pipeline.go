package config

import "github.com/lgbarn/pgn-endings-go/internal/classify"

// PipelineConfig sizes the worker pool and the replay cap.
type PipelineConfig struct {
	Workers    int `yaml:"workers" validate:"min=1"`
	BufferSize int `yaml:"buffer_size" validate:"min=1"`
	MaxPlies   int `yaml:"max_plies" validate:"min=1"`

	// Strict aborts the run on the first malformed record instead of
	// emitting a code 0 result for it.
	Strict bool `yaml:"strict"`

	// DedupCapacity bounds the set of seen game ids (0 = unbounded).
	DedupCapacity int `yaml:"dedup_capacity" validate:"min=0"`
}

// NewPipelineConfig creates a PipelineConfig with default values.
func NewPipelineConfig() *PipelineConfig {
	workers := DefaultWorkers()
	return &PipelineConfig{
		Workers:    workers,
		BufferSize: 4 * workers,
		MaxPlies:   classify.DefaultMaxPlies,
	}
}

// CheckpointConfig enables resumable runs backed by Redis.
type CheckpointConfig struct {
	// RedisAddr is host:port. Empty keeps checkpoints in memory.
	RedisAddr string `yaml:"redis_addr"`
	Key       string `yaml:"key" validate:"required"`

	// Reset clears the store before the run.
	Reset bool `yaml:"reset"`
}

// NewCheckpointConfig creates a CheckpointConfig with default values.
func NewCheckpointConfig() *CheckpointConfig {
	return &CheckpointConfig{Key: "pgn-endings:done"}
}
