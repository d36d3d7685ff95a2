// Package config holds the settings for a classification run: where games
// come from, where results go, and how the pipeline is sized.
package config

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/lgbarn/pgn-endings-go/internal/errors"
)

// Config is the root configuration. Each section has its own file and
// constructor with defaults.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Checkpoint CheckpointConfig `yaml:"checkpoint"`
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
}

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=json console"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Input:      *NewInputConfig(),
		Output:     *NewOutputConfig(),
		Pipeline:   *NewPipelineConfig(),
		Checkpoint: *NewCheckpointConfig(),
		Log:        LogConfig{Level: "info", Format: "console"},
		Server:     ServerConfig{Addr: ":8080"},
	}
}

// DefaultWorkers leaves two cores for intake and the sink.
func DefaultWorkers() int {
	return max(1, runtime.NumCPU()-2)
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := NewConfig()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %v: %w", err, errors.ErrInvalidConfig)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks every section. Failures wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%s: %w", describe(err), errors.ErrInvalidConfig)
	}
	return c.Input.Filter.Validate()
}

func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
