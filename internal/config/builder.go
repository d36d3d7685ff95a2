package config

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithInput sets the input path and format ("" to detect).
func (b *ConfigBuilder) WithInput(path, format string) *ConfigBuilder {
	b.cfg.Input.Path = path
	b.cfg.Input.Format = format
	return b
}

// WithSampleGames limits intake to n records.
func (b *ConfigBuilder) WithSampleGames(n int) *ConfigBuilder {
	b.cfg.Input.SampleGames = n
	return b
}

// WithBotFilter controls whether bot games are dropped.
func (b *ConfigBuilder) WithBotFilter(enabled bool) *ConfigBuilder {
	b.cfg.Input.Filter.ExcludeBots = enabled
	return b
}

// WithExcludedTerminations replaces the termination exclude list.
func (b *ConfigBuilder) WithExcludedTerminations(labels ...string) *ConfigBuilder {
	b.cfg.Input.Filter.ExcludeTerminations = labels
	return b
}

// WithOutput sets the output format and path.
func (b *ConfigBuilder) WithOutput(format, path string) *ConfigBuilder {
	b.cfg.Output.Format = format
	b.cfg.Output.Path = path
	return b
}

// WithDSN sets the database connection string.
func (b *ConfigBuilder) WithDSN(dsn string) *ConfigBuilder {
	b.cfg.Output.DSN = dsn
	return b
}

// WithShardSize sets the rows per shard.
func (b *ConfigBuilder) WithShardSize(n int) *ConfigBuilder {
	b.cfg.Output.ShardSize = n
	return b
}

// WithWorkers sets the number of classification workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Pipeline.Workers = n
	return b
}

// WithBufferSize sets the pool channel buffer size.
func (b *ConfigBuilder) WithBufferSize(n int) *ConfigBuilder {
	b.cfg.Pipeline.BufferSize = n
	return b
}

// WithMaxPlies sets the replay cap.
func (b *ConfigBuilder) WithMaxPlies(n int) *ConfigBuilder {
	b.cfg.Pipeline.MaxPlies = n
	return b
}

// WithStrict enables abort on malformed records.
func (b *ConfigBuilder) WithStrict(strict bool) *ConfigBuilder {
	b.cfg.Pipeline.Strict = strict
	return b
}

// WithRedis enables Redis checkpoints.
func (b *ConfigBuilder) WithRedis(addr string) *ConfigBuilder {
	b.cfg.Checkpoint.RedisAddr = addr
	return b
}

// WithLog sets the log level and format.
func (b *ConfigBuilder) WithLog(level, format string) *ConfigBuilder {
	b.cfg.Log.Level = level
	b.cfg.Log.Format = format
	return b
}
