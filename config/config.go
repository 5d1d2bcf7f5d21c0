// Package config provides layered configuration for the docsearch CLI.
package config

// Config is the full application configuration.
type Config struct {
	// Engine configures the search engine itself.
	Engine EngineConfig `mapstructure:"engine" validate:"required"`

	// Corpus configures where documents are loaded from.
	Corpus CorpusConfig `mapstructure:"corpus"`

	// Log configures structured logging.
	Log LogConfig `mapstructure:"log" validate:"required"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `mapstructure:"metrics"`

	// Display configures result presentation.
	Display DisplayConfig `mapstructure:"display"`
}

// EngineConfig holds the engine construction knobs.
type EngineConfig struct {
	// StopWords is a space-separated list of words ignored during indexing
	// and querying.
	StopWords string `mapstructure:"stop_words"`

	// ShardCount is the number of shards in the parallel scoring
	// accumulator.
	ShardCount int `mapstructure:"shard_count" validate:"min=1"`

	// WorkerCount is the number of goroutines the parallel engine variants
	// fan out to.
	WorkerCount int `mapstructure:"worker_count" validate:"min=1"`
}

// CorpusConfig holds corpus loading settings.
type CorpusConfig struct {
	// Path is the gzip'd XML corpus dump to index at startup.
	Path string `mapstructure:"path" validate:"omitempty,file_exists"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds Prometheus endpoint settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// DisplayConfig holds result presentation settings.
type DisplayConfig struct {
	// PageSize is how many results are shown per page.
	PageSize int `mapstructure:"page_size" validate:"min=1"`
}
