package config

import "runtime"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			StopWords:   "a an and in on the",
			ShardCount:  8,
			WorkerCount: runtime.NumCPU(),
		},
		Corpus: CorpusConfig{
			Path: "",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Port:    9091,
			Path:    "/metrics",
		},
		Display: DisplayConfig{
			PageSize: 5,
		},
	}
}
