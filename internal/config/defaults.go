package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	// Embedding.Dimensions stays 0 to mean "use the model's default";
	// the mock provider falls back to its own default.
	if cfg.Search.DefaultTopN == 0 {
		cfg.Search.DefaultTopN = 3
	}
	if cfg.Search.MaxTopN == 0 {
		cfg.Search.MaxTopN = 100
	}
	if cfg.Search.DefaultMinScore == 0 {
		cfg.Search.DefaultMinScore = 0.3
	}
	// Corpus.Path stays empty to mean the embedded default corpus.
}
