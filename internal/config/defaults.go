package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/bookwise/data/db/documents.db"
	}
	if cfg.Storage.IndexPath == "" {
		cfg.Storage.IndexPath = "/usr/local/var/bookwise/data/indices"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/bookwise/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 64
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Dialogue.Provider == "" {
		cfg.Dialogue.Provider = "openai"
	}
	if cfg.Dialogue.APIKeyEnv == "" {
		cfg.Dialogue.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Dialogue.Temperature == 0 {
		cfg.Dialogue.Temperature = 0.7
	}
	if cfg.Search.RecommendTopK == 0 {
		cfg.Search.RecommendTopK = 5
	}
	if cfg.Search.Grammar == "" {
		cfg.Search.Grammar = "full"
	}
}
