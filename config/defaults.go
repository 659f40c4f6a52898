// =============================================================================
// 📦 StudyBuddy 默认配置
// =============================================================================
// 提供所有配置项的合理默认值
// =============================================================================
package config

import "time"

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Server:    DefaultServerConfig(),
		LLM:       DefaultLLMConfig(),
		Embedding: DefaultEmbeddingConfig(),
		Cache:     DefaultCacheConfig(),
		Split:     DefaultSplitConfig(),
		Study:     DefaultStudyConfig(),
		Log:       DefaultLogConfig(),
	}
}

// DefaultServerConfig 返回默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPPort:        8080,
		MetricsPort:     9091,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		MaxUploadBytes:  10 << 20, // 10 MiB
	}
}

// DefaultLLMConfig 返回默认文本生成配置
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:          "gemini",
		APIKey:            "",
		BaseURL:           "",
		Model:             "gemini-1.5-flash",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 0,
		Burst:             0,
	}
}

// DefaultEmbeddingConfig 返回默认嵌入配置
func DefaultEmbeddingConfig() EmbeddingConfig {
	return EmbeddingConfig{
		Provider:   "gemini",
		APIKey:     "",
		BaseURL:    "",
		Model:      "",
		Dimensions: 0,
		Timeout:    30 * time.Second,
	}
}

// DefaultCacheConfig 返回默认缓存配置
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      false,
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		DefaultTTL:   10 * time.Minute,
		PoolSize:     10,
		MinIdleConns: 2,
	}
}

// DefaultSplitConfig 返回默认分块配置
func DefaultSplitConfig() SplitConfig {
	return SplitConfig{
		MaxLength: 500,
	}
}

// DefaultStudyConfig 返回默认管线配置
func DefaultStudyConfig() StudyConfig {
	return StudyConfig{
		Collection:           "doc_chunks",
		ContextResults:       2,
		DefaultQuizQuestions: 5,
		DefaultFlashCards:    10,
		EmbedBatchSize:       64,
		EmbedParallelism:     4,
		CacheTTL:             10 * time.Minute,
	}
}

// DefaultLogConfig 返回默认日志配置
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:            "info",
		Format:           "json",
		OutputPaths:      []string{"stdout"},
		EnableCaller:     true,
		EnableStacktrace: false,
	}
}
