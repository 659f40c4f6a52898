package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/BaSui01/studybuddy/api/handlers"
	"github.com/BaSui01/studybuddy/config"
	"github.com/BaSui01/studybuddy/internal/cache"
	"github.com/BaSui01/studybuddy/internal/metrics"
	"github.com/BaSui01/studybuddy/internal/server"
	"github.com/BaSui01/studybuddy/llm"
	"github.com/BaSui01/studybuddy/llm/embedding"
	"github.com/BaSui01/studybuddy/llm/providers/gemini"
	"github.com/BaSui01/studybuddy/rag"
	"github.com/BaSui01/studybuddy/study"
)

// =============================================================================
// 🖥️ Server 结构
// =============================================================================

// Server 是 StudyBuddy 的主服务器
type Server struct {
	cfg        *config.Config
	configPath string
	logger     *zap.Logger

	// 服务器管理器
	httpManager    *server.Manager
	metricsManager *server.Manager

	// Handlers
	healthHandler *handlers.HealthHandler
	studyHandler  *handlers.StudyHandler

	// 基础设施
	metricsCollector *metrics.Collector
	cacheManager     *cache.Manager
	configWatcher    *config.FileWatcher
}

// NewServer 创建新的服务器实例
func NewServer(cfg *config.Config, configPath string, logger *zap.Logger) *Server {
	return &Server{
		cfg:        cfg,
		configPath: configPath,
		logger:     logger,
	}
}

// =============================================================================
// 🚀 启动流程
// =============================================================================

// Start 启动所有服务
func (s *Server) Start() error {
	// 1. 初始化指标收集器
	s.metricsCollector = metrics.NewCollector("studybuddy", s.logger)

	// 2. 初始化管线与 Handlers
	if err := s.initHandlers(); err != nil {
		return fmt.Errorf("failed to init handlers: %w", err)
	}

	// 3. 监听配置文件变化
	if err := s.initConfigWatcher(); err != nil {
		return fmt.Errorf("failed to init config watcher: %w", err)
	}

	// 4. 启动 HTTP 服务器
	if err := s.startHTTPServer(); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	// 5. 启动 Metrics 服务器
	if err := s.startMetricsServer(); err != nil {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}

	s.logger.Info("All servers started",
		zap.Int("http_port", s.cfg.Server.HTTPPort),
		zap.Int("metrics_port", s.cfg.Server.MetricsPort),
		zap.String("embedding_provider", s.cfg.Embedding.Provider),
		zap.Bool("cache_enabled", s.cfg.Cache.Enabled),
	)

	return nil
}

// =============================================================================
// 🔧 初始化方法
// =============================================================================

// initHandlers 组装管线并初始化所有 handlers
func (s *Server) initHandlers() error {
	s.healthHandler = handlers.NewHealthHandler(s.logger)

	// 嵌入提供者
	embedProvider, err := s.newEmbeddingProvider()
	if err != nil {
		return fmt.Errorf("embedding provider: %w", err)
	}

	// 生成提供者
	genProvider := s.newGenerationProvider()

	// 答案缓存（可选）
	var answerCache study.AnswerCache
	if s.cfg.Cache.Enabled {
		manager, err := cache.NewManager(cache.Config{
			Addr:         s.cfg.Cache.Addr,
			Password:     s.cfg.Cache.Password,
			DB:           s.cfg.Cache.DB,
			DefaultTTL:   s.cfg.Cache.DefaultTTL,
			PoolSize:     s.cfg.Cache.PoolSize,
			MinIdleConns: s.cfg.Cache.MinIdleConns,
		}, s.logger)
		if err != nil {
			s.logger.Warn("Answer cache unavailable, running without cache", zap.Error(err))
		} else {
			s.cacheManager = manager
			answerCache = manager
			s.healthHandler.RegisterCheck(handlers.NewPingHealthCheck("cache", manager.Ping))
		}
	}

	s.healthHandler.RegisterCheck(handlers.NewPingHealthCheck("generation", func(ctx context.Context) error {
		status, err := genProvider.HealthCheck(ctx)
		if err != nil {
			return err
		}
		if !status.Healthy {
			return fmt.Errorf("generation backend unhealthy")
		}
		return nil
	}))

	// 管线编排
	service, err := study.NewService(study.Config{
		Collection:           s.cfg.Study.Collection,
		ContextResults:       s.cfg.Study.ContextResults,
		DefaultQuizQuestions: s.cfg.Study.DefaultQuizQuestions,
		DefaultFlashCards:    s.cfg.Study.DefaultFlashCards,
		EmbedBatchSize:       s.cfg.Study.EmbedBatchSize,
		EmbedParallelism:     s.cfg.Study.EmbedParallelism,
		CacheTTL:             s.cfg.Study.CacheTTL,
	}, study.Deps{
		Splitter:  rag.NewDocumentSplitter(rag.SplitConfig{MaxLength: s.cfg.Split.MaxLength}, s.logger),
		Store:     rag.NewInMemoryVectorStore(s.logger),
		Embedder:  rag.NewProviderEmbedder(embedProvider),
		Provider:  genProvider,
		Tokenizer: rag.NewTiktokenTokenizer("", s.logger),
		Cache:     answerCache,
		Metrics:   s.metricsCollector,
		Logger:    s.logger,
	})
	if err != nil {
		return fmt.Errorf("study service: %w", err)
	}

	s.studyHandler = handlers.NewStudyHandler(service, s.cfg.Server.MaxUploadBytes, s.logger)

	s.logger.Info("Handlers initialized")
	return nil
}

// newEmbeddingProvider 按配置选择嵌入后端
func (s *Server) newEmbeddingProvider() (embedding.Provider, error) {
	switch s.cfg.Embedding.Provider {
	case "gemini":
		return embedding.NewGeminiProvider(embedding.GeminiConfig{
			APIKey:     s.cfg.EmbeddingAPIKey(),
			BaseURL:    s.cfg.Embedding.BaseURL,
			Model:      s.cfg.Embedding.Model,
			Dimensions: s.cfg.Embedding.Dimensions,
			Timeout:    s.cfg.Embedding.Timeout,
		}), nil
	case "openai":
		return embedding.NewOpenAIProvider(embedding.OpenAIConfig{
			APIKey:     s.cfg.EmbeddingAPIKey(),
			BaseURL:    s.cfg.Embedding.BaseURL,
			Model:      s.cfg.Embedding.Model,
			Dimensions: s.cfg.Embedding.Dimensions,
		}), nil
	case "local":
		return embedding.NewLocalProvider(s.cfg.Embedding.Dimensions), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", s.cfg.Embedding.Provider)
	}
}

// newGenerationProvider 创建文本生成后端
func (s *Server) newGenerationProvider() llm.Provider {
	return gemini.NewProvider(gemini.Config{
		APIKey:            s.cfg.LLM.APIKey,
		BaseURL:           s.cfg.LLM.BaseURL,
		Model:             s.cfg.LLM.Model,
		Timeout:           s.cfg.LLM.Timeout,
		RequestsPerSecond: s.cfg.LLM.RequestsPerSecond,
		Burst:             s.cfg.LLM.Burst,
	}, s.logger)
}

// initConfigWatcher 监听配置文件变化并提示重启
func (s *Server) initConfigWatcher() error {
	if s.configPath == "" {
		return nil
	}

	watcher, err := config.NewFileWatcher([]string{s.configPath},
		config.WithWatcherLogger(s.logger))
	if err != nil {
		return err
	}

	watcher.OnChange(func(event config.FileEvent) {
		s.logger.Info("Configuration file changed, restart to apply",
			zap.String("path", event.Path),
			zap.String("op", event.Op.String()),
		)
	})

	if err := watcher.Start(context.Background()); err != nil {
		return err
	}

	s.configWatcher = watcher
	return nil
}

// =============================================================================
// 🌐 HTTP 服务器
// =============================================================================

// startHTTPServer 启动 HTTP 服务器
func (s *Server) startHTTPServer() error {
	mux := http.NewServeMux()

	// 健康检查端点
	mux.HandleFunc("/health", s.healthHandler.HandleHealth)
	mux.HandleFunc("/ready", s.healthHandler.HandleReady)
	mux.HandleFunc("/version", s.healthHandler.HandleVersion(Version, BuildTime, GitCommit))

	// 学习辅助 API
	mux.HandleFunc("/upload", s.studyHandler.HandleUpload)
	mux.HandleFunc("/index", s.studyHandler.HandleIndex)
	mux.HandleFunc("/explain", s.studyHandler.HandleExplain)
	mux.HandleFunc("/generate_quiz", s.studyHandler.HandleGenerateQuiz)
	mux.HandleFunc("/generate_flashcards", s.studyHandler.HandleGenerateFlashCards)
	mux.HandleFunc("/topics", s.studyHandler.HandleTopics)

	// 中间件链
	handler := Chain(mux,
		Recovery(s.logger),
		RequestID(),
		SecurityHeaders(),
		RequestLogger(s.logger),
		MetricsMiddleware(s.metricsCollector),
	)

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.HTTPPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		IdleTimeout:     2 * s.cfg.Server.ReadTimeout,
		MaxHeaderBytes:  1 << 20,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.httpManager = server.NewManager(handler, serverConfig, s.logger)

	if err := s.httpManager.Start(); err != nil {
		return err
	}

	s.logger.Info("HTTP server started", zap.Int("port", s.cfg.Server.HTTPPort))
	return nil
}

// =============================================================================
// 📊 Metrics 服务器
// =============================================================================

// startMetricsServer 启动 Metrics 服务器
func (s *Server) startMetricsServer() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	serverConfig := server.Config{
		Addr:            fmt.Sprintf(":%d", s.cfg.Server.MetricsPort),
		ReadTimeout:     s.cfg.Server.ReadTimeout,
		WriteTimeout:    s.cfg.Server.WriteTimeout,
		ShutdownTimeout: s.cfg.Server.ShutdownTimeout,
	}

	s.metricsManager = server.NewManager(mux, serverConfig, s.logger)

	if err := s.metricsManager.Start(); err != nil {
		return err
	}

	s.logger.Info("Metrics server started", zap.Int("port", s.cfg.Server.MetricsPort))
	return nil
}

// =============================================================================
// 🛑 关闭流程
// =============================================================================

// WaitForShutdown 等待关闭信号并优雅关闭
func (s *Server) WaitForShutdown() {
	if s.httpManager != nil {
		s.httpManager.WaitForShutdown()
	}
	s.Shutdown()
}

// Shutdown 优雅关闭所有服务
func (s *Server) Shutdown() {
	s.logger.Info("Starting graceful shutdown...")

	ctx := context.Background()

	if s.configWatcher != nil {
		if err := s.configWatcher.Stop(); err != nil {
			s.logger.Error("Config watcher shutdown error", zap.Error(err))
		}
	}

	if s.httpManager != nil {
		if err := s.httpManager.Shutdown(ctx); err != nil {
			s.logger.Error("HTTP server shutdown error", zap.Error(err))
		}
	}

	if s.metricsManager != nil {
		if err := s.metricsManager.Shutdown(ctx); err != nil {
			s.logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	if s.cacheManager != nil {
		if err := s.cacheManager.Close(); err != nil {
			s.logger.Error("Cache shutdown error", zap.Error(err))
		}
	}

	s.logger.Info("Graceful shutdown completed")
}
