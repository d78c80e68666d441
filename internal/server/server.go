package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "quill/docs"
	"quill/internal/ai/gemini"
	"quill/internal/config"
	"quill/internal/handler"
	"quill/internal/server/middleware"
	"quill/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server HTTP 服务器
type Server struct {
	cfg          *config.Config
	engine       *gin.Engine
	paraphraseSv *service.ParaphraseService
}

// New 创建服务器实例
// apiKey 由调用方通过 secret.Resolve 提前解析，缺失时不应走到这里
func New(cfg *config.Config, apiKey string, opts ...gemini.Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 设置 Gin 模式
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	client := gemini.NewClient(&cfg.Gemini, apiKey, opts...)
	log.Info().
		Str("model", client.Model()).
		Dur("timeout", cfg.Gemini.Timeout).
		Msg("initialized gemini client")

	srv := &Server{
		cfg:          cfg,
		engine:       gin.New(),
		paraphraseSv: service.NewParaphraseService(client),
	}

	srv.setupRoutes()

	return srv, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.Metrics())
	s.engine.Use(middleware.CORS(&s.cfg.CORS))

	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/ready", healthHandler.Ready)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if s.cfg.Server.Swagger {
		s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := s.engine.Group("/api")
	{
		api.GET("/health", healthHandler.Health)

		paraphraseHandler := handler.NewParaphraseHandler(s.paraphraseSv)
		api.POST("/paraphrase", paraphraseHandler.Paraphrase)
	}
}

// Run 启动服务器，ctx 结束后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Engine 获取 Gin 引擎 (用于测试)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
