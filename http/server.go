// Package http 提供HTTP服务器功能
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP服务器
type Server struct {
	server   *http.Server
	sessions *SessionHub
	config   ServerConfig
	logger   *zap.Logger
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int
	Timeout time.Duration
}

// DefaultServerConfig 默认服务器配置
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:    8501,
		Timeout: 30 * time.Second,
	}
}

// NewServer 创建HTTP服务器
func NewServer(config ServerConfig, handler *Handler) *Server {
	mux := http.NewServeMux()
	RegisterHandlers(mux, handler)

	chain := Chain(
		RecoveryMiddleware(handler.logger), // 1. 恢复中间件（最先执行，捕获panic）
		LoggerMiddleware(handler.logger),   // 2. 日志中间件
		SecurityHeadersMiddleware,          // 3. 安全头中间件
		TimeoutMiddleware(config.Timeout),  // 4. 超时中间件
	)

	// WebSocket会话是长连接，不经过超时中间件
	sessions := NewSessionHub(handler)
	root := http.NewServeMux()
	root.Handle("GET /ws", Chain(RecoveryMiddleware(handler.logger), LoggerMiddleware(handler.logger))(sessions))
	root.Handle("/", chain(mux))

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", config.Port),
			Handler:      root,
			ReadTimeout:  config.Timeout,
			WriteTimeout: config.Timeout,
			IdleTimeout:  120 * time.Second,
		},
		sessions: sessions,
		config:   config,
		logger:   handler.logger,
	}
}

// Start 启动服务器
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop 停止服务器
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	// Shutdown不会关闭已劫持的连接
	s.sessions.CloseAll()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}
