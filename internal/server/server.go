package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"VizChat/internal/chart"
	"VizChat/internal/chatbot"
	"VizChat/internal/config"
	"VizChat/internal/dataset"
	"VizChat/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// Server exposes a ChatBot over HTTP
type Server struct {
	bot     *chatbot.ChatBot
	cfg     config.Config
	logger  *slog.Logger
	engine  *gin.Engine
	started time.Time
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type replyResponse struct {
	SessionID string             `json:"session_id"`
	Text      string             `json:"text"`
	ChartPath string             `json:"chart_path,omitempty"`
	ChartURL  string             `json:"chart_url,omitempty"`
	Chart     *chatbot.ChartInfo `json:"chart,omitempty"`
}

// New builds the routes for bot. A nil logger discards request logs.
func New(cfg config.Config, bot *chatbot.ChatBot, logger *slog.Logger) *Server {
	if logger == nil {
		logger = telemetry.DiscardLogger()
	}
	s := &Server{
		bot:     bot,
		cfg:     cfg,
		logger:  logger,
		started: time.Now(),
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger(), cors())
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB) << 20

	r.GET("/health", s.health)
	r.GET("/api/messages", s.listMessages)
	r.POST("/api/messages", s.sendMessage)
	r.GET("/api/history", s.history)
	r.POST("/api/reset", s.reset)
	r.POST("/api/files", s.uploadFile)
	r.GET("/api/columns", s.columns)
	r.POST("/api/quick/:type", s.quickChart)
	r.Static("/charts", cfg.OutputDir)

	s.engine = r
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on the configured address until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"session_id": s.bot.SessionID(),
		"uptime":     time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) listMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session_id": s.bot.SessionID(), "messages": s.bot.Messages()})
}

func (s *Server) sendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.BindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	// slash commands are terminal only, the API has its own routes
	if strings.HasPrefix(strings.TrimSpace(req.Content), "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slash commands are not available over HTTP"})
		return
	}

	reply, _, err := s.bot.HandleInput(c.Request.Context(), req.Content)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.replyJSON(reply))
}

func (s *Server) history(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session_id": s.bot.SessionID(), "charts": s.bot.History()})
}

func (s *Server) reset(c *gin.Context) {
	id := s.bot.Reset()
	c.JSON(http.StatusOK, gin.H{"ok": true, "session_id": id})
}

func (s *Server) uploadFile(c *gin.Context) {
	limit := int64(s.cfg.MaxUploadMB) << 20
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large", "max_mb": s.cfg.MaxUploadMB})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large", "max_mb": s.cfg.MaxUploadMB})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field \"file\" is required"})
		return
	}

	dir := filepath.Join(s.cfg.OutputDir, "uploads")
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.logger.Error("failed to create upload directory", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	path := filepath.Join(dir, uuid.NewString()+"-"+filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.logger.Error("failed to save upload", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	info, err := s.bot.Upload(c.Request.Context(), path)
	if err != nil {
		os.Remove(path)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	info.Name = file.Filename
	c.JSON(http.StatusOK, info)
}

func (s *Server) columns(c *gin.Context) {
	info, ok := s.bot.Data()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": chatbot.ErrNoUpload.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

func (s *Server) quickChart(c *gin.Context) {
	t, ok := chart.Lookup(c.Param("type"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown chart type %q", c.Param("type"))})
		return
	}

	reply, err := s.bot.QuickChart(c.Request.Context(), t)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if reply.Chart == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": reply.Text})
		return
	}
	c.JSON(http.StatusOK, s.replyJSON(reply))
}

func (s *Server) replyJSON(reply chatbot.Reply) replyResponse {
	resp := replyResponse{
		SessionID: s.bot.SessionID(),
		Text:      reply.Text,
		ChartPath: reply.ChartPath,
		Chart:     reply.Chart,
	}
	if reply.ChartPath != "" {
		resp.ChartURL = "/charts/" + filepath.Base(reply.ChartPath)
	}
	return resp
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, chatbot.ErrNoUpload):
		return http.StatusConflict
	case errors.Is(err, dataset.ErrMalformed), errors.Is(err, dataset.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
