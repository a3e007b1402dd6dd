package server

import (
	"fmt"
	"strings"
	"sync"

	"cafe-analytics/src/logger"
	"cafe-analytics/src/models"
	"cafe-analytics/src/report"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// DashboardServer
// -----------------------------------------------------------------------------

type DashboardServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MSnapshot // Strongly typed and buffered queue
	register   chan *Client
	unregister chan *Client

	// Latest pipeline snapshot
	snapshot      *models.MSnapshot
	snapshotMutex sync.RWMutex
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewDashboardServer(cfg *models.MConfig, logger *logger.Logger) *DashboardServer {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &DashboardServer{
		Config:  cfg,
		Logger:  logger,
		engine:  gin.Default(),
		clients: make(map[*Client]struct{}),
		// Buffered so a refresh burst never blocks the pipeline goroutine
		broadcast:  make(chan *models.MSnapshot, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		snapshot:   &models.MSnapshot{Type: "INITIAL"},
	}

	// CORS for local dashboards
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *DashboardServer) setupRoutes() {
	s.engine.GET("/", s.getDashboard)

	// REST API endpoints
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)
	s.engine.GET("/api/summary", s.getSummary)
	s.engine.GET("/api/metrics", s.getMetrics)
	s.engine.GET("/api/insights", s.getInsights)
	s.engine.GET("/api/views/:dimension", s.getView)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *DashboardServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting dashboard server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) Stop() error {
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *DashboardServer) getDashboard(c *gin.Context) {
	s.snapshotMutex.RLock()
	snap := s.snapshot
	s.snapshotMutex.RUnlock()

	page, err := report.Render(s.Config.Report.Title, snap)
	if err != nil {
		s.Logger.Error("Failed to render dashboard: %v", err)
		c.String(500, "dashboard rendering failed")
		return
	}
	c.Data(200, "text/html; charset=utf-8", page)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getHealth(c *gin.Context) {
	s.snapshotMutex.RLock()
	connections := len(s.clients)
	generatedAt := s.snapshot.GeneratedAt
	s.snapshotMutex.RUnlock()

	c.JSON(200, gin.H{
		"status":        "ok",
		"connections":   connections,
		"latest_update": generatedAt,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"title":                    s.Config.Report.Title,
		"refresh_interval_seconds": s.Config.Data.RefreshIntervalSeconds,
		"sources":                  len(s.Config.Data.Sources),
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getSummary(c *gin.Context) {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()

	c.JSON(200, gin.H{
		"summary":  s.snapshot.Summary,
		"cleaning": s.snapshot.Cleaning,
	})
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getMetrics(c *gin.Context) {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()

	c.JSON(200, s.snapshot.Metrics)
}

// -----------------------------------------------------------------------------

func (s *DashboardServer) getInsights(c *gin.Context) {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()

	c.JSON(200, s.snapshot.Insights)
}

// -----------------------------------------------------------------------------

// getView serves one aggregation dimension by name.
func (s *DashboardServer) getView(c *gin.Context) {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()

	switch c.Param("dimension") {
	case "daily":
		c.JSON(200, s.snapshot.Views.Daily)
	case "weekly":
		c.JSON(200, s.snapshot.Views.Weekly)
	case "heatmap":
		c.JSON(200, s.snapshot.Views.Heatmap)
	case "products":
		c.JSON(200, s.snapshot.Views.Products)
	case "locations":
		c.JSON(200, s.snapshot.Views.Locations)
	case "payments":
		c.JSON(200, s.snapshot.Views.Payments)
	default:
		c.JSON(404, gin.H{"error": fmt.Sprintf("unknown dimension %q", c.Param("dimension"))})
	}
}
