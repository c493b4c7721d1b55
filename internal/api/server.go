package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/logger"
	"github.com/AI2HU/geodash/internal/services"
)

// RequestIDHeader carries the id assigned to every request
const RequestIDHeader = "X-Request-ID"

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Server serves dashboard widgets over HTTP
type Server struct {
	router     *gin.Engine
	source     db.Source
	dashboard  *services.DashboardService
	insights   *services.InsightsService
	corsOrigin string
	log        *logger.Logger
	now        func() time.Time
}

// NewServer creates a new API server. insights may be nil when no LLM is configured.
func NewServer(source db.Source, dashboard *services.DashboardService, insights *services.InsightsService, corsOrigin string) *Server {
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	s := &Server{
		router:     gin.New(),
		source:     source,
		dashboard:  dashboard,
		insights:   insights,
		corsOrigin: corsOrigin,
		log:        logger.Named("api"),
		now:        time.Now,
	}

	s.router.Use(gin.Recovery())
	s.router.Use(s.requestIDMiddleware())
	s.router.Use(s.corsMiddleware())
	s.router.Use(s.loggingMiddleware())
	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	v1 := s.router.Group("/api/v1")

	v1.GET("/health", s.healthCheck)
	v1.GET("/palette", s.getPalette)

	v1.GET("/kpis", widget(s, "KPIs", s.dashboard.KPIs))
	v1.GET("/sources", widget(s, "source visibility", s.dashboard.Sources))
	v1.GET("/categories", widget(s, "top categories", s.dashboard.TopCategories))

	charts := v1.Group("/charts")
	charts.GET("/trend", widget(s, "brand trend", s.dashboard.BrandTrend))
	charts.GET("/concept-trend", widget(s, "concept trend", s.dashboard.ConceptTrend))
	charts.GET("/hierarchy", widget(s, "category hierarchy", s.dashboard.Hierarchy))
	charts.GET("/heatmap", widget(s, "heatmap", s.dashboard.Heatmap))
	charts.GET("/treemap", widget(s, "concept breakdown", s.dashboard.ConceptBreakdown))
	charts.GET("/radar", widget(s, "model comparison", s.dashboard.ModelComparison))
	charts.GET("/flow", widget(s, "prompt flow", s.dashboard.Flow))
	charts.GET("/distribution", widget(s, "model distribution", s.dashboard.Distribution))
	charts.GET("/competitors", widget(s, "competitor comparison", s.dashboard.Competitors))
	charts.GET("/concepts", widget(s, "concept sentiment", s.dashboard.ConceptBars))
	charts.GET("/citations", widget(s, "citations", s.dashboard.Citations))

	v1.POST("/insights", s.generateInsights)
}

// Handler returns the router as an http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on address
func (s *Server) Run(address string) error {
	return s.router.Run(address)
}

func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", s.corsOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("%s %s %d %v [%s]", c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Millisecond), c.GetString("request_id"))
	}
}

// successResponse sends a successful response
func (s *Server) successResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// errorResponse sends an error response
func (s *Server) errorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// fetchErrorResponse maps a failed fetch to 502 for backend rejections,
// 503 when the backend could not be reached and 500 otherwise
func (s *Server) fetchErrorResponse(c *gin.Context, what string, err error) {
	var backendErr *backend.BackendError
	var networkErr *backend.NetworkError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &backendErr):
		status = http.StatusBadGateway
	case errors.As(err, &networkErr):
		status = http.StatusServiceUnavailable
	}

	s.log.Warning("Failed to load %s: %v", what, err)
	s.errorResponse(c, status, "Failed to load "+what+": "+err.Error())
}
