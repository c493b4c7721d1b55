package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/services"
)

const maxQuestionLength = 1000

// InsightsRequest is the body of POST /api/v1/insights
type InsightsRequest struct {
	Days     string `json:"days"`
	DateFrom string `json:"date_from"`
	Model    string `json:"model"`
	Question string `json:"question"`
}

// widget adapts a dashboard method into a GET handler that parses the shared filters
func widget[T any](s *Server, name string, fetch func(context.Context, services.WidgetQuery) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		q, err := parseWidgetQuery(c, s.now())
		if err != nil {
			s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
			return
		}

		data, err := fetch(c.Request.Context(), q)
		if err != nil {
			s.fetchErrorResponse(c, name, err)
			return
		}

		s.successResponse(c, data)
	}
}

// healthCheck handles GET /api/v1/health
func (s *Server) healthCheck(c *gin.Context) {
	if err := s.source.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, APIResponse{
			Success: false,
			Error:   "Data source unreachable: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":       "healthy",
			"timestamp":    s.now().UTC(),
			"target_brand": s.dashboard.TargetBrand(),
			"insights":     s.insights != nil,
		},
	})
}

// getPalette handles GET /api/v1/palette
func (s *Server) getPalette(c *gin.Context) {
	s.successResponse(c, s.dashboard.Palette().Tables())
}

// generateInsights handles POST /api/v1/insights
func (s *Server) generateInsights(c *gin.Context) {
	if s.insights == nil {
		s.errorResponse(c, http.StatusServiceUnavailable, "Insights are not configured")
		return
	}

	var req InsightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}
	if utf8.RuneCountInString(req.Question) > maxQuestionLength {
		s.errorResponse(c, http.StatusBadRequest, fmt.Sprintf("Question must be no more than %d characters long", maxQuestionLength))
		return
	}

	q := services.WidgetQuery{DateFrom: resolveDateFrom(req.DateFrom, req.Days, s.now()), Model: models.ModelID(req.Model)}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	insight, err := s.insights.Generate(ctx, q, describePeriod(req.Days, req.DateFrom), req.Question)
	if err != nil {
		s.fetchErrorResponse(c, "insights", err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    insight,
		Message: "Insights generated successfully",
	})
}
