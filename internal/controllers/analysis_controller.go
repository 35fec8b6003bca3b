package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triagedesk/backend/internal/logger"
	"github.com/triagedesk/backend/internal/services"
	"github.com/triagedesk/backend/internal/storage"
)

type AnalysisController struct {
	analysisService *services.AnalysisService
}

func NewAnalysisController(analysisService *services.AnalysisService) *AnalysisController {
	return &AnalysisController{analysisService: analysisService}
}

type analyzeRequest struct {
	InputText   string `json:"inputText"`
	IssueType   string `json:"issueType"`
	Environment string `json:"environment"`
}

// Analyze handles POST /api/analyze.
func (ac *AnalysisController) Analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Input text is required"})
		return
	}

	analysis, similarTickets, err := ac.analysisService.Analyze(c.Request.Context(), req.InputText, req.IssueType, req.Environment)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Message})
			return
		}
		logger.WithError(err, "analysis_controller").Error("analysis failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to analyze issue. Please check your Gemini API key and try again.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analysis":       analysis,
		"similarTickets": similarTickets,
	})
}

// ListAnalyses handles GET /api/analyses.
func (ac *AnalysisController) ListAnalyses(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(storage.DefaultAnalysisLimit)))

	analyses, err := ac.analysisService.ListRecent(limit)
	if err != nil {
		logger.WithError(err, "analysis_controller").Error("failed to list analyses")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch analyses"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}
