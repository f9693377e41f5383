package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type SummaryHandler struct {
	svc services.SummaryService
}

func NewSummaryHandler(svc services.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

type GenerateSummaryRequest struct {
	Transcript string `json:"transcript"`
	SessionID  *uint  `json:"session_id"`
	Language   string `json:"language"`
	// Summary, when present, is a client-computed summary persisted as-is.
	Summary string `json:"summary"`
}

// Generate implements POST /api/generate-summary/.
func (h *SummaryHandler) Generate(c *gin.Context) {
	const op = "SummaryHandler.Generate"

	var req GenerateSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeSessionAPIError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), services.SummaryRequest{
		Transcript:    req.Transcript,
		SessionID:     req.SessionID,
		Language:      req.Language,
		ClientSummary: req.Summary,
	})
	if err != nil {
		writeSessionAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"summary": res.Summary,
		"is_mock": res.IsMock,
	})
}
