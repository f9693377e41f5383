package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type RecordingHandler struct {
	pipeline services.RecordingPipeline
}

func NewRecordingHandler(pipeline services.RecordingPipeline) *RecordingHandler {
	return &RecordingHandler{pipeline: pipeline}
}

type ProcessRecordingRequest struct {
	RoomName  string `json:"room_name"`
	SessionID *uint  `json:"session_id"`
	Language  string `json:"language"`
}

// Process implements POST /api/process-recording/. The response carries the
// transcript and summary even when nothing was persisted (unknown session).
func (h *RecordingHandler) Process(c *gin.Context) {
	const op = "RecordingHandler.Process"

	var req ProcessRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeSessionAPIError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.RoomName == "" {
		writeSessionAPIError(c, utils.E(utils.CodeInvalidArgument, op, "room name required", nil))
		return
	}

	res, err := h.pipeline.Process(c.Request.Context(), req.RoomName, req.SessionID, req.Language)
	if err != nil {
		writeSessionAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"transcript": res.Transcript,
		"summary":    res.Summary,
		"is_mock":    res.SummaryIsMock,
	})
}
