package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type SessionHandler struct {
	svc services.SessionService
}

func NewSessionHandler(svc services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

type StartSessionRequest struct {
	SkillID *uint `json:"skill_id"`
}

type StartSessionResponse struct {
	SessionID uint   `json:"session_id"`
	RoomName  string `json:"room_name"`
	RoomURL   string `json:"room_url"`
	Status    string `json:"status"`
	StartedAt string `json:"started_at"`
}

func (h *SessionHandler) Start(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Start", "invalid request body", err))
		return
	}

	sess, err := h.svc.Start(c.Request.Context(), userID, req.SkillID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, StartSessionResponse{
		SessionID: sess.ID,
		RoomName:  sess.RoomName,
		RoomURL:   sess.RoomURL,
		Status:    sess.Status,
		StartedAt: sess.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

func (h *SessionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := parseSessionID(c.Param("session_id"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.Get", "invalid session id", err))
		return
	}

	sess, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if sess.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "SessionHandler.Get", "forbidden", nil))
		return
	}

	c.JSON(http.StatusOK, sess)
}

type EndSessionRequest struct {
	Status string `json:"status"` // completed (default) or cancelled
}

func (h *SessionHandler) End(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := parseSessionID(c.Param("session_id"))
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SessionHandler.End", "invalid session id", err))
		return
	}

	sess, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	if sess.UserID != userID {
		writeError(c, utils.E(utils.CodeForbidden, "SessionHandler.End", "forbidden", nil))
		return
	}

	var req EndSessionRequest
	_ = c.ShouldBindJSON(&req)

	ended, err := h.svc.End(c.Request.Context(), id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ended)
}

type SaveNotesRequest struct {
	SessionID *uint  `json:"session_id"`
	Notes     string `json:"notes"`
}

// SaveNotes implements POST /api/save-session-notes/.
func (h *SessionHandler) SaveNotes(c *gin.Context) {
	const op = "SessionHandler.SaveNotes"

	var req SaveNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeSessionAPIError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}
	if req.SessionID == nil || req.Notes == "" {
		writeSessionAPIError(c, utils.E(utils.CodeInvalidArgument, op, "session id and notes required", nil))
		return
	}

	if err := h.svc.SaveNotes(c.Request.Context(), *req.SessionID, req.Notes); err != nil {
		writeSessionAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func parseSessionID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	return uint(v), err
}
