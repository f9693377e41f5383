package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type SkillHandler struct {
	svc services.SkillService
}

func NewSkillHandler(svc services.SkillService) *SkillHandler {
	return &SkillHandler{svc: svc}
}

func (h *SkillHandler) List(c *gin.Context) {
	rows, err := h.svc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": rows})
}

type CreateSkillRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

func (h *SkillHandler) Create(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req CreateSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.Create", "invalid request body", err))
		return
	}

	skill, err := h.svc.Create(c.Request.Context(), req.Name, req.Description, req.Category)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, skill)
}

type AddTeachableRequest struct {
	SkillID          uint   `json:"skill_id" binding:"required"`
	ProficiencyLevel string `json:"proficiency_level" binding:"required"`
	ExperienceYears  int    `json:"experience_years"`
	Description      string `json:"description"`
}

func (h *SkillHandler) AddTeachable(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddTeachableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.AddTeachable", "invalid request body", err))
		return
	}

	ts, err := h.svc.AddTeachable(c.Request.Context(), userID, req.SkillID, req.ProficiencyLevel, req.ExperienceYears, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ts)
}

func (h *SkillHandler) ListTeachable(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		if id, ok := requireUserID(c); ok {
			userID = id
		} else {
			return
		}
	}

	rows, err := h.svc.ListTeachable(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"teachable_skills": rows})
}

type CreateSkillRequestRequest struct {
	TeachableSkillID uint    `json:"teachable_skill_id" binding:"required"`
	IsPaymentOffer   bool    `json:"is_payment_offer"`
	OfferedAmount    float64 `json:"offered_amount"`
	OfferedSkill     string  `json:"offered_skill"`
	Message          string  `json:"message"`
}

func (h *SkillHandler) CreateRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateSkillRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.CreateRequest", "invalid request body", err))
		return
	}

	created, err := h.svc.CreateRequest(c.Request.Context(), &models.SkillRequest{
		LearnerID:        userID,
		TeachableSkillID: req.TeachableSkillID,
		IsPaymentOffer:   req.IsPaymentOffer,
		OfferedAmount:    req.OfferedAmount,
		OfferedSkill:     req.OfferedSkill,
		Message:          req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

type RespondRequestBody struct {
	Status string `json:"status" binding:"required"` // accepted|rejected|completed
}

func (h *SkillHandler) RespondToRequest(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("request_id"), 10, 32)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.RespondToRequest", "invalid request id", err))
		return
	}

	var body RespondRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "SkillHandler.RespondToRequest", "invalid request body", err))
		return
	}

	if err := h.svc.RespondToRequest(c.Request.Context(), userID, uint(id), body.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SkillHandler) ListRequests(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListRequests(c.Request.Context(), userID, c.Query("role"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": rows})
}
