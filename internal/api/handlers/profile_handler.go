package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/services"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type UpdateProfileRequest struct {
	FullName        string          `json:"full_name"`
	Bio             string          `json:"bio"`
	PhoneNumber     string          `json:"phone_number"`
	Location        string          `json:"location"`
	TeachingHours   string          `json:"teaching_hours"`
	HourlyRate      float64         `json:"hourly_rate"`
	AvailableDays   []string        `json:"available_days"`
	PreferredTime   string          `json:"preferred_time"`
	TeachingMode    string          `json:"teaching_mode"`
	ExperienceLevel string          `json:"experience_level"`
	Preferences     json.RawMessage `json:"preferences,omitempty"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProfileHandler.Update", "invalid request body", err))
		return
	}

	p := &models.UserProfile{
		UserID:          userID,
		FullName:        req.FullName,
		Bio:             req.Bio,
		PhoneNumber:     req.PhoneNumber,
		Location:        req.Location,
		TeachingHours:   req.TeachingHours,
		HourlyRate:      req.HourlyRate,
		AvailableDays:   pq.StringArray(req.AvailableDays),
		PreferredTime:   req.PreferredTime,
		TeachingMode:    req.TeachingMode,
		ExperienceLevel: req.ExperienceLevel,
	}
	if len(req.Preferences) > 0 {
		p.Preferences = datatypes.JSON(req.Preferences)
	}

	if err := h.svc.Update(c.Request.Context(), p); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Search lists educators matching plain filters; no ranking.
func (h *ProfileHandler) Search(c *gin.Context) {
	f := pgrepo.ProfileFilter{
		Location:     c.Query("location"),
		TeachingMode: c.Query("teaching_mode"),
		Category:     c.Query("category"),
	}
	if v := c.Query("skill_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil {
			f.SkillID = uint(id)
		}
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}

	rows, err := h.svc.Search(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"educators": rows})
}
