package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge-backend/internal/api/handlers"
	"github.com/skillbridge/skillbridge-backend/internal/api/middleware"
)

type Deps struct {
	Session   *handlers.SessionHandler
	Summary   *handlers.SummaryHandler
	Recording *handlers.RecordingHandler
	Profile   *handlers.ProfileHandler
	Skill     *handlers.SkillHandler

	// APIAuthRequired guards the session /api endpoints with JWT. The
	// deployed variant leaves them open for in-call browser clients.
	APIAuthRequired bool
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Session processing API
	api := r.Group("/api")
	if d.APIAuthRequired {
		api.Use(middleware.JWTAuth())
	}
	api.POST("/generate-summary/", d.Summary.Generate)
	api.POST("/process-recording/", d.Recording.Process)
	api.POST("/save-session-notes/", d.Session.SaveNotes)

	// Public browsing
	r.GET("/skills", d.Skill.List)
	r.GET("/educators/search", d.Profile.Search)
	r.GET("/educators/:user_id/skills", d.Skill.ListTeachable)

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(middleware.JWTAuth())

	auth.POST("/sessions/start", d.Session.Start)
	auth.GET("/sessions/:session_id", d.Session.Get)
	auth.POST("/sessions/:session_id/end", d.Session.End)

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile/update", d.Profile.Update)

	auth.POST("/skills", d.Skill.Create)
	auth.POST("/skills/teachable", d.Skill.AddTeachable)

	auth.POST("/requests", d.Skill.CreateRequest)
	auth.GET("/requests", d.Skill.ListRequests)
	auth.POST("/requests/:request_id/respond", d.Skill.RespondToRequest)
}
