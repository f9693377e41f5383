package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type fakeSessionService struct {
	session *models.Session
	err     error

	notesBySession map[uint]string
}

func (f *fakeSessionService) Start(ctx context.Context, userID string, skillID *uint) (*models.Session, error) {
	return f.session, f.err
}

func (f *fakeSessionService) Get(ctx context.Context, id uint) (*models.Session, error) {
	return f.session, f.err
}

func (f *fakeSessionService) End(ctx context.Context, id uint, status string) (*models.Session, error) {
	return f.session, f.err
}

func (f *fakeSessionService) SaveNotes(ctx context.Context, sessionID uint, notes string) error {
	if f.err != nil {
		return f.err
	}
	if f.notesBySession == nil {
		f.notesBySession = map[uint]string{}
	}
	f.notesBySession[sessionID] = notes
	return nil
}

func notesRouter(svc *fakeSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/save-session-notes/", NewSessionHandler(svc).SaveNotes)
	return r
}

func TestSaveSessionNotesEndpoint(t *testing.T) {
	svc := &fakeSessionService{}
	r := notesRouter(svc)

	w := postJSON(t, r, "/api/save-session-notes/", gin.H{"session_id": 8, "notes": "A"})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/api/save-session-notes/", gin.H{"session_id": 8, "notes": "B"})
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]bool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out["success"])
	assert.Equal(t, "B", svc.notesBySession[8], "last write wins")
}

func TestSaveSessionNotesEndpointMissingFields(t *testing.T) {
	svc := &fakeSessionService{}
	r := notesRouter(svc)

	w := postJSON(t, r, "/api/save-session-notes/", gin.H{"notes": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/save-session-notes/", gin.H{"session_id": 8})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, svc.notesBySession)
}

func TestSaveSessionNotesEndpointUnknownSession(t *testing.T) {
	svc := &fakeSessionService{
		err: utils.E(utils.CodeNotFound, "SessionService.SaveNotes", "session not found", utils.ErrSessionNotFound),
	}
	r := notesRouter(svc)

	w := postJSON(t, r, "/api/save-session-notes/", gin.H{"session_id": 99, "notes": "A"})

	require.Equal(t, http.StatusNotFound, w.Code)

	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "session not found", out["error"])
}
