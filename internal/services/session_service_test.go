package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

func TestSessionStart(t *testing.T) {
	repo := newFakeSessionRepo()
	rooms := &fakeRooms{}
	svc := NewSessionService(repo, rooms, nil, nil)

	sess, err := svc.Start(context.Background(), "8d7c9a2e-1b34-4f6a-9c7d-2e5f8a1b3c4d", nil)
	require.NoError(t, err)

	assert.NotZero(t, sess.ID)
	assert.Equal(t, "session-test", sess.RoomName)
	assert.Equal(t, "https://rooms.test/session-test", sess.RoomURL)
	assert.Equal(t, models.SessionActive, sess.Status)
	assert.Equal(t, 1, rooms.createCalls)
}

func TestSessionStartRequiresUser(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), &fakeRooms{}, nil, nil)

	_, err := svc.Start(context.Background(), "", nil)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSessionGetNotFound(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), &fakeRooms{}, nil, nil)

	_, err := svc.Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSessionEnd(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.addSession(&models.Session{ID: 1, UserID: "u", Status: models.SessionActive})
	svc := NewSessionService(repo, &fakeRooms{}, nil, nil)

	ended, err := svc.End(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.SessionCompleted, ended.Status)
	require.NotNil(t, ended.EndedAt)
}

func TestSessionEndRejectsBadStatus(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.addSession(&models.Session{ID: 1, Status: models.SessionActive})
	svc := NewSessionService(repo, &fakeRooms{}, nil, nil)

	_, err := svc.End(context.Background(), 1, "paused")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestSaveNotesLastWriteWins(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.addSession(&models.Session{ID: 6})
	svc := NewSessionService(repo, &fakeRooms{}, nil, nil)

	require.NoError(t, svc.SaveNotes(context.Background(), 6, "first draft"))
	require.NoError(t, svc.SaveNotes(context.Background(), 6, "final notes"))

	assert.Equal(t, "final notes", repo.notes[6])
	assert.Len(t, repo.notes, 1)
}

func TestSaveNotesUnknownSession(t *testing.T) {
	svc := NewSessionService(newFakeSessionRepo(), &fakeRooms{}, nil, nil)

	err := svc.SaveNotes(context.Background(), 99, "notes")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeNotFound))
}

func TestSaveNotesRequiresText(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.addSession(&models.Session{ID: 6})
	svc := NewSessionService(repo, &fakeRooms{}, nil, nil)

	err := svc.SaveNotes(context.Background(), 6, "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}
