package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/skillbridge/skillbridge-backend/internal/cache"
	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/providers/videoroom"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

const sessionCacheTTL = 5 * time.Minute

type SessionService interface {
	Start(ctx context.Context, userID string, skillID *uint) (*models.Session, error)
	Get(ctx context.Context, id uint) (*models.Session, error)
	End(ctx context.Context, id uint, status string) (*models.Session, error)
	SaveNotes(ctx context.Context, sessionID uint, notes string) error
}

type sessionService struct {
	sessions pgrepo.SessionRepository
	rooms    videoroom.Client
	cache    cache.Cache
	log      *logrus.Logger
}

func NewSessionService(sessions pgrepo.SessionRepository, rooms videoroom.Client, c cache.Cache, log *logrus.Logger) SessionService {
	if log == nil {
		log = logrus.New()
	}
	return &sessionService{sessions: sessions, rooms: rooms, cache: c, log: log}
}

// Start creates the video room for a new lesson and records the session.
// Room creation always succeeds when the provider client runs in fallback
// mode, so a degraded provider never blocks starting a lesson.
func (s *sessionService) Start(ctx context.Context, userID string, skillID *uint) (*models.Session, error) {
	const op = "SessionService.Start"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	room, err := s.rooms.CreateRoom(ctx, "", time.Time{})
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to create video room", err)
	}

	session := &models.Session{
		UserID:    userID,
		SkillID:   skillID,
		RoomName:  room.Name,
		RoomURL:   room.URL,
		Status:    models.SessionActive,
		StartedAt: time.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create session", err)
	}
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, id uint) (*models.Session, error) {
	const op = "SessionService.Get"

	key := sessionCacheKey(id)
	if s.cache != nil {
		var cached models.Session
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	session, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, utils.ErrSessionNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get session", err)
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, session, sessionCacheTTL)
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context, id uint, status string) (*models.Session, error) {
	const op = "SessionService.End"

	if status == "" {
		status = models.SessionCompleted
	}
	if status != models.SessionCompleted && status != models.SessionCancelled {
		return nil, utils.E(utils.CodeInvalidArgument, op, "status must be completed or cancelled", nil)
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.sessions.End(ctx, id, now, status); err != nil {
		if errors.Is(err, utils.ErrSessionNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to end session", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, sessionCacheKey(id))
	}

	session.Status = status
	session.EndedAt = &now
	return session, nil
}

// SaveNotes upserts the free-text notes for a session, last write wins.
func (s *sessionService) SaveNotes(ctx context.Context, sessionID uint, notes string) error {
	const op = "SessionService.SaveNotes"

	if notes == "" {
		return utils.E(utils.CodeInvalidArgument, op, "notes are required", nil)
	}

	if err := s.sessions.UpsertNotes(ctx, sessionID, notes); err != nil {
		if errors.Is(err, utils.ErrSessionNotFound) {
			return utils.E(utils.CodeNotFound, op, "session not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to save notes", err)
	}
	return nil
}

func sessionCacheKey(id uint) string {
	return fmt.Sprintf("session:%d", id)
}
