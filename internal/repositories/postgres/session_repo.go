package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

// SessionRepository persists sessions and their one-to-one satellites
// (recording, transcript+summary, notes). Upserts are replace-semantics
// keyed by session id, and reject writes against a session that does not
// exist rather than creating a dangling row.
type SessionRepository interface {
	Create(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id uint) (*models.Session, error)
	GetByRoomName(ctx context.Context, roomName string) (*models.Session, error)
	End(ctx context.Context, id uint, endedAt time.Time, status string) error

	UpsertRecording(ctx context.Context, rec *models.SessionRecording) error
	UpsertSummary(ctx context.Context, sum *models.SessionSummary) error
	UpsertNotes(ctx context.Context, sessionID uint, notes string) error

	GetSummary(ctx context.Context, sessionID uint) (*models.SessionSummary, error)
	GetNotes(ctx context.Context, sessionID uint) (*models.SessionNotes, error)
}

type sessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s *models.Session) error {
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id uint) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrSessionNotFound
	}
	return &s, err
}

func (r *sessionRepo) GetByRoomName(ctx context.Context, roomName string) (*models.Session, error) {
	var s models.Session
	err := r.db.WithContext(ctx).Where("room_name = ?", roomName).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrSessionNotFound
	}
	return &s, err
}

func (r *sessionRepo) End(ctx context.Context, id uint, endedAt time.Time, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":   status,
			"ended_at": endedAt.UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrSessionNotFound
	}
	return nil
}

// requireSession guards the upserts: a missing parent session aborts the
// write instead of creating an orphan.
func (r *sessionRepo) requireSession(ctx context.Context, sessionID uint) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return utils.ErrSessionNotFound
	}
	return nil
}

func (r *sessionRepo) UpsertRecording(ctx context.Context, rec *models.SessionRecording) error {
	if err := r.requireSession(ctx, rec.SessionID); err != nil {
		return err
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"recording_id", "download_url", "storage_uri", "file_size", "duration_seconds"}),
		}).
		Create(rec).Error
}

func (r *sessionRepo) UpsertSummary(ctx context.Context, sum *models.SessionSummary) error {
	if err := r.requireSession(ctx, sum.SessionID); err != nil {
		return err
	}
	if sum.GeneratedAt.IsZero() {
		sum.GeneratedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"transcript", "summary", "language", "is_mock", "generated_at"}),
		}).
		Create(sum).Error
}

func (r *sessionRepo) UpsertNotes(ctx context.Context, sessionID uint, notes string) error {
	if err := r.requireSession(ctx, sessionID); err != nil {
		return err
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
		}).
		Create(&models.SessionNotes{
			SessionID: sessionID,
			Notes:     notes,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
}

func (r *sessionRepo) GetSummary(ctx context.Context, sessionID uint) (*models.SessionSummary, error) {
	var sum models.SessionSummary
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&sum).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &sum, err
}

func (r *sessionRepo) GetNotes(ctx context.Context, sessionID uint) (*models.SessionNotes, error) {
	var n models.SessionNotes
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Take(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &n, err
}
