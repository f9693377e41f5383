package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type SkillRepository interface {
	List(ctx context.Context, category string) ([]models.Skill, error)
	Insert(ctx context.Context, s *models.Skill) error
	GetByID(ctx context.Context, id uint) (*models.Skill, error)

	AddTeachable(ctx context.Context, ts *models.TeachableSkill) error
	ListTeachableByUser(ctx context.Context, userID string) ([]models.TeachableSkill, error)
	GetTeachableByID(ctx context.Context, id uint) (*models.TeachableSkill, error)

	InsertRequest(ctx context.Context, req *models.SkillRequest) error
	GetRequestByID(ctx context.Context, id uint) (*models.SkillRequest, error)
	SetRequestStatus(ctx context.Context, id uint, status string) error
	ListRequestsForEducator(ctx context.Context, educatorID string) ([]models.SkillRequest, error)
	ListRequestsForLearner(ctx context.Context, learnerID string) ([]models.SkillRequest, error)
}

type skillRepo struct {
	db *gorm.DB
}

func NewSkillRepo(db *gorm.DB) SkillRepository {
	return &skillRepo{db: db}
}

func (r *skillRepo) List(ctx context.Context, category string) ([]models.Skill, error) {
	q := r.db.WithContext(ctx).Model(&models.Skill{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var rows []models.Skill
	err := q.Order("name ASC").Find(&rows).Error
	return rows, err
}

func (r *skillRepo) Insert(ctx context.Context, s *models.Skill) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *skillRepo) GetByID(ctx context.Context, id uint) (*models.Skill, error) {
	var s models.Skill
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &s, err
}

func (r *skillRepo) AddTeachable(ctx context.Context, ts *models.TeachableSkill) error {
	return r.db.WithContext(ctx).Create(ts).Error
}

func (r *skillRepo) ListTeachableByUser(ctx context.Context, userID string) ([]models.TeachableSkill, error) {
	var rows []models.TeachableSkill
	err := r.db.WithContext(ctx).
		Preload("Skill").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *skillRepo) GetTeachableByID(ctx context.Context, id uint) (*models.TeachableSkill, error) {
	var ts models.TeachableSkill
	err := r.db.WithContext(ctx).Preload("Skill").Where("id = ?", id).Take(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &ts, err
}

func (r *skillRepo) InsertRequest(ctx context.Context, req *models.SkillRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *skillRepo) GetRequestByID(ctx context.Context, id uint) (*models.SkillRequest, error) {
	var req models.SkillRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&req).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &req, err
}

func (r *skillRepo) SetRequestStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.SkillRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *skillRepo) ListRequestsForEducator(ctx context.Context, educatorID string) ([]models.SkillRequest, error) {
	var rows []models.SkillRequest
	err := r.db.WithContext(ctx).
		Where("educator_id = ?", educatorID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *skillRepo) ListRequestsForLearner(ctx context.Context, learnerID string) ([]models.SkillRequest, error) {
	var rows []models.SkillRequest
	err := r.db.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
