package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
	Search(ctx context.Context, f ProfileFilter) ([]models.UserProfile, error)
}

// ProfileFilter narrows educator search. All fields are optional; empty
// values mean no constraint. No ranking is applied.
type ProfileFilter struct {
	Location     string
	TeachingMode string
	SkillID      uint
	Category     string
	Limit        int
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.UserProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "bio", "phone_number", "location", "teaching_hours",
				"hourly_rate", "available_days", "preferred_time", "teaching_mode",
				"experience_level", "preferences", "updated_at",
			}),
		}).
		Create(p).Error
}

func (r *profileRepo) Search(ctx context.Context, f ProfileFilter) ([]models.UserProfile, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	q := r.db.WithContext(ctx).Model(&models.UserProfile{})

	if f.Location != "" {
		q = q.Where("location ILIKE ?", "%"+f.Location+"%")
	}
	if f.TeachingMode != "" {
		q = q.Where("teaching_mode IN ?", []string{f.TeachingMode, "both"})
	}
	if f.SkillID != 0 || f.Category != "" {
		sub := r.db.Model(&models.TeachableSkill{}).
			Select("teachable_skills.user_id").
			Joins("JOIN skills ON skills.id = teachable_skills.skill_id")
		if f.SkillID != 0 {
			sub = sub.Where("teachable_skills.skill_id = ?", f.SkillID)
		}
		if f.Category != "" {
			sub = sub.Where("skills.category = ?", f.Category)
		}
		q = q.Where("user_id IN (?)", sub)
	}

	var rows []models.UserProfile
	err := q.Order("created_at DESC").Limit(f.Limit).Find(&rows).Error
	return rows, err
}
