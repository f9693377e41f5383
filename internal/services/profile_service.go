package services

import (
	"context"
	"errors"
	"time"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.UserProfile, error)
	Update(ctx context.Context, p *models.UserProfile) error
	Search(ctx context.Context, f pgrepo.ProfileFilter) ([]models.UserProfile, error)
}

type profileService struct {
	profiles pgrepo.ProfileRepository
}

func NewProfileService(profiles pgrepo.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.UserProfile, error) {
	const op = "ProfileService.Get"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "profile not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get profile", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *models.UserProfile) error {
	const op = "ProfileService.Update"

	if p == nil || p.UserID == "" {
		return utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	p.UpdatedAt = time.Now().UTC()
	if err := s.profiles.Upsert(ctx, p); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to save profile", err)
	}
	return nil
}

func (s *profileService) Search(ctx context.Context, f pgrepo.ProfileFilter) ([]models.UserProfile, error) {
	const op = "ProfileService.Search"

	rows, err := s.profiles.Search(ctx, f)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search profiles", err)
	}
	return rows, nil
}
