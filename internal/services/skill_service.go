package services

import (
	"context"
	"errors"
	"time"

	"github.com/skillbridge/skillbridge-backend/internal/models"
	pgrepo "github.com/skillbridge/skillbridge-backend/internal/repositories/postgres"
	"github.com/skillbridge/skillbridge-backend/internal/utils"
)

type SkillService interface {
	List(ctx context.Context, category string) ([]models.Skill, error)
	Create(ctx context.Context, name, description, category string) (*models.Skill, error)

	AddTeachable(ctx context.Context, userID string, skillID uint, proficiency string, years int, description string) (*models.TeachableSkill, error)
	ListTeachable(ctx context.Context, userID string) ([]models.TeachableSkill, error)

	CreateRequest(ctx context.Context, req *models.SkillRequest) (*models.SkillRequest, error)
	RespondToRequest(ctx context.Context, educatorID string, requestID uint, status string) error
	ListRequests(ctx context.Context, userID, role string) ([]models.SkillRequest, error)
}

type skillService struct {
	skills pgrepo.SkillRepository
}

func NewSkillService(skills pgrepo.SkillRepository) SkillService {
	return &skillService{skills: skills}
}

func (s *skillService) List(ctx context.Context, category string) ([]models.Skill, error) {
	const op = "SkillService.List"

	rows, err := s.skills.List(ctx, category)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skills", err)
	}
	return rows, nil
}

func (s *skillService) Create(ctx context.Context, name, description, category string) (*models.Skill, error) {
	const op = "SkillService.Create"

	if name == "" || category == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "name and category are required", nil)
	}

	skill := &models.Skill{
		Name:        name,
		Description: description,
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.skills.Insert(ctx, skill); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create skill", err)
	}
	return skill, nil
}

func (s *skillService) AddTeachable(ctx context.Context, userID string, skillID uint, proficiency string, years int, description string) (*models.TeachableSkill, error) {
	const op = "SkillService.AddTeachable"

	if userID == "" || skillID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and skill_id are required", nil)
	}
	if _, err := s.skills.GetByID(ctx, skillID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "skill not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up skill", err)
	}

	ts := &models.TeachableSkill{
		UserID:           userID,
		SkillID:          skillID,
		ProficiencyLevel: proficiency,
		ExperienceYears:  years,
		Description:      description,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.skills.AddTeachable(ctx, ts); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to add teachable skill", err)
	}
	return ts, nil
}

func (s *skillService) ListTeachable(ctx context.Context, userID string) ([]models.TeachableSkill, error) {
	const op = "SkillService.ListTeachable"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	rows, err := s.skills.ListTeachableByUser(ctx, userID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list teachable skills", err)
	}
	return rows, nil
}

func (s *skillService) CreateRequest(ctx context.Context, req *models.SkillRequest) (*models.SkillRequest, error) {
	const op = "SkillService.CreateRequest"

	if req.LearnerID == "" || req.TeachableSkillID == 0 {
		return nil, utils.E(utils.CodeInvalidArgument, op, "learner_id and teachable_skill_id are required", nil)
	}
	if !req.IsPaymentOffer && req.OfferedSkill == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "barter requests need an offered skill", nil)
	}

	ts, err := s.skills.GetTeachableByID(ctx, req.TeachableSkillID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "teachable skill not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to look up teachable skill", err)
	}

	req.EducatorID = ts.UserID
	req.Status = models.RequestPending
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	if err := s.skills.InsertRequest(ctx, req); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to create skill request", err)
	}
	return req, nil
}

func (s *skillService) RespondToRequest(ctx context.Context, educatorID string, requestID uint, status string) error {
	const op = "SkillService.RespondToRequest"

	if status != models.RequestAccepted && status != models.RequestRejected && status != models.RequestCompleted {
		return utils.E(utils.CodeInvalidArgument, op, "status must be accepted, rejected or completed", nil)
	}

	req, err := s.skills.GetRequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeNotFound, op, "skill request not found", err)
		}
		return utils.E(utils.CodeInternal, op, "failed to look up skill request", err)
	}
	if req.EducatorID != educatorID {
		return utils.E(utils.CodeForbidden, op, "forbidden", nil)
	}

	if err := s.skills.SetRequestStatus(ctx, requestID, status); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update skill request", err)
	}
	return nil
}

func (s *skillService) ListRequests(ctx context.Context, userID, role string) ([]models.SkillRequest, error) {
	const op = "SkillService.ListRequests"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	var (
		rows []models.SkillRequest
		err  error
	)
	if role == "educator" {
		rows, err = s.skills.ListRequestsForEducator(ctx, userID)
	} else {
		rows, err = s.skills.ListRequestsForLearner(ctx, userID)
	}
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list skill requests", err)
	}
	return rows, nil
}
