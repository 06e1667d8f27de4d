package usecase

import (
	"context"
	"fmt"
	"time"

	"court-booking/internal/data/entity"
	"court-booking/internal/data/repository"
	"court-booking/internal/dto/request"
	"court-booking/internal/dto/response"
	"court-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CourtService interface {
	// Public
	ListCourts(ctx context.Context) ([]response.CourtResponse, error)
	GetCourt(ctx context.Context, courtID string) (*response.CourtResponse, error)

	// Admin
	ListAllCourts(ctx context.Context) ([]response.CourtResponse, error)
	CreateCourt(ctx context.Context, req *request.CourtRequest) (*response.CourtResponse, error)
	UpdateCourt(ctx context.Context, courtID string, req *request.CourtRequest) (*response.CourtResponse, error)
	DeactivateCourt(ctx context.Context, courtID string) error
}

type courtService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCourtService(repo *repository.Repository, log *zap.Logger) CourtService {
	return &courtService{
		repo: repo,
		log:  log.With(zap.String("service", "court")),
	}
}

func (s *courtService) ListCourts(ctx context.Context) ([]response.CourtResponse, error) {
	courts, err := s.repo.Court.FindAll(ctx, true)
	if err != nil {
		s.log.Error("Failed to list courts", zap.Error(err))
		return nil, fmt.Errorf("list courts: %w", err)
	}

	return courtsToResponses(courts), nil
}

func (s *courtService) GetCourt(ctx context.Context, courtID string) (*response.CourtResponse, error) {
	court, err := s.findCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !court.IsActive {
		return nil, fmt.Errorf("%w: court %s", ErrNotFound, courtID)
	}

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) ListAllCourts(ctx context.Context) ([]response.CourtResponse, error) {
	courts, err := s.repo.Court.FindAll(ctx, false)
	if err != nil {
		s.log.Error("Failed to list all courts", zap.Error(err))
		return nil, fmt.Errorf("list all courts: %w", err)
	}

	return courtsToResponses(courts), nil
}

func (s *courtService) CreateCourt(ctx context.Context, req *request.CourtRequest) (*response.CourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create court validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	court := &entity.Court{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Description:  req.Description,
		PricePerHour: req.PricePerHour,
		OpenHour:     req.OpenHour,
		CloseHour:    req.CloseHour,
		IsActive:     true,
	}
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}

	if err := s.repo.Court.Create(ctx, court); err != nil {
		s.log.Error("Failed to create court", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create court: %w", err)
	}

	s.log.Info("Court created",
		zap.String("court_id", court.ID.String()),
		zap.String("name", court.Name),
		zap.Float64("price_per_hour", court.PricePerHour),
	)

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) UpdateCourt(ctx context.Context, courtID string, req *request.CourtRequest) (*response.CourtResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update court validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	court, err := s.findCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	court.Name = req.Name
	court.Description = req.Description
	court.PricePerHour = req.PricePerHour
	court.OpenHour = req.OpenHour
	court.CloseHour = req.CloseHour
	if req.IsActive != nil {
		court.IsActive = *req.IsActive
	}
	court.UpdatedAt = time.Now()

	if err := s.repo.Court.Update(ctx, court); err != nil {
		s.log.Error("Failed to update court", zap.Error(err), zap.String("court_id", courtID))
		return nil, fmt.Errorf("update court: %w", err)
	}

	s.log.Info("Court updated", zap.String("court_id", courtID))

	resp := response.CourtToResponse(court)
	return &resp, nil
}

func (s *courtService) DeactivateCourt(ctx context.Context, courtID string) error {
	court, err := s.findCourt(ctx, courtID)
	if err != nil {
		return err
	}

	// Deactivation hides the court from the booking flow; history stays
	if err := s.repo.Court.Deactivate(ctx, court.ID); err != nil {
		s.log.Error("Failed to deactivate court", zap.Error(err), zap.String("court_id", courtID))
		return fmt.Errorf("deactivate court: %w", err)
	}

	return nil
}

func (s *courtService) findCourt(ctx context.Context, courtID string) (*entity.Court, error) {
	id, err := uuid.Parse(courtID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid court ID %s", ErrValidation, courtID)
	}

	court, err := s.repo.Court.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find court %s: %w", courtID, err)
	}
	if court == nil {
		return nil, fmt.Errorf("%w: court %s", ErrNotFound, courtID)
	}

	return court, nil
}

func courtsToResponses(courts []*entity.Court) []response.CourtResponse {
	responses := make([]response.CourtResponse, len(courts))
	for i, court := range courts {
		responses[i] = response.CourtToResponse(court)
	}
	return responses
}
