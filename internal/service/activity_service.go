package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// ActivityService manages evaluation activities.
type ActivityService interface {
	List(ctx context.Context) ([]dto.ActivityResponse, error)
	ListActive(ctx context.Context) ([]dto.ActivityResponse, error)
	Create(ctx context.Context, request dto.CreateActivityRequest) (dto.ActivityResponse, error)
}

type activityService struct {
	activities  repository.ActivityRepository
	rubrics     repository.RubricRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewActivityService constructs an ActivityService instance.
func NewActivityService(activities repository.ActivityRepository, rubrics repository.RubricRepository, submissions repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) ActivityService {
	return &activityService{
		activities:  activities,
		rubrics:     rubrics,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "activity_service").Logger(),
	}
}

func (s *activityService) List(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.activities.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, activities)
}

func (s *activityService) ListActive(ctx context.Context) ([]dto.ActivityResponse, error) {
	activities, err := s.activities.ListByStatus(ctx, models.ActivityStatusActive)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, activities)
}

func (s *activityService) Create(ctx context.Context, request dto.CreateActivityRequest) (dto.ActivityResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.ActivityResponse{}, err
	}

	if _, err := s.rubrics.GetByID(ctx, request.RubricID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ActivityResponse{}, ErrRubricNotFound
		}
		return dto.ActivityResponse{}, err
	}

	dueDate, err := parseDueDate(request.DueDate)
	if err != nil {
		return dto.ActivityResponse{}, err
	}

	activity := models.Activity{
		Name:         request.Name,
		RubricID:     request.RubricID,
		DueDate:      dueDate,
		Status:       models.ActivityStatusActive,
		Participants: len(request.ParticipantIDs),
	}

	if err := s.activities.Create(ctx, &activity); err != nil {
		return dto.ActivityResponse{}, err
	}

	s.logger.Info().Uint("activity_id", activity.ID).Str("name", activity.Name).Msg("activity created")

	return dto.NewActivityResponse(activity, 0), nil
}

// parseDueDate accepts a full timestamp or a bare date; bare dates extend to
// the end of the day so the deadline covers the whole date named.
func parseDueDate(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return parsed, nil
	}

	if parsed, err := time.Parse("2006-01-02", raw); err == nil {
		return parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second), nil
	}

	return time.Time{}, ErrInvalidDueDate
}

func (s *activityService) toResponses(ctx context.Context, activities []models.Activity) ([]dto.ActivityResponse, error) {
	responses := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		count, err := s.submissions.CountByActivity(ctx, activity.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, dto.NewActivityResponse(activity, int(count)))
	}

	return responses, nil
}
