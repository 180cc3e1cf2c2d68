package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// RubricService exposes scoring rubrics to evaluators and instructors.
type RubricService interface {
	List(ctx context.Context) ([]dto.RubricResponse, error)
	Get(ctx context.Context, id uint) (dto.RubricResponse, error)
	EnsureSampleRubrics(ctx context.Context) error
}

type rubricService struct {
	rubrics repository.RubricRepository
	logger  zerolog.Logger
}

// NewRubricService constructs a RubricService instance.
func NewRubricService(rubrics repository.RubricRepository, logger zerolog.Logger) RubricService {
	return &rubricService{
		rubrics: rubrics,
		logger:  logger.With().Str("component", "rubric_service").Logger(),
	}
}

func (s *rubricService) List(ctx context.Context) ([]dto.RubricResponse, error) {
	rubrics, err := s.rubrics.List(ctx)
	if err != nil {
		return nil, err
	}

	return dto.NewRubricResponseSlice(rubrics), nil
}

func (s *rubricService) Get(ctx context.Context, id uint) (dto.RubricResponse, error) {
	rubric, err := s.rubrics.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RubricResponse{}, ErrRubricNotFound
		}
		return dto.RubricResponse{}, err
	}

	return dto.NewRubricResponse(rubric), nil
}

// EnsureSampleRubrics installs the default rubric catalog. Existing rubrics
// with the same name are left untouched, so repeated calls are safe.
func (s *rubricService) EnsureSampleRubrics(ctx context.Context) error {
	for _, sample := range sampleRubrics() {
		exists, err := s.rubrics.ExistsByName(ctx, sample.Name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		rubric := sample
		if err := s.rubrics.Create(ctx, &rubric); err != nil {
			return err
		}
		s.logger.Info().Str("rubric", rubric.Name).Msg("sample rubric created")
	}

	return nil
}

func sampleRubrics() []models.Rubric {
	return []models.Rubric{
		{
			Name: "Team Collaboration",
			Criteria: []models.RubricCriterion{
				{Name: "Communication", Weight: 30, MaxScore: 5},
				{Name: "Contribution", Weight: 40, MaxScore: 5},
				{Name: "Reliability", Weight: 30, MaxScore: 5},
			},
		},
		{
			Name: "Code Quality",
			Criteria: []models.RubricCriterion{
				{Name: "Clean Code", Weight: 35, MaxScore: 5},
				{Name: "Documentation", Weight: 25, MaxScore: 5},
				{Name: "Testing", Weight: 40, MaxScore: 5},
			},
		},
		{
			Name: "Presentation Skills",
			Criteria: []models.RubricCriterion{
				{Name: "Clarity", Weight: 40, MaxScore: 5},
				{Name: "Engagement", Weight: 30, MaxScore: 5},
				{Name: "Content", Weight: 30, MaxScore: 5},
			},
		},
	}
}
