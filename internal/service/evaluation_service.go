package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/analyzer"
	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// Every recorded criterion score carries this ceiling, regardless of what
// the request claimed.
const criterionMaxScore = 5

// EvaluationService orchestrates peer-evaluation submissions.
type EvaluationService interface {
	Submit(ctx context.Context, evaluatorEmail string, request dto.EvaluationSubmissionRequest) (dto.EvaluationSubmissionResponse, error)
	StudentsToEvaluate(ctx context.Context, evaluatorEmail string) ([]dto.PeerResponse, error)
}

type evaluationService struct {
	users       repository.UserRepository
	activities  repository.ActivityRepository
	submissions repository.SubmissionRepository
	analyzer    *analyzer.Analyzer
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	cache       *redis.Client
	logger      zerolog.Logger
}

// NewEvaluationService constructs an EvaluationService instance.
func NewEvaluationService(users repository.UserRepository, activities repository.ActivityRepository, submissions repository.SubmissionRepository, commentAnalyzer *analyzer.Analyzer, validate *validator.Validate, cache *redis.Client, logger zerolog.Logger) EvaluationService {
	return &evaluationService{
		users:       users,
		activities:  activities,
		submissions: submissions,
		analyzer:    commentAnalyzer,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		cache:       cache,
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
	}
}

func (s *evaluationService) Submit(ctx context.Context, evaluatorEmail string, request dto.EvaluationSubmissionRequest) (dto.EvaluationSubmissionResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.EvaluationSubmissionResponse{}, err
	}

	evaluator, err := s.users.GetByEmail(ctx, evaluatorEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationSubmissionResponse{}, ErrEvaluatorNotFound
		}
		return dto.EvaluationSubmissionResponse{}, err
	}

	if request.TargetStudentID == 0 {
		return dto.EvaluationSubmissionResponse{}, ErrTargetRequired
	}

	target, err := s.users.GetByID(ctx, request.TargetStudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationSubmissionResponse{}, ErrTargetNotFound
		}
		return dto.EvaluationSubmissionResponse{}, err
	}

	if request.ActivityID == 0 {
		return dto.EvaluationSubmissionResponse{}, ErrActivityRequired
	}

	activity, err := s.activities.GetByID(ctx, request.ActivityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationSubmissionResponse{}, ErrActivityNotFound
		}
		return dto.EvaluationSubmissionResponse{}, err
	}

	exists, err := s.submissions.Exists(ctx, evaluator.ID, target.ID, activity.ID)
	if err != nil {
		return dto.EvaluationSubmissionResponse{}, err
	}
	if exists {
		return dto.EvaluationSubmissionResponse{}, ErrAlreadyEvaluated
	}

	comment := s.sanitizer.Sanitize(request.Comment)

	submission := models.Submission{
		EvaluatorID: evaluator.ID,
		TargetID:    target.ID,
		ActivityID:  activity.ID,
		Comment:     comment,
	}

	scores := make([]models.CriterionScore, 0, len(request.Scores))
	for _, score := range request.Scores {
		scores = append(scores, models.CriterionScore{
			CriterionName: score.CriterionName,
			Score:         score.Score,
			MaxScore:      criterionMaxScore,
		})
	}

	result := s.analyzer.Analyze(comment)
	analysis := models.AnalysisResult{
		SentimentScore:  result.SentimentScore,
		UsefulnessScore: result.UsefulnessScore,
		IsFlagged:       result.IsFlagged,
		FlagReason:      result.FlagReason,
	}
	analysis.SetTags(result.Tags)

	if err := s.submissions.CreateWithAnalysis(ctx, &submission, scores, &analysis); err != nil {
		// The unique index on (evaluator, target, activity) closes the gap
		// between the existence check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.EvaluationSubmissionResponse{}, ErrAlreadyEvaluated
		}
		s.logger.Error().Err(err).Uint("evaluator_id", evaluator.ID).Uint("target_id", target.ID).Msg("atomic submission write failed")
		return dto.EvaluationSubmissionResponse{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	s.invalidateDashboards(ctx, evaluator.ID, target.ID)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Uint("evaluator_id", evaluator.ID).
		Uint("target_id", target.ID).
		Uint("activity_id", activity.ID).
		Bool("flagged", analysis.IsFlagged).
		Msg("evaluation submitted")

	return dto.EvaluationSubmissionResponse{
		ID:       submission.ID,
		Message:  "Evaluation submitted successfully",
		Analysis: dto.NewAnalysisResultResponse(analysis),
	}, nil
}

func (s *evaluationService) StudentsToEvaluate(ctx context.Context, evaluatorEmail string) ([]dto.PeerResponse, error) {
	evaluator, err := s.users.GetByEmail(ctx, evaluatorEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEvaluatorNotFound
		}
		return nil, err
	}

	var candidates []models.User
	if evaluator.GroupID != nil {
		candidates, err = s.users.ListByGroup(ctx, *evaluator.GroupID)
	} else {
		// Ungrouped students evaluate class-wide.
		candidates, err = s.users.ListByRole(ctx, models.RoleStudent)
	}
	if err != nil {
		return nil, err
	}

	peers := make([]models.User, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate.ID == evaluator.ID || !candidate.IsActive() {
			continue
		}
		peers = append(peers, candidate)
	}

	return dto.NewPeerResponseSlice(peers), nil
}

// invalidateDashboards drops cached aggregates touched by a new submission.
func (s *evaluationService) invalidateDashboards(ctx context.Context, evaluatorID, targetID uint) {
	if s.cache == nil {
		return
	}

	keys := []string{
		fmt.Sprintf("dashboard:student:%d", evaluatorID),
		fmt.Sprintf("dashboard:student:%d", targetID),
		"analytics:class",
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}
