package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// Course label and submission rate are fixed values; no roster-expectation
// model exists that could make them real.
const (
	className           = "CS401 - Software Engineering"
	fixedSubmissionRate = 85
)

// TeacherService aggregates class-wide analytics for instructors.
type TeacherService interface {
	ClassAnalytics(ctx context.Context) (dto.ClassAnalyticsResponse, error)
	StudentList(ctx context.Context) ([]dto.StudentSummaryResponse, error)
}

type teacherService struct {
	users       repository.UserRepository
	submissions repository.SubmissionRepository
	analyses    repository.AnalysisRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	tracer      trace.Tracer
	logger      zerolog.Logger
}

// NewTeacherService constructs the class-wide aggregator.
func NewTeacherService(users repository.UserRepository, submissions repository.SubmissionRepository, analyses repository.AnalysisRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) TeacherService {
	return &teacherService{
		users:       users,
		submissions: submissions,
		analyses:    analyses,
		cache:       cache,
		cacheTTL:    ttl,
		tracer:      otel.Tracer("github.com/keith666666666/APEER/internal/service/teacher"),
		logger:      logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) ClassAnalytics(ctx context.Context) (dto.ClassAnalyticsResponse, error) {
	const cacheKey = "analytics:class"
	ctx, span := s.tracer.Start(ctx, "analytics.class_aggregate")
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.ClassAnalyticsResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read analytics cache")
		}
	}

	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_students_failed")
		return dto.ClassAnalyticsResponse{}, err
	}

	// Class average over per-student AVG(score*20), excluding students with
	// no scored submissions from the denominator.
	var sum float64
	var scored int
	for _, student := range students {
		avg, err := s.submissions.AverageScaledScore(ctx, student.ID)
		if err != nil {
			span.RecordError(err)
			return dto.ClassAnalyticsResponse{}, err
		}
		if avg == nil {
			continue
		}
		sum += *avg
		scored++
	}

	classAverage := 0.0
	if scored > 0 {
		classAverage = sum / float64(scored)
	}

	flagged, err := s.analyses.ListFlagged(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_flagged_failed")
		return dto.ClassAnalyticsResponse{}, err
	}

	// Flags are attributed to the evaluator whose scoring pattern triggered
	// them, de-duplicated per student.
	seen := make(map[uint]struct{}, len(flagged))
	flaggedStudents := make([]dto.FlaggedStudentResponse, 0, len(flagged))
	for _, entry := range flagged {
		if _, ok := seen[entry.Evaluator.ID]; ok {
			continue
		}
		seen[entry.Evaluator.ID] = struct{}{}
		flaggedStudents = append(flaggedStudents, dto.FlaggedStudentResponse{
			ID:       entry.Evaluator.ID,
			Name:     entry.Evaluator.Name,
			Reason:   entry.Analysis.FlagReason,
			Severity: "HIGH",
		})
	}

	response := dto.ClassAnalyticsResponse{
		Name:            className,
		TotalStudents:   len(students),
		AverageScore:    classAverage,
		ClassAverage:    classAverage,
		SubmissionRate:  fixedSubmissionRate,
		BiasFlags:       len(flaggedStudents),
		FlaggedStudents: flaggedStudents,
	}

	span.SetAttributes(
		attribute.Int("analytics.total_students", len(students)),
		attribute.Int("analytics.bias_flags", len(flaggedStudents)),
	)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store analytics cache")
			}
		}
	}

	return response, nil
}

func (s *teacherService) StudentList(ctx context.Context) ([]dto.StudentSummaryResponse, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.StudentSummaryResponse, 0, len(students))
	for _, student := range students {
		given, err := s.submissions.CountByEvaluator(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		received, err := s.submissions.CountByTarget(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		avgScore, err := s.submissions.AverageScaledScore(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		avgUsefulness, err := s.analyses.AverageUsefulnessGiven(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		biased, err := s.hasFlaggedSubmission(ctx, student.ID)
		if err != nil {
			return nil, err
		}

		summary := dto.StudentSummaryResponse{
			ID:                  student.ID,
			Name:                student.Name,
			Email:               student.Email,
			EvaluationsGiven:    int(given),
			EvaluationsReceived: int(received),
			// Roster heuristic, distinct from the dashboard formula.
			ParticipationRate: minInt(100, int(given)*10),
			IsBiased:          biased,
			PendingReviews:    0,
		}
		if avgScore != nil {
			summary.OverallScore = int(*avgScore)
		}
		if avgUsefulness != nil {
			summary.FeedbackQuality = int(*avgUsefulness)
		}
		if biased {
			summary.BiasScore = 2.5
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func (s *teacherService) hasFlaggedSubmission(ctx context.Context, evaluatorID uint) (bool, error) {
	given, err := s.submissions.ListByEvaluator(ctx, evaluatorID)
	if err != nil {
		return false, err
	}

	for _, submission := range given {
		if submission.Analysis != nil && submission.Analysis.IsFlagged {
			return true, nil
		}
	}

	return false, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
