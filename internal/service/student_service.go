package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/analyzer"
	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

const sentimentTrendLength = 5

// StudentService derives per-student metrics from stored evaluations. Every
// aggregate has a zero or fallback value, so dashboards render for brand-new
// students without any history.
type StudentService interface {
	Dashboard(ctx context.Context, studentEmail string) (dto.StudentDashboardResponse, error)
	FeedbackHistory(ctx context.Context, studentEmail string) ([]dto.FeedbackHistoryResponse, error)
	PersonalReport(ctx context.Context, studentEmail string) ([]byte, error)
}

type studentService struct {
	users       repository.UserRepository
	submissions repository.SubmissionRepository
	analyses    repository.AnalysisRepository
	analyzer    *analyzer.Analyzer
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
	now         func() time.Time
}

// NewStudentService builds the per-student metrics aggregator.
func NewStudentService(users repository.UserRepository, submissions repository.SubmissionRepository, analyses repository.AnalysisRepository, commentAnalyzer *analyzer.Analyzer, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) StudentService {
	return &studentService{
		users:       users,
		submissions: submissions,
		analyses:    analyses,
		analyzer:    commentAnalyzer,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "student_service").Logger(),
		now:         time.Now,
	}
}

func (s *studentService) Dashboard(ctx context.Context, studentEmail string) (dto.StudentDashboardResponse, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentDashboardResponse{}, ErrUserNotFound
		}
		return dto.StudentDashboardResponse{}, err
	}

	cacheKey := fmt.Sprintf("dashboard:student:%d", student.ID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.StudentDashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("student_id", student.ID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	response, err := s.buildDashboard(ctx, student)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *studentService) buildDashboard(ctx context.Context, student models.User) (dto.StudentDashboardResponse, error) {
	given, err := s.submissions.CountByEvaluator(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	receivedCount, err := s.submissions.CountByTarget(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	received, err := s.submissions.ListByTarget(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	avgUsefulness, err := s.analyses.AverageUsefulnessGiven(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	feedbackQuality := 0
	if avgUsefulness != nil {
		feedbackQuality = int(*avgUsefulness)
	}

	trend, trendSource, err := s.sentimentTrend(ctx, student.ID)
	if err != nil {
		return dto.StudentDashboardResponse{}, err
	}

	comments := make([]string, 0, len(received))
	for _, submission := range received {
		if submission.Comment != "" {
			comments = append(comments, submission.Comment)
		}
	}

	return dto.StudentDashboardResponse{
		ID:                   student.ID,
		Name:                 student.Name,
		Email:                student.Email,
		OverallScore:         overallScore(received),
		EvaluationsGiven:     int(given),
		EvaluationsReceived:  int(receivedCount),
		FeedbackQuality:      feedbackQuality,
		ParticipationRate:    participationRate(given, receivedCount),
		SentimentTrend:       trend,
		SentimentTrendSource: trendSource,
		PendingReviews:       0,
		AISummary:            s.analyzer.Summarize(comments),
		FeedbackSummary:      buildInsights(received),
		RecentActivity:       recentActivity(received),
	}, nil
}

// overallScore is sum(score)/sum(maxScore) across every criterion score the
// student received, scaled to 0-100 and truncated. Zero when there is
// nothing to score.
func overallScore(received []models.Submission) int {
	total := 0
	max := 0
	for _, submission := range received {
		subTotal, subMax := submission.ScoreTotals()
		total += subTotal
		max += subMax
	}

	if max == 0 {
		return 0
	}

	return int(float64(total) / float64(max) * 100)
}

// participationRate approximates submitted/assigned using
// assigned = max(received, given), since no real assignment table exists.
// Changing this heuristic changes visible dashboard numbers.
func participationRate(given, received int64) int {
	assigned := received
	if given > assigned {
		assigned = given
	}

	if assigned == 0 {
		return 0
	}

	rate := int(float64(given) / float64(assigned) * 100)
	if rate > 100 {
		return 100
	}
	if rate < 0 {
		return 0
	}
	return rate
}

func (s *studentService) sentimentTrend(ctx context.Context, studentID uint) ([]dto.SentimentTrendPoint, string, error) {
	analyses, err := s.analyses.ListRecentForTarget(ctx, studentID, sentimentTrendLength)
	if err != nil {
		return nil, "", err
	}

	if len(analyses) == 0 {
		// Empty-state placeholder so the chart renders for new students.
		placeholder := make([]dto.SentimentTrendPoint, 0, 4)
		for i := 1; i <= 4; i++ {
			placeholder = append(placeholder, dto.SentimentTrendPoint{
				Week:  fmt.Sprintf("W%d", i),
				Score: 70 + i*5,
			})
		}
		return placeholder, dto.SentimentTrendSourcePlaceholder, nil
	}

	trend := make([]dto.SentimentTrendPoint, 0, len(analyses))
	for i, analysis := range analyses {
		trend = append(trend, dto.SentimentTrendPoint{
			Week:  fmt.Sprintf("Eval %d", i+1),
			Score: int((analysis.SentimentScore + 1.0) / 2.0 * 100),
		})
	}

	return trend, dto.SentimentTrendSourceAnalysis, nil
}

// buildInsights scans the tags of every received analysis and turns
// recurring patterns (strictly more than 3 occurrences) into canned
// strengths, weaknesses and tips. Lists are never left empty.
func buildInsights(received []models.Submission) dto.FeedbackSummaryResponse {
	var allTags []string
	for _, submission := range received {
		if submission.Analysis != nil {
			allTags = append(allTags, submission.Analysis.TagList()...)
		}
	}

	var constructive, vague, positive, specific int
	for _, tag := range allTags {
		lower := strings.ToLower(tag)
		if strings.Contains(lower, "constructive") {
			constructive++
		}
		if strings.Contains(lower, "vague") {
			vague++
		}
		if strings.Contains(lower, "positive") || strings.Contains(lower, "encouraging") {
			positive++
		}
		if strings.Contains(lower, "specific") {
			specific++
		}
	}

	var strengths, weaknesses, tips []string
	if constructive > 3 {
		strengths = append(strengths, "Receives constructive feedback consistently")
	}
	if positive > 3 {
		strengths = append(strengths, "Peers provide positive and encouraging feedback")
	}
	if specific > 3 {
		strengths = append(strengths, "Feedback is specific and actionable")
	}
	if vague > 3 {
		weaknesses = append(weaknesses, "Some feedback could be more specific")
		tips = append(tips, "Ask peers for concrete examples in their evaluations")
	}

	if len(strengths) == 0 {
		strengths = append(strengths, "Continue building on your collaborative skills")
	}
	if len(weaknesses) == 0 {
		weaknesses = append(weaknesses, "Focus on continuous improvement in all areas")
	}
	if len(tips) == 0 {
		tips = append(tips, "Engage actively in peer evaluations to improve feedback quality")
	}

	themes := distinctTags(allTags, 5)
	if len(themes) == 0 {
		themes = []string{"Collaboration", "Communication", "Teamwork"}
	}

	return dto.FeedbackSummaryResponse{
		Strengths:  strings.Join(strengths, ". "),
		Weaknesses: strings.Join(weaknesses, ". "),
		Themes:     themes,
		Tips:       tips,
	}
}

func distinctTags(tags []string, limit int) []string {
	seen := make(map[string]struct{}, len(tags))
	distinct := make([]string, 0, limit)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		distinct = append(distinct, tag)
		if len(distinct) == limit {
			break
		}
	}

	return distinct
}

// recentActivity previews the three most recently received evaluations. The
// evaluator is masked unconditionally on this surface, self-evaluations
// included.
func recentActivity(received []models.Submission) []dto.RecentActivityResponse {
	activities := make([]dto.RecentActivityResponse, 0, 3)
	for i, submission := range received {
		if i >= 3 {
			break
		}

		score := 0
		if total, max := submission.ScoreTotals(); max > 0 {
			score = int(float64(total) / float64(max) * 100)
		}

		preview := submission.Comment
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}

		activities = append(activities, dto.RecentActivityResponse{
			SubmissionID:   submission.ID,
			ActivityName:   submission.Activity.Name,
			EvaluatorName:  "Anonymous Peer",
			CommentPreview: preview,
			Score:          score,
			SubmittedAt:    submission.CreatedAt,
		})
	}

	return activities
}

func (s *studentService) FeedbackHistory(ctx context.Context, studentEmail string) ([]dto.FeedbackHistoryResponse, error) {
	student, err := s.users.GetByEmail(ctx, studentEmail)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	received, err := s.submissions.ListByTarget(ctx, student.ID)
	if err != nil {
		return nil, err
	}

	history := make([]dto.FeedbackHistoryResponse, 0, len(received))
	for _, submission := range received {
		entry := dto.FeedbackHistoryResponse{
			ID:               submission.ID,
			Comment:          submission.Comment,
			EvaluatorName:    "Anonymous Peer",
			SentimentLabel:   "Neutral",
			PrimaryTag:       "Neutral",
			SubmittedAt:      submission.CreatedAt,
			ActivityName:     submission.Activity.Name,
			IsSelfEvaluation: submission.IsSelfEvaluation(),
		}

		// Evaluator identity is revealed only when the student evaluated
		// themselves; every peer stays anonymous.
		if entry.IsSelfEvaluation {
			entry.EvaluatorName = submission.Evaluator.Name
		}

		if submission.Analysis != nil {
			entry.SentimentScore = submission.Analysis.SentimentScore
			entry.SentimentLabel = sentimentLabel(submission.Analysis.SentimentScore)
			entry.PrimaryTag = primaryTag(submission.Analysis.TagList())
		}

		if total, max := submission.ScoreTotals(); max > 0 {
			entry.OverallScore = float64(total) / float64(max) * 100
		}

		scores := make([]dto.RubricScoreResponse, 0, len(submission.Scores))
		for _, score := range submission.Scores {
			scores = append(scores, dto.RubricScoreResponse{
				CriterionName: score.CriterionName,
				Score:         score.Score,
				MaxScore:      score.MaxScore,
			})
		}
		entry.RubricScores = scores

		history = append(history, entry)
	}

	return history, nil
}

func sentimentLabel(score float64) string {
	switch {
	case score > 0.3:
		return "Positive"
	case score < -0.3:
		return "Negative"
	default:
		return "Neutral"
	}
}

// primaryTag picks the headline tag for a history entry, preferring upbeat
// tags over critical ones and falling back to the first tag present.
func primaryTag(tags []string) string {
	if len(tags) == 0 {
		return "Neutral"
	}

	has := func(want string) bool {
		for _, tag := range tags {
			if tag == want {
				return true
			}
		}
		return false
	}

	switch {
	case has("Positive"):
		return "Positive"
	case has("Constructive"):
		return "Constructive"
	case has("Negative"):
		return "Negative"
	case has("Vague"):
		return "Vague"
	default:
		return tags[0]
	}
}

func (s *studentService) PersonalReport(ctx context.Context, studentEmail string) ([]byte, error) {
	dashboard, err := s.Dashboard(ctx, studentEmail)
	if err != nil {
		return nil, err
	}

	divider := strings.Repeat("=", 60)
	section := strings.Repeat("-", 60)

	var report strings.Builder
	fmt.Fprintf(&report, "%s\nAPEER - Personal Performance Report\n%s\n\n", divider, divider)
	fmt.Fprintf(&report, "Student Name: %s\n", dashboard.Name)
	fmt.Fprintf(&report, "Email: %s\n", dashboard.Email)
	fmt.Fprintf(&report, "Report Generated: %s\n\n", s.now().Format(time.RFC3339))
	fmt.Fprintf(&report, "%s\nPERFORMANCE SUMMARY\n%s\n", section, section)
	fmt.Fprintf(&report, "Overall Score: %d%%\n", dashboard.OverallScore)
	fmt.Fprintf(&report, "Participation Rate: %d%%\n", dashboard.ParticipationRate)
	fmt.Fprintf(&report, "Evaluations Given: %d\n", dashboard.EvaluationsGiven)
	fmt.Fprintf(&report, "Evaluations Received: %d\n\n", dashboard.EvaluationsReceived)
	fmt.Fprintf(&report, "%s\nAI-GENERATED INSIGHTS\n%s\n", section, section)
	fmt.Fprintf(&report, "Strengths:\n  - %s\n", dashboard.FeedbackSummary.Strengths)
	fmt.Fprintf(&report, "\nAreas for Growth:\n  - %s\n", dashboard.FeedbackSummary.Weaknesses)
	if len(dashboard.FeedbackSummary.Tips) > 0 {
		report.WriteString("\nRecommendations:\n")
		for _, tip := range dashboard.FeedbackSummary.Tips {
			fmt.Fprintf(&report, "  - %s\n", tip)
		}
	}
	fmt.Fprintf(&report, "\n%s\nEnd of Report\n%s\n", divider, divider)

	return []byte(report.String()), nil
}
