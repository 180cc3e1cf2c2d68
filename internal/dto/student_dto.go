package dto

import "time"

// StudentDashboardResponse aggregates per-student evaluation metrics.
type StudentDashboardResponse struct {
	ID                   uint                     `json:"id"`
	Name                 string                   `json:"name"`
	Email                string                   `json:"email"`
	OverallScore         int                      `json:"overall_score"`
	EvaluationsGiven     int                      `json:"evaluations_given"`
	EvaluationsReceived  int                      `json:"evaluations_received"`
	FeedbackQuality      int                      `json:"feedback_quality"`
	ParticipationRate    int                      `json:"participation_rate"`
	SentimentTrend       []SentimentTrendPoint    `json:"sentiment_trend"`
	SentimentTrendSource string                   `json:"sentiment_trend_source"`
	PendingReviews       int                      `json:"pending_reviews"`
	AISummary            string                   `json:"ai_summary"`
	FeedbackSummary      FeedbackSummaryResponse  `json:"feedback_summary"`
	RecentActivity       []RecentActivityResponse `json:"recent_activity"`
}

// Sentiment trend sources: real analysis data versus the empty-state
// placeholder returned for students with no received evaluations.
const (
	SentimentTrendSourceAnalysis    = "analysis"
	SentimentTrendSourcePlaceholder = "placeholder"
)

// SentimentTrendPoint is one labelled point on the dashboard trend chart.
type SentimentTrendPoint struct {
	Week  string `json:"week"`
	Score int    `json:"score"`
}

// FeedbackSummaryResponse carries the personalized insight block.
type FeedbackSummaryResponse struct {
	Strengths  string   `json:"strengths"`
	Weaknesses string   `json:"weaknesses"`
	Themes     []string `json:"themes"`
	Tips       []string `json:"tips"`
}

// RecentActivityResponse previews one recently received evaluation. The
// evaluator is always masked, including for self-evaluations.
type RecentActivityResponse struct {
	SubmissionID   uint      `json:"submission_id"`
	ActivityName   string    `json:"activity_name"`
	EvaluatorName  string    `json:"evaluator_name"`
	CommentPreview string    `json:"comment_preview"`
	Score          int       `json:"score"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// RubricScoreResponse is one criterion score in a feedback history entry.
type RubricScoreResponse struct {
	CriterionName string `json:"criterion_name"`
	Score         int    `json:"score"`
	MaxScore      int    `json:"max_score"`
}

// FeedbackHistoryResponse is one received evaluation rendered for the
// evaluatee. The evaluator name is revealed only for self-evaluations.
type FeedbackHistoryResponse struct {
	ID               uint                  `json:"id"`
	Comment          string                `json:"comment"`
	EvaluatorName    string                `json:"evaluator_name"`
	SentimentScore   float64               `json:"sentiment_score"`
	SentimentLabel   string                `json:"sentiment_label"`
	PrimaryTag       string                `json:"primary_tag"`
	OverallScore     float64               `json:"overall_score"`
	SubmittedAt      time.Time             `json:"submitted_at"`
	ActivityName     string                `json:"activity_name"`
	RubricScores     []RubricScoreResponse `json:"rubric_scores"`
	IsSelfEvaluation bool                  `json:"is_self_evaluation"`
}
