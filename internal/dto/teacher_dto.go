package dto

// ClassAnalyticsResponse summarizes class-wide evaluation analytics.
type ClassAnalyticsResponse struct {
	Name            string                   `json:"name"`
	TotalStudents   int                      `json:"total_students"`
	AverageScore    float64                  `json:"average_score"`
	ClassAverage    float64                  `json:"class_average"`
	SubmissionRate  int                      `json:"submission_rate"`
	BiasFlags       int                      `json:"bias_flags"`
	FlaggedStudents []FlaggedStudentResponse `json:"flagged_students"`
}

// FlaggedStudentResponse identifies an evaluator whose submission was
// flagged by the analyzer.
type FlaggedStudentResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
	Severity string `json:"severity"`
}

// StudentSummaryResponse is one roster row on the teacher's student list.
type StudentSummaryResponse struct {
	ID                  uint    `json:"id"`
	Name                string  `json:"name"`
	Email               string  `json:"email"`
	OverallScore        int     `json:"overall_score"`
	EvaluationsGiven    int     `json:"evaluations_given"`
	EvaluationsReceived int     `json:"evaluations_received"`
	FeedbackQuality     int     `json:"feedback_quality"`
	ParticipationRate   int     `json:"participation_rate"`
	IsBiased            bool    `json:"is_biased"`
	BiasScore           float64 `json:"bias_score"`
	PendingReviews      int     `json:"pending_reviews"`
}
