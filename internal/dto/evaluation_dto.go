package dto

import "github.com/keith666666666/APEER/internal/models"

// CriterionScoreRequest is one rubric score inside an evaluation submission.
// MaxScore is accepted for wire compatibility but ignored; the server always
// records a ceiling of 5.
type CriterionScoreRequest struct {
	CriterionName string `json:"criterion_name" validate:"required"`
	Score         int    `json:"score" validate:"gte=0,lte=5"`
	MaxScore      int    `json:"max_score"`
}

// EvaluationSubmissionRequest is the payload for submitting an evaluation.
type EvaluationSubmissionRequest struct {
	ActivityID      uint                    `json:"activity_id"`
	TargetStudentID uint                    `json:"target_student_id"`
	Comment         string                  `json:"comment"`
	Scores          []CriterionScoreRequest `json:"scores" validate:"dive"`
}

// AnalysisResultResponse serializes a comment analysis.
type AnalysisResultResponse struct {
	Tags            []string `json:"tags"`
	SentimentScore  float64  `json:"sentiment_score"`
	UsefulnessScore int      `json:"usefulness_score"`
	IsFlagged       bool     `json:"is_flagged"`
	FlagReason      string   `json:"flag_reason,omitempty"`
}

// EvaluationSubmissionResponse acknowledges a stored evaluation.
type EvaluationSubmissionResponse struct {
	ID       uint                   `json:"id"`
	Message  string                 `json:"message"`
	Analysis AnalysisResultResponse `json:"analysis"`
}

// PeerResponse identifies a student the caller may evaluate.
type PeerResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewAnalysisResultResponse converts an analysis model into a DTO.
func NewAnalysisResultResponse(model models.AnalysisResult) AnalysisResultResponse {
	tags := model.TagList()
	if tags == nil {
		tags = []string{}
	}

	return AnalysisResultResponse{
		Tags:            tags,
		SentimentScore:  model.SentimentScore,
		UsefulnessScore: model.UsefulnessScore,
		IsFlagged:       model.IsFlagged,
		FlagReason:      model.FlagReason,
	}
}

// NewPeerResponseSlice converts user models into peer DTOs.
func NewPeerResponseSlice(users []models.User) []PeerResponse {
	peers := make([]PeerResponse, 0, len(users))
	for _, user := range users {
		peers = append(peers, PeerResponse{ID: user.ID, Name: user.Name, Email: user.Email})
	}

	return peers
}
