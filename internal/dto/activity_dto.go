package dto

import (
	"time"

	"github.com/keith666666666/APEER/internal/models"
)

// CreateActivityRequest creates a new evaluation activity. DueDate accepts
// either a date (YYYY-MM-DD, normalized to end of day) or a full timestamp.
type CreateActivityRequest struct {
	Name           string `json:"name" validate:"required,min=3"`
	RubricID       uint   `json:"rubric_id" validate:"required,gt=0"`
	DueDate        string `json:"due_date" validate:"required"`
	ParticipantIDs []uint `json:"participant_ids"`
}

// ActivityResponse serializes an activity with its submission progress.
type ActivityResponse struct {
	ID                uint      `json:"id"`
	Name              string    `json:"name"`
	RubricID          uint      `json:"rubric_id"`
	DueDate           time.Time `json:"due_date"`
	Status            string    `json:"status"`
	Participants      int       `json:"participants"`
	SubmissionCount   int       `json:"submission_count"`
	TotalParticipants int       `json:"total_participants"`
}

// NewActivityResponse converts an activity model into a DTO.
func NewActivityResponse(model models.Activity, submissionCount int) ActivityResponse {
	return ActivityResponse{
		ID:                model.ID,
		Name:              model.Name,
		RubricID:          model.RubricID,
		DueDate:           model.DueDate,
		Status:            model.Status,
		Participants:      model.Participants,
		SubmissionCount:   submissionCount,
		TotalParticipants: model.Participants,
	}
}
