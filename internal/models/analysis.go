package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AnalysisResult holds the derived signals for one submission's comment.
// Created exactly once per submission, never mutated afterwards.
type AnalysisResult struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SubmissionID    uint           `gorm:"uniqueIndex;not null" json:"submission_id"`
	Tags            datatypes.JSON `gorm:"type:json" json:"-"`
	SentimentScore  float64        `gorm:"not null" json:"sentiment_score"`
	UsefulnessScore int            `gorm:"not null" json:"usefulness_score"`
	IsFlagged       bool           `gorm:"not null" json:"is_flagged"`
	FlagReason      string         `gorm:"size:500" json:"flag_reason"`
	CreatedAt       time.Time      `json:"created_at"`
}

// SetTags serializes the tag list into the JSON storage column.
func (a *AnalysisResult) SetTags(tags []string) {
	data, err := json.Marshal(tags)
	if err != nil {
		a.Tags = datatypes.JSON([]byte("[]"))
		return
	}
	a.Tags = datatypes.JSON(data)
}

// TagList deserializes the stored tags into a Go slice.
func (a AnalysisResult) TagList() []string {
	if len(a.Tags) == 0 {
		return nil
	}

	var tags []string
	if err := json.Unmarshal(a.Tags, &tags); err != nil {
		return nil
	}

	return tags
}
