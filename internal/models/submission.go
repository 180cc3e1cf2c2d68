package models

import "time"

// Submission is one evaluation of a target student by an evaluator within an
// activity. It owns its criterion scores and its analysis result; deleting a
// submission cascades to both. The (evaluator, target, activity) triple is
// unique at the storage layer so concurrent duplicate submissions cannot
// both commit.
type Submission struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	EvaluatorID uint             `gorm:"not null;uniqueIndex:idx_submission_triple" json:"evaluator_id"`
	TargetID    uint             `gorm:"not null;uniqueIndex:idx_submission_triple" json:"target_id"`
	ActivityID  uint             `gorm:"not null;uniqueIndex:idx_submission_triple" json:"activity_id"`
	Comment     string           `gorm:"type:text" json:"comment"`
	Evaluator   User             `gorm:"foreignKey:EvaluatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"evaluator"`
	Target      User             `gorm:"foreignKey:TargetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"target"`
	Activity    Activity         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"activity"`
	Scores      []CriterionScore `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"scores"`
	Analysis    *AnalysisResult  `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"analysis"`
	CreatedAt   time.Time        `json:"created_at"`
}

// IsSelfEvaluation reports whether the evaluator scored themselves.
func (s Submission) IsSelfEvaluation() bool {
	return s.EvaluatorID == s.TargetID
}

// ScoreTotals sums the achieved and maximum points across all criterion
// scores of this submission.
func (s Submission) ScoreTotals() (total, max int) {
	for _, score := range s.Scores {
		total += score.Score
		max += score.MaxScore
	}
	return total, max
}

// CriterionScore records a single rubric-criterion score for a submission.
// CriterionName is a denormalized plain string, not a reference to a live
// rubric criterion, so historical scores survive rubric edits.
type CriterionScore struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	SubmissionID  uint   `gorm:"not null" json:"submission_id"`
	CriterionName string `gorm:"size:255;not null" json:"criterion_name"`
	Score         int    `gorm:"not null" json:"score"`
	MaxScore      int    `gorm:"not null" json:"max_score"`
}
