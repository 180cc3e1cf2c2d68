package models

import "time"

// Rubric defines the named criteria an evaluation is scored against.
type Rubric struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Criteria  []RubricCriterion `gorm:"foreignKey:RubricID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"criteria"`
	CreatedAt time.Time         `json:"created_at"`
}

// RubricCriterion is a single scored dimension of a rubric. Weight is
// informational only; it is not normalized into any score computation.
type RubricCriterion struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RubricID uint   `gorm:"not null" json:"rubric_id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Weight   int    `gorm:"not null" json:"weight"`
	MaxScore int    `gorm:"not null" json:"max_score"`
}
