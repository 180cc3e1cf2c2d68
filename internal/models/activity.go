package models

import "time"

// Activity is a peer-evaluation round tied to a rubric.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	RubricID     uint      `gorm:"not null" json:"rubric_id"`
	Rubric       Rubric    `gorm:"constraint:OnUpdate:CASCADE" json:"rubric"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`
	Status       string    `gorm:"size:32;not null" json:"status"`
	Participants int       `gorm:"not null;default:0" json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

const (
	// ActivityStatusActive marks an activity that is open for submissions.
	ActivityStatusActive = "active"
	// ActivityStatusClosed marks an activity whose evaluation window ended.
	ActivityStatusClosed = "closed"
)

// IsPastDue returns true when the activity deadline has already passed.
func (a Activity) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
