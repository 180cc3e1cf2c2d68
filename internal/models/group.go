package models

import "time"

// Group is a peer-evaluation group. Membership is a back-reference on User
// (users.group_id), resolved by lookup rather than held as an owned
// collection, so moving a student between groups never leaves a stale list.
type Group struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	ActivityID *uint     `json:"activity_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
