package models

import "time"

// User represents a platform account: a student, teacher or administrator.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"size:32;not null" json:"role"`
	Status    string    `gorm:"size:32;not null" json:"status"`
	AvatarURL string    `gorm:"size:512" json:"avatar_url"`
	GroupID   *uint     `json:"group_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	// RoleStudent identifies accounts that submit and receive evaluations.
	RoleStudent = "student"
	// RoleTeacher identifies accounts with access to class analytics.
	RoleTeacher = "teacher"
	// RoleAdmin identifies accounts with administrative privileges.
	RoleAdmin = "admin"
)

const (
	// UserStatusActive marks an account that may participate in evaluations.
	UserStatusActive = "active"
	// UserStatusInactive marks a disabled account.
	UserStatusInactive = "inactive"
)

// IsActive reports whether the account may participate in evaluations.
func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}
