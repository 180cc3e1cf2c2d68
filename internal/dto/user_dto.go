package dto

import "github.com/keith666666666/APEER/internal/models"

// UserResponse serializes a user account.
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url,omitempty"`
	GroupID   *uint  `json:"group_id,omitempty"`
}

// UpdateProfileRequest updates the caller's own profile fields.
type UpdateProfileRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// UpdateUserStatusRequest toggles an account between active and inactive.
type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// NewUserResponse converts a user model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		Status:    model.Status,
		AvatarURL: model.AvatarURL,
		GroupID:   model.GroupID,
	}
}

// NewUserResponseSlice converts user models into DTOs.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}

	return responses
}
