package dto

import "github.com/keith666666666/APEER/internal/models"

// CreateGroupRequest creates an evaluation group, optionally bound to an
// activity and pre-populated with members.
type CreateGroupRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	ActivityID *uint  `json:"activity_id"`
	MemberIDs  []uint `json:"member_ids"`
}

// UpdateGroupRequest renames a group.
type UpdateGroupRequest struct {
	Name *string `json:"name" validate:"omitempty,min=2"`
}

// GroupResponse serializes a group with its resolved member list.
type GroupResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	ActivityID  *uint          `json:"activity_id"`
	Members     []UserResponse `json:"members"`
	MemberCount int            `json:"member_count"`
}

// NewGroupResponse converts a group and its members into a DTO.
func NewGroupResponse(model models.Group, members []models.User) GroupResponse {
	memberDTOs := make([]UserResponse, 0, len(members))
	for _, member := range members {
		memberDTOs = append(memberDTOs, NewUserResponse(member))
	}

	return GroupResponse{
		ID:          model.ID,
		Name:        model.Name,
		ActivityID:  model.ActivityID,
		Members:     memberDTOs,
		MemberCount: len(memberDTOs),
	}
}
