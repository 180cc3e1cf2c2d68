package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// GroupService manages evaluation groups. Membership lives on the user row
// (users.group_id) and is always resolved by lookup.
type GroupService interface {
	List(ctx context.Context) ([]dto.GroupResponse, error)
	Get(ctx context.Context, id uint) (dto.GroupResponse, error)
	Create(ctx context.Context, request dto.CreateGroupRequest) (dto.GroupResponse, error)
	Update(ctx context.Context, id uint, request dto.UpdateGroupRequest) (dto.GroupResponse, error)
	Delete(ctx context.Context, id uint) error
	AssignMember(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error)
	RemoveMember(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error)
}

type groupService struct {
	groups     repository.GroupRepository
	users      repository.UserRepository
	activities repository.ActivityRepository
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewGroupService constructs a GroupService instance.
func NewGroupService(groups repository.GroupRepository, users repository.UserRepository, activities repository.ActivityRepository, validate *validator.Validate, logger zerolog.Logger) GroupService {
	return &groupService{
		groups:     groups,
		users:      users,
		activities: activities,
		validator:  validate,
		logger:     logger.With().Str("component", "group_service").Logger(),
	}
}

func (s *groupService) List(ctx context.Context) ([]dto.GroupResponse, error) {
	groups, err := s.groups.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GroupResponse, 0, len(groups))
	for _, group := range groups {
		response, err := s.toResponse(ctx, group)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *groupService) Get(ctx context.Context, id uint) (dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	return s.toResponse(ctx, group)
}

func (s *groupService) Create(ctx context.Context, request dto.CreateGroupRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.GroupResponse{}, err
	}

	group := models.Group{Name: request.Name}

	if request.ActivityID != nil {
		// A dangling activity reference is dropped rather than rejected.
		if _, err := s.activities.GetByID(ctx, *request.ActivityID); err == nil {
			group.ActivityID = request.ActivityID
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, err
		}
	}

	if err := s.groups.Create(ctx, &group); err != nil {
		return dto.GroupResponse{}, err
	}

	for _, userID := range request.MemberIDs {
		if _, err := s.AssignMember(ctx, group.ID, userID); err != nil {
			return dto.GroupResponse{}, err
		}
	}

	s.logger.Info().Uint("group_id", group.ID).Str("name", group.Name).Msg("group created")

	return s.toResponse(ctx, group)
}

func (s *groupService) Update(ctx context.Context, id uint, request dto.UpdateGroupRequest) (dto.GroupResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.GroupResponse{}, err
	}

	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	if request.Name != nil {
		group.Name = *request.Name
	}

	if err := s.groups.Update(ctx, &group); err != nil {
		return dto.GroupResponse{}, err
	}

	return s.toResponse(ctx, group)
}

func (s *groupService) Delete(ctx context.Context, id uint) error {
	if _, err := s.groups.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGroupNotFound
		}
		return err
	}

	// Detach members first so no user keeps a dangling back-reference.
	members, err := s.users.ListByGroup(ctx, id)
	if err != nil {
		return err
	}
	for _, member := range members {
		member.GroupID = nil
		if err := s.users.Update(ctx, &member); err != nil {
			return err
		}
	}

	return s.groups.Delete(ctx, id)
}

func (s *groupService) AssignMember(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrUserNotFound
		}
		return dto.GroupResponse{}, err
	}

	// Rewriting the back-reference moves the user out of any previous group.
	user.GroupID = &group.ID
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.GroupResponse{}, err
	}

	return s.toResponse(ctx, group)
}

func (s *groupService) RemoveMember(ctx context.Context, groupID, userID uint) (dto.GroupResponse, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrGroupNotFound
		}
		return dto.GroupResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GroupResponse{}, ErrUserNotFound
		}
		return dto.GroupResponse{}, err
	}

	if user.GroupID != nil && *user.GroupID == groupID {
		user.GroupID = nil
		if err := s.users.Update(ctx, &user); err != nil {
			return dto.GroupResponse{}, err
		}
	}

	return s.toResponse(ctx, group)
}

func (s *groupService) toResponse(ctx context.Context, group models.Group) (dto.GroupResponse, error) {
	members, err := s.users.ListByGroup(ctx, group.ID)
	if err != nil {
		return dto.GroupResponse{}, err
	}

	return dto.NewGroupResponse(group, members), nil
}
