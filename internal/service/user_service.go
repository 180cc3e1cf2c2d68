package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/repository"
)

// UserService manages user accounts and profiles.
type UserService interface {
	Profile(ctx context.Context, email string) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, email string, request dto.UpdateProfileRequest) (dto.UserResponse, error)
	ListByRole(ctx context.Context, role string) ([]dto.UserResponse, error)
	UpdateStatus(ctx context.Context, id uint, request dto.UpdateUserStatusRequest) (dto.UserResponse, error)
}

type userService struct {
	users     repository.UserRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) UserService {
	return &userService{
		users:     users,
		validator: validate,
		logger:    logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Profile(ctx context.Context, email string) (dto.UserResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, email string, request dto.UpdateProfileRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if request.Name != nil {
		user.Name = *request.Name
	}
	if request.AvatarURL != nil {
		user.AvatarURL = *request.AvatarURL
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	return dto.NewUserResponse(user), nil
}

func (s *userService) ListByRole(ctx context.Context, role string) ([]dto.UserResponse, error) {
	users, err := s.users.ListByRole(ctx, role)
	if err != nil {
		return nil, err
	}

	return dto.NewUserResponseSlice(users), nil
}

func (s *userService) UpdateStatus(ctx context.Context, id uint, request dto.UpdateUserStatusRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(request); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	user.Status = request.Status
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("status", user.Status).Msg("user status updated")

	return dto.NewUserResponse(user), nil
}
