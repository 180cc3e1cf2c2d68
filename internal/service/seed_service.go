package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

// SeedService installs demo users and the default rubric catalog. It is
// disabled unless explicitly enabled in configuration and always requires
// the configured token.
type SeedService interface {
	Seed(ctx context.Context, token string) (int, error)
}

type seedService struct {
	users   repository.UserRepository
	rubrics RubricService
	enabled bool
	token   string
	logger  zerolog.Logger
}

// NewSeedService constructs a SeedService instance.
func NewSeedService(users repository.UserRepository, rubrics RubricService, enabled bool, token string, logger zerolog.Logger) SeedService {
	return &seedService{
		users:   users,
		rubrics: rubrics,
		enabled: enabled,
		token:   token,
		logger:  logger.With().Str("component", "seed_service").Logger(),
	}
}

// Seed is idempotent. Users are matched by email, rubrics by name; existing
// rows are never touched. Returns the number of users created.
func (s *seedService) Seed(ctx context.Context, token string) (int, error) {
	if !s.enabled {
		return 0, ErrSeedDisabled
	}
	if s.token == "" || token != s.token {
		return 0, ErrSeedUnauthorized
	}

	created := 0
	for _, sample := range sampleUsers() {
		exists, err := s.users.ExistsByEmail(ctx, sample.Email)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		user := sample
		if err := s.users.Create(ctx, &user); err != nil {
			return created, err
		}
		created++
	}

	if err := s.rubrics.EnsureSampleRubrics(ctx); err != nil {
		return created, err
	}

	s.logger.Info().Int("users_created", created).Msg("database seeded")

	return created, nil
}

func sampleUsers() []models.User {
	return []models.User{
		{Name: "Alice Chen", Email: "alice.student@university.edu", Role: models.RoleStudent, Status: models.UserStatusActive},
		{Name: "Bob Martinez", Email: "bob.student@university.edu", Role: models.RoleStudent, Status: models.UserStatusActive},
		{Name: "Carol Zhang", Email: "carol.student@university.edu", Role: models.RoleStudent, Status: models.UserStatusActive},
		{Name: "David Kim", Email: "david.student@university.edu", Role: models.RoleStudent, Status: models.UserStatusActive},
		{Name: "Emma Wilson", Email: "emma.student@university.edu", Role: models.RoleStudent, Status: models.UserStatusActive},
		{Name: "Prof. Smith", Email: "smith.teacher@university.edu", Role: models.RoleTeacher, Status: models.UserStatusActive},
		{Name: "System Admin", Email: "admin@university.edu", Role: models.RoleAdmin, Status: models.UserStatusActive},
	}
}
