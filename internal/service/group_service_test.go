package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

func newGroupService(db *gorm.DB) GroupService {
	return NewGroupService(
		repository.NewGroupRepository(db),
		repository.NewUserRepository(db),
		repository.NewActivityRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestGroupCreateWithMembers(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice Chen", "alice@example.com", models.RoleStudent)
	bob := createTestUser(t, db, "Bob Martinez", "bob@example.com", models.RoleStudent)

	svc := newGroupService(db)

	group, err := svc.Create(context.Background(), dto.CreateGroupRequest{
		Name:      "Team Alpha",
		MemberIDs: []uint{alice.ID, bob.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "Team Alpha", group.Name)
	require.Equal(t, 2, group.MemberCount)
}

func TestGroupAssignMovesMemberBetweenGroups(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice Chen", "alice@example.com", models.RoleStudent)

	svc := newGroupService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Alpha", MemberIDs: []uint{alice.ID}})
	require.NoError(t, err)

	second, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Beta"})
	require.NoError(t, err)

	moved, err := svc.AssignMember(ctx, second.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, 1, moved.MemberCount)

	previous, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.Zero(t, previous.MemberCount)
}

func TestGroupRemoveMemberIgnoresForeignMembership(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice Chen", "alice@example.com", models.RoleStudent)

	svc := newGroupService(db)
	ctx := context.Background()

	home, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Alpha", MemberIDs: []uint{alice.ID}})
	require.NoError(t, err)

	other, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Beta"})
	require.NoError(t, err)

	// Removing from a group the user is not in must not detach them.
	_, err = svc.RemoveMember(ctx, other.ID, alice.ID)
	require.NoError(t, err)

	current, err := svc.Get(ctx, home.ID)
	require.NoError(t, err)
	require.Equal(t, 1, current.MemberCount)

	_, err = svc.RemoveMember(ctx, home.ID, alice.ID)
	require.NoError(t, err)

	current, err = svc.Get(ctx, home.ID)
	require.NoError(t, err)
	require.Zero(t, current.MemberCount)
}

func TestGroupDeleteDetachesMembers(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice Chen", "alice@example.com", models.RoleStudent)

	svc := newGroupService(db)
	ctx := context.Background()

	group, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Alpha", MemberIDs: []uint{alice.ID}})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, group.ID))

	var user models.User
	require.NoError(t, db.First(&user, alice.ID).Error)
	require.Nil(t, user.GroupID)

	err = svc.Delete(ctx, group.ID)
	require.ErrorIs(t, err, ErrGroupNotFound)
}

func TestGroupUpdateRename(t *testing.T) {
	db := newTestDB(t)
	svc := newGroupService(db)
	ctx := context.Background()

	group, err := svc.Create(ctx, dto.CreateGroupRequest{Name: "Team Alpha"})
	require.NoError(t, err)

	name := "Team Omega"
	updated, err := svc.Update(ctx, group.ID, dto.UpdateGroupRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Team Omega", updated.Name)
}
