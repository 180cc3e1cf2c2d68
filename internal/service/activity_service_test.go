package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/repository"
)

func newActivityService(db *gorm.DB) ActivityService {
	return NewActivityService(
		repository.NewActivityRepository(db),
		repository.NewRubricRepository(db),
		repository.NewSubmissionRepository(db),
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func TestActivityCreateParsesDueDates(t *testing.T) {
	db := newTestDB(t)
	rubric := models.Rubric{Name: "Team Collaboration"}
	require.NoError(t, db.Create(&rubric).Error)

	svc := newActivityService(db)
	ctx := context.Background()

	cases := []struct {
		name    string
		dueDate string
		want    time.Time
	}{
		{"rfc3339", "2026-10-01T12:30:00Z", time.Date(2026, 10, 1, 12, 30, 0, 0, time.UTC)},
		{"no timezone", "2026-10-01T12:30:00", time.Date(2026, 10, 1, 12, 30, 0, 0, time.UTC)},
		{"bare date extends to end of day", "2026-10-01", time.Date(2026, 10, 1, 23, 59, 59, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := svc.Create(ctx, dto.CreateActivityRequest{
				Name:     "Activity " + tc.name,
				RubricID: rubric.ID,
				DueDate:  tc.dueDate,
			})
			require.NoError(t, err)

			var stored models.Activity
			require.NoError(t, db.First(&stored, created.ID).Error)
			require.Equal(t, tc.want.Unix(), stored.DueDate.UTC().Unix())
			require.Equal(t, models.ActivityStatusActive, stored.Status)
		})
	}
}

func TestActivityCreateRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	rubric := models.Rubric{Name: "Team Collaboration"}
	require.NoError(t, db.Create(&rubric).Error)

	svc := newActivityService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateActivityRequest{Name: "Peer Review", RubricID: 9999, DueDate: "2026-10-01"})
	require.ErrorIs(t, err, ErrRubricNotFound)

	_, err = svc.Create(ctx, dto.CreateActivityRequest{Name: "Peer Review", RubricID: rubric.ID, DueDate: "next tuesday"})
	require.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestActivityListIncludesSubmissionCounts(t *testing.T) {
	db := newTestDB(t)
	alice := createTestUser(t, db, "Alice Chen", "alice@example.com", models.RoleStudent)
	bob := createTestUser(t, db, "Bob Martinez", "bob@example.com", models.RoleStudent)
	activity := createTestActivity(t, db, "Sprint Review")
	closed := createTestActivity(t, db, "Old Round")
	require.NoError(t, db.Model(&models.Activity{}).Where("id = ?", closed.ID).Update("status", models.ActivityStatusClosed).Error)

	createReceivedSubmission(t, db, alice, bob, activity, 4, 0.5, []string{"Positive"})

	svc := newActivityService(db)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	active, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, activity.ID, active[0].ID)
	require.Equal(t, 1, active[0].SubmissionCount)
}
