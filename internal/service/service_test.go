package service

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/analyzer"
	"github.com/keith666666666/APEER/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Rubric{},
		&models.RubricCriterion{},
		&models.Activity{},
		&models.Submission{},
		&models.CriterionScore{},
		&models.AnalysisResult{},
	))

	return db
}

func newTestAnalyzer() *analyzer.Analyzer {
	return analyzer.New(rand.New(rand.NewSource(42)), zerolog.Nop())
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()

	user := models.User{Name: name, Email: email, Role: role, Status: models.UserStatusActive}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func createTestActivity(t *testing.T, db *gorm.DB, name string) models.Activity {
	t.Helper()

	rubric := models.Rubric{
		Name: name + " rubric",
		Criteria: []models.RubricCriterion{
			{Name: "Communication", Weight: 50, MaxScore: 5},
			{Name: "Contribution", Weight: 50, MaxScore: 5},
		},
	}
	require.NoError(t, db.Create(&rubric).Error)

	activity := models.Activity{
		Name:     name,
		RubricID: rubric.ID,
		DueDate:  time.Now().Add(7 * 24 * time.Hour),
		Status:   models.ActivityStatusActive,
	}
	require.NoError(t, db.Create(&activity).Error)

	return activity
}

// createReceivedSubmission seeds one evaluation of target by evaluator with a
// single criterion score and an analysis carrying the given tags.
func createReceivedSubmission(t *testing.T, db *gorm.DB, evaluator, target models.User, activity models.Activity, score int, sentiment float64, tags []string) models.Submission {
	t.Helper()

	submission := models.Submission{
		EvaluatorID: evaluator.ID,
		TargetID:    target.ID,
		ActivityID:  activity.ID,
		Comment:     "seeded feedback comment",
	}
	require.NoError(t, db.Create(&submission).Error)

	criterion := models.CriterionScore{
		SubmissionID:  submission.ID,
		CriterionName: "Communication",
		Score:         score,
		MaxScore:      5,
	}
	require.NoError(t, db.Create(&criterion).Error)

	analysis := models.AnalysisResult{
		SubmissionID:    submission.ID,
		SentimentScore:  sentiment,
		UsefulnessScore: 60,
	}
	analysis.SetTags(tags)
	require.NoError(t, db.Create(&analysis).Error)

	return submission
}
