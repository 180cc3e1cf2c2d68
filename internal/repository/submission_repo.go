package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/models"
)

// SubmissionRepository defines data operations for evaluation submissions.
type SubmissionRepository interface {
	// CreateWithAnalysis persists a submission together with its criterion
	// scores and analysis result in a single transaction. Either everything
	// commits or nothing does.
	CreateWithAnalysis(ctx context.Context, submission *models.Submission, scores []models.CriterionScore, analysis *models.AnalysisResult) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	ListByTarget(ctx context.Context, targetID uint) ([]models.Submission, error)
	ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Submission, error)
	CountByActivity(ctx context.Context, activityID uint) (int64, error)
	CountByEvaluator(ctx context.Context, evaluatorID uint) (int64, error)
	CountByTarget(ctx context.Context, targetID uint) (int64, error)
	Exists(ctx context.Context, evaluatorID, targetID, activityID uint) (bool, error)
	// AverageScaledScore returns AVG(score * 20) over all criterion scores
	// received by the student, mapping the 5-point scale onto 0-100. Nil
	// when the student has no scored submissions.
	AverageScaledScore(ctx context.Context, targetID uint) (*float64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Evaluator").
		Preload("Target").
		Preload("Activity").
		Preload("Scores").
		Preload("Analysis")
}

func (r *submissionRepository) CreateWithAnalysis(ctx context.Context, submission *models.Submission, scores []models.CriterionScore, analysis *models.AnalysisResult) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		for i := range scores {
			scores[i].SubmissionID = submission.ID
		}
		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}

		analysis.SubmissionID = submission.ID
		return tx.Create(analysis).Error
	})
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByTarget(ctx context.Context, targetID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Where("target_id = ?", targetID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) ListByEvaluator(ctx context.Context, evaluatorID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.baseQuery(ctx).
		Where("evaluator_id = ?", evaluatorID).
		Order("created_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) CountByActivity(ctx context.Context, activityID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("activity_id = ?", activityID).Count(&count).Error
	return count, err
}

func (r *submissionRepository) CountByEvaluator(ctx context.Context, evaluatorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("evaluator_id = ?", evaluatorID).Count(&count).Error
	return count, err
}

func (r *submissionRepository) CountByTarget(ctx context.Context, targetID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).Where("target_id = ?", targetID).Count(&count).Error
	return count, err
}

func (r *submissionRepository) Exists(ctx context.Context, evaluatorID, targetID, activityID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("evaluator_id = ? AND target_id = ? AND activity_id = ?", evaluatorID, targetID, activityID).
		Count(&count).Error
	return count > 0, err
}

func (r *submissionRepository) AverageScaledScore(ctx context.Context, targetID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.CriterionScore{}).
		Joins("JOIN submissions ON submissions.id = criterion_scores.submission_id").
		Where("submissions.target_id = ?", targetID).
		Select("AVG(criterion_scores.score * 20.0)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return avg, nil
}
