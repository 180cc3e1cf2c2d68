package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/models"
)

// AnalysisRepository exposes read access to stored analysis results.
type AnalysisRepository interface {
	GetBySubmission(ctx context.Context, submissionID uint) (models.AnalysisResult, error)
	// ListRecentForTarget returns up to limit analysis results on submissions
	// received by the student, most recent submission first.
	ListRecentForTarget(ctx context.Context, targetID uint, limit int) ([]models.AnalysisResult, error)
	// ListFlagged returns every flagged analysis with its submission and
	// evaluator preloaded, so flags can be attributed to the evaluator.
	ListFlagged(ctx context.Context) ([]FlaggedAnalysis, error)
	// AverageUsefulnessGiven averages the usefulness score across all
	// analyses on submissions the student authored. Nil when there are none.
	AverageUsefulnessGiven(ctx context.Context, evaluatorID uint) (*float64, error)
}

// FlaggedAnalysis pairs a flagged analysis result with the evaluator whose
// submission triggered it.
type FlaggedAnalysis struct {
	Analysis  models.AnalysisResult
	Evaluator models.User
}

type analysisRepository struct {
	db *gorm.DB
}

// NewAnalysisRepository constructs an analysis repository.
func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) GetBySubmission(ctx context.Context, submissionID uint) (models.AnalysisResult, error) {
	var analysis models.AnalysisResult
	if err := r.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&analysis).Error; err != nil {
		return models.AnalysisResult{}, err
	}

	return analysis, nil
}

func (r *analysisRepository) ListRecentForTarget(ctx context.Context, targetID uint, limit int) ([]models.AnalysisResult, error) {
	var analyses []models.AnalysisResult
	err := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Joins("JOIN submissions ON submissions.id = analysis_results.submission_id").
		Where("submissions.target_id = ?", targetID).
		Order("submissions.created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}

	return analyses, nil
}

func (r *analysisRepository) ListFlagged(ctx context.Context) ([]FlaggedAnalysis, error) {
	var analyses []models.AnalysisResult
	err := r.db.WithContext(ctx).
		Where("is_flagged = ?", true).
		Find(&analyses).Error
	if err != nil {
		return nil, err
	}

	flagged := make([]FlaggedAnalysis, 0, len(analyses))
	for _, analysis := range analyses {
		var submission models.Submission
		if err := r.db.WithContext(ctx).Preload("Evaluator").First(&submission, analysis.SubmissionID).Error; err != nil {
			return nil, err
		}
		flagged = append(flagged, FlaggedAnalysis{Analysis: analysis, Evaluator: submission.Evaluator})
	}

	return flagged, nil
}

func (r *analysisRepository) AverageUsefulnessGiven(ctx context.Context, evaluatorID uint) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.AnalysisResult{}).
		Joins("JOIN submissions ON submissions.id = analysis_results.submission_id").
		Where("submissions.evaluator_id = ?", evaluatorID).
		Select("AVG(analysis_results.usefulness_score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}

	return avg, nil
}
