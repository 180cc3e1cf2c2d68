package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/keith666666666/APEER/internal/models"
)

// ActivityRepository provides access to evaluation activities.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (models.Activity, error)
	List(ctx context.Context) ([]models.Activity, error)
	ListByStatus(ctx context.Context, status string) ([]models.Activity, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository constructs an activity repository.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Activity{}).Preload("Rubric.Criteria").Preload("Rubric")
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (models.Activity, error) {
	var activity models.Activity
	if err := r.baseQuery(ctx).First(&activity, id).Error; err != nil {
		return models.Activity{}, err
	}

	return activity, nil
}

func (r *activityRepository) List(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) ListByStatus(ctx context.Context, status string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.baseQuery(ctx).Where("status = ?", status).Order("due_date ASC").Find(&activities).Error; err != nil {
		return nil, err
	}

	return activities, nil
}
