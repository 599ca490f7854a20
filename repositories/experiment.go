package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/models"
)

// ExperimentRepository handles database operations for experiments
type ExperimentRepository struct {
	db *gorm.DB
}

// NewExperimentRepository creates a new experiment repository instance
func NewExperimentRepository(db *gorm.DB) *ExperimentRepository {
	return &ExperimentRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *ExperimentRepository) WithTx(tx *gorm.DB) *ExperimentRepository {
	return &ExperimentRepository{db: tx}
}

// FindAll retrieves all experiments, newest first, with their operator
func (r *ExperimentRepository) FindAll(ctx context.Context) ([]models.Experiment, error) {
	var experiments []models.Experiment
	err := r.db.WithContext(ctx).Preload("ConductedBy").Order("id DESC").Find(&experiments).Error
	return experiments, err
}

// WithDetails loads an experiment with its compositions and operator
func (r *ExperimentRepository) WithDetails(ctx context.Context, id uint) (models.Experiment, error) {
	var experiment models.Experiment
	err := r.db.WithContext(ctx).
		Preload("ConductedBy").
		Preload("Compositions", func(db *gorm.DB) *gorm.DB {
			return db.Order("element")
		}).
		First(&experiment, id).Error
	return experiment, translate(err)
}

// Create inserts an experiment together with its compositions
func (r *ExperimentRepository) Create(ctx context.Context, experiment *models.Experiment) error {
	return r.db.WithContext(ctx).Omit("ConductedBy").Create(experiment).Error
}

// UpdateOutcome sets the comment and result of an experiment
func (r *ExperimentRepository) UpdateOutcome(ctx context.Context, id uint, comment string, result models.ExperimentResult) error {
	var updates = map[string]interface{}{
		"comment": comment,
		"result":  string(result),
	}
	res := r.db.WithContext(ctx).Model(&models.Experiment{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DB returns the database instance
func (r *ExperimentRepository) DB() *gorm.DB {
	return r.db
}
