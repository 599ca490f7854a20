package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/alloylab/models"
)

// ResultCounts holds experiment counts per result
type ResultCounts struct {
	Total      int64
	Success    int64
	Fail       int64
	InProgress int64
}

// OperatorCounts holds result counts for one operator
type OperatorCounts struct {
	OperatorID uint
	Name       string
	Total      int64
	Success    int64
	Fail       int64
	InProgress int64
}

// AnalyticsRepository runs the aggregate queries behind the reports.
// All windows are inclusive and filter on the manufacture timestamp.
type AnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository instance
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *AnalyticsRepository) WithTx(tx *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: tx}
}

const resultSums = `
	COALESCE(SUM(CASE WHEN experiments.result = ? THEN 1 ELSE 0 END), 0) AS success,
	COALESCE(SUM(CASE WHEN experiments.result = ? THEN 1 ELSE 0 END), 0) AS fail,
	COALESCE(SUM(CASE WHEN experiments.result = ? THEN 1 ELSE 0 END), 0) AS in_progress`

func resultArgs() []interface{} {
	return []interface{}{
		string(models.ResultSuccess),
		string(models.ResultFailure),
		string(models.ResultInProgress),
	}
}

// Totals counts every experiment manufactured in the window
func (r *AnalyticsRepository) Totals(ctx context.Context, start, end time.Time) (ResultCounts, error) {
	var counts ResultCounts
	err := r.db.WithContext(ctx).Model(&models.Experiment{}).
		Select("COUNT(experiments.id) AS total,"+resultSums, resultArgs()...).
		Where("experiments.manufacture BETWEEN ? AND ?", start, end).
		Scan(&counts).Error
	return counts, err
}

// CountsByOperator groups the window's experiments by conducting operator.
// Operators without experiments in the window produce no row.
func (r *AnalyticsRepository) CountsByOperator(ctx context.Context, start, end time.Time) ([]OperatorCounts, error) {
	var rows []OperatorCounts
	err := r.db.WithContext(ctx).Model(&models.Experiment{}).
		Select("users.id AS operator_id, users.name AS name, COUNT(experiments.id) AS total,"+resultSums, resultArgs()...).
		Joins("JOIN users ON users.id = experiments.conducted_by_id").
		Where("experiments.manufacture BETWEEN ? AND ?", start, end).
		Group("users.id, users.name").
		Order("users.name").
		Scan(&rows).Error
	return rows, err
}

// CountsForOperator counts one operator's experiments in the window.
// The result is zero-filled when the operator has none.
func (r *AnalyticsRepository) CountsForOperator(ctx context.Context, operatorID uint, start, end time.Time) (ResultCounts, error) {
	var counts ResultCounts
	err := r.db.WithContext(ctx).Model(&models.Experiment{}).
		Select("COUNT(experiments.id) AS total,"+resultSums, resultArgs()...).
		Where("experiments.conducted_by_id = ?", operatorID).
		Where("experiments.manufacture BETWEEN ? AND ?", start, end).
		Scan(&counts).Error
	return counts, err
}
