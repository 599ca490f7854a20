package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/dto"
	"github.com/alloylab/metrics"
	"github.com/alloylab/models"
	"github.com/alloylab/policy"
	"github.com/alloylab/repositories"
)

// AnalyticsService builds the director reports
type AnalyticsService struct {
	db             *gorm.DB
	analyticsRepo  *repositories.AnalyticsRepository
	experimentRepo *repositories.ExperimentRepository
	userRepo       *repositories.UserRepository
	metrics        *metrics.Metrics
	log            *zap.Logger
	now            func() time.Time
}

// NewAnalyticsService creates a new analytics service instance.
// m may be nil.
func NewAnalyticsService(db *gorm.DB, log *zap.Logger, m *metrics.Metrics) *AnalyticsService {
	return &AnalyticsService{
		db:             db,
		analyticsRepo:  repositories.NewAnalyticsRepository(db),
		experimentRepo: repositories.NewExperimentRepository(db),
		userRepo:       repositories.NewUserRepository(db),
		metrics:        m,
		log:            log.Named("analytics"),
		now:            time.Now,
	}
}

// WithClock replaces the clock used to resolve default windows
func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func reportWindow(start, end time.Time) dto.ReportWindow {
	return dto.ReportWindow{
		Start: start.Format(dateLayout),
		End:   end.Format(dateLayout),
	}
}

// Overview counts results across all experiments manufactured in the window
// and breaks them down per operator.
func (s *AnalyticsService) Overview(ctx context.Context, actor *models.User, start, end string) (report dto.OverviewReport, err error) {
	if err := policy.Require(actor, policy.ViewAnalytics); err != nil {
		return dto.OverviewReport{}, err
	}
	defer func() { s.metrics.ObserveReport("overview", err) }()

	startAt, endAt, err := ResolveWindow(start, end, s.now())
	if err != nil {
		return dto.OverviewReport{}, err
	}

	var (
		totals    repositories.ResultCounts
		perOp     []repositories.OperatorCounts
		allRecent []models.Experiment
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		analytics := s.analyticsRepo.WithTx(tx)

		var err error
		if totals, err = analytics.Totals(ctx, startAt, endAt); err != nil {
			return err
		}
		if perOp, err = analytics.CountsByOperator(ctx, startAt, endAt); err != nil {
			return err
		}
		allRecent, err = s.experimentRepo.WithTx(tx).FindAll(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to build overview report", zap.Error(err))
		return dto.OverviewReport{}, err
	}

	operators := make([]dto.OperatorStats, 0, len(perOp))
	for _, row := range perOp {
		operators = append(operators, dto.OperatorStats{
			OperatorID:     row.OperatorID,
			Name:           row.Name,
			Total:          row.Total,
			Success:        row.Success,
			Fail:           row.Fail,
			InProgress:     row.InProgress,
			SuccessPercent: percent(row.Success, row.Total, 2),
		})
	}
	sort.SliceStable(operators, func(i, j int) bool {
		return operators[i].SuccessPercent > operators[j].SuccessPercent
	})

	if allRecent == nil {
		allRecent = []models.Experiment{}
	}

	return dto.OverviewReport{
		Window:         reportWindow(startAt, endAt),
		Total:          totals.Total,
		Success:        totals.Success,
		Fail:           totals.Fail,
		InProgress:     totals.InProgress,
		SuccessPercent: percent(totals.Success, totals.Total, 2),
		Operators:      operators,
		Experiments:    allRecent,
	}, nil
}

// Employee reports the result counts of a single operator in the window.
// Unknown operators get zero counts.
func (s *AnalyticsService) Employee(ctx context.Context, actor *models.User, operatorID uint, start, end string) (report dto.EmployeeReport, err error) {
	if err := policy.Require(actor, policy.ViewAnalytics); err != nil {
		return dto.EmployeeReport{}, err
	}
	defer func() { s.metrics.ObserveReport("employee", err) }()

	startAt, endAt, err := ResolveWindow(start, end, s.now())
	if err != nil {
		return dto.EmployeeReport{}, err
	}

	var (
		counts    repositories.ResultCounts
		employees []models.User
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if counts, err = s.analyticsRepo.WithTx(tx).CountsForOperator(ctx, operatorID, startAt, endAt); err != nil {
			return err
		}
		employees, err = s.userRepo.WithTx(tx).FindActiveOperators(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to build employee report",
			zap.Uint("operator_id", operatorID),
			zap.Error(err))
		return dto.EmployeeReport{}, err
	}

	if employees == nil {
		employees = []models.User{}
	}

	total := counts.Success + counts.Fail + counts.InProgress
	return dto.EmployeeReport{
		Window:          reportWindow(startAt, endAt),
		SelectedID:      operatorID,
		SuccessCount:    counts.Success,
		FailureCount:    counts.Fail,
		InProgressCount: counts.InProgress,
		SuccessRate:     percent(counts.Success, total, 1),
		Employees:       employees,
	}, nil
}
