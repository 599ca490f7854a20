package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/dto"
	"github.com/alloylab/models"
	"github.com/alloylab/policy"
	"github.com/alloylab/repositories"
)

// ExperimentService handles business logic for experiments
type ExperimentService struct {
	experimentRepo *repositories.ExperimentRepository
	userRepo       *repositories.UserRepository
	log            *zap.Logger
}

// NewExperimentService creates a new experiment service instance
func NewExperimentService(db *gorm.DB, log *zap.Logger) *ExperimentService {
	return &ExperimentService{
		experimentRepo: repositories.NewExperimentRepository(db),
		userRepo:       repositories.NewUserRepository(db),
		log:            log.Named("experiments"),
	}
}

// ListExperiments retrieves all experiments, newest first
func (s *ExperimentService) ListExperiments(ctx context.Context, actor *models.User) ([]models.Experiment, error) {
	if err := policy.Require(actor, policy.RecordExperiments); err != nil {
		return nil, err
	}
	return s.experimentRepo.FindAll(ctx)
}

// GetExperiment retrieves an experiment with its compositions and operator
func (s *ExperimentService) GetExperiment(ctx context.Context, actor *models.User, id uint) (models.Experiment, error) {
	if err := policy.Require(actor, policy.RecordExperiments); err != nil {
		return models.Experiment{}, err
	}
	experiment, err := s.experimentRepo.WithDetails(ctx, id)
	if err != nil {
		return models.Experiment{}, fmt.Errorf("experiment %d: %w", id, err)
	}
	return experiment, nil
}

// ListOperators returns the users that may be picked to conduct an experiment
func (s *ExperimentService) ListOperators(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := policy.Require(actor, policy.RecordExperiments); err != nil {
		return nil, err
	}
	return s.userRepo.FindActiveOperators(ctx)
}

// CreateExperiment records a new experiment with its compositions
func (s *ExperimentService) CreateExperiment(ctx context.Context, actor *models.User, req dto.CreateExperimentRequest) (models.Experiment, error) {
	if err := policy.Require(actor, policy.RecordExperiments); err != nil {
		return models.Experiment{}, err
	}

	experiment, err := buildExperiment(req)
	if err != nil {
		return models.Experiment{}, err
	}

	creatorID := actor.ID
	if req.CreatorID != nil {
		creatorID = *req.CreatorID
	}

	// Start transaction
	tx := s.experimentRepo.DB().WithContext(ctx).Begin()
	if tx.Error != nil {
		return models.Experiment{}, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	users := s.userRepo.WithTx(tx)

	operator, err := users.FindByID(ctx, req.ConductedByID)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, apperrors.ErrNotFound) {
			return models.Experiment{}, apperrors.Validation("operator %d does not exist", req.ConductedByID)
		}
		return models.Experiment{}, err
	}
	if !operator.IsOperator || !operator.IsActive {
		tx.Rollback()
		return models.Experiment{}, apperrors.Validation("%s is not an active operator", operator.Name)
	}

	creator := *actor
	if creatorID != actor.ID {
		creator, err = users.FindByID(ctx, creatorID)
		if err != nil {
			tx.Rollback()
			if errors.Is(err, apperrors.ErrNotFound) {
				return models.Experiment{}, apperrors.Validation("creator %d does not exist", creatorID)
			}
			return models.Experiment{}, err
		}
	}

	experiment.CreatorID = &creator.ID
	experiment.Creator = creator.Name
	experiment.ConductedByID = &operator.ID

	if err := s.experimentRepo.WithTx(tx).Create(ctx, &experiment); err != nil {
		tx.Rollback()
		return models.Experiment{}, err
	}

	// Commit the transaction
	if err := tx.Commit().Error; err != nil {
		return models.Experiment{}, err
	}

	experiment.ConductedBy = &operator
	s.log.Info("Experiment recorded",
		zap.Uint("experiment_id", experiment.ID),
		zap.Uint("conducted_by", operator.ID),
		zap.Int("elements", len(experiment.Compositions)))
	return experiment, nil
}

// buildExperiment validates the form fields that need no database access
func buildExperiment(req dto.CreateExperimentRequest) (models.Experiment, error) {
	name := strings.TrimSpace(req.Name)
	task := strings.TrimSpace(req.Task)
	if name == "" {
		return models.Experiment{}, apperrors.Validation("name is required")
	}
	if task == "" {
		return models.Experiment{}, apperrors.Validation("task is required")
	}

	delivered, err := ParseTimestamp(req.Delivered)
	if err != nil {
		return models.Experiment{}, err
	}
	manufacture, err := ParseTimestamp(req.Manufacture)
	if err != nil {
		return models.Experiment{}, err
	}

	compositions := make([]models.Composition, 0, len(req.Compositions))
	seen := make(map[string]bool, len(req.Compositions))
	for _, input := range req.Compositions {
		element := strings.TrimSpace(input.Element)
		if element == "" {
			return models.Experiment{}, apperrors.Validation("composition element is required")
		}
		if seen[element] {
			return models.Experiment{}, apperrors.Validation("element %s is listed more than once", element)
		}
		seen[element] = true
		compositions = append(compositions, models.Composition{
			Element:    element,
			Percentage: input.Percentage,
		})
	}

	return models.Experiment{
		Name:         name,
		Task:         task,
		Delivered:    delivered,
		Manufacture:  manufacture,
		Result:       models.ResultInProgress,
		Compositions: compositions,
	}, nil
}

// UpdateOutcome sets the comment and result of an experiment
func (s *ExperimentService) UpdateOutcome(ctx context.Context, actor *models.User, id uint, req dto.UpdateExperimentRequest) (models.Experiment, error) {
	if err := policy.Require(actor, policy.RecordExperiments); err != nil {
		return models.Experiment{}, err
	}

	result := models.ExperimentResult(strings.TrimSpace(req.Result))
	if !result.Valid() {
		return models.Experiment{}, apperrors.Validation("invalid result %q", req.Result)
	}

	var experiment models.Experiment
	err := s.experimentRepo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.experimentRepo.WithTx(tx)
		if err := repo.UpdateOutcome(ctx, id, strings.TrimSpace(req.Comment), result); err != nil {
			return err
		}
		var err error
		experiment, err = repo.WithDetails(ctx, id)
		return err
	})
	if err != nil {
		return models.Experiment{}, fmt.Errorf("experiment %d: %w", id, err)
	}

	s.log.Info("Experiment outcome updated",
		zap.Uint("experiment_id", id),
		zap.String("result", string(result)),
		zap.Uint("updated_by", actor.ID))
	return experiment, nil
}
