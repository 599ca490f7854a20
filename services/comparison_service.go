package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/dto"
	"github.com/alloylab/metrics"
	"github.com/alloylab/models"
	"github.com/alloylab/policy"
	"github.com/alloylab/repositories"
)

const (
	directionIncreased = "increased"
	directionDecreased = "decreased"
)

// ComparisonService compares the compositions of two experiments
type ComparisonService struct {
	db             *gorm.DB
	experimentRepo *repositories.ExperimentRepository
	rules          map[string]float64
	metrics        *metrics.Metrics
	log            *zap.Logger
}

// NewComparisonService creates a new comparison service instance.
// rules maps an element to the percentage above which it is flagged.
func NewComparisonService(db *gorm.DB, rules map[string]float64, log *zap.Logger, m *metrics.Metrics) *ComparisonService {
	copied := make(map[string]float64, len(rules))
	for element, threshold := range rules {
		copied[element] = threshold
	}
	return &ComparisonService{
		db:             db,
		experimentRepo: repositories.NewExperimentRepository(db),
		rules:          copied,
		metrics:        m,
		log:            log.Named("comparison"),
	}
}

// Compare loads two experiments and compares them. Either id missing yields
// apperrors.ErrExperimentNotResolved.
func (s *ComparisonService) Compare(ctx context.Context, actor *models.User, id1, id2 uint) (result dto.ComparisonResult, err error) {
	if err := policy.Require(actor, policy.ViewAnalytics); err != nil {
		return dto.ComparisonResult{}, err
	}
	defer func() { s.metrics.ObserveReport("compare", err) }()

	var exp1, exp2 models.Experiment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.experimentRepo.WithTx(tx)

		var err error
		if exp1, err = repo.WithDetails(ctx, id1); err != nil {
			return err
		}
		exp2, err = repo.WithDetails(ctx, id2)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return dto.ComparisonResult{}, apperrors.ErrExperimentNotResolved
		}
		s.log.Error("Failed to load experiments for comparison",
			zap.Uint("id1", id1),
			zap.Uint("id2", id2),
			zap.Error(err))
		return dto.ComparisonResult{}, err
	}

	return CompareExperiments(exp1, exp2, s.rules), nil
}

// CompareExperiments diffs the compositions of two loaded experiments.
// The experiment with the lower id always takes slot 1, so argument order
// does not matter.
func CompareExperiments(exp1, exp2 models.Experiment, rules map[string]float64) dto.ComparisonResult {
	if exp1.ID > exp2.ID {
		exp1, exp2 = exp2, exp1
	}

	comp1 := exp1.CompositionMap()
	comp2 := exp2.CompositionMap()

	axis := make([]string, 0, len(comp1)+len(comp2))
	for element := range comp1 {
		axis = append(axis, element)
	}
	for element := range comp2 {
		if _, ok := comp1[element]; !ok {
			axis = append(axis, element)
		}
	}
	sort.Strings(axis)

	result := dto.ComparisonResult{
		Chart: dto.ChartSeries{
			Elements: axis,
			Values1:  make([]float64, 0, len(axis)),
			Values2:  make([]float64, 0, len(axis)),
		},
		ID1:         exp1.ID,
		ID2:         exp2.ID,
		Notes:       []string{},
		Warnings:    []dto.CompositionWarning{},
		Differences: []dto.CompositionDifference{},
		Matches:     []string{},
	}

	for _, element := range axis {
		from, to := comp1[element], comp2[element]
		result.Chart.Values1 = append(result.Chart.Values1, from)
		result.Chart.Values2 = append(result.Chart.Values2, to)

		if from == to {
			result.Matches = append(result.Matches, element)
			continue
		}
		direction := directionIncreased
		if to < from {
			direction = directionDecreased
		}
		delta := math.Abs(to - from)
		result.Differences = append(result.Differences, dto.CompositionDifference{
			Element:   element,
			Direction: direction,
			Delta:     delta,
			From:      from,
			To:        to,
			Message:   fmt.Sprintf("element %s %s by %.1f%% (%.1f%% -> %.1f%%)", element, direction, delta, from, to),
		})
	}

	ruleElements := make([]string, 0, len(rules))
	for element := range rules {
		ruleElements = append(ruleElements, element)
	}
	sort.Strings(ruleElements)

	for _, element := range ruleElements {
		threshold := rules[element]
		for slot, comp := range []map[string]float64{comp1, comp2} {
			value, ok := comp[element]
			if !ok || value <= threshold {
				continue
			}
			result.Warnings = append(result.Warnings, dto.CompositionWarning{
				Experiment: slot + 1,
				Element:    element,
				Value:      value,
				Threshold:  threshold,
				Message:    fmt.Sprintf("experiment %d: element %s = %.1f%% (> %.1f%%)", slot+1, element, value, threshold),
			})
		}
	}

	result.Notes = append(result.Notes, discrepancyNotes(exp1, exp2)...)
	return result
}

func discrepancyNotes(exp1, exp2 models.Experiment) []string {
	var notes []string
	if exp1.ConductedBy != nil && exp2.ConductedBy != nil && exp1.ConductedBy.ID != exp2.ConductedBy.ID {
		notes = append(notes, fmt.Sprintf("Experiments were conducted by different operators: %s and %s",
			exp1.ConductedBy.Name, exp2.ConductedBy.Name))
	}
	if exp1.Creator != exp2.Creator {
		notes = append(notes, fmt.Sprintf("Experiments were recorded by different creators: %s and %s",
			exp1.Creator, exp2.Creator))
	}
	return notes
}
