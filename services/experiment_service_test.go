package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/dto"
	"github.com/alloylab/models"
	"github.com/alloylab/testhelpers"
)

func validRequest(operatorID uint) dto.CreateExperimentRequest {
	return dto.CreateExperimentRequest{
		Name:          "Steel 12X18H10T",
		Task:          "Quench and temper",
		Delivered:     "2024-01-05",
		Manufacture:   "2024-01-10T14:30",
		ConductedByID: operatorID,
		Compositions: []dto.CompositionInput{
			{Element: "Fe", Percentage: 70},
			{Element: " Cr ", Percentage: 18},
			{Element: "Ni", Percentage: 10},
		},
	}
}

func TestExperimentService_Create(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	ctx := context.Background()
	clerk := seedUser(t, db, "clerk")
	op := seedUser(t, db, "operator", asOperator)

	exp, err := svc.CreateExperiment(ctx, &clerk, validRequest(op.ID))
	require.NoError(t, err)
	assert.NotZero(t, exp.ID)
	assert.Equal(t, models.ResultInProgress, exp.Result)
	assert.Equal(t, "clerk", exp.Creator)
	require.NotNil(t, exp.CreatorID)
	assert.Equal(t, clerk.ID, *exp.CreatorID)
	assert.True(t, time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC).Equal(exp.Manufacture))

	loaded, err := svc.GetExperiment(ctx, &clerk, exp.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.ConductedBy)
	assert.Equal(t, "operator", loaded.ConductedBy.Name)
	assert.Equal(t, map[string]float64{"Fe": 70, "Cr": 18, "Ni": 10}, loaded.CompositionMap())
}

func TestExperimentService_CreateWithExplicitCreator(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	clerk := seedUser(t, db, "clerk")
	author := seedUser(t, db, "author")
	op := seedUser(t, db, "operator", asOperator)

	req := validRequest(op.ID)
	req.CreatorID = &author.ID
	exp, err := svc.CreateExperiment(context.Background(), &clerk, req)
	require.NoError(t, err)
	assert.Equal(t, "author", exp.Creator)
	assert.Equal(t, author.ID, *exp.CreatorID)
}

func TestExperimentService_CreateValidation(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	clerk := seedUser(t, db, "clerk")
	op := seedUser(t, db, "operator", asOperator)
	retired := seedUser(t, db, "retired", asOperator, inactive)
	missing := uint(9999)

	tests := []struct {
		name   string
		mutate func(*dto.CreateExperimentRequest)
	}{
		{"bad date", func(r *dto.CreateExperimentRequest) { r.Manufacture = "10.01.2024" }},
		{"blank name", func(r *dto.CreateExperimentRequest) { r.Name = "  " }},
		{"duplicate element", func(r *dto.CreateExperimentRequest) {
			r.Compositions = append(r.Compositions, dto.CompositionInput{Element: "Fe", Percentage: 1})
		}},
		{"empty element", func(r *dto.CreateExperimentRequest) {
			r.Compositions = append(r.Compositions, dto.CompositionInput{Element: " "})
		}},
		{"inactive operator", func(r *dto.CreateExperimentRequest) { r.ConductedByID = retired.ID }},
		{"not an operator", func(r *dto.CreateExperimentRequest) { r.ConductedByID = clerk.ID }},
		{"unknown operator", func(r *dto.CreateExperimentRequest) { r.ConductedByID = missing }},
		{"unknown creator", func(r *dto.CreateExperimentRequest) { r.CreatorID = &missing }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(op.ID)
			tt.mutate(&req)
			_, err := svc.CreateExperiment(context.Background(), &clerk, req)
			assert.True(t, errors.Is(err, apperrors.ErrValidation), "got %v", err)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.Experiment{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.Composition{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExperimentService_UpdateOutcome(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	ctx := context.Background()
	clerk := seedUser(t, db, "clerk")
	op := seedUser(t, db, "operator", asOperator)
	exp := seedExperiment(t, db, &op, at(1, 10), models.ResultInProgress)

	updated, err := svc.UpdateOutcome(ctx, &clerk, exp.ID, dto.UpdateExperimentRequest{
		Comment: "cracked at 900C",
		Result:  "failure",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResultFailure, updated.Result)
	assert.Equal(t, "cracked at 900C", updated.Comment)

	// outcomes may be revised
	updated, err = svc.UpdateOutcome(ctx, &clerk, exp.ID, dto.UpdateExperimentRequest{Result: "success"})
	require.NoError(t, err)
	assert.Equal(t, models.ResultSuccess, updated.Result)

	_, err = svc.UpdateOutcome(ctx, &clerk, exp.ID, dto.UpdateExperimentRequest{Result: "done"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.UpdateOutcome(ctx, &clerk, 9999, dto.UpdateExperimentRequest{Result: "success"})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestExperimentService_ListOperatorsSkipsInactive(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	ctx := context.Background()
	clerk := seedUser(t, db, "clerk")
	op := seedUser(t, db, "active-op", asOperator)
	retired := seedUser(t, db, "retired-op", asOperator, inactive)
	seedExperiment(t, db, &retired, at(1, 3), models.ResultSuccess)

	operators, err := svc.ListOperators(ctx, &clerk)
	require.NoError(t, err)
	require.Len(t, operators, 1)
	assert.Equal(t, op.ID, operators[0].ID)

	experiments, err := svc.ListExperiments(ctx, &clerk)
	require.NoError(t, err)
	require.Len(t, experiments, 1)
	require.NotNil(t, experiments[0].ConductedBy)
	assert.Equal(t, "retired-op", experiments[0].ConductedBy.Name)
}

func TestExperimentService_RequiresActiveUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewExperimentService(db, zap.NewNop())
	retired := seedUser(t, db, "retired", inactive)

	_, err := svc.ListExperiments(context.Background(), &retired)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
}
