package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/alloylab/models"
)

type role func(*models.User)

func asAdmin(u *models.User)    { u.IsAdmin = true }
func asDirector(u *models.User) { u.IsDirector = true }
func asOperator(u *models.User) { u.IsOperator = true }
func inactive(u *models.User)   { u.IsActive = false }

func seedUser(t *testing.T, db *gorm.DB, name string, roles ...role) models.User {
	t.Helper()
	user := models.User{Name: name, PasswordHash: "x", IsActive: true}
	for _, r := range roles {
		r(&user)
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func at(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 12, 0, 0, 0, time.UTC)
}

func seedExperiment(t *testing.T, db *gorm.DB, operator *models.User, manufacture time.Time, result models.ExperimentResult) models.Experiment {
	t.Helper()
	exp := models.Experiment{
		Name:        "melt",
		Task:        "heat treatment",
		Delivered:   manufacture.Add(-24 * time.Hour),
		Manufacture: manufacture,
		Result:      result,
		Creator:     "recorder",
	}
	if operator != nil {
		exp.ConductedByID = &operator.ID
	}
	require.NoError(t, db.Create(&exp).Error)
	return exp
}

func seedMany(t *testing.T, db *gorm.DB, operator *models.User, manufacture time.Time, result models.ExperimentResult, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedExperiment(t, db, operator, manufacture, result)
	}
}
