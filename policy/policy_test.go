package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/models"
)

func TestAllows(t *testing.T) {
	director := &models.User{IsDirector: true, IsActive: true}
	admin := &models.User{IsAdmin: true, IsActive: true}
	operator := &models.User{IsOperator: true, IsActive: true}
	inactiveDirector := &models.User{IsDirector: true, IsActive: false}

	tests := []struct {
		name       string
		user       *models.User
		capability Capability
		want       bool
	}{
		{"director views analytics", director, ViewAnalytics, true},
		{"admin cannot view analytics", admin, ViewAnalytics, false},
		{"operator cannot view analytics", operator, ViewAnalytics, false},
		{"inactive director denied", inactiveDirector, ViewAnalytics, false},
		{"admin manages users", admin, ManageUsers, true},
		{"director cannot manage users", director, ManageUsers, false},
		{"operator records experiments", operator, RecordExperiments, true},
		{"director records experiments", director, RecordExperiments, true},
		{"nil user", nil, RecordExperiments, false},
		{"unknown capability", admin, Capability("launch"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allows(tt.user, tt.capability))
		})
	}
}

func TestRequire(t *testing.T) {
	err := Require(&models.User{IsActive: true}, ViewAnalytics)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	err = Require(nil, ViewAnalytics)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	assert.NoError(t, Require(&models.User{IsDirector: true, IsActive: true}, ViewAnalytics))
}
