// Package policy holds the role checks applied before every protected
// operation. Handlers and services ask Require for a capability instead of
// inspecting role flags themselves.
package policy

import (
	"fmt"

	"github.com/alloylab/apperrors"
	"github.com/alloylab/models"
)

// Capability names an action guarded by a role
type Capability string

const (
	// ViewAnalytics covers aggregate, per-employee and comparison reports.
	ViewAnalytics Capability = "view_analytics"
	// ManageUsers covers creating accounts and toggling their status.
	ManageUsers Capability = "manage_users"
	// RecordExperiments covers listing, creating and updating experiments.
	RecordExperiments Capability = "record_experiments"
)

// Allows reports whether user holds capability. Inactive or missing users
// hold nothing.
func Allows(user *models.User, capability Capability) bool {
	if user == nil || !user.IsActive {
		return false
	}

	switch capability {
	case ViewAnalytics:
		return user.IsDirector
	case ManageUsers:
		return user.IsAdmin
	case RecordExperiments:
		return true
	}
	return false
}

// Require returns apperrors.ErrForbidden unless user holds capability
func Require(user *models.User, capability Capability) error {
	if user == nil {
		return apperrors.ErrUnauthorized
	}
	if !Allows(user, capability) {
		return fmt.Errorf("%w: %s required", apperrors.ErrForbidden, capability)
	}
	return nil
}
