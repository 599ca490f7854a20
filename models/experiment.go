package models

import (
	"time"

	"gorm.io/gorm"
)

// ExperimentResult is the outcome of an experiment
type ExperimentResult string

const (
	ResultInProgress ExperimentResult = "in progress"
	ResultSuccess    ExperimentResult = "success"
	ResultFailure    ExperimentResult = "failure"
)

// Valid reports whether r is one of the known results
func (r ExperimentResult) Valid() bool {
	switch r {
	case ResultInProgress, ResultSuccess, ResultFailure:
		return true
	}
	return false
}

// Experiment represents a lab trial.
// CreatorID is the authoritative reference to whoever recorded the experiment;
// Creator is a name snapshot kept for display and is not kept in sync.
type Experiment struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"size:100;not null"`
	Task          string           `json:"task" gorm:"size:255;not null"`
	Delivered     time.Time        `json:"delivered" gorm:"not null"`
	Manufacture   time.Time        `json:"manufacture" gorm:"not null;index"`
	Result        ExperimentResult `json:"result" gorm:"type:varchar(20);not null;default:'in progress';index"`
	Comment       string           `json:"comment" gorm:"size:255"`
	Creator       string           `json:"creator" gorm:"size:100;not null"`
	CreatorID     *uint            `json:"creatorId" gorm:"index"`
	ConductedByID *uint            `json:"conductedById" gorm:"index"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`

	// Relations
	ConductedBy  *User         `json:"conductedBy,omitempty" gorm:"foreignKey:ConductedByID"`
	Compositions []Composition `json:"compositions,omitempty" gorm:"foreignKey:ExperimentID;constraint:OnDelete:CASCADE"`
}

// CompositionMap returns element -> percentage for the experiment
func (e Experiment) CompositionMap() map[string]float64 {
	m := make(map[string]float64, len(e.Compositions))
	for _, c := range e.Compositions {
		m[c.Element] = c.Percentage
	}
	return m
}

// BeforeSave stores timestamps in UTC. sqlite compares them as text, so
// mixed offsets would break window filters.
func (e *Experiment) BeforeSave(tx *gorm.DB) error {
	e.Delivered = e.Delivered.UTC()
	e.Manufacture = e.Manufacture.UTC()
	return nil
}
