package dto

// CompositionInput is one element line submitted with a new experiment
type CompositionInput struct {
	Element    string  `json:"element" binding:"required"`
	Percentage float64 `json:"percentage"`
}

// CreateExperimentRequest represents the intake form.
// Dates accept the same formats as report windows.
// CreatorID defaults to the authenticated user.
type CreateExperimentRequest struct {
	Name          string             `json:"name" binding:"required,max=100"`
	Task          string             `json:"task" binding:"required,max=255"`
	Delivered     string             `json:"delivered" binding:"required"`
	Manufacture   string             `json:"manufacture" binding:"required"`
	CreatorID     *uint              `json:"creatorId"`
	ConductedByID uint               `json:"conductedById" binding:"required"`
	Compositions  []CompositionInput `json:"compositions" binding:"dive"`
}

// UpdateExperimentRequest sets the outcome of an experiment
type UpdateExperimentRequest struct {
	Comment string `json:"comment" binding:"max=255"`
	Result  string `json:"result" binding:"required"`
}
