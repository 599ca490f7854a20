package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alloylab/dto"
	"github.com/alloylab/middleware"
	"github.com/alloylab/services"
)

// ExperimentController handles experiment intake and outcome updates
type ExperimentController struct {
	experimentService *services.ExperimentService
	log               *zap.Logger
}

// NewExperimentController creates a new experiment controller
func NewExperimentController(experimentService *services.ExperimentService, log *zap.Logger) *ExperimentController {
	return &ExperimentController{
		experimentService: experimentService,
		log:               log,
	}
}

// RegisterRoutes registers experiment routes
func (ctl *ExperimentController) RegisterRoutes(router *gin.RouterGroup) {
	experiments := router.Group("/experiments")
	{
		experiments.GET("", ctl.ListExperiments)
		experiments.POST("", ctl.CreateExperiment)
		experiments.GET("/operators", ctl.ListOperators)
		experiments.GET("/:id", ctl.GetExperiment)
		experiments.PUT("/:id", ctl.UpdateExperiment)
	}
}

// ListExperiments returns every experiment, newest first
func (ctl *ExperimentController) ListExperiments(c *gin.Context) {
	experiments, err := ctl.experimentService.ListExperiments(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, experiments)
}

// ListOperators returns the operators selectable for a new experiment
func (ctl *ExperimentController) ListOperators(c *gin.Context) {
	operators, err := ctl.experimentService.ListOperators(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, operators)
}

// GetExperiment returns one experiment with its compositions
func (ctl *ExperimentController) GetExperiment(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, "Invalid experiment ID")
		return
	}

	experiment, err := ctl.experimentService.GetExperiment(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, experiment)
}

// CreateExperiment records a new experiment
func (ctl *ExperimentController) CreateExperiment(c *gin.Context) {
	var req dto.CreateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	experiment, err := ctl.experimentService.CreateExperiment(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusCreated, experiment)
}

// UpdateExperiment sets the comment and result of an experiment
func (ctl *ExperimentController) UpdateExperiment(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, "Invalid experiment ID")
		return
	}

	var req dto.UpdateExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	experiment, err := ctl.experimentService.UpdateOutcome(c.Request.Context(), middleware.CurrentUser(c), id, req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, experiment)
}
