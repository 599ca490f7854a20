package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alloylab/middleware"
	"github.com/alloylab/services"
)

// AnalyticsController serves the director reports
type AnalyticsController struct {
	analyticsService  *services.AnalyticsService
	comparisonService *services.ComparisonService
	log               *zap.Logger
}

// NewAnalyticsController creates a new analytics controller
func NewAnalyticsController(analyticsService *services.AnalyticsService, comparisonService *services.ComparisonService, log *zap.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService:  analyticsService,
		comparisonService: comparisonService,
		log:               log,
	}
}

// RegisterRoutes registers analytics routes
func (ctl *AnalyticsController) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	{
		analytics.GET("", ctl.Overview)
		analytics.GET("/employee", ctl.Employee)
		analytics.GET("/compare", ctl.Compare)
	}
}

// Overview godoc
// @Summary Result counts and per-operator success rates
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.OverviewReport
// @Router /analytics [get]
func (ctl *AnalyticsController) Overview(c *gin.Context) {
	report, err := ctl.analyticsService.Overview(c.Request.Context(), middleware.CurrentUser(c),
		c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

// Employee godoc
// @Summary Result counts for one operator
// @Param employee_id query int false "Operator ID"
// @Param start query string false "Window start (YYYY-MM-DD)"
// @Param end query string false "Window end (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.EmployeeReport
// @Router /analytics/employee [get]
func (ctl *AnalyticsController) Employee(c *gin.Context) {
	var operatorID uint
	if raw := c.Query("employee_id"); raw != "" {
		id, ok := parseID(raw)
		if !ok {
			respondMessage(c, http.StatusBadRequest, "Invalid employee ID")
			return
		}
		operatorID = id
	}

	report, err := ctl.analyticsService.Employee(c.Request.Context(), middleware.CurrentUser(c),
		operatorID, c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

// Compare godoc
// @Summary Composition comparison of two experiments
// @Param id1 query int true "First experiment ID"
// @Param id2 query int true "Second experiment ID"
// @Success 200 {object} dto.ComparisonResult
// @Router /analytics/compare [get]
func (ctl *AnalyticsController) Compare(c *gin.Context) {
	id1, ok1 := parseID(c.Query("id1"))
	id2, ok2 := parseID(c.Query("id2"))
	if !ok1 || !ok2 {
		respondMessage(c, http.StatusBadRequest, "id1 and id2 must be experiment IDs")
		return
	}

	result, err := ctl.comparisonService.Compare(c.Request.Context(), middleware.CurrentUser(c), id1, id2)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, result)
}
