package v1

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/alloylab/config"
	"github.com/alloylab/metrics"
	"github.com/alloylab/middleware"
	"github.com/alloylab/policy"
	"github.com/alloylab/services"
)

// Dependencies carries what the v1 controllers are built from
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	log := deps.Logger.Named("api")

	authService := services.NewAuthService(deps.DB, deps.Config.Auth, deps.Logger)
	requireAuth := middleware.AuthMiddleware(authService)

	// Health check endpoint
	router.GET("/health", HealthCheck)

	NewAuthController(authService, deps.Config.Auth, log).RegisterRoutes(router, requireAuth)

	// Experiment endpoints - any active user
	recorded := router.Group("")
	recorded.Use(requireAuth, middleware.RequireCapability(policy.RecordExperiments))
	NewExperimentController(services.NewExperimentService(deps.DB, deps.Logger), log).RegisterRoutes(recorded)

	// Analytics endpoints - directors only
	analytics := router.Group("")
	analytics.Use(requireAuth, middleware.RequireCapability(policy.ViewAnalytics))
	NewAnalyticsController(
		services.NewAnalyticsService(deps.DB, deps.Logger, deps.Metrics),
		services.NewComparisonService(deps.DB, deps.Config.Comparison.Thresholds, deps.Logger, deps.Metrics),
		log,
	).RegisterRoutes(analytics)

	// Admin endpoints - protected by capability middleware
	admin := router.Group("/admin")
	admin.Use(requireAuth, middleware.RequireCapability(policy.ManageUsers))
	NewUserController(services.NewUserService(deps.DB, deps.Logger), log).RegisterRoutes(admin)
}
