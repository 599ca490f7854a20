package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alloylab/dto"
	"github.com/alloylab/middleware"
	"github.com/alloylab/services"
)

// UserController handles account administration
type UserController struct {
	userService *services.UserService
	log         *zap.Logger
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, log *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		log:         log,
	}
}

// RegisterRoutes registers admin user routes
func (ctl *UserController) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("", ctl.ListUsers)
		users.POST("", ctl.CreateUser)
		users.POST("/:id/toggle", ctl.ToggleUser)
	}
}

// ListUsers returns active and inactive accounts
func (ctl *UserController) ListUsers(c *gin.Context) {
	users, err := ctl.userService.ListUsers(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, users)
}

// CreateUser creates a new account
func (ctl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := ctl.userService.CreateUser(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusCreated, user)
}

// ToggleUser activates or deactivates an account
func (ctl *UserController) ToggleUser(c *gin.Context) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		respondMessage(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := ctl.userService.ToggleUserStatus(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}
	respondOK(c, http.StatusOK, user)
}
