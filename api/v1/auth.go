package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alloylab/config"
	"github.com/alloylab/dto"
	"github.com/alloylab/middleware"
	"github.com/alloylab/services"
)

// AuthController handles login, logout and the current profile
type AuthController struct {
	authService *services.AuthService
	cfg         config.AuthConfig
	log         *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(authService *services.AuthService, cfg config.AuthConfig, log *zap.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cfg:         cfg,
		log:         log,
	}
}

// RegisterRoutes registers auth routes. requireAuth guards /me.
func (ctl *AuthController) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", ctl.Login)
		auth.POST("/logout", ctl.Logout)
		auth.GET("/me", requireAuth, ctl.Me)
	}
}

// Login handles user authentication
func (ctl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	authResponse, err := ctl.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctl.log, err)
		return
	}

	// Set token as HttpOnly cookie for the lifetime of the token
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.CookieName,
		authResponse.Token,
		int(time.Until(authResponse.ExpiresAt).Seconds()),
		"/",
		"",
		ctl.cfg.SecureCookie,
		true,
	)

	// Also return token in response body for clients that prefer Bearer auth
	respondOK(c, http.StatusOK, authResponse)
}

// Logout clears the session cookie
func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.CookieName, "", -1, "/", "", ctl.cfg.SecureCookie, true)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}

// Me returns the currently authenticated user's profile
func (ctl *AuthController) Me(c *gin.Context) {
	respondOK(c, http.StatusOK, middleware.CurrentUser(c))
}
