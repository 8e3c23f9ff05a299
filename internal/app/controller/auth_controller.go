package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
	"github.com/vitrine/vitrine-backend/internal/middleware"
	"github.com/vitrine/vitrine-backend/pkg/redis"
)

type AuthController struct {
	authService service.AuthService
	tokenExpiry time.Duration
}

func NewAuthController(authService service.AuthService, tokenExpiry time.Duration) *AuthController {
	return &AuthController{
		authService: authService,
		tokenExpiry: tokenExpiry,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a user and issues a token
// POST /sessions
func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Username and password are required")
		return
	}

	user, token, err := ctrl.authService.Authenticate(req.Username, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			errors.Unauthorized(c, errors.AuthInvalidCredentials, "Invalid username or password")
			return
		}
		errors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"username":   user.Username,
			"email":      user.Email,
			"role":       user.Role,
			"avatar":     user.Avatar,
		},
		"token": token,
	})
}

// Logout revokes the current token
// DELETE /sessions
func (ctrl *AuthController) Logout(c *gin.Context) {
	token := c.GetString(middleware.TokenKey)
	if token != "" {
		// Keep the blacklist entry as long as the token could still be valid
		if err := redis.BlacklistToken(c.Request.Context(), token, ctrl.tokenExpiry); err != nil {
			errors.InternalError(c, "")
			return
		}
	}
	c.Status(http.StatusNoContent)
}
