package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vitrine/vitrine-backend/internal/app/model"
	"github.com/vitrine/vitrine-backend/internal/app/service"
	"github.com/vitrine/vitrine-backend/internal/errors"
	"github.com/vitrine/vitrine-backend/internal/middleware"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Phone     string `json:"phone"`
}

type UpdateUserRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Username    *string `json:"username"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Valid       *bool   `json:"valid"`
	Password    string  `json:"password"`
	OldPassword string  `json:"old_password"`
	Reset       bool    `json:"reset"`
}

// Index lists users
// GET /users
func (ctrl *UserController) Index(c *gin.Context) {
	users, err := ctrl.userService.List()
	if err != nil {
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Show returns one user
// GET /users/:id
func (ctrl *UserController) Show(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid user id")
		return
	}

	user, err := ctrl.userService.GetByID(uint(id))
	if err != nil {
		if err == service.ErrUserNotFound {
			errors.NotFound(c, errors.UserNotFound, "User not found")
			return
		}
		errors.InternalError(c, "")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Register creates a new account
// POST /users
func (ctrl *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid registration data")
		return
	}

	profile, err := ctrl.userService.Register(service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
	})
	if err != nil {
		switch err {
		case service.ErrEmailAlreadyExists:
			errors.Conflict(c, errors.AuthEmailExists, "User email already exists")
		case service.ErrUsernameAlreadyExists:
			errors.Conflict(c, errors.AuthUsernameExists, "Username already exists")
		default:
			errors.RespondWithParsedError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// Update mutates a user account. Users may only modify their own account; an
// administrator may target any account, and the Reset flag lets them force
// the configured default password onto it.
// PUT /users/:id
func (ctrl *UserController) Update(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		errors.Unauthorized(c, errors.AuthUnauthorized, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		errors.BadRequest(c, errors.ValidationInvalidID, "Invalid user id")
		return
	}

	if uint(id) != actorID && c.GetString(middleware.UserRoleKey) != string(model.RoleAdmin) {
		errors.Forbidden(c, "Cannot modify another user's account")
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.BadRequest(c, errors.ValidationInvalidInput, "Invalid update data")
		return
	}

	profile, err := ctrl.userService.Update(uint(id), service.UserMutation{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Username:    req.Username,
		Email:       req.Email,
		Phone:       req.Phone,
		Valid:       req.Valid,
		Password:    req.Password,
		OldPassword: req.OldPassword,
		Reset:       req.Reset,
	})
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			errors.NotFound(c, errors.UserNotFound, "User not found")
		case service.ErrEmailAlreadyExists:
			errors.Conflict(c, errors.AuthEmailExists, "User email already exists")
		case service.ErrUsernameAlreadyExists:
			errors.Conflict(c, errors.AuthUsernameExists, "Username already exists")
		case service.ErrPasswordMismatch:
			errors.Unauthorized(c, errors.AuthPasswordMismatch, "Password does not match")
		default:
			errors.RespondWithParsedError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
