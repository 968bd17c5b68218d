package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"proshop/models"
	"proshop/services"
)

type UserController struct {
	authSvc *services.AuthService
	userSvc *services.UserService
}

func NewUserController(authSvc *services.AuthService, userSvc *services.UserService) *UserController {
	return &UserController{authSvc: authSvc, userSvc: userSvc}
}

func authResponse(user *models.User, token string) models.AuthResponse {
	return models.AuthResponse{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		Token:   token,
	}
}

// @Summary Register
// @Description Register a new user account
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users [post]
func (ctrl *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid user data"})
		return
	}

	user, token, err := ctrl.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, authResponse(user, token))
}

// @Summary Login
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/users/auth [post]
func (ctrl *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid credentials payload"})
		return
	}

	user, token, err := ctrl.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to authenticate"})
		return
	}

	c.JSON(http.StatusOK, authResponse(user, token))
}

// @Summary Logout
// @Description Token auth is stateless; the client discards its token
// @Tags Users
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /api/users/logout [post]
func (ctrl *UserController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

// @Summary Get own profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Router /api/users/profile [get]
func (ctrl *UserController) GetProfile(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized, token failed"})
		return
	}

	user, err := ctrl.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Update own profile
// @Tags Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Router /api/users/profile [put]
func (ctrl *UserController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid user data"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized, token failed"})
		return
	}

	user, err := ctrl.authSvc.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Request password reset
// @Description Emails a 5-minute OTP to the account address
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.MessageResponse
// @Router /api/users/forgot-password [post]
func (ctrl *UserController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	if err := ctrl.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		case errors.Is(err, services.ErrOTPUnavailable):
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Password reset is temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to send OTP"})
		}
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "OTP sent to your email"})
}

// @Summary Reset password with OTP
// @Tags Users
// @Accept json
// @Produce json
// @Param request body models.ResetPasswordRequest true "Email, OTP and new password"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/users/reset-password [post]
func (ctrl *UserController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	if err := ctrl.authSvc.ResetPassword(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid or expired OTP"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		case errors.Is(err, services.ErrOTPUnavailable):
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Password reset is temporarily unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Password reset successfully"})
}

// @Summary List users
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.User
// @Router /api/users [get]
func (ctrl *UserController) GetUsers(c *gin.Context) {
	users, err := ctrl.userSvc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Get user by ID
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [get]
func (ctrl *UserController) GetUserByID(c *gin.Context) {
	user, err := ctrl.userSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Update user
// @Tags Admin - Users
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body models.UpdateUserRequest true "User fields"
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid user data"})
		return
	}

	user, err := ctrl.userSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Email already in use"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update user"})
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Delete user
// @Tags Admin - Users
// @Security BearerAuth
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	if err := ctrl.userSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "User not found"})
		case errors.Is(err, services.ErrCannotDeleteAdmin):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Cannot delete admin user"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete user"})
		}
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "User removed"})
}
