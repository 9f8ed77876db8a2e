package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
	jsonres "github.com/Sandeep-S-M/FarmConn/pkg/response"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, user *domain.User) (domain.User, error)
	Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error)
	Logout(ctx context.Context, userID uint, token string) error
	RefreshToken(ctx context.Context, userID uint, oldToken string) (string, error)
	ValidateTokenFromRedis(ctx context.Context, token string) (string, error)
	VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error
	GetProfile(ctx context.Context, username string) (domain.User, error)
	UpdateProfile(ctx context.Context, id uint, updateData *domain.User) (domain.User, error)
	SearchUsers(ctx context.Context, query string) ([]domain.User, error)
}

type UserHandler struct {
	userService UserService
	postService PostService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService, postService PostService) *UserHandler {
	return &UserHandler{
		userService: userService,
		postService: postService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UserRegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=farmer nursery"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ProfileUpdateRequest struct {
	Bio            string `json:"bio,omitempty"`
	Location       string `json:"location,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	ContactDetails string `json:"contact_details,omitempty"`
	NurseryName    string `json:"nursery_name,omitempty"`
	PaymentMethods string `json:"payment_methods,omitempty"`
}

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

func (h *UserHandler) Register(c echo.Context) error {
	var reqUser UserRegisterRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user register", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.Register(ctx, &domain.User{
		Username: reqUser.Username,
		Email:    reqUser.Email,
		Password: reqUser.Password,
		Role:     reqUser.Role,
	})
	if err != nil {
		logger.Error("Failed to register user", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

func (h *UserHandler) Login(c echo.Context) error {
	var reqUser UserLoginRequest

	if err := c.Bind(&reqUser); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&reqUser); err != nil {
		logger.Error("Failed to validate user login", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	token, user, err := h.userService.Login(ctx, reqUser.Email, reqUser.Password, ipAddress, userAgent)
	if err != nil {
		logger.Error("Failed to login user", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *UserHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get("token").(string)
	if !ok {
		logger.Error("Failed to get token from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	if err := h.userService.Logout(ctx, userID, token); err != nil {
		logger.Error("Failed to logout user", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("Logout successful", nil))
}

// RefreshToken swaps the caller's session token for a fresh one.
func (h *UserHandler) RefreshToken(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	token, ok := c.Get("token").(string)
	if !ok {
		logger.Error("Failed to get token from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newToken, err := h.userService.RefreshToken(ctx, userID, token)
	if err != nil {
		logger.Error("Failed to refresh token", err)
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("Token refreshed", map[string]interface{}{
		"token": newToken,
	}))
}

func (h *UserHandler) VerifyEmail(c echo.Context) error {
	encCode := c.Param("code")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err := h.userService.VerifyEmail(ctx, encCode)
	if err != nil {
		if strings.Contains(err.Error(), "invalid or expired") {
			return c.JSON(http.StatusUnauthorized, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, jsonres.Success("Successfully verified email", nil))
}

// GetProfile returns a user's public profile by username, with their
// forum posts for the profile page.
func (h *UserHandler) GetProfile(c echo.Context) error {
	username := c.Param("username")

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.userService.GetProfile(ctx, username)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	posts, err := h.postService.ListByAuthor(ctx, user.ID)
	if err != nil {
		logger.Error("Failed to list profile posts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "User retrieved successfully",
		"user":    user,
		"posts":   posts,
	})
}

// UpdateProfile updates the authenticated user's own profile.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var reqUpdate ProfileUpdateRequest
	if err := c.Bind(&reqUpdate); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updatedUser, err := h.userService.UpdateProfile(ctx, userID, &domain.User{
		Bio:            reqUpdate.Bio,
		Location:       reqUpdate.Location,
		OwnerName:      reqUpdate.OwnerName,
		ContactDetails: reqUpdate.ContactDetails,
		NurseryName:    reqUpdate.NurseryName,
		PaymentMethods: reqUpdate.PaymentMethods,
	})
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Your profile has been updated.",
		"user":    updatedUser,
	})
}
