package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// Handler serves register, login and logout
type Handler struct {
	Users     store.UserStore
	Tokens    *TokenManager
	Blacklist JwtBlacklistStore
	// SecureCookie sets the Secure attribute of the token cookie.
	SecureCookie bool
	Logger       *slog.Logger
}

// NewHandler creates a new instance of Handler
func NewHandler(users store.UserStore, tokens *TokenManager, blacklist JwtBlacklistStore, secureCookie bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Users:        users,
		Tokens:       tokens,
		Blacklist:    blacklist,
		SecureCookie: secureCookie,
		Logger:       logger,
	}
}

// RegisterInput is the body of a register request
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	LastName string `json:"lastName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Location string `json:"location" binding:"required"`
}

// LoginInput is the body of a login request
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

const invalidCredentials = "Invalid credentials"

// Register creates a user account. The very first account becomes admin.
// @Summary Register a new account
// @Description All fields are required, the password must be at least 8 characters long
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body RegisterInput true "Account information"
// @Success 201 {object} model.UserResponse "Account created"
// @Failure 400 {object} utilities.ErrorResponse "Invalid input or email already exists"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var info RegisterInput
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.AbortWithError(c, apperror.Validation(utilities.BindingErrors(err)))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Users.FindByEmail(ctx, NormalizeEmail(info.Email)); err == nil {
		utilities.AbortWithError(c, apperror.BadRequest("Email already exists"))
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utilities.AbortWithError(c, apperror.Internal(err))
		return
	}

	count, err := h.Users.Count(ctx)
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(err))
		return
	}
	role := model.RoleUser
	if count == 0 {
		role = model.RoleAdmin
	}

	user, err := NewUser(model.EditableUserInfo{
		Name:     info.Name,
		LastName: info.LastName,
		Email:    info.Email,
		Location: info.Location,
	}, info.Password, role)
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(err))
		return
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utilities.AbortWithError(c, apperror.BadRequest("Email already exists"))
			return
		}
		utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("Failed to create user: %w", err)))
		return
	}

	h.Logger.Info("user registered", slog.String("user_id", user.ID), slog.String("role", user.Role))
	c.JSON(http.StatusCreated, model.UserResponse{User: *user})
}

// Login verifies credentials and sets the token cookie
// @Summary Log in with email and password
// @Description The access token is returned in an httpOnly cookie named token
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body LoginInput true "Credentials"
// @Success 200 {object} model.LoginResponse "Logged in"
// @Failure 400 {object} utilities.ErrorResponse "Invalid input"
// @Failure 401 {object} utilities.ErrorResponse "Invalid credentials"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var info LoginInput
	if err := c.ShouldBindJSON(&info); err != nil {
		utilities.AbortWithError(c, apperror.Validation(utilities.BindingErrors(err)))
		return
	}

	user, err := h.Users.FindByEmail(c.Request.Context(), NormalizeEmail(info.Email))
	switch {
	case errors.Is(err, store.ErrNotFound):
		utilities.AbortWithError(c, apperror.Unauthenticated(invalidCredentials))
		return
	case err != nil:
		utilities.AbortWithError(c, apperror.Internal(err))
		return
	}

	if user.Password == "" || !utilities.VerifyPassword(info.Password, user.Password) {
		utilities.AbortWithError(c, apperror.Unauthenticated(invalidCredentials))
		return
	}

	token, _, err := h.Tokens.Issue(user)
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(err))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utilities.TokenCookie, token, int(h.Tokens.TTL().Seconds()), "/", "", h.SecureCookie, true)
	c.JSON(http.StatusOK, model.LoginResponse{Message: "user logged in", User: *user})
}

// Logout expires the token cookie and revokes the token when one is presented
// @Summary Log out
// @Tags Auth
// @Produce json
// @Success 200 {object} utilities.MessageResponse "Logged out"
// @Failure 500 {object} utilities.ErrorResponse "Failed to revoke token"
// @Router /auth/logout [get]
func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utilities.TokenCookie, "", -1, "/", "", h.SecureCookie, true)

	if tokenString, err := utilities.ExtractToken(c); err == nil {
		if claims, err := h.Tokens.Verify(tokenString); err == nil && claims.ID != "" {
			if err := h.Blacklist.AddToBlacklist(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
				utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("Failed to logout: %w", err)))
				return
			}
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "user logged out!"})
}
