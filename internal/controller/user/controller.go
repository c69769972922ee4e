// Package user provides HTTP handlers for the /users endpoints.
package user

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/middleware"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/objectstore"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// MaxAvatarSize is the largest accepted avatar in bytes
const MaxAvatarSize = 512 << 10

// AvatarField is the multipart field carrying the avatar image
const AvatarField = "avatar"

// UserController handles profile and admin endpoints
type UserController struct {
	Users store.UserStore
	Jobs  store.JobStore
	// Avatars may be nil, avatar uploads are then rejected.
	Avatars objectstore.Store
	Logger  *slog.Logger
}

// NewUserController creates a new instance of UserController
func NewUserController(users store.UserStore, jobs store.JobStore, avatars objectstore.Store, logger *slog.Logger) *UserController {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserController{Users: users, Jobs: jobs, Avatars: avatars, Logger: logger}
}

// UpdateUserInput is the allow-list of profile fields, sent as JSON or as form fields next to the avatar.
type UpdateUserInput struct {
	Name     string `json:"name" form:"name" binding:"required"`
	LastName string `json:"lastName" form:"lastName" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Location string `json:"location" form:"location" binding:"required"`
}

// UpdateUserResponse is returned by UpdateUser
type UpdateUserResponse struct {
	Message string     `json:"message"`
	User    model.User `json:"user"`
}

func identity(c *gin.Context) (policy.Identity, bool) {
	caller, err := utilities.ExtractIdentity(c)
	if err != nil {
		utilities.AbortWithError(c, apperror.Unauthenticated(err.Error()))
		return policy.Identity{}, false
	}
	return caller, true
}

// GetCurrentUser returns the profile of the caller
// @Summary Current user
// @Tags Users
// @Produce json
// @Success 200 {object} model.UserResponse "The caller"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Account no longer exists"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/current-user [get]
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}

	user, err := uc.Users.FindByID(c.Request.Context(), caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		utilities.AbortWithError(c, apperror.NotFound("User not found"))
		return
	}
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("find user: %w", err)))
		return
	}

	c.JSON(http.StatusOK, model.UserResponse{User: *user})
}

// GetApplicationStats counts every user and every job
// @Summary Application statistics
// @Description Only admin can access this endpoint
// @Tags Users
// @Produce json
// @Success 200 {object} model.AppStatsResponse "Totals"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /users/admin/app-stats [get]
func (uc *UserController) GetApplicationStats(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := uc.Users.Count(ctx)
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("count users: %w", err)))
		return
	}
	jobs, err := uc.Jobs.CountAll(ctx)
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("count jobs: %w", err)))
		return
	}

	c.JSON(http.StatusOK, model.AppStatsResponse{Users: users, Jobs: jobs})
}

// UpdateUser replaces the profile fields of the caller and optionally its avatar
// @Summary Update own profile
// @Description Accepts JSON, or multipart/form-data when an avatar image (at most 512 KiB) is sent
// @Tags Users
// @Accept json,mpfd
// @Produce json
// @Param Info body UpdateUserInput true "Profile"
// @Param avatar formData file false "Avatar image"
// @Success 200 {object} UpdateUserResponse "Updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid input, email already exists or demo account"
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Account no longer exists"
// @Failure 413 {object} utilities.ErrorResponse "Request entity too large"
// @Failure 500 {object} utilities.ErrorResponse "Database or storage error"
// @Router /users/update-user [patch]
func (uc *UserController) UpdateUser(c *gin.Context) {
	caller, ok := identity(c)
	if !ok {
		return
	}
	if err := policy.CheckMutation(caller); err != nil {
		utilities.AbortWithError(c, err)
		return
	}

	var input UpdateUserInput
	if err := c.ShouldBind(&input); err != nil {
		var maxBytesError *http.MaxBytesError
		if errors.As(err, &maxBytesError) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{Error: "Request entity too large"})
			return
		}
		utilities.AbortWithError(c, apperror.Validation(utilities.BindingErrors(err)))
		return
	}

	ctx := c.Request.Context()
	current, err := uc.Users.FindByID(ctx, caller.UserID)
	if errors.Is(err, store.ErrNotFound) {
		utilities.AbortWithError(c, apperror.NotFound("User not found"))
		return
	}
	if err != nil {
		utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("find user: %w", err)))
		return
	}

	update := model.UserUpdate{EditableUserInfo: model.EditableUserInfo{
		Name:     strings.TrimSpace(input.Name),
		LastName: strings.TrimSpace(input.LastName),
		Email:    auth.NormalizeEmail(input.Email),
		Location: strings.TrimSpace(input.Location),
	}}

	if file, err := c.FormFile(AvatarField); err == nil {
		update.Avatar, update.AvatarKey, err = uc.uploadAvatar(c, caller.UserID, file)
		if err != nil {
			utilities.AbortWithError(c, err)
			return
		}
	}

	updated, err := uc.Users.Update(ctx, caller.UserID, update)
	if err != nil {
		uc.removeAvatar(c, update.AvatarKey)
		switch {
		case errors.Is(err, store.ErrDuplicate):
			utilities.AbortWithError(c, apperror.BadRequest("Email already exists"))
		case errors.Is(err, store.ErrNotFound):
			utilities.AbortWithError(c, apperror.NotFound("User not found"))
		default:
			utilities.AbortWithError(c, apperror.Internal(fmt.Errorf("update user: %w", err)))
		}
		return
	}

	if update.AvatarKey != "" && current.AvatarKey != "" && current.AvatarKey != update.AvatarKey {
		uc.removeAvatar(c, current.AvatarKey)
	}

	c.JSON(http.StatusOK, UpdateUserResponse{Message: "user updated", User: *updated})
}

// uploadAvatar checks the image and stores it under a fresh key, returning its URL and key.
func (uc *UserController) uploadAvatar(c *gin.Context, userID string, file *multipart.FileHeader) (string, string, error) {
	if uc.Avatars == nil {
		return "", "", apperror.BadRequest("Avatar upload is not available")
	}
	if file.Size > MaxAvatarSize {
		return "", "", apperror.BadRequest("Please provide image smaller than 0.5 MB")
	}

	f, err := file.Open()
	if err != nil {
		return "", "", apperror.Internal(fmt.Errorf("open avatar: %w", err))
	}
	defer func() {
		if err := f.Close(); err != nil {
			uc.Logger.Warn("failed to close avatar", slog.Any("error", err))
		}
	}()

	content, err := io.ReadAll(io.LimitReader(f, MaxAvatarSize+1))
	if err != nil {
		return "", "", apperror.Internal(fmt.Errorf("read avatar: %w", err))
	}
	if len(content) > MaxAvatarSize {
		return "", "", apperror.BadRequest("Please provide image smaller than 0.5 MB")
	}

	contentType := http.DetectContentType(content)
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", apperror.BadRequest("Please provide an image file")
	}

	key := path.Join("avatars", userID, uuid.NewString()+strings.ToLower(path.Ext(file.Filename)))
	url, err := uc.Avatars.Upload(c.Request.Context(), key, bytes.NewReader(content), int64(len(content)), contentType)
	if err != nil {
		return "", "", apperror.Internal(fmt.Errorf("upload avatar: %w", err))
	}
	return url, key, nil
}

func (uc *UserController) removeAvatar(c *gin.Context, key string) {
	if key == "" || uc.Avatars == nil {
		return
	}
	if err := uc.Avatars.Remove(c.Request.Context(), key); err != nil {
		uc.Logger.Warn("failed to remove avatar", slog.String("key", key), slog.Any("error", err))
	}
}

// RegisterRoutes mounts the user endpoints on rg, which must already authenticate.
func (uc *UserController) RegisterRoutes(rg *gin.RouterGroup, admin, mutate middleware.Chain) {
	rg.GET("/current-user", uc.GetCurrentUser)
	rg.GET("/admin/app-stats", admin.Then(uc.GetApplicationStats)...)
	rg.PATCH("/update-user", mutate.Then(uc.UpdateUser)...)
}
