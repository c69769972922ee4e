package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// NormalizeEmail trims and lower cases an email so uniqueness ignores case
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser builds a user with a hashed password.
func NewUser(info model.EditableUserInfo, password, role string) (*model.User, error) {
	hashed, err := utilities.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("Failed hash password: %w", err)
	}
	info.Email = NormalizeEmail(info.Email)
	if info.Location == "" {
		info.Location = model.DefaultJobLocation
	}
	return &model.User{
		EditableUserInfo: info,
		Password:         hashed,
		Role:             role,
	}, nil
}

// EnsureAdmin creates an admin account from the given credentials when no admin exists yet.
// Empty credentials disable it.
func EnsureAdmin(ctx context.Context, users store.UserStore, email, password string, logger *slog.Logger) error {
	if email == "" || password == "" {
		logger.Info("Admin email or password not set, skipping admin creation")
		return nil
	}

	count, err := users.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := NewUser(model.EditableUserInfo{Name: "Admin", LastName: "Admin", Email: email}, password, model.RoleAdmin)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, admin); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("a non admin account already uses %s", admin.Email)
		}
		return fmt.Errorf("create admin: %w", err)
	}
	logger.Info("Admin account created", slog.String("email", admin.Email))
	return nil
}
