// Package store declares the persistence contracts for jobs and users.
// Implementations live in the postgres and mongo sub packages.
package store

import (
	"context"
	"errors"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
)

// ErrNotFound is returned when no record matches the given identifier
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint (user email) is violated
var ErrDuplicate = errors.New("duplicate record")

// JobStore persists jobs.
type JobStore interface {
	// Find returns the page of jobs matching q, ordered by q.Sort.
	Find(ctx context.Context, q query.Query) ([]model.Job, error)
	// Count returns the number of jobs matching q, ignoring paging.
	Count(ctx context.Context, q query.Query) (int64, error)
	// Create inserts job and fills the store managed fields.
	Create(ctx context.Context, job *model.Job) error
	FindByID(ctx context.Context, id string) (*model.Job, error)
	// UpdateByID replaces the editable fields and returns the updated job.
	UpdateByID(ctx context.Context, id string, info model.EditableJobInfo) (*model.Job, error)
	// DeleteByID removes the job and returns it as it was.
	DeleteByID(ctx context.Context, id string) (*model.Job, error)
	// CountByStatus returns the number of jobs of ownerID per status, absent statuses are omitted.
	CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error)
	// CountByMonth returns job counts of ownerID for the most recent months having jobs,
	// newest month first, at most limit entries.
	CountByMonth(ctx context.Context, ownerID string, limit int) ([]model.MonthlyCount, error)
	// CountAll returns the number of jobs of every user.
	CountAll(ctx context.Context) (int64, error)
}

// UserStore persists users.
type UserStore interface {
	// Create inserts user, returning ErrDuplicate when the email is taken.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Update replaces the allow-listed profile fields.
	Update(ctx context.Context, id string, update model.UserUpdate) (*model.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// HealthChecker reports backend health statistics.
type HealthChecker interface {
	Health() map[string]string
}
