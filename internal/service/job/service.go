// Package job orchestrates the query builder, the authorization policy and the job store.
package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Mitrevichin/Job-Tracking-App/internal/apperror"
	"github.com/Mitrevichin/Job-Tracking-App/internal/events"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/policy"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

// DefaultMonthlyWindow is how many months of history Stats reports
const DefaultMonthlyWindow = 6

// MonthLabelLayout formats the month of a monthly application count
const MonthLabelLayout = "Jan 06"

const publishTimeout = 3 * time.Second

// Config tunes the service
type Config struct {
	PageLimit      int
	MaxClientLimit int
	// JobTypes is the accepted job type set, model.DefaultJobTypes when empty.
	JobTypes      []string
	MonthlyWindow int
}

// Service implements the job operations for an authenticated caller.
type Service struct {
	jobs          store.JobStore
	builder       *query.Builder
	jobTypes      []string
	monthlyWindow int
	publisher     events.Publisher
	logger        *slog.Logger
}

// NewService returns a Service. A nil publisher discards events and a nil logger uses slog.Default.
func NewService(jobs store.JobStore, cfg Config, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	jobTypes := cfg.JobTypes
	if len(jobTypes) == 0 {
		jobTypes = model.DefaultJobTypes
	}
	window := cfg.MonthlyWindow
	if window < 1 {
		window = DefaultMonthlyWindow
	}
	return &Service{
		jobs:          jobs,
		builder:       query.NewBuilder(cfg.PageLimit, cfg.MaxClientLimit),
		jobTypes:      jobTypes,
		monthlyWindow: window,
		publisher:     publisher,
		logger:        logger,
	}
}

// JobTypes returns the accepted job types
func (s *Service) JobTypes() []string {
	return s.jobTypes
}

// List returns one page of the caller's own jobs.
func (s *Service) List(ctx context.Context, caller policy.Identity, params query.Params) (query.Page[model.Job], error) {
	q := s.builder.Build(caller.UserID, params)

	jobs, err := s.jobs.Find(ctx, q)
	if err != nil {
		return query.Page[model.Job]{}, apperror.Internal(fmt.Errorf("find jobs: %w", err))
	}
	total, err := s.jobs.Count(ctx, q)
	if err != nil {
		return query.Page[model.Job]{}, apperror.Internal(fmt.Errorf("count jobs: %w", err))
	}
	return query.NewPage(q, total, jobs), nil
}

// Create validates info and stores it as a new job owned by the caller.
func (s *Service) Create(ctx context.Context, caller policy.Identity, info model.EditableJobInfo) (*model.Job, error) {
	if err := policy.CheckMutation(caller); err != nil {
		return nil, err
	}
	info.ApplyDefaults()
	if err := s.Validate(info); err != nil {
		return nil, err
	}

	job := &model.Job{EditableJobInfo: info, CreatedBy: caller.UserID}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, apperror.Internal(fmt.Errorf("create job: %w", err))
	}

	s.publish(ctx, events.JobCreated, job, caller)
	return job, nil
}

// Get returns a single job the caller owns, or any job for an admin.
func (s *Service) Get(ctx context.Context, caller policy.Identity, id string) (*model.Job, error) {
	return s.resolve(ctx, caller, id, policy.ActionRead)
}

// Update replaces the editable fields of a job.
func (s *Service) Update(ctx context.Context, caller policy.Identity, id string, info model.EditableJobInfo) (*model.Job, error) {
	if err := policy.CheckMutation(caller); err != nil {
		return nil, err
	}
	if _, err := s.resolve(ctx, caller, id, policy.ActionWrite); err != nil {
		return nil, err
	}
	info.ApplyDefaults()
	if err := s.Validate(info); err != nil {
		return nil, err
	}

	job, err := s.jobs.UpdateByID(ctx, id, info)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("update job %s: %w", id, err))
	}

	s.publish(ctx, events.JobUpdated, job, caller)
	return job, nil
}

// Delete removes a job and returns it as it was.
func (s *Service) Delete(ctx context.Context, caller policy.Identity, id string) (*model.Job, error) {
	if err := policy.CheckMutation(caller); err != nil {
		return nil, err
	}
	if _, err := s.resolve(ctx, caller, id, policy.ActionDelete); err != nil {
		return nil, err
	}

	job, err := s.jobs.DeleteByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("delete job %s: %w", id, err))
	}

	s.publish(ctx, events.JobDeleted, job, caller)
	return job, nil
}

// Stats returns the status histogram and the monthly histogram of the caller's jobs.
// Every status is present, months are in chronological order.
func (s *Service) Stats(ctx context.Context, caller policy.Identity) (*model.StatsResponse, error) {
	counts, err := s.jobs.CountByStatus(ctx, caller.UserID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("count jobs by status: %w", err))
	}
	defaultStats := make(map[string]int64, len(model.JobStatuses))
	for _, status := range model.JobStatuses {
		defaultStats[status] = counts[status]
	}

	months, err := s.jobs.CountByMonth(ctx, caller.UserID, s.monthlyWindow)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("count jobs by month: %w", err))
	}
	monthly := make([]model.MonthlyApplication, 0, len(months))
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]
		monthly = append(monthly, model.MonthlyApplication{
			Date:  time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC).Format(MonthLabelLayout),
			Count: m.Count,
		})
	}

	return &model.StatsResponse{DefaultStats: defaultStats, MonthlyApplications: monthly}, nil
}

// Validate checks required fields and enum ranges, reporting every violation at once.
func (s *Service) Validate(info model.EditableJobInfo) error {
	var details []string
	if info.Company == "" {
		details = append(details, "Company is required")
	}
	if info.Position == "" {
		details = append(details, "Position is required")
	}
	if !utilities.Contains(model.JobStatuses, info.JobStatus) {
		details = append(details, "Invalid status value")
	}
	if !utilities.Contains(s.jobTypes, info.JobType) {
		details = append(details, "Invalid type value")
	}
	if len(details) > 0 {
		return apperror.Validation(details)
	}
	return nil
}

// resolve loads the job and applies the policy for action.
func (s *Service) resolve(ctx context.Context, caller policy.Identity, id string, action policy.Action) (*model.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperror.BadRequest("invalid job id")
	}

	job, err := s.jobs.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("find job %s: %w", id, err))
	}

	if err := policy.Authorize(caller, job, action); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *Service) publish(ctx context.Context, eventType string, job *model.Job, caller policy.Identity) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, events.NewJobEvent(eventType, job, caller.UserID)); err != nil {
		s.logger.Warn("failed to publish job event",
			slog.String("type", eventType),
			slog.String("job_id", job.ID),
			slog.Any("error", err),
		)
	}
}

func notFound(id string) error {
	return apperror.NotFound("No job with id " + id)
}
