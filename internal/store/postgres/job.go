// Package postgres implements the store contracts on top of gorm and PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

// sortColumns holds trusted order expressions. Text is compared byte-wise so the
// order does not depend on the cluster locale.
var sortColumns = map[string]string{
	query.FieldCreatedAt: "created_at",
	query.FieldPosition:  `position COLLATE "C"`,
}

// JobStore is the gorm backed store.JobStore
type JobStore struct {
	db *database.DBinstanceStruct
}

var _ store.JobStore = (*JobStore)(nil)

// NewJobStore returns a JobStore using db
func NewJobStore(db *database.DBinstanceStruct) *JobStore {
	return &JobStore{db: db}
}

// filter applies the owner scope and every optional filter of q.
func filter(tx *gorm.DB, q query.Query) *gorm.DB {
	tx = tx.Where("created_by = ?", q.OwnerID)
	if q.Search != "" {
		pattern := q.LikePattern()
		tx = tx.Where("(company ILIKE ? OR position ILIKE ?)", pattern, pattern)
	}
	if q.JobStatus != "" {
		tx = tx.Where("job_status = ?", q.JobStatus)
	}
	if q.JobType != "" {
		tx = tx.Where("job_type = ?", q.JobType)
	}
	return tx
}

func (s *JobStore) Find(ctx context.Context, q query.Query) ([]model.Job, error) {
	column, ok := sortColumns[q.Sort.Field]
	if !ok {
		column = sortColumns[query.FieldCreatedAt]
	}

	jobs := []model.Job{}
	err := filter(s.db.WithContext(ctx).Model(&model.Job{}), q).
		Order(clause.OrderByColumn{Column: clause.Column{Name: column, Raw: true}, Desc: q.Sort.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: q.Sort.Desc}).
		Offset(q.Skip).
		Limit(q.Limit).
		Find(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobStore) Count(ctx context.Context, q query.Query) (int64, error) {
	var total int64
	err := filter(s.db.WithContext(ctx).Model(&model.Job{}), q).Count(&total).Error
	return total, err
}

func (s *JobStore) Create(ctx context.Context, job *model.Job) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *JobStore) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) UpdateByID(ctx context.Context, id string, info model.EditableJobInfo) (*model.Job, error) {
	var job model.Job
	res := s.db.WithContext(ctx).
		Model(&job).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"company":      info.Company,
			"position":     info.Position,
			"job_status":   info.JobStatus,
			"job_type":     info.JobType,
			"job_location": info.JobLocation,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &job, nil
}

func (s *JobStore) DeleteByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	res := s.db.WithContext(ctx).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Delete(&job)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return &job, nil
}

func (s *JobStore) CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error) {
	var rows []struct {
		JobStatus string
		Count     int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("job_status, COUNT(*) AS count").
		Where("created_by = ?", ownerID).
		Group("job_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.JobStatus] = r.Count
	}
	return counts, nil
}

func (s *JobStore) CountByMonth(ctx context.Context, ownerID string, limit int) ([]model.MonthlyCount, error) {
	months := []model.MonthlyCount{}
	err := s.db.WithContext(ctx).
		Model(&model.Job{}).
		Select("CAST(EXTRACT(YEAR FROM created_at) AS INTEGER) AS year, CAST(EXTRACT(MONTH FROM created_at) AS INTEGER) AS month, COUNT(*) AS count").
		Where("created_by = ?", ownerID).
		Group("year, month").
		Order("year DESC, month DESC").
		Limit(limit).
		Scan(&months).Error
	if err != nil {
		return nil, err
	}
	return months, nil
}

func (s *JobStore) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Job{}).Count(&total).Error
	return total, err
}
