// Package mongo implements the store contracts on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

// Collection names
const (
	JobCollection  = "jobs"
	UserCollection = "users"
)

// JobStore handles job documents in MongoDB.
type JobStore struct {
	col *mongo.Collection
}

var _ store.JobStore = (*JobStore)(nil)

func NewJobStore(db *mongo.Database) *JobStore {
	return &JobStore{col: db.Collection(JobCollection)}
}

// jobFilter translates q into a document filter.
func jobFilter(q query.Query) bson.M {
	f := bson.M{"createdBy": q.OwnerID}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: q.RegexPattern(), Options: "i"}
		f["$or"] = bson.A{
			bson.M{"company": pattern},
			bson.M{"position": pattern},
		}
	}
	if q.JobStatus != "" {
		f["jobStatus"] = q.JobStatus
	}
	if q.JobType != "" {
		f["jobType"] = q.JobType
	}
	return f
}

func jobSort(key query.SortKey) bson.D {
	dir := 1
	if key.Desc {
		dir = -1
	}
	field := key.Field
	if field != query.FieldPosition {
		field = query.FieldCreatedAt
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func (s *JobStore) Find(ctx context.Context, q query.Query) ([]model.Job, error) {
	opts := options.Find().
		SetSort(jobSort(q.Sort)).
		SetSkip(int64(q.Skip)).
		SetLimit(int64(q.Limit))
	cur, err := s.col.Find(ctx, jobFilter(q), opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find jobs: %w", err)
	}
	defer cur.Close(ctx)

	jobs := []model.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobStore) Count(ctx context.Context, q query.Query) (int64, error) {
	return s.col.CountDocuments(ctx, jobFilter(q))
}

func (s *JobStore) Create(ctx context.Context, job *model.Job) error {
	now := time.Now().UTC()
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now
	if _, err := s.col.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("mongo insert job: %w", err)
	}
	return nil
}

func (s *JobStore) FindByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) UpdateByID(ctx context.Context, id string, info model.EditableJobInfo) (*model.Job, error) {
	update := bson.M{"$set": bson.M{
		"company":     info.Company,
		"position":    info.Position,
		"jobStatus":   info.JobStatus,
		"jobType":     info.JobType,
		"jobLocation": info.JobLocation,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job model.Job
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) DeleteByID(ctx context.Context, id string) (*model.Job, error) {
	var job model.Job
	err := s.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) CountByStatus(ctx context.Context, ownerID string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdBy": ownerID}}},
		{{Key: "$group", Value: bson.M{"_id": "$jobStatus", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo aggregate status: %w", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (s *JobStore) CountByMonth(ctx context.Context, ownerID string, limit int) ([]model.MonthlyCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"createdBy": ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"year":  bson.M{"$year": "$createdAt"},
				"month": bson.M{"$month": "$createdAt"},
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id.year", Value: -1}, {Key: "_id.month", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{"_id": 0, "year": "$_id.year", "month": "$_id.month", "count": 1}}},
	}
	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo aggregate months: %w", err)
	}
	defer cur.Close(ctx)

	months := []model.MonthlyCount{}
	if err := cur.All(ctx, &months); err != nil {
		return nil, err
	}
	return months, nil
}

func (s *JobStore) CountAll(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
