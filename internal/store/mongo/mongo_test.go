package mongo

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

var (
	ctx     = context.Background()
	jobs    *JobStore
	users   *UserStore
	builder = query.NewBuilder(10, 0)
)

func TestMain(m *testing.M) {
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Fatalf("could not start mongo container: %v", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("could not get mongo connection string: %v", err)
	}

	db, err := database.NewMongoDatabase(ctx, uri, "job_tracker_test")
	if err != nil {
		log.Fatalf("could not connect to mongo: %v", err)
	}
	if err := EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("could not create indexes: %v", err)
	}
	jobs = NewJobStore(db)
	users = NewUserStore(db)

	code := m.Run()

	_ = db.Client().Disconnect(ctx)
	if err := container.Terminate(ctx); err != nil {
		log.Fatalf("could not teardown mongo container: %v", err)
	}
	os.Exit(code)
}

func TestJobFilter(t *testing.T) {
	q := builder.Build("owner", query.Params{Search: "c++ (remote)", JobStatus: "pending", JobType: "all"})
	f := jobFilter(q)

	assert.Equal(t, "owner", f["createdBy"])
	assert.Equal(t, "pending", f["jobStatus"])
	assert.NotContains(t, f, "jobType")

	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	pattern := or[0].(bson.M)["company"].(primitive.Regex)
	assert.Equal(t, `c\+\+ \(remote\)`, pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestJobSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, jobSort(query.ResolveSort("")))
	assert.Equal(t, bson.D{{Key: "position", Value: 1}, {Key: "_id", Value: 1}}, jobSort(query.ResolveSort(query.SortAZ)))
}

func seedOwner(t *testing.T, infos ...model.EditableJobInfo) (string, []model.Job) {
	t.Helper()
	owner := uuid.NewString()
	created := make([]model.Job, 0, len(infos))
	for i, info := range infos {
		job := model.Job{
			EditableJobInfo: info,
			CreatedBy:       owner,
			CreatedAt:       time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		job.ApplyDefaults()
		require.NoError(t, jobs.Create(ctx, &job))
		created = append(created, job)
	}
	return owner, created
}

func TestFindSearchFilterSort(t *testing.T) {
	owner, _ := seedOwner(t,
		model.EditableJobInfo{Company: "Acme", Position: "Go Developer", JobStatus: model.JobStatusInterview},
		model.EditableJobInfo{Company: "C++ Shop", Position: "Engineer"},
		model.EditableJobInfo{Company: "Beta", Position: "golang dev", JobStatus: model.JobStatusInterview},
	)

	found, err := jobs.Find(ctx, builder.Build(owner, query.Params{Search: "go"}))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = jobs.Find(ctx, builder.Build(owner, query.Params{Search: "c++"}))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "C++ Shop", found[0].Company)

	found, err = jobs.Find(ctx, builder.Build(owner, query.Params{JobStatus: model.JobStatusInterview, Sort: query.SortZA}))
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "golang dev", found[0].Position)

	total, err := jobs.Count(ctx, builder.Build(owner, query.Params{}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	others, err := jobs.Find(ctx, builder.Build(uuid.NewString(), query.Params{}))
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateAndDelete(t *testing.T) {
	_, created := seedOwner(t, model.EditableJobInfo{Company: "Old", Position: "Dev"})
	id := created[0].ID

	updated, err := jobs.UpdateByID(ctx, id, model.EditableJobInfo{
		Company: "New", Position: "Lead", JobStatus: model.JobStatusDeclined,
		JobType: model.JobTypeRemote, JobLocation: "Oslo",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Company)
	assert.Equal(t, created[0].CreatedBy, updated.CreatedBy)

	deleted, err := jobs.DeleteByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "New", deleted.Company)

	_, err = jobs.FindByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = jobs.UpdateByID(ctx, id, model.EditableJobInfo{})
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = jobs.DeleteByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAggregations(t *testing.T) {
	owner := uuid.NewString()
	base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	statuses := []string{model.JobStatusPending, model.JobStatusPending, model.JobStatusInterview, model.JobStatusDeclined}
	for i, offset := range []int{0, 0, -1, -5} {
		job := model.Job{
			EditableJobInfo: model.EditableJobInfo{Company: "M", Position: "m", JobStatus: statuses[i]},
			CreatedBy:       owner,
			CreatedAt:       base.AddDate(0, offset, 0),
		}
		job.ApplyDefaults()
		require.NoError(t, jobs.Create(ctx, &job))
	}

	counts, err := jobs.CountByStatus(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		model.JobStatusPending: 2, model.JobStatusInterview: 1, model.JobStatusDeclined: 1,
	}, counts)

	months, err := jobs.CountByMonth(ctx, owner, 2)
	require.NoError(t, err)
	assert.Equal(t, []model.MonthlyCount{
		{Year: 2024, Month: 3, Count: 2},
		{Year: 2024, Month: 2, Count: 1},
	}, months)
}

func TestUserStore(t *testing.T) {
	u := model.User{
		EditableUserInfo: model.EditableUserInfo{Name: "Dana", Email: "dana-" + uuid.NewString() + "@example.com"},
		Password:         "hash",
		Role:             model.RoleUser,
	}
	require.NoError(t, users.Create(ctx, &u))

	dup := u
	dup.ID = ""
	assert.ErrorIs(t, users.Create(ctx, &dup), store.ErrDuplicate)

	found, err := users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.Password)

	updated, err := users.Update(ctx, u.ID, model.UserUpdate{
		EditableUserInfo: model.EditableUserInfo{Name: "Danielle", LastName: "D", Email: u.Email, Location: "Rome"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Danielle", updated.Name)
	assert.Empty(t, updated.Avatar)

	_, err = users.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestEnsureIndexesIsIdempotent(t *testing.T) {
	assert.NoError(t, EnsureIndexes(ctx, jobs.col.Database()))
}

