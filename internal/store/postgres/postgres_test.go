package postgres

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/query"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

var (
	db     *database.DBinstanceStruct
	jobs   *JobStore
	users  *UserStore
	ctx    = context.Background()
	params = query.NewBuilder(10, 0)
)

func TestMain(m *testing.M) {
	teardown, testDB, err := database.GetTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}
	db = testDB
	jobs = NewJobStore(db)
	users = NewUserStore(db)

	code := m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
	os.Exit(code)
}

// seedOwner creates jobs for a fresh owner so tests don't see each other's writes.
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

func TestCreateFillsStoreManagedFields(t *testing.T) {
	owner := uuid.NewString()
	job := model.Job{
		EditableJobInfo: model.EditableJobInfo{Company: "Umbrella", Position: "SRE"},
		CreatedBy:       owner,
	}
	job.ApplyDefaults()
	require.NoError(t, jobs.Create(ctx, &job))

	assert.NotEmpty(t, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	found, err := jobs.FindByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, found.CreatedBy)
	assert.Equal(t, model.JobStatusPending, found.JobStatus)
	assert.Equal(t, model.DefaultJobLocation, found.JobLocation)
}

func TestFindScopesToOwner(t *testing.T) {
	q := params.Build(database.TestUser1.ID, query.Params{})

	found, err := jobs.Find(ctx, q)
	require.NoError(t, err)
	require.Len(t, found, 2)
	for _, j := range found {
		assert.Equal(t, database.TestUser1.ID, j.CreatedBy)
	}

	total, err := jobs.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFindSearchIsLiteralAndCaseInsensitive(t *testing.T) {
	owner, _ := seedOwner(t,
		model.EditableJobInfo{Company: "Acme", Position: "Go Developer"},
		model.EditableJobInfo{Company: "100% Remote", Position: "Writer"},
		model.EditableJobInfo{Company: "Beta", Position: "go_lang dev"},
		model.EditableJobInfo{Company: "Gamma", Position: "golang dev"},
	)

	tests := []struct {
		search string
		want   int
	}{
		{"GO", 3},
		{"100%", 1},
		{"%", 1},
		{"go_", 1},
		{".*", 0},
		{"acme", 1},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			q := params.Build(owner, query.Params{Search: tt.search})
			found, err := jobs.Find(ctx, q)
			require.NoError(t, err)
			assert.Len(t, found, tt.want)
		})
	}
}

func TestFindFiltersAndSorts(t *testing.T) {
	owner, _ := seedOwner(t,
		model.EditableJobInfo{Company: "A", Position: "bravo", JobStatus: model.JobStatusInterview, JobType: model.JobTypeRemote},
		model.EditableJobInfo{Company: "B", Position: "alpha", JobStatus: model.JobStatusPending, JobType: model.JobTypeRemote},
		model.EditableJobInfo{Company: "C", Position: "charlie", JobStatus: model.JobStatusInterview, JobType: model.JobTypeFullTime},
	)

	found, err := jobs.Find(ctx, params.Build(owner, query.Params{JobStatus: model.JobStatusInterview}))
	require.NoError(t, err)
	assert.Len(t, found, 2)

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{JobStatus: model.JobStatusInterview, JobType: model.JobTypeRemote}))
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "bravo", found[0].Position)

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{Sort: query.SortAZ}))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, positions(found))

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{Sort: query.SortZA}))
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "bravo", "alpha"}, positions(found))

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{Sort: query.SortOldest}))
	require.NoError(t, err)
	assert.Equal(t, []string{"bravo", "alpha", "charlie"}, positions(found))

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{}))
	require.NoError(t, err)
	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, positions(found))
}

func TestFindSortsPositionsByteWise(t *testing.T) {
	owner, _ := seedOwner(t,
		model.EditableJobInfo{Company: "A", Position: "apple"},
		model.EditableJobInfo{Company: "B", Position: "Banana"},
		model.EditableJobInfo{Company: "C", Position: "Cherry"},
	)

	found, err := jobs.Find(ctx, params.Build(owner, query.Params{Sort: query.SortAZ}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana", "Cherry", "apple"}, positions(found))

	found, err = jobs.Find(ctx, params.Build(owner, query.Params{Sort: query.SortZA}))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "Cherry", "Banana"}, positions(found))
}

func TestFindPaginates(t *testing.T) {
	infos := make([]model.EditableJobInfo, 5)
	for i := range infos {
		infos[i] = model.EditableJobInfo{Company: "Paged", Position: string(rune('a' + i))}
	}
	owner, _ := seedOwner(t, infos...)
	b := query.NewBuilder(2, 0)

	page3, err := jobs.Find(ctx, b.Build(owner, query.Params{Page: "3", Sort: query.SortAZ}))
	require.NoError(t, err)
	assert.Equal(t, []string{"e"}, positions(page3))

	page9, err := jobs.Find(ctx, b.Build(owner, query.Params{Page: "9"}))
	require.NoError(t, err)
	assert.Empty(t, page9)

	total, err := jobs.Count(ctx, b.Build(owner, query.Params{Page: "9"}))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestUpdateByID(t *testing.T) {
	_, created := seedOwner(t, model.EditableJobInfo{Company: "Old", Position: "Dev"})

	updated, err := jobs.UpdateByID(ctx, created[0].ID, model.EditableJobInfo{
		Company: "New", Position: "Lead", JobStatus: model.JobStatusDeclined,
		JobType: model.JobTypePartTime, JobLocation: "Berlin",
	})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Company)
	assert.Equal(t, model.JobStatusDeclined, updated.JobStatus)
	assert.Equal(t, created[0].CreatedBy, updated.CreatedBy)

	_, err = jobs.UpdateByID(ctx, uuid.NewString(), model.EditableJobInfo{Company: "x", Position: "y"})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	_, created := seedOwner(t, model.EditableJobInfo{Company: "Gone", Position: "Soon"})

	deleted, err := jobs.DeleteByID(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Gone", deleted.Company)

	_, err = jobs.FindByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = jobs.DeleteByID(ctx, created[0].ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountByStatus(t *testing.T) {
	owner, _ := seedOwner(t,
		model.EditableJobInfo{Company: "A", Position: "a", JobStatus: model.JobStatusPending},
		model.EditableJobInfo{Company: "B", Position: "b", JobStatus: model.JobStatusPending},
		model.EditableJobInfo{Company: "C", Position: "c", JobStatus: model.JobStatusDeclined},
	)

	counts, err := jobs.CountByStatus(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{model.JobStatusPending: 2, model.JobStatusDeclined: 1}, counts)

	empty, err := jobs.CountByStatus(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCountByMonth(t *testing.T) {
	owner := uuid.NewString()
	base := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	for _, offset := range []int{0, 0, -1, -2, -8} {
		job := model.Job{
			EditableJobInfo: model.EditableJobInfo{Company: "M", Position: "m"},
			CreatedBy:       owner,
			CreatedAt:       base.AddDate(0, offset, 0),
		}
		job.ApplyDefaults()
		require.NoError(t, jobs.Create(ctx, &job))
	}

	months, err := jobs.CountByMonth(ctx, owner, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.MonthlyCount{
		{Year: 2024, Month: 3, Count: 2},
		{Year: 2024, Month: 2, Count: 1},
		{Year: 2024, Month: 1, Count: 1},
	}, months)
}

func TestUserStore(t *testing.T) {
	u := model.User{
		EditableUserInfo: model.EditableUserInfo{Name: "Carol", LastName: "C", Email: "carol-" + uuid.NewString() + "@example.com", Location: "Paris"},
		Password:         "hash",
		Role:             model.RoleUser,
	}
	require.NoError(t, users.Create(ctx, &u))
	assert.NotEmpty(t, u.ID)

	dup := u
	dup.ID = ""
	assert.ErrorIs(t, users.Create(ctx, &dup), store.ErrDuplicate)

	byEmail, err := users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	updated, err := users.Update(ctx, u.ID, model.UserUpdate{
		EditableUserInfo: model.EditableUserInfo{Name: "Caroline", LastName: "C", Email: u.Email, Location: "Lyon"},
		Avatar:           "http://cdn/avatar.png",
		AvatarKey:        "avatars/1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Caroline", updated.Name)
	assert.Equal(t, "http://cdn/avatar.png", updated.Avatar)
	assert.Equal(t, model.RoleUser, updated.Role)

	_, err = users.FindByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)

	admins, err := users.CountByRole(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, admins, int64(1))
}

func positions(jobs []model.Job) []string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.Position
	}
	return out
}
