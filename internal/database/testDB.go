package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	m "github.com/Mitrevichin/Job-Tracking-App/internal/model"
	"github.com/Mitrevichin/Job-Tracking-App/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & jobs
var (
	TestAdminUser m.User
	TestUser1     m.User
	TestUser2     m.User
	TestDemoUser  m.User

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// TestJob1 and TestJob2 belong to TestUser1, TestJob3 to TestUser2 and TestDemoJob to TestDemoUser.
	TestJob1    m.Job
	TestJob2    m.Job
	TestJob3    m.Job
	TestDemoJob m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		UseConstr: true,
		DBName:    dbName,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config, nil)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts the fixture users and jobs.
func seedTestData(db *DBinstanceStruct) error {
	hashedPwd, err := utilities.HashPassword(TestSeedPassword)
	if err != nil {
		return err
	}

	newUser := func(name, email, role string, demo bool) m.User {
		return m.User{
			ID: uuid.NewString(),
			EditableUserInfo: m.EditableUserInfo{
				Name:     name,
				LastName: "Tester",
				Email:    email,
				Location: m.DefaultJobLocation,
			},
			Password: hashedPwd,
			Role:     role,
			IsDemo:   demo,
		}
	}

	TestAdminUser = newUser("Admin", "admin@example.com", m.RoleAdmin, false)
	TestUser1 = newUser("Alice", "alice@example.com", m.RoleUser, false)
	TestUser2 = newUser("Bob", "bob@example.com", m.RoleUser, false)
	TestDemoUser = newUser("Demo", "test@test.com", m.RoleUser, true)

	users := []*m.User{&TestAdminUser, &TestUser1, &TestUser2, &TestDemoUser}
	for _, u := range users {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	newJob := func(owner m.User, company, position, status string, createdAt time.Time) m.Job {
		return m.Job{
			ID: uuid.NewString(),
			EditableJobInfo: m.EditableJobInfo{
				Company:     company,
				Position:    position,
				JobStatus:   status,
				JobType:     m.JobTypeFullTime,
				JobLocation: m.DefaultJobLocation,
			},
			CreatedBy: owner.ID,
			CreatedAt: createdAt,
		}
	}

	TestJob1 = newJob(TestUser1, "Acme", "Backend Engineer", m.JobStatusPending, now.AddDate(0, -1, 0))
	TestJob2 = newJob(TestUser1, "Globex", "Frontend Engineer", m.JobStatusInterview, now)
	TestJob3 = newJob(TestUser2, "Initech", "Data Analyst", m.JobStatusDeclined, now)
	TestDemoJob = newJob(TestDemoUser, "Demo Corp", "Demo Developer", m.JobStatusPending, now)

	jobs := []*m.Job{&TestJob1, &TestJob2, &TestJob3, &TestDemoJob}
	for _, j := range jobs {
		if err := db.Create(j).Error; err != nil {
			return err
		}
	}
	return nil
}
