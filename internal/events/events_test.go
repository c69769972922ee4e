package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Mitrevichin/Job-Tracking-App/internal/database"
	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
)

func TestNewJobEvent(t *testing.T) {
	job := &model.Job{ID: "job-1", CreatedBy: "owner", EditableJobInfo: model.EditableJobInfo{JobStatus: model.JobStatusInterview}}

	event := NewJobEvent(JobUpdated, job, "admin")

	assert.Equal(t, JobUpdated, event.Type)
	assert.Equal(t, "job-1", event.JobID)
	assert.Equal(t, "owner", event.OwnerID)
	assert.Equal(t, "admin", event.ActorID)
	assert.Equal(t, model.JobStatusInterview, event.JobStatus)
	assert.WithinDuration(t, time.Now(), event.OccurredAt, time.Minute)
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), JobEvent{Type: JobCreated}))
	assert.NoError(t, p.Close())
}

func TestRedisPublisher(t *testing.T) {
	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := database.NewRedisClient(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	sub := rdb.Subscribe(ctx, "job-events")
	t.Cleanup(func() { _ = sub.Close() })
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	p := NewRedisPublisher(rdb, "job-events")
	require.NoError(t, p.Publish(ctx, JobEvent{Type: JobDeleted, JobID: "job-9"}))

	select {
	case msg := <-sub.Channel():
		var got JobEvent
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, JobDeleted, got.Type)
		assert.Equal(t, "job-9", got.JobID)
	case <-time.After(5 * time.Second):
		t.Fatal("event not received")
	}
}
