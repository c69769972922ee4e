// Package events publishes job lifecycle notifications.
// Publishing is best effort: callers log failures and never fail the request.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Mitrevichin/Job-Tracking-App/internal/model"
)

// Event types
const (
	JobCreated = "job.created"
	JobUpdated = "job.updated"
	JobDeleted = "job.deleted"
)

// JobEvent is the message body published for every job mutation
type JobEvent struct {
	Type       string    `json:"type"`
	JobID      string    `json:"jobId"`
	OwnerID    string    `json:"ownerId"`
	ActorID    string    `json:"actorId"`
	JobStatus  string    `json:"jobStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewJobEvent describes a change to job made by actorID
func NewJobEvent(eventType string, job *model.Job, actorID string) JobEvent {
	return JobEvent{
		Type:       eventType,
		JobID:      job.ID,
		OwnerID:    job.CreatedBy,
		ActorID:    actorID,
		JobStatus:  job.JobStatus,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers job events to a broker.
type Publisher interface {
	Publish(ctx context.Context, event JobEvent) error
	Close() error
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, JobEvent) error { return nil }

func (Nop) Close() error { return nil }

func encode(event JobEvent) ([]byte, error) {
	return json.Marshal(event)
}
