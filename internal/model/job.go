package model

import (
	"time"
)

// Job status values
const (
	JobStatusPending   = "pending"
	JobStatusInterview = "interview"
	JobStatusDeclined  = "declined"
)

// Job type values shipped by default, the accepted set can be reconfigured.
const (
	JobTypeFullTime   = "full-time"
	JobTypePartTime   = "part-time"
	JobTypeInternship = "internship"
	JobTypeRemote     = "remote"
)

// DefaultJobLocation is used when a job is saved without location
const DefaultJobLocation = "My city"

// JobStatuses is every accepted job status in display order.
var JobStatuses = []string{JobStatusPending, JobStatusInterview, JobStatusDeclined}

// DefaultJobTypes is the job type set used when configuration doesn't override it.
var DefaultJobTypes = []string{JobTypeFullTime, JobTypePartTime, JobTypeInternship, JobTypeRemote}

// EditableJobInfo is the allow-list of job fields a client may set.
// Anything outside of this struct is owned by the server.
type EditableJobInfo struct {
	Company     string `gorm:"type:text;not null" json:"company" bson:"company"`
	Position    string `gorm:"type:text;not null" json:"position" bson:"position"`
	JobStatus   string `gorm:"type:text;not null;default:'pending';index" json:"jobStatus" bson:"jobStatus"`
	JobType     string `gorm:"type:text;not null;default:'full-time';index" json:"jobType" bson:"jobType"`
	JobLocation string `gorm:"type:text;not null;default:'My city'" json:"jobLocation" bson:"jobLocation"`
}

// Job is a tracked job application owned by exactly one user
type Job struct {
	ID string `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"_id" bson:"_id"`
	EditableJobInfo `bson:",inline"`
	// CreatedBy is stamped from the authenticated caller and never written after creation.
	CreatedBy string    `gorm:"type:uuid;not null;index;<-:create" json:"createdBy" bson:"createdBy"`
	CreatedAt time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// ApplyDefaults fills omitted fields with the values a new job gets.
func (e *EditableJobInfo) ApplyDefaults() {
	if e.JobStatus == "" {
		e.JobStatus = JobStatusPending
	}
	if e.JobType == "" {
		e.JobType = JobTypeFullTime
	}
	if e.JobLocation == "" {
		e.JobLocation = DefaultJobLocation
	}
}

// JobListResponse is the paginated answer of GET /jobs
type JobListResponse struct {
	TotalJobs   int64 `json:"totalJobs"`
	NumOfPages  int   `json:"numOfPages"`
	CurrentPage int   `json:"currentPage"`
	Jobs        []Job `json:"jobs"`
}

// JobResponse wraps a single job
type JobResponse struct {
	Job Job `json:"job"`
}

// JobMessageResponse wraps a job together with a message, used by update and delete.
type JobMessageResponse struct {
	Message string `json:"message"`
	Job     Job    `json:"job"`
}
