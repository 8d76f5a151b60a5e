package core

import (
	"context"
	"errors"
	"time"
)

// ErrJobNotFound is returned by JobStore lookups that match no record.
var ErrJobNotFound = errors.New("job record not found")

// LLMClassifier defines the interface for the external AI classifier. It is
// an untrusted capability: any error it returns is absorbed by the hybrid
// classifier, which falls back to the heuristic path.
type LLMClassifier interface {
	// ClassifyEmail asks the external model to classify a job-related email.
	ClassifyEmail(ctx context.Context, email *EmailRecord) (*AIClassification, error)
}

// JobStore defines the interface for persisting tracked job applications.
// UpdateAnalysis issues whole-field replacements for the named analysis
// fields only, never partial merges beyond them.
type JobStore interface {
	// ListJobs returns all job records for an owner.
	ListJobs(ctx context.Context, owner string) ([]*JobRecord, error)

	// GetJob retrieves a single record by id.
	GetJob(ctx context.Context, id string) (*JobRecord, error)

	// CreateJob stores a new record.
	CreateJob(ctx context.Context, job *JobRecord) error

	// UpdateAnalysis applies a proposed re-classification to a record.
	UpdateAnalysis(ctx context.Context, id string, upd ProposedUpdate) error

	// FindByMessageID looks up the record previously imported from a message.
	FindByMessageID(ctx context.Context, owner, messageID string) (*JobRecord, error)
}

// EmailSource supplies raw email records for a lookback window, most relevant
// first. Dedup against previously imported records is the caller's job.
type EmailSource interface {
	FetchEmails(ctx context.Context, owner string, since time.Time) ([]*EmailRecord, error)
}
