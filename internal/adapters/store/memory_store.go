package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jobtrail/jobtrail/internal/core"
	"go.uber.org/zap"
)

// MemoryStore is an in-memory implementation of the JobStore interface
type MemoryStore struct {
	jobs   map[string]*core.JobRecord
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory job store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		jobs:   make(map[string]*core.JobRecord),
		logger: logger,
	}
}

// ListJobs returns all job records for an owner, most recently created first
func (s *MemoryStore) ListJobs(ctx context.Context, owner string) ([]*core.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var jobs []*core.JobRecord
	for _, job := range s.jobs {
		if job.Owner == owner {
			copied := *job
			jobs = append(jobs, &copied)
		}
	}

	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})

	return jobs, nil
}

// GetJob retrieves a single record by id
func (s *MemoryStore) GetJob(ctx context.Context, id string) (*core.JobRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, core.ErrJobNotFound
	}

	copied := *job
	return &copied, nil
}

// CreateJob stores a new record
func (s *MemoryStore) CreateJob(ctx context.Context, job *core.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	copied := *job
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = now
	}
	copied.UpdatedAt = now
	s.jobs[copied.ID] = &copied

	s.logger.Debug("Job record created",
		zap.String("id", copied.ID),
		zap.String("company", copied.CompanyName))

	return nil
}

// UpdateAnalysis applies a proposed re-classification to a record
func (s *MemoryStore) UpdateAnalysis(ctx context.Context, id string, upd core.ProposedUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return core.ErrJobNotFound
	}

	job.Status = upd.Status
	if name, ok := upd.CompanyName.Get(); ok {
		job.CompanyName = name
	}
	if title, ok := upd.JobTitle.Get(); ok {
		job.JobTitle = title
	}
	job.Confidence = upd.Confidence
	job.AnalysisMethod = upd.AnalysisMethod
	job.LastAnalyzed = upd.LastAnalyzed
	job.UpdatedAt = time.Now()

	return nil
}

// FindByMessageID looks up the record previously imported from a message
func (s *MemoryStore) FindByMessageID(ctx context.Context, owner, messageID string) (*core.JobRecord, error) {
	if messageID == "" {
		return nil, core.ErrJobNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		if job.Owner == owner && job.MessageID == messageID {
			copied := *job
			return &copied, nil
		}
	}

	return nil, core.ErrJobNotFound
}
