package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/core"
)

// recordingStore is an in-test JobStore that records update calls and can be
// scripted to fail for specific ids.
type recordingStore struct {
	jobs    []*core.JobRecord
	updates map[string]core.ProposedUpdate
	failIDs map[string]bool
}

func newRecordingStore(jobs ...*core.JobRecord) *recordingStore {
	return &recordingStore{
		jobs:    jobs,
		updates: make(map[string]core.ProposedUpdate),
		failIDs: make(map[string]bool),
	}
}

func (s *recordingStore) ListJobs(_ context.Context, _ string) ([]*core.JobRecord, error) {
	return s.jobs, nil
}

func (s *recordingStore) GetJob(_ context.Context, id string) (*core.JobRecord, error) {
	for _, j := range s.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, core.ErrJobNotFound
}

func (s *recordingStore) CreateJob(_ context.Context, job *core.JobRecord) error {
	s.jobs = append(s.jobs, job)
	return nil
}

func (s *recordingStore) UpdateAnalysis(_ context.Context, id string, upd core.ProposedUpdate) error {
	if s.failIDs[id] {
		return errors.New("write refused")
	}
	s.updates[id] = upd
	return nil
}

func (s *recordingStore) FindByMessageID(_ context.Context, owner, messageID string) (*core.JobRecord, error) {
	for _, j := range s.jobs {
		if j.Owner == owner && j.MessageID == messageID {
			return j, nil
		}
	}
	return nil, core.ErrJobNotFound
}

func jobAnalyzedAt(id string, last time.Time) *core.JobRecord {
	return &core.JobRecord{
		ID:           id,
		Owner:        "me",
		CompanyName:  "Initech",
		Status:       core.StatusApplied,
		EmailSubject: "Thank you for applying",
		EmailFrom:    "jobs@initech.com",
		LastAnalyzed: last,
	}
}

func TestRecategorizeSkipsFreshRecords(t *testing.T) {
	llm := &scriptedClassifier{
		result: &core.AIClassification{Status: core.StatusInterviewing, Confidence: 0.9},
	}
	store := newRecordingStore(jobAnalyzedAt("j1", time.Now().Add(-48*time.Hour)))
	recat := core.NewRecategorizer(store, newService(llm), zap.NewNop(), 7*24*time.Hour, 0)

	res, err := recat.Run(context.Background(), "me", false)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.Processed)
	assert.Equal(t, 0, res.Updated)
	assert.Equal(t, 0, llm.calls, "no external call for a fresh record")
}

func TestRecategorizeForceOverridesStaleness(t *testing.T) {
	store := newRecordingStore(jobAnalyzedAt("j1", time.Now().Add(-48*time.Hour)))
	recat := core.NewRecategorizer(store, newService(nil), zap.NewNop(), 7*24*time.Hour, 0)

	res, err := recat.Run(context.Background(), "me", true)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 0, res.Skipped)
}

func TestRecategorizeContinuesPastRecordFailures(t *testing.T) {
	stale := time.Now().Add(-30 * 24 * time.Hour)
	store := newRecordingStore(jobAnalyzedAt("bad", stale), jobAnalyzedAt("good", stale))
	store.failIDs["bad"] = true
	recat := core.NewRecategorizer(store, newService(nil), zap.NewNop(), 7*24*time.Hour, 0)

	res, err := recat.Run(context.Background(), "me", false)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Processed)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "bad")
	assert.Contains(t, store.updates, "good")
}

func TestRecategorizeSkipsRecordsWithoutEmailContext(t *testing.T) {
	store := newRecordingStore(&core.JobRecord{ID: "empty", Owner: "me", Status: core.StatusApplied})
	recat := core.NewRecategorizer(store, newService(nil), zap.NewNop(), 7*24*time.Hour, 0)

	res, err := recat.Run(context.Background(), "me", true)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Empty(t, store.updates, "nothing to analyze, existing fields preserved")
}

func TestRecategorizeStopsOnCancellation(t *testing.T) {
	stale := time.Now().Add(-30 * 24 * time.Hour)
	store := newRecordingStore(jobAnalyzedAt("j1", stale), jobAnalyzedAt("j2", stale))
	recat := core.NewRecategorizer(store, newService(nil), zap.NewNop(), 7*24*time.Hour, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := recat.Run(ctx, "me", false)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Updated)
}

// Extraction only proposes replacement values it actually found, so an update
// from a record with sparse email context never blanks previously stored
// company or title fields.
func TestRecategorizeNeverDowngradesFields(t *testing.T) {
	stale := time.Now().Add(-30 * 24 * time.Hour)
	rec := jobAnalyzedAt("j1", stale)
	rec.EmailFrom = "no-reply@greenhouse.io" // excluded domain: no company candidate
	rec.EmailSubject = "Update on your application"
	store := newRecordingStore(rec)
	recat := core.NewRecategorizer(store, newService(nil), zap.NewNop(), 7*24*time.Hour, 0)

	_, err := recat.Run(context.Background(), "me", false)
	require.NoError(t, err)

	upd, ok := store.updates["j1"]
	require.True(t, ok)
	assert.False(t, upd.CompanyName.IsSome())
	assert.False(t, upd.JobTitle.IsSome())
}
