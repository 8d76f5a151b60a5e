package core_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/core"
)

type scriptedSource struct {
	emails []*core.EmailRecord
}

func (s *scriptedSource) FetchEmails(_ context.Context, _ string, _ time.Time) ([]*core.EmailRecord, error) {
	return s.emails, nil
}

func confirmationEmail(messageID string) *core.EmailRecord {
	return &core.EmailRecord{
		Subject:   "Thank you for applying to Acme Corp — Software Engineer",
		From:      "jobs@acmecorp.com",
		Content:   "We have received your application and will review it.",
		Date:      time.Now(),
		MessageID: messageID,
	}
}

func TestImporterCreatesJobRecords(t *testing.T) {
	store := newRecordingStore()
	source := &scriptedSource{emails: []*core.EmailRecord{confirmationEmail("<m1@acme>")}}
	im := core.NewImporter(source, store, newService(nil), zap.NewNop())

	res, err := im.Run(context.Background(), "me", time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Fetched)
	assert.Equal(t, 1, res.Created)
	require.Len(t, store.jobs, 1)

	job := store.jobs[0]
	assert.Equal(t, "me", job.Owner)
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, "Software Engineer", job.JobTitle)
	assert.Equal(t, core.StatusApplied, job.Status)
	assert.Equal(t, core.MethodRegex, job.AnalysisMethod)
	assert.NotEmpty(t, job.ID)
}

func TestImporterDiscardsJobBoardNoise(t *testing.T) {
	store := newRecordingStore()
	source := &scriptedSource{emails: []*core.EmailRecord{{
		Subject: "LinkedIn Job Alert: 12 new jobs matching your search",
		From:    "jobs-noreply@linkedin.com",
		Content: "unsubscribe at any time",
	}}}
	im := core.NewImporter(source, store, newService(nil), zap.NewNop())

	res, err := im.Run(context.Background(), "me", time.Time{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.SkippedNoise)
	assert.Empty(t, store.jobs)
}

func TestImporterDedupsByMessageID(t *testing.T) {
	store := newRecordingStore()
	im := core.NewImporter(nil, store, newService(nil), zap.NewNop())

	outcome, err := im.ImportOne(context.Background(), "me", confirmationEmail("<m1@acme>"))
	require.NoError(t, err)
	assert.Equal(t, core.ImportCreated, outcome)

	outcome, err = im.ImportOne(context.Background(), "me", confirmationEmail("<m1@acme>"))
	require.NoError(t, err)
	assert.Equal(t, core.ImportUpdated, outcome)

	assert.Len(t, store.jobs, 1)
	assert.Len(t, store.updates, 1)
}

func TestImporterSkipsLowConfidence(t *testing.T) {
	store := newRecordingStore()
	im := core.NewImporter(nil, store, newService(nil), zap.NewNop())

	outcome, err := im.ImportOne(context.Background(), "me", &core.EmailRecord{
		Subject: "About the job",
		From:    "noreply@lever.co",
		Content: "promotional content about a job opening",
	})
	require.NoError(t, err)

	assert.Equal(t, core.ImportSkippedLowConfidence, outcome)
	assert.Empty(t, store.jobs)
}

func TestImporterPlaceholderOnlyAtRecordCreation(t *testing.T) {
	store := newRecordingStore()
	im := core.NewImporter(nil, store, newService(nil), zap.NewNop())

	_, err := im.ImportOne(context.Background(), "me", &core.EmailRecord{
		Subject: "Your application is under review",
		From:    "no-reply@greenhouse.io",
		Content: "we are reviewing applications for the role now",
	})
	require.NoError(t, err)

	require.Len(t, store.jobs, 1)
	assert.Equal(t, "Unknown Company", store.jobs[0].CompanyName)
}
