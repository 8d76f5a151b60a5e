package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobtrail/jobtrail/internal/adapters/httpapi"
	"github.com/jobtrail/jobtrail/internal/adapters/store"
	"github.com/jobtrail/jobtrail/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*httpapi.Server, *store.MemoryStore) {
	t.Helper()
	logger := zap.NewNop()
	st := store.NewMemoryStore(logger)
	svc := core.NewClassifierService(nil, logger, core.ClassifierConfig{})
	importer := core.NewImporter(nil, st, svc, logger)
	recat := core.NewRecategorizer(st, svc, logger, 0, 0)
	return httpapi.NewServer("127.0.0.1:0", logger, svc, st, importer, recat), st
}

func jsonRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClassifyEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/classify", map[string]string{
		"subject": "Your application to Acme",
		"from":    "jane.doe@acmecorp.com",
		"content": "Thank you for applying to the Software Engineer position at Acme.",
	})
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Status     string  `json:"status"`
		Company    *string `json:"company"`
		JobTitle   *string `json:"job_title"`
		Confidence float64 `json:"confidence"`
		Method     string  `json:"method"`
		Retained   bool    `json:"retained"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "applied", result.Status)
	require.NotNil(t, result.Company)
	assert.Equal(t, "Acme", *result.Company)
	require.NotNil(t, result.JobTitle)
	assert.Equal(t, "Software Engineer", *result.JobTitle)
	assert.Equal(t, "regex", result.Method)
	assert.Greater(t, result.Confidence, 0.0)
	assert.True(t, result.Retained)
}

func TestClassifyEndpointReportsDiscardableResults(t *testing.T) {
	srv, _ := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/classify", map[string]string{
		"subject": "Weekly digest",
		"from":    "noreply@jobalerts.example.com",
		"content": "Sponsored newsletter about a job opening. Unsubscribe here.",
	})
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Confidence float64 `json:"confidence"`
		Retained   bool    `json:"retained"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Less(t, result.Confidence, 0.2)
	assert.False(t, result.Retained)
}

func TestClassifyEndpointRejectsBadBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/classify", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListJobsRequiresOwner(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/jobs", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListAndGetJobs(t *testing.T) {
	srv, st := newTestServer(t)
	job := &core.JobRecord{
		ID:          "j1",
		Owner:       "alice",
		CompanyName: "Acme",
		JobTitle:    "Software Engineer",
		Status:      core.StatusApplied,
	}
	require.NoError(t, st.CreateJob(context.Background(), job))

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/jobs?owner=alice", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var listed struct {
		Jobs []core.JobRecord `json:"jobs"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	require.Len(t, listed.Jobs, 1)
	assert.Equal(t, "Acme", listed.Jobs[0].CompanyName)

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/jobs/j1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/jobs/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecategorizeEndpoint(t *testing.T) {
	srv, st := newTestServer(t)
	job := &core.JobRecord{
		ID:           "j1",
		Owner:        "alice",
		CompanyName:  "Acme",
		Status:       core.StatusApplied,
		EmailSubject: "Interview invitation from Acme",
		EmailFrom:    "jane.doe@acmecorp.com",
		LastAnalyzed: time.Now().Add(-30 * 24 * time.Hour),
	}
	require.NoError(t, st.CreateJob(context.Background(), job))

	req := jsonRequest(t, http.MethodPost, "/api/jobs/recategorize", map[string]interface{}{
		"owner": "alice",
	})
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result core.BatchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Updated)

	updated, err := st.GetJob(context.Background(), "j1")
	require.NoError(t, err)
	assert.Equal(t, core.StatusInterviewing, updated.Status)
}

func TestRecategorizeRequiresOwner(t *testing.T) {
	srv, _ := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/jobs/recategorize", map[string]interface{}{})
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestImportEndpointWithoutSource(t *testing.T) {
	srv, _ := newTestServer(t)

	req := jsonRequest(t, http.MethodPost, "/api/jobs/import", map[string]string{"owner": "alice"})
	resp, err := srv.App().Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
