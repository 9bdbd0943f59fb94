package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSubmission(t *testing.T) {
	before := SubmissionCount("accepted")
	ObserveSubmission("accepted")
	ObserveSubmission("accepted")
	assert.Equal(t, before+2, SubmissionCount("accepted"))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRequest(http.MethodGet, "/api/teams", http.StatusOK, 5*time.Millisecond)
	ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	ObserveSubmission("rejected")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `registration_http_requests_total{method="GET",route="/api/teams",status="200"}`)
	assert.Contains(t, body, `route="unmatched"`)
	assert.Contains(t, body, `registration_team_submissions_total{outcome="rejected"}`)
	assert.Contains(t, body, "registration_http_request_duration_seconds_bucket")
}
