package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"campus-challenge.backend/internal/domain/entities"
)

var civilZone = time.FixedZone("UTC+8", 8*60*60)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func sampleTeam() *entities.Team {
	at := time.Date(2025, 10, 1, 4, 0, 0, 0, time.UTC)
	return &entities.Team{
		ID:               7,
		TeamName:         "Alpha",
		CompetitionTrack: entities.TrackTechChallenge,
		ProjectName:      "P",
		CostrictUID:      "U1",
		RepoURL:          null.StringFrom("https://git.example/alpha"),
		CreatedAt:        at,
		UpdatedAt:        at,
		Members: []*entities.TeamMember{{
			ID:        1,
			TeamID:    7,
			TeamName:  "Alpha",
			Name:      "Zhang",
			IsCaptain: true,
			Phone:     "13800000000",
			Email:     "a@b.com",
			CreatedAt: at,
			UpdatedAt: at,
		}},
	}
}
