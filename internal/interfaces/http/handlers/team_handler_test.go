package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/interfaces/http/middleware"
	"campus-challenge.backend/internal/usecases"
	"campus-challenge.backend/pkg/clock"
)

type registrationStub struct {
	submitFn func(ctx context.Context, input *entities.SubmissionInput) (*entities.Team, error)
}

func (s registrationStub) Submit(ctx context.Context, input *entities.SubmissionInput) (*entities.Team, error) {
	return s.submitFn(ctx, input)
}

type teamServiceStub struct {
	listFn func(ctx context.Context) ([]*entities.Team, error)
	getFn  func(ctx context.Context, id uint) (*entities.Team, error)
}

func (s teamServiceStub) ListTeams(ctx context.Context) ([]*entities.Team, error) {
	return s.listFn(ctx)
}

func (s teamServiceStub) GetTeam(ctx context.Context, id uint) (*entities.Team, error) {
	return s.getFn(ctx, id)
}

func teamRouter(reg RegistrationService, teams TeamService) *gin.Engine {
	h := NewTeamHandler(reg, teams, civilZone)
	r := newRouter()
	r.POST("/api/team/submit", middleware.BodyLimitMiddleware(512), h.SubmitTeam)
	r.GET("/api/teams", h.ListTeams)
	r.GET("/api/team/:id", h.GetTeam)
	return r
}

func TestTeamHandler_SubmitTeam(t *testing.T) {
	var got *entities.SubmissionInput
	reg := registrationStub{submitFn: func(_ context.Context, input *entities.SubmissionInput) (*entities.Team, error) {
		got = input
		switch input.TeamInfo.TeamName {
		case "Taken":
			return nil, domainerrors.Conflict("团队名称已被使用")
		case "Late":
			return nil, domainerrors.DeadlineClosed("报名已截止（截止时间：2025-10-31 23:59:59）")
		case "Boom":
			return nil, errors.New("db down")
		}
		return &entities.Team{ID: 42}, nil
	}}
	r := teamRouter(reg, teamServiceStub{})

	t.Run("success", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/api/team/submit",
			`{"team_info":{"team_name":"Alpha"},"members":[{"name":"Zhang","is_captain":true}]}`)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, usecases.SubmissionSuccessMessage, body["message"])
		assert.Equal(t, float64(42), body["team_id"])
		require.Len(t, got.Members, 1)
		assert.True(t, got.Members[0].IsCaptain)
	})

	t.Run("empty body reaches validation", func(t *testing.T) {
		reg := registrationStub{submitFn: func(_ context.Context, input *entities.SubmissionInput) (*entities.Team, error) {
			assert.Empty(t, input.TeamInfo.TeamName)
			return nil, domainerrors.Validation("请填写所有团队必填字段")
		}}
		w := doRequest(teamRouter(reg, teamServiceStub{}), http.MethodPost, "/api/team/submit", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "validation_error")
	})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"malformed json", `{"team_info":`, http.StatusBadRequest, domainerrors.CodeValidation},
		{"wrong field type", `{"team_info":{"team_name":1}}`, http.StatusBadRequest, domainerrors.CodeValidation},
		{"duplicate name", `{"team_info":{"team_name":"Taken"}}`, http.StatusBadRequest, domainerrors.CodeConflict},
		{"deadline", `{"team_info":{"team_name":"Late"}}`, http.StatusForbidden, domainerrors.CodeDeadlineClosed},
		{"internal", `{"team_info":{"team_name":"Boom"}}`, http.StatusInternalServerError, domainerrors.CodeInternalError},
		{"too large", `{"team_info":{"team_name":"` + strings.Repeat("x", 600) + `"}}`, http.StatusRequestEntityTooLarge, codePayloadTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/team/submit", tt.body)
			assert.Equal(t, tt.status, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestTeamHandler_ListTeams(t *testing.T) {
	teams := teamServiceStub{listFn: func(context.Context) ([]*entities.Team, error) {
		return []*entities.Team{sampleTeam()}, nil
	}}
	w := doRequest(teamRouter(registrationStub{}, teams), http.MethodGet, "/api/teams", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	data := body["data"].([]interface{})
	team := data[0].(map[string]interface{})
	assert.Equal(t, "Alpha", team["team_name"])
	assert.Equal(t, "2025-10-01 12:00:00", team["createdAt"])
	assert.Equal(t, "", team["project_intro"])
	members := team["members"].([]interface{})
	assert.Equal(t, "Zhang", members[0].(map[string]interface{})["name"])

	failing := teamServiceStub{listFn: func(context.Context) ([]*entities.Team, error) {
		return nil, domainerrors.InternalError(errors.New("boom"))
	}}
	w = doRequest(teamRouter(registrationStub{}, failing), http.MethodGet, "/api/teams", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTeamHandler_GetTeam(t *testing.T) {
	teams := teamServiceStub{getFn: func(_ context.Context, id uint) (*entities.Team, error) {
		if id == 7 {
			return sampleTeam(), nil
		}
		return nil, domainerrors.NotFound("团队不存在")
	}}
	r := teamRouter(registrationStub{}, teams)

	w := doRequest(r, http.MethodGet, "/api/team/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(7), data["id"])
	assert.Equal(t, "https://git.example/alpha", data["repo_url"])

	for _, v := range []interface{}{data["createdAt"], data["updatedAt"],
		data["members"].([]interface{})[0].(map[string]interface{})["createdAt"]} {
		at, err := time.ParseInLocation(clock.DisplayLayout, v.(string), civilZone)
		require.NoError(t, err)
		assert.True(t, at.Equal(sampleTeam().CreatedAt))
	}

	w = doRequest(r, http.MethodGet, "/api/team/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "团队不存在", decodeBody(t, w)["message"])

	w = doRequest(r, http.MethodGet, "/api/team/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidTeamID, decodeBody(t, w)["message"])
}
