package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-challenge.backend/internal/domain/entities"
	"campus-challenge.backend/internal/interfaces/http/response"
	"campus-challenge.backend/internal/usecases"
)

const msgInvalidTeamID = "团队ID无效"

type RegistrationService interface {
	Submit(ctx context.Context, input *entities.SubmissionInput) (*entities.Team, error)
}

type TeamService interface {
	ListTeams(ctx context.Context) ([]*entities.Team, error)
	GetTeam(ctx context.Context, id uint) (*entities.Team, error)
}

// TeamHandler serves the public registration form API
type TeamHandler struct {
	registration RegistrationService
	teams        TeamService
	loc          *time.Location
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(registration RegistrationService, teams TeamService, loc *time.Location) *TeamHandler {
	return &TeamHandler{registration: registration, teams: teams, loc: loc}
}

// SubmitTeam registers a team with its members
// POST /api/team/submit
func (h *TeamHandler) SubmitTeam(c *gin.Context) {
	var input entities.SubmissionInput
	if !bindJSON(c, &input) {
		return
	}

	team, err := h.registration.Submit(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"message": usecases.SubmissionSuccessMessage,
		"team_id": team.ID,
	})
}

// ListTeams returns every team with its members
// GET /api/teams
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teams.ListTeams(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"data":    newTeamViews(teams, h.loc),
		"count":   len(teams),
	})
}

// GetTeam returns one team
// GET /api/team/:id
func (h *TeamHandler) GetTeam(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidTeamID)
	if !ok {
		return
	}

	team, err := h.teams.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newTeamView(team, h.loc)})
}
