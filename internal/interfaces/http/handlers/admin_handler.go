package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/interfaces/http/response"
	"campus-challenge.backend/internal/usecases"
	"campus-challenge.backend/pkg/jwt"
	"campus-challenge.backend/pkg/utils"
)

const (
	msgInvalidMemberID  = "成员ID无效"
	msgInvalidIsCaptain = "is_captain 参数必须为 true 或 false"
)

type AdminService interface {
	ListTeams(ctx context.Context, q usecases.TeamListQuery) ([]*entities.Team, utils.PaginationMeta, error)
	GetTeam(ctx context.Context, id uint) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint, input entities.TeamInput) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uint) error
	ListMembers(ctx context.Context, q usecases.MemberListQuery) ([]*entities.TeamMember, utils.PaginationMeta, error)
	UpdateMember(ctx context.Context, id uint, input entities.MemberInput) (*entities.TeamMember, error)
	DeleteMember(ctx context.Context, id uint) error
	ListConfigs(ctx context.Context) ([]*usecases.ConfigView, error)
	UpsertConfig(ctx context.Context, input usecases.ConfigInput) (*usecases.ConfigView, error)
	DeleteConfig(ctx context.Context, key string) error
}

type AdminLoginService interface {
	Login(ctx context.Context, username, password string) (*jwt.Token, error)
}

type ExportService interface {
	ExportTeams(ctx context.Context, format string) (*usecases.ExportFile, error)
	ExportMembers(ctx context.Context, format string) (*usecases.ExportFile, error)
}

// AdminHandler handles admin endpoints
type AdminHandler struct {
	admin   AdminService
	auth    AdminLoginService
	exports ExportService
	loc     *time.Location
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin AdminService, auth AdminLoginService, exports ExportService, loc *time.Location) *AdminHandler {
	return &AdminHandler{admin: admin, auth: auth, exports: exports, loc: loc}
}

// Login exchanges admin credentials for a bearer token
// POST /admin/api/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !bindJSON(c, &input) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), strings.TrimSpace(input.Username), input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": token})
}

// ListTeams lists teams with search, track filter and pagination
// GET /admin/api/teams
func (h *AdminHandler) ListTeams(c *gin.Context) {
	q := usecases.TeamListQuery{
		Search: strings.TrimSpace(c.Query("search")),
		Track:  strings.TrimSpace(c.Query("track")),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
	teams, meta, err := h.admin.ListTeams(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newTeamViews(teams, h.loc), "meta": meta})
}

// GET /admin/api/teams/:id
func (h *AdminHandler) GetTeam(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidTeamID)
	if !ok {
		return
	}
	team, err := h.admin.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newTeamView(team, h.loc)})
}

// PUT /admin/api/teams/:id
func (h *AdminHandler) UpdateTeam(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidTeamID)
	if !ok {
		return
	}
	var input entities.TeamInput
	if !bindJSON(c, &input) {
		return
	}
	team, err := h.admin.UpdateTeam(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newTeamView(team, h.loc)})
}

// DELETE /admin/api/teams/:id
func (h *AdminHandler) DeleteTeam(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidTeamID)
	if !ok {
		return
	}
	if err := h.admin.DeleteTeam(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// ListMembers lists members with search, team and captain filters
// GET /admin/api/members
func (h *AdminHandler) ListMembers(c *gin.Context) {
	q := usecases.MemberListQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		TeamName: strings.TrimSpace(c.Query("team_name")),
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	}
	if raw := strings.TrimSpace(c.Query("is_captain")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, domainerrors.Validation(msgInvalidIsCaptain))
			return
		}
		q.IsCaptain = &v
	}

	members, meta, err := h.admin.ListMembers(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newMemberViews(members, h.loc), "meta": meta})
}

// PUT /admin/api/members/:id
func (h *AdminHandler) UpdateMember(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidMemberID)
	if !ok {
		return
	}
	var input entities.MemberInput
	if !bindJSON(c, &input) {
		return
	}
	member, err := h.admin.UpdateMember(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": newMemberView(member, h.loc)})
}

// DELETE /admin/api/members/:id
func (h *AdminHandler) DeleteMember(c *gin.Context) {
	id, ok := parseID(c, "id", msgInvalidMemberID)
	if !ok {
		return
	}
	if err := h.admin.DeleteMember(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// GET /admin/api/configs
func (h *AdminHandler) ListConfigs(c *gin.Context) {
	views, err := h.admin.ListConfigs(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": views, "count": len(views)})
}

// PUT /admin/api/configs
func (h *AdminHandler) UpsertConfig(c *gin.Context) {
	var input usecases.ConfigInput
	if !bindJSON(c, &input) {
		return
	}
	view, err := h.admin.UpsertConfig(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true, "data": view})
}

// DELETE /admin/api/configs/:key
func (h *AdminHandler) DeleteConfig(c *gin.Context) {
	if err := h.admin.DeleteConfig(c.Request.Context(), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// GET /admin/api/export/teams?format=csv|xlsx
func (h *AdminHandler) ExportTeams(c *gin.Context) {
	file, err := h.exports.ExportTeams(c.Request.Context(), c.DefaultQuery("format", usecases.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

// GET /admin/api/export/members?format=csv|xlsx
func (h *AdminHandler) ExportMembers(c *gin.Context) {
	file, err := h.exports.ExportMembers(c.Request.Context(), c.DefaultQuery("format", usecases.FormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	sendFile(c, file)
}

func sendFile(c *gin.Context, file *usecases.ExportFile) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// queryInt returns 0 for a missing or malformed value
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
