package usecases_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/internal/usecases"
	"campus-challenge.backend/pkg/clock"
)

type adminFixture struct {
	teamRepo   *MockTeamRepository
	memberRepo *MockTeamMemberRepository
	configRepo *MockConfigRepository
	uow        *MockUnitOfWork
	now        time.Time
	uc         *usecases.AdminUsecase
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		teamRepo:   new(MockTeamRepository),
		memberRepo: new(MockTeamMemberRepository),
		configRepo: new(MockConfigRepository),
		uow:        new(MockUnitOfWork),
		now:        time.Date(2025, 10, 2, 10, 0, 0, 0, civilZone),
	}
	f.uc = usecases.NewAdminUsecase(f.teamRepo, f.memberRepo, f.configRepo, f.uow, clock.NewFixed(f.now, civilZone))
	return f
}

func storedTeam() *entities.Team {
	return &entities.Team{
		ID:               5,
		TeamName:         "Alpha",
		CompetitionTrack: entities.TrackTechChallenge,
		ProjectName:      "P",
		CostrictUID:      "U1",
		Members:          []*entities.TeamMember{{ID: 9, TeamID: 5, TeamName: "Alpha", Name: "Zhang"}},
	}
}

func teamInput(name string) entities.TeamInput {
	return entities.TeamInput{
		TeamName:         name,
		CompetitionTrack: "创新应用赛",
		ProjectName:      "P2",
		CostrictUID:      "U1",
	}
}

func TestAdminUsecase_ListTeams_Paginates(t *testing.T) {
	f := newAdminFixture()
	f.teamRepo.On("ListAdmin", mock.Anything, repositories.TeamFilter{
		Search: "al", Track: "技术挑战赛", Limit: 10, Offset: 10,
	}).Return([]*entities.Team{storedTeam()}, int64(11), nil).Once()

	teams, meta, err := f.uc.ListTeams(context.Background(), usecases.TeamListQuery{
		Search: "al", Track: "技术挑战赛", Page: 2, Limit: 10,
	})
	require.NoError(t, err)
	assert.Len(t, teams, 1)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 2, meta.TotalPages)
	assert.Equal(t, int64(11), meta.TotalCount)
}

func TestAdminUsecase_UpdateTeam_RenamePropagates(t *testing.T) {
	f := newAdminFixture()
	f.teamRepo.On("GetByID", mock.Anything, uint(5)).Return(storedTeam(), nil).Once()
	f.teamRepo.On("GetByName", mock.Anything, "Omega").Return(nil, domainerrors.ErrNotFound).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.teamRepo.On("Update", mock.Anything, mock.MatchedBy(func(team *entities.Team) bool {
		return team.TeamName == "Omega" && team.UpdatedAt.Equal(f.now)
	})).Return(nil).Once()
	f.memberRepo.On("RenameTeam", mock.Anything, uint(5), "Omega", f.now).Return(nil).Once()

	team, err := f.uc.UpdateTeam(context.Background(), 5, teamInput(" Omega "))
	require.NoError(t, err)
	assert.Equal(t, "Omega", team.TeamName)
	assert.Equal(t, entities.TrackInnovation, team.CompetitionTrack)
	assert.Equal(t, "Omega", team.Members[0].TeamName)
	f.memberRepo.AssertExpectations(t)
}

func TestAdminUsecase_UpdateTeam_SameNameSkipsRename(t *testing.T) {
	f := newAdminFixture()
	f.teamRepo.On("GetByID", mock.Anything, uint(5)).Return(storedTeam(), nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.teamRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.uc.UpdateTeam(context.Background(), 5, teamInput("Alpha"))
	require.NoError(t, err)
	f.teamRepo.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
	f.memberRepo.AssertNotCalled(t, "RenameTeam", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminUsecase_UpdateTeam_Errors(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		f := newAdminFixture()
		in := teamInput("Alpha")
		in.CompetitionTrack = "Other"
		_, err := f.uc.UpdateTeam(context.Background(), 5, in)
		requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeValidation, "")
	})

	t.Run("not found", func(t *testing.T) {
		f := newAdminFixture()
		f.teamRepo.On("GetByID", mock.Anything, uint(5)).Return(nil, domainerrors.ErrNotFound).Once()
		_, err := f.uc.UpdateTeam(context.Background(), 5, teamInput("Alpha"))
		requireAppError(t, err, http.StatusNotFound, domainerrors.CodeNotFound, "团队不存在")
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		f := newAdminFixture()
		f.teamRepo.On("GetByID", mock.Anything, uint(5)).Return(storedTeam(), nil).Once()
		f.teamRepo.On("GetByName", mock.Anything, "Beta").Return(&entities.Team{ID: 6, TeamName: "Beta"}, nil).Once()
		_, err := f.uc.UpdateTeam(context.Background(), 5, teamInput("Beta"))
		requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeConflict, "团队名称已被使用")
	})

	t.Run("rename race", func(t *testing.T) {
		f := newAdminFixture()
		f.teamRepo.On("GetByID", mock.Anything, uint(5)).Return(storedTeam(), nil).Once()
		f.teamRepo.On("GetByName", mock.Anything, "Beta").Return(nil, domainerrors.ErrNotFound).Once()
		f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
		f.teamRepo.On("Update", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists).Once()
		_, err := f.uc.UpdateTeam(context.Background(), 5, teamInput("Beta"))
		requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeConflict, "")
	})
}

func TestAdminUsecase_DeleteTeam(t *testing.T) {
	f := newAdminFixture()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil)
	f.teamRepo.On("Delete", mock.Anything, uint(5)).Return(nil).Once()
	f.teamRepo.On("Delete", mock.Anything, uint(6)).Return(domainerrors.ErrNotFound).Once()

	require.NoError(t, f.uc.DeleteTeam(context.Background(), 5))
	requireAppError(t, f.uc.DeleteTeam(context.Background(), 6), http.StatusNotFound, domainerrors.CodeNotFound, "")
}

func TestAdminUsecase_ListMembers(t *testing.T) {
	f := newAdminFixture()
	captain := true
	f.memberRepo.On("ListAdmin", mock.Anything, repositories.MemberFilter{
		TeamName: "Alpha", IsCaptain: &captain,
	}).Return([]*entities.TeamMember{{ID: 1}}, int64(1), nil).Once()

	members, meta, err := f.uc.ListMembers(context.Background(), usecases.MemberListQuery{TeamName: "Alpha", IsCaptain: &captain})
	require.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestAdminUsecase_UpdateMember(t *testing.T) {
	f := newAdminFixture()
	existing := &entities.TeamMember{ID: 9, TeamID: 5, TeamName: "Alpha", Name: "Zhang"}
	f.memberRepo.On("GetByID", mock.Anything, uint(9)).Return(existing, nil).Once()
	f.memberRepo.On("Update", mock.Anything, mock.Anything).Return(nil).Once()

	in := validSubmission().Members[0]
	in.Email = " new@b.com "
	member, err := f.uc.UpdateMember(context.Background(), 9, in)
	require.NoError(t, err)
	assert.Equal(t, "new@b.com", member.Email)
	assert.Equal(t, "Alpha", member.TeamName)
	assert.True(t, member.UpdatedAt.Equal(f.now))

	in.Phone = "555"
	_, err = f.uc.UpdateMember(context.Background(), 9, in)
	requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeValidation, "成员的手机号格式不正确（需为大陆11位且以1开头）")
}

func TestAdminUsecase_DeleteMember(t *testing.T) {
	f := newAdminFixture()
	f.memberRepo.On("Delete", mock.Anything, uint(9)).Return(nil).Once()
	f.memberRepo.On("Delete", mock.Anything, uint(10)).Return(domainerrors.ErrNotFound).Once()
	f.memberRepo.On("Delete", mock.Anything, uint(11)).Return(errors.New("boom")).Once()

	require.NoError(t, f.uc.DeleteMember(context.Background(), 9))
	requireAppError(t, f.uc.DeleteMember(context.Background(), 10), http.StatusNotFound, domainerrors.CodeNotFound, "成员不存在")
	requireAppError(t, f.uc.DeleteMember(context.Background(), 11), http.StatusInternalServerError, domainerrors.CodeInternalError, "")
}

func TestAdminUsecase_UpsertConfig(t *testing.T) {
	f := newAdminFixture()
	f.configRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(cfg *entities.Config) bool {
		return cfg.Key == entities.ConfigKeyDeadline && cfg.Value.Type == entities.ConfigTypeDatetime
	})).Return(nil).Once()

	view, err := f.uc.UpsertConfig(context.Background(), usecases.ConfigInput{
		Key: " DEADLINE ", Value: "2025-10-31 23:59:59", Type: "datetime", Description: "cutoff",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-10-31 23:59:59", view.Value)
	assert.Equal(t, "cutoff", view.Description)

	cases := []struct {
		name  string
		input usecases.ConfigInput
		msg   string
	}{
		{"empty key", usecases.ConfigInput{Key: " ", Value: "1"}, "配置键不能为空"},
		{"unknown type", usecases.ConfigInput{Key: "K", Value: "1", Type: "float"}, "配置类型必须为 str、int 或 datetime"},
		{"int mismatch", usecases.ConfigInput{Key: "K", Value: "abc", Type: "int"}, "配置值与配置类型不匹配"},
		{"datetime mismatch", usecases.ConfigInput{Key: "K", Value: "soon", Type: "datetime"}, "配置值与配置类型不匹配"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.UpsertConfig(context.Background(), tc.input)
			requireAppError(t, err, http.StatusBadRequest, domainerrors.CodeValidation, tc.msg)
		})
	}
	f.configRepo.AssertNumberOfCalls(t, "Upsert", 1)
}

func TestAdminUsecase_ListAndDeleteConfigs(t *testing.T) {
	f := newAdminFixture()
	f.configRepo.On("List", mock.Anything).Return([]*entities.Config{
		{Key: "A", Value: entities.ConfigValue{Type: entities.ConfigTypeStr, Raw: "x"}},
		{Key: "B", Value: entities.ConfigValue{Type: entities.ConfigTypeInt, Raw: "2"}},
	}, nil).Once()
	f.configRepo.On("DeleteByKey", mock.Anything, "A").Return(nil).Once()
	f.configRepo.On("DeleteByKey", mock.Anything, "Z").Return(domainerrors.ErrNotFound).Once()

	views, err := f.uc.ListConfigs(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "x", views[0].Value)
	assert.Equal(t, int64(2), views[1].Value)

	require.NoError(t, f.uc.DeleteConfig(context.Background(), "A"))
	requireAppError(t, f.uc.DeleteConfig(context.Background(), "Z"), http.StatusNotFound, domainerrors.CodeNotFound, "")
}
