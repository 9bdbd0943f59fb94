package usecases

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/logger"
	"campus-challenge.backend/pkg/utils"
)

const (
	msgMemberNotFound     = "成员不存在"
	msgConfigKeyRequired  = "配置键不能为空"
	msgConfigTypeInvalid  = "配置类型必须为 str、int 或 datetime"
	msgConfigValueInvalid = "配置值与配置类型不匹配"
	adminMemberLabel      = "成员"
)

// TeamListQuery is the admin team listing request
type TeamListQuery struct {
	Search string
	Track  string
	Page   int
	Limit  int
}

// MemberListQuery is the admin member listing request
type MemberListQuery struct {
	Search    string
	TeamName  string
	IsCaptain *bool
	Page      int
	Limit     int
}

// ConfigInput is an admin config write
type ConfigInput struct {
	Key         string `json:"config_key"`
	Value       string `json:"config_value"`
	Type        string `json:"config_type"`
	Description string `json:"description"`
}

// AdminUsecase backs the organizer management API
type AdminUsecase struct {
	teamRepo   repositories.TeamRepository
	memberRepo repositories.TeamMemberRepository
	configRepo repositories.ConfigRepository
	uow        repositories.UnitOfWork
	clock      clock.Clock
}

func NewAdminUsecase(
	teamRepo repositories.TeamRepository,
	memberRepo repositories.TeamMemberRepository,
	configRepo repositories.ConfigRepository,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *AdminUsecase {
	return &AdminUsecase{
		teamRepo:   teamRepo,
		memberRepo: memberRepo,
		configRepo: configRepo,
		uow:        uow,
		clock:      clk,
	}
}

func (u *AdminUsecase) ListTeams(ctx context.Context, q TeamListQuery) ([]*entities.Team, utils.PaginationMeta, error) {
	p := utils.GetPaginationParams(q.Page, q.Limit)
	teams, total, err := u.teamRepo.ListAdmin(ctx, repositories.TeamFilter{
		Search: q.Search,
		Track:  q.Track,
		Limit:  p.Limit,
		Offset: p.CalculateOffset(),
	})
	if err != nil {
		logger.Error(ctx, "Failed to list teams", zap.Error(err))
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return teams, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

func (u *AdminUsecase) GetTeam(ctx context.Context, id uint) (*entities.Team, error) {
	team, err := u.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapError(ctx, err, msgTeamNotFound, "Failed to get team")
	}
	return team, nil
}

// UpdateTeam applies the same field rules as a submission. A rename is
// copied onto every member row in the same transaction.
func (u *AdminUsecase) UpdateTeam(ctx context.Context, id uint, input entities.TeamInput) (*entities.Team, error) {
	in := input.Trimmed()
	if appErr := validateTeam(in); appErr != nil {
		return nil, appErr
	}

	team, err := u.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapError(ctx, err, msgTeamNotFound, "Failed to get team")
	}

	renamed := team.TeamName != in.TeamName
	if renamed {
		existing, err := u.teamRepo.GetByName(ctx, in.TeamName)
		switch {
		case err == nil && existing.ID != id:
			return nil, domainerrors.Conflict(msgTeamNameTaken)
		case err != nil && !errors.Is(err, domainerrors.ErrNotFound):
			return nil, u.mapError(ctx, err, msgTeamNotFound, "Failed to check team name")
		}
	}

	now := u.clock.Now()
	team.ApplyInput(in, now)
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teamRepo.Update(txCtx, team); err != nil {
			return err
		}
		if renamed {
			return u.memberRepo.RenameTeam(txCtx, team.ID, team.TeamName, now)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict(msgTeamNameTaken)
		}
		return nil, u.mapError(ctx, err, msgTeamNotFound, "Failed to update team")
	}

	if renamed {
		for _, m := range team.Members {
			m.TeamName = team.TeamName
			m.UpdatedAt = now
		}
	}
	logger.Info(ctx, "Team updated", zap.Uint("team_id", team.ID), zap.Bool("renamed", renamed))
	return team, nil
}

// DeleteTeam removes the team together with its members
func (u *AdminUsecase) DeleteTeam(ctx context.Context, id uint) error {
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.teamRepo.Delete(txCtx, id)
	})
	if err != nil {
		return u.mapError(ctx, err, msgTeamNotFound, "Failed to delete team")
	}
	logger.Info(ctx, "Team deleted", zap.Uint("team_id", id))
	return nil
}

func (u *AdminUsecase) ListMembers(ctx context.Context, q MemberListQuery) ([]*entities.TeamMember, utils.PaginationMeta, error) {
	p := utils.GetPaginationParams(q.Page, q.Limit)
	members, total, err := u.memberRepo.ListAdmin(ctx, repositories.MemberFilter{
		Search:    q.Search,
		TeamName:  q.TeamName,
		IsCaptain: q.IsCaptain,
		Limit:     p.Limit,
		Offset:    p.CalculateOffset(),
	})
	if err != nil {
		logger.Error(ctx, "Failed to list members", zap.Error(err))
		return nil, utils.PaginationMeta{}, domainerrors.InternalError(err)
	}
	return members, utils.CalculateMeta(total, p.Page, p.Limit), nil
}

func (u *AdminUsecase) UpdateMember(ctx context.Context, id uint, input entities.MemberInput) (*entities.TeamMember, error) {
	in := input.Trimmed()
	if appErr := validateMember(adminMemberLabel, in); appErr != nil {
		return nil, appErr
	}

	member, err := u.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, u.mapError(ctx, err, msgMemberNotFound, "Failed to get member")
	}
	member.ApplyInput(in, u.clock.Now())
	if err := u.memberRepo.Update(ctx, member); err != nil {
		return nil, u.mapError(ctx, err, msgMemberNotFound, "Failed to update member")
	}
	return member, nil
}

func (u *AdminUsecase) DeleteMember(ctx context.Context, id uint) error {
	if err := u.memberRepo.Delete(ctx, id); err != nil {
		return u.mapError(ctx, err, msgMemberNotFound, "Failed to delete member")
	}
	return nil
}

func (u *AdminUsecase) ListConfigs(ctx context.Context) ([]*ConfigView, error) {
	cfgs, err := u.configRepo.List(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to list configs", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	views := make([]*ConfigView, 0, len(cfgs))
	for _, cfg := range cfgs {
		views = append(views, newConfigView(cfg, u.clock))
	}
	return views, nil
}

// UpsertConfig rejects unknown types and values that do not read as their
// declared type.
func (u *AdminUsecase) UpsertConfig(ctx context.Context, input ConfigInput) (*ConfigView, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, domainerrors.Validation(msgConfigKeyRequired)
	}
	configType, ok := entities.ParseConfigType(strings.TrimSpace(input.Type))
	if !ok {
		return nil, domainerrors.Validation(msgConfigTypeInvalid)
	}
	value := entities.ConfigValue{Type: configType, Raw: strings.TrimSpace(input.Value)}
	if err := value.Validate(u.clock.Location()); err != nil {
		return nil, domainerrors.Validation(msgConfigValueInvalid)
	}

	now := u.clock.Now()
	cfg := &entities.Config{
		Key:         key,
		Value:       value,
		Description: entities.OptionalString(strings.TrimSpace(input.Description)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.configRepo.Upsert(ctx, cfg); err != nil {
		logger.Error(ctx, "Failed to save config", zap.String("config_key", key), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	logger.Info(ctx, "Config saved", zap.String("config_key", key), zap.String("config_type", string(configType)))
	return newConfigView(cfg, u.clock), nil
}

func (u *AdminUsecase) DeleteConfig(ctx context.Context, key string) error {
	if err := u.configRepo.DeleteByKey(ctx, key); err != nil {
		return u.mapError(ctx, err, msgConfigNotFound, "Failed to delete config")
	}
	return nil
}

func (u *AdminUsecase) mapError(ctx context.Context, err error, notFoundMsg, logMsg string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(notFoundMsg)
	}
	logger.Error(ctx, logMsg, zap.Error(err))
	return domainerrors.InternalError(err)
}
