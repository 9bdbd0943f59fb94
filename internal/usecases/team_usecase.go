package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/pkg/logger"
)

const msgTeamNotFound = "团队不存在"

// TeamUsecase serves the public read API
type TeamUsecase struct {
	teamRepo repositories.TeamRepository
}

func NewTeamUsecase(teamRepo repositories.TeamRepository) *TeamUsecase {
	return &TeamUsecase{teamRepo: teamRepo}
}

// ListTeams returns every team newest first with members in insertion order
func (u *TeamUsecase) ListTeams(ctx context.Context) ([]*entities.Team, error) {
	teams, err := u.teamRepo.ListWithMembers(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to list teams", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return teams, nil
}

func (u *TeamUsecase) GetTeam(ctx context.Context, id uint) (*entities.Team, error) {
	team, err := u.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgTeamNotFound)
		}
		logger.Error(ctx, "Failed to get team", zap.Uint("team_id", id), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return team, nil
}
