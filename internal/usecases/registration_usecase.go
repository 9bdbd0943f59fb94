package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/logger"
	"campus-challenge.backend/pkg/metrics"
)

// SubmissionSuccessMessage is returned to the form after a successful save
const SubmissionSuccessMessage = `您已成功报名参加"码上AI·2025深信服CoStrict校园挑战赛"。我们已向您的邮箱发送确认邮件，请查收。`

// Submission outcomes recorded on the submissions counter
const (
	OutcomeAccepted       = "accepted"
	OutcomeRejected       = "rejected"
	OutcomeConflict       = "conflict"
	OutcomeDeadlineClosed = "deadline_closed"
	OutcomeError          = "error"
)

// RegistrationUsecase validates and stores team submissions
type RegistrationUsecase struct {
	teamRepo   repositories.TeamRepository
	configRepo repositories.ConfigRepository
	uow        repositories.UnitOfWork
	clock      clock.Clock
}

// NewRegistrationUsecase creates a new registration usecase
func NewRegistrationUsecase(
	teamRepo repositories.TeamRepository,
	configRepo repositories.ConfigRepository,
	uow repositories.UnitOfWork,
	clk clock.Clock,
) *RegistrationUsecase {
	return &RegistrationUsecase{
		teamRepo:   teamRepo,
		configRepo: configRepo,
		uow:        uow,
		clock:      clk,
	}
}

// Submit persists the team and all its members in one transaction, or
// returns an *AppError and persists nothing.
func (u *RegistrationUsecase) Submit(ctx context.Context, input *entities.SubmissionInput) (*entities.Team, error) {
	team, err := u.submit(ctx, input)
	metrics.ObserveSubmission(outcomeOf(err))
	return team, err
}

func (u *RegistrationUsecase) submit(ctx context.Context, input *entities.SubmissionInput) (*entities.Team, error) {
	now := u.clock.Now()

	if appErr := u.checkDeadline(ctx, now); appErr != nil {
		return nil, appErr
	}

	if input == nil {
		input = &entities.SubmissionInput{}
	}
	teamIn := input.TeamInfo.Trimmed()
	if appErr := validateTeam(teamIn); appErr != nil {
		return nil, appErr
	}
	members := trimMembers(input.Members)
	if appErr := validateMembers(members); appErr != nil {
		return nil, appErr
	}

	_, err := u.teamRepo.GetByName(ctx, teamIn.TeamName)
	switch {
	case err == nil:
		return nil, domainerrors.Conflict(msgTeamNameTaken)
	case !errors.Is(err, domainerrors.ErrNotFound):
		logger.Error(ctx, "Failed to check team name", zap.String("team_name", teamIn.TeamName), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	team := entities.NewTeam(teamIn, now)
	for _, m := range members {
		member := entities.NewTeamMember(m, now)
		member.TeamName = team.TeamName
		team.Members = append(team.Members, member)
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		return u.teamRepo.Create(txCtx, team)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			logger.Warn(ctx, "Team name taken concurrently", zap.String("team_name", team.TeamName))
			return nil, domainerrors.Conflict(msgTeamNameTaken)
		}
		logger.Error(ctx, "Failed to save team", zap.String("team_name", team.TeamName), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}

	logger.Info(ctx, "Team registered",
		zap.Uint("team_id", team.ID),
		zap.String("team_name", team.TeamName),
		zap.Int("members", len(team.Members)),
	)
	return team, nil
}

// checkDeadline rejects submissions after the DEADLINE config. A missing,
// unreadable or non-datetime deadline leaves registration open.
func (u *RegistrationUsecase) checkDeadline(ctx context.Context, now time.Time) *domainerrors.AppError {
	cfg, err := u.configRepo.GetByKey(ctx, entities.ConfigKeyDeadline)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			logger.Warn(ctx, "Deadline lookup failed, treating registration as open", zap.Error(err))
		}
		return nil
	}

	loc := u.clock.Location()
	deadline, err := cfg.Value.Time(loc)
	if err != nil {
		logger.Warn(ctx, "Deadline config unreadable, treating registration as open",
			zap.String("config_type", string(cfg.Value.Type)),
			zap.String("config_value", cfg.Value.Raw),
			zap.Error(err),
		)
		return nil
	}

	if now.After(deadline) {
		return domainerrors.DeadlineClosed(fmt.Sprintf(msgDeadlineClosed, deadline.In(loc).Format(clock.DisplayLayout)))
	}
	return nil
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeAccepted
	}
	switch domainerrors.AsAppError(err).Code {
	case domainerrors.CodeValidation:
		return OutcomeRejected
	case domainerrors.CodeConflict:
		return OutcomeConflict
	case domainerrors.CodeDeadlineClosed:
		return OutcomeDeadlineClosed
	}
	return OutcomeError
}
