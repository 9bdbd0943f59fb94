package repositories

import (
	"context"

	"campus-challenge.backend/internal/domain/entities"
)

// TeamFilter narrows admin team listings
type TeamFilter struct {
	Search string
	Track  string
	Limit  int
	Offset int
}

type TeamRepository interface {
	// Create inserts the team and its members; IDs and TeamID/TeamName on
	// members are filled in. A duplicate team name yields ErrAlreadyExists.
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uint) (*entities.Team, error)
	GetByName(ctx context.Context, name string) (*entities.Team, error)
	// ListWithMembers returns every team, newest first, members preloaded.
	ListWithMembers(ctx context.Context) ([]*entities.Team, error)
	ListAdmin(ctx context.Context, filter TeamFilter) ([]*entities.Team, int64, error)
	Update(ctx context.Context, team *entities.Team) error
	// Delete removes the team and its members.
	Delete(ctx context.Context, id uint) error
}
