package repositories

import (
	"context"
	"time"

	"campus-challenge.backend/internal/domain/entities"
)

// MemberFilter narrows admin member listings
type MemberFilter struct {
	Search    string
	TeamName  string
	IsCaptain *bool
	Limit     int
	Offset    int
}

type TeamMemberRepository interface {
	GetByID(ctx context.Context, id uint) (*entities.TeamMember, error)
	ListAdmin(ctx context.Context, filter MemberFilter) ([]*entities.TeamMember, int64, error)
	Update(ctx context.Context, member *entities.TeamMember) error
	// RenameTeam rewrites the denormalized team name on every member of teamID.
	RenameTeam(ctx context.Context, teamID uint, teamName string, updatedAt time.Time) error
	Delete(ctx context.Context, id uint) error
}
