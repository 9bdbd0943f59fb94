package usecases_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"campus-challenge.backend/internal/domain/entities"
	"campus-challenge.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	args := m.Called(ctx, f)
	if err := args.Error(0); err != nil {
		return err
	}
	return f(ctx)
}

// Mock TeamRepository
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *entities.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id uint) (*entities.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) ListWithMembers(ctx context.Context) ([]*entities.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Team), args.Error(1)
}

func (m *MockTeamRepository) ListAdmin(ctx context.Context, filter repositories.TeamFilter) ([]*entities.Team, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Team), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamRepository) Update(ctx context.Context, team *entities.Team) error {
	return m.Called(ctx, team).Error(0)
}

func (m *MockTeamRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// Mock TeamMemberRepository
type MockTeamMemberRepository struct {
	mock.Mock
}

func (m *MockTeamMemberRepository) GetByID(ctx context.Context, id uint) (*entities.TeamMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TeamMember), args.Error(1)
}

func (m *MockTeamMemberRepository) ListAdmin(ctx context.Context, filter repositories.MemberFilter) ([]*entities.TeamMember, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.TeamMember), args.Get(1).(int64), args.Error(2)
}

func (m *MockTeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockTeamMemberRepository) RenameTeam(ctx context.Context, teamID uint, teamName string, updatedAt time.Time) error {
	return m.Called(ctx, teamID, teamName, updatedAt).Error(0)
}

func (m *MockTeamMemberRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// Mock ConfigRepository
type MockConfigRepository struct {
	mock.Mock
}

func (m *MockConfigRepository) GetByKey(ctx context.Context, key string) (*entities.Config, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Config), args.Error(1)
}

func (m *MockConfigRepository) List(ctx context.Context) ([]*entities.Config, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Config), args.Error(1)
}

func (m *MockConfigRepository) Upsert(ctx context.Context, cfg *entities.Config) error {
	return m.Called(ctx, cfg).Error(0)
}

func (m *MockConfigRepository) DeleteByKey(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
