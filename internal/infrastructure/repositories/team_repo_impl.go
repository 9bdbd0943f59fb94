package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	domainRepos "campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/internal/infrastructure/models"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *entities.Team) error {
	m := toTeamModel(team)
	for i := range m.Members {
		m.Members[i].TeamName = m.TeamName
	}
	if err := GetDB(ctx, r.db).Create(m).Error; err != nil {
		return translate(err)
	}
	team.ID = m.ID
	team.CreatedAt = m.CreatedAt
	team.UpdatedAt = m.UpdatedAt
	for i, member := range team.Members {
		if i >= len(m.Members) {
			break
		}
		member.ID = m.Members[i].ID
		member.TeamID = m.ID
		member.TeamName = m.TeamName
		member.CreatedAt = m.Members[i].CreatedAt
		member.UpdatedAt = m.Members[i].UpdatedAt
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id uint) (*entities.Team, error) {
	var m models.Team
	err := GetDB(ctx, r.db).
		Preload("Members", orderMembers).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toTeamEntity(&m), nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*entities.Team, error) {
	var m models.Team
	if err := GetDB(ctx, r.db).Where("team_name = ?", name).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toTeamEntity(&m), nil
}

func (r *TeamRepository) ListWithMembers(ctx context.Context) ([]*entities.Team, error) {
	var ms []models.Team
	if err := GetDB(ctx, r.db).
		Preload("Members", orderMembers).
		Order("created_at DESC, id DESC").
		Find(&ms).Error; err != nil {
		return nil, err
	}
	return toTeamEntities(ms), nil
}

func (r *TeamRepository) ListAdmin(ctx context.Context, filter domainRepos.TeamFilter) ([]*entities.Team, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.Team{})
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		query = query.Where(
			"LOWER(team_name) LIKE ? OR LOWER(project_name) LIKE ? OR LOWER(competition_track) LIKE ?",
			term, term, term,
		)
	}
	if track := strings.TrimSpace(filter.Track); track != "" {
		query = query.Where("competition_track = ?", track)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Team
	q := query.Preload("Members", orderMembers).Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	return toTeamEntities(ms), total, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *entities.Team) error {
	updates := map[string]interface{}{
		"team_name":         team.TeamName,
		"competition_track": string(team.CompetitionTrack),
		"project_name":      team.ProjectName,
		"repo_url":          team.RepoURL,
		"costrict_uid":      team.CostrictUID,
		"project_intro":     team.ProjectIntro,
		"tech_solution":     team.TechSolution,
		"goals_and_outlook": team.GoalsAndOutlook,
		"updated_at":        team.UpdatedAt,
	}

	result := GetDB(ctx, r.db).
		Model(&models.Team{}).
		Where("id = ?", team.ID).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes members explicitly since sqlite ignores ON DELETE CASCADE
// unless foreign keys are switched on per connection.
func (r *TeamRepository) Delete(ctx context.Context, id uint) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Team{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func orderMembers(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

func toTeamEntities(ms []models.Team) []*entities.Team {
	items := make([]*entities.Team, 0, len(ms))
	for i := range ms {
		items = append(items, toTeamEntity(&ms[i]))
	}
	return items
}

func toTeamEntity(m *models.Team) *entities.Team {
	team := &entities.Team{
		ID:               m.ID,
		TeamName:         m.TeamName,
		CompetitionTrack: entities.CompetitionTrack(m.CompetitionTrack),
		ProjectName:      m.ProjectName,
		RepoURL:          m.RepoURL,
		CostrictUID:      m.CostrictUID,
		ProjectIntro:     m.ProjectIntro,
		TechSolution:     m.TechSolution,
		GoalsAndOutlook:  m.GoalsAndOutlook,
		Members:          make([]*entities.TeamMember, 0, len(m.Members)),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	for i := range m.Members {
		team.Members = append(team.Members, toMemberEntity(&m.Members[i]))
	}
	return team
}

func toTeamModel(e *entities.Team) *models.Team {
	m := &models.Team{
		ID:               e.ID,
		TeamName:         e.TeamName,
		CompetitionTrack: string(e.CompetitionTrack),
		ProjectName:      e.ProjectName,
		RepoURL:          e.RepoURL,
		CostrictUID:      e.CostrictUID,
		ProjectIntro:     e.ProjectIntro,
		TechSolution:     e.TechSolution,
		GoalsAndOutlook:  e.GoalsAndOutlook,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	for _, member := range e.Members {
		m.Members = append(m.Members, *toMemberModel(member))
	}
	return m
}
