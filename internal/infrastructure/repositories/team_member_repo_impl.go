package repositories

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	domainRepos "campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/internal/infrastructure/models"
)

type TeamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) *TeamMemberRepository {
	return &TeamMemberRepository{db: db}
}

func (r *TeamMemberRepository) GetByID(ctx context.Context, id uint) (*entities.TeamMember, error) {
	var m models.TeamMember
	if err := GetDB(ctx, r.db).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toMemberEntity(&m), nil
}

func (r *TeamMemberRepository) ListAdmin(ctx context.Context, filter domainRepos.MemberFilter) ([]*entities.TeamMember, int64, error) {
	query := GetDB(ctx, r.db).Model(&models.TeamMember{})
	if strings.TrimSpace(filter.Search) != "" {
		term := likePattern(filter.Search)
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(school) LIKE ? OR LOWER(phone) LIKE ? OR "+
				"LOWER(email) LIKE ? OR LOWER(team_name) LIKE ? OR LOWER(tech_stack) LIKE ?",
			term, term, term, term, term, term,
		)
	}
	if name := strings.TrimSpace(filter.TeamName); name != "" {
		query = query.Where("team_name = ?", name)
	}
	if filter.IsCaptain != nil {
		query = query.Where("is_captain = ?", *filter.IsCaptain)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.TeamMember
	q := query.Order("team_id DESC, id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.TeamMember, 0, len(ms))
	for i := range ms {
		items = append(items, toMemberEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *TeamMemberRepository) Update(ctx context.Context, member *entities.TeamMember) error {
	updates := map[string]interface{}{
		"name":        member.Name,
		"is_captain":  member.IsCaptain,
		"school":      member.School,
		"department":  member.Department,
		"major_grade": member.MajorGrade,
		"phone":       member.Phone,
		"email":       member.Email,
		"student_id":  member.StudentID,
		"role":        member.Role,
		"tech_stack":  member.TechStack,
		"desc":        member.Desc,
		"updated_at":  member.UpdatedAt,
	}

	result := GetDB(ctx, r.db).
		Model(&models.TeamMember{}).
		Where("id = ?", member.ID).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *TeamMemberRepository) RenameTeam(ctx context.Context, teamID uint, teamName string, updatedAt time.Time) error {
	return GetDB(ctx, r.db).
		Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Updates(map[string]interface{}{"team_name": teamName, "updated_at": updatedAt}).Error
}

func (r *TeamMemberRepository) Delete(ctx context.Context, id uint) error {
	result := GetDB(ctx, r.db).Delete(&models.TeamMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toMemberEntity(m *models.TeamMember) *entities.TeamMember {
	return &entities.TeamMember{
		ID:         m.ID,
		TeamID:     m.TeamID,
		TeamName:   m.TeamName,
		Name:       m.Name,
		IsCaptain:  m.IsCaptain,
		School:     m.School,
		Department: m.Department,
		MajorGrade: m.MajorGrade,
		Phone:      m.Phone,
		Email:      m.Email,
		StudentID:  m.StudentID,
		Role:       m.Role,
		TechStack:  m.TechStack,
		Desc:       m.Desc,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toMemberModel(e *entities.TeamMember) *models.TeamMember {
	return &models.TeamMember{
		ID:         e.ID,
		TeamID:     e.TeamID,
		TeamName:   e.TeamName,
		Name:       e.Name,
		IsCaptain:  e.IsCaptain,
		School:     e.School,
		Department: e.Department,
		MajorGrade: e.MajorGrade,
		Phone:      e.Phone,
		Email:      e.Email,
		StudentID:  e.StudentID,
		Role:       e.Role,
		TechStack:  e.TechStack,
		Desc:       e.Desc,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
