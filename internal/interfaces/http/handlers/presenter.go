package handlers

import (
	"time"

	"campus-challenge.backend/internal/domain/entities"
	"campus-challenge.backend/pkg/clock"
)

// TeamView is the JSON shape of a team on the public and admin APIs
type TeamView struct {
	ID               uint          `json:"id"`
	CreatedAt        string        `json:"createdAt"`
	UpdatedAt        string        `json:"updatedAt"`
	TeamName         string        `json:"team_name"`
	CompetitionTrack string        `json:"competition_track"`
	ProjectName      string        `json:"project_name"`
	RepoURL          string        `json:"repo_url"`
	CostrictUID      string        `json:"costrict_uid"`
	ProjectIntro     string        `json:"project_intro"`
	TechSolution     string        `json:"tech_solution"`
	GoalsAndOutlook  string        `json:"goals_and_outlook"`
	Members          []*MemberView `json:"members"`
}

// MemberView is the JSON shape of a team member
type MemberView struct {
	ID         uint   `json:"id"`
	TeamID     uint   `json:"team_id"`
	TeamName   string `json:"team_name"`
	Name       string `json:"name"`
	IsCaptain  bool   `json:"is_captain"`
	School     string `json:"school"`
	Department string `json:"department"`
	MajorGrade string `json:"major_grade"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	StudentID  string `json:"student_id"`
	Role       string `json:"role"`
	TechStack  string `json:"tech_stack"`
	Desc       string `json:"desc"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// timestamps use the display layout of the civil zone
func formatTimestamp(t time.Time, loc *time.Location) string {
	return clock.Format(t, loc)
}

func newTeamView(t *entities.Team, loc *time.Location) *TeamView {
	v := &TeamView{
		ID:               t.ID,
		CreatedAt:        formatTimestamp(t.CreatedAt, loc),
		UpdatedAt:        formatTimestamp(t.UpdatedAt, loc),
		TeamName:         t.TeamName,
		CompetitionTrack: string(t.CompetitionTrack),
		ProjectName:      t.ProjectName,
		RepoURL:          t.RepoURL.String,
		CostrictUID:      t.CostrictUID,
		ProjectIntro:     t.ProjectIntro.String,
		TechSolution:     t.TechSolution.String,
		GoalsAndOutlook:  t.GoalsAndOutlook.String,
		Members:          make([]*MemberView, 0, len(t.Members)),
	}
	for _, m := range t.Members {
		v.Members = append(v.Members, newMemberView(m, loc))
	}
	return v
}

func newTeamViews(teams []*entities.Team, loc *time.Location) []*TeamView {
	out := make([]*TeamView, 0, len(teams))
	for _, t := range teams {
		out = append(out, newTeamView(t, loc))
	}
	return out
}

func newMemberView(m *entities.TeamMember, loc *time.Location) *MemberView {
	return &MemberView{
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
		StudentID:  m.StudentID.String,
		Role:       m.Role,
		TechStack:  m.TechStack.String,
		Desc:       m.Desc.String,
		CreatedAt:  formatTimestamp(m.CreatedAt, loc),
		UpdatedAt:  formatTimestamp(m.UpdatedAt, loc),
	}
}

func newMemberViews(members []*entities.TeamMember, loc *time.Location) []*MemberView {
	out := make([]*MemberView, 0, len(members))
	for _, m := range members {
		out = append(out, newMemberView(m, loc))
	}
	return out
}
