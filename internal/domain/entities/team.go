package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// CompetitionTrack is one of the two fixed competition tracks
type CompetitionTrack string

const (
	TrackTechChallenge CompetitionTrack = "技术挑战赛"
	TrackInnovation    CompetitionTrack = "创新应用赛"
)

// Valid reports whether t is one of the fixed tracks
func (t CompetitionTrack) Valid() bool {
	return t == TrackTechChallenge || t == TrackInnovation
}

// Team represents a registered competition entry
type Team struct {
	ID               uint
	TeamName         string
	CompetitionTrack CompetitionTrack
	ProjectName      string
	RepoURL          null.String
	CostrictUID      string
	ProjectIntro     null.String
	TechSolution     null.String
	GoalsAndOutlook  null.String
	Members          []*TeamMember
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TeamMember represents a person on a team. TeamName is a denormalized copy
// of the owning team's name.
type TeamMember struct {
	ID         uint
	TeamID     uint
	TeamName   string
	Name       string
	IsCaptain  bool
	School     string
	Department string
	MajorGrade string
	Phone      string
	Email      string
	StudentID  null.String
	Role       string
	TechStack  null.String
	Desc       null.String
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TeamInput is the team part of a registration payload
type TeamInput struct {
	TeamName         string `json:"team_name"`
	CompetitionTrack string `json:"competition_track"`
	ProjectName      string `json:"project_name"`
	RepoURL          string `json:"repo_url"`
	CostrictUID      string `json:"costrict_uid"`
	ProjectIntro     string `json:"project_intro"`
	TechSolution     string `json:"tech_solution"`
	GoalsAndOutlook  string `json:"goals_and_outlook"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (in TeamInput) Trimmed() TeamInput {
	return TeamInput{
		TeamName:         strings.TrimSpace(in.TeamName),
		CompetitionTrack: strings.TrimSpace(in.CompetitionTrack),
		ProjectName:      strings.TrimSpace(in.ProjectName),
		RepoURL:          strings.TrimSpace(in.RepoURL),
		CostrictUID:      strings.TrimSpace(in.CostrictUID),
		ProjectIntro:     strings.TrimSpace(in.ProjectIntro),
		TechSolution:     strings.TrimSpace(in.TechSolution),
		GoalsAndOutlook:  strings.TrimSpace(in.GoalsAndOutlook),
	}
}

// MemberInput is one member of a registration payload
type MemberInput struct {
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
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (in MemberInput) Trimmed() MemberInput {
	return MemberInput{
		Name:       strings.TrimSpace(in.Name),
		IsCaptain:  in.IsCaptain,
		School:     strings.TrimSpace(in.School),
		Department: strings.TrimSpace(in.Department),
		MajorGrade: strings.TrimSpace(in.MajorGrade),
		Phone:      strings.TrimSpace(in.Phone),
		Email:      strings.TrimSpace(in.Email),
		StudentID:  strings.TrimSpace(in.StudentID),
		Role:       strings.TrimSpace(in.Role),
		TechStack:  strings.TrimSpace(in.TechStack),
		Desc:       strings.TrimSpace(in.Desc),
	}
}

// SubmissionInput is the body of POST /api/team/submit
type SubmissionInput struct {
	TeamInfo TeamInput     `json:"team_info"`
	Members  []MemberInput `json:"members"`
}

// OptionalString maps an empty string to a NULL column value
func OptionalString(s string) null.String {
	return null.NewString(s, s != "")
}

// NewTeam builds a team from already validated input
func NewTeam(in TeamInput, now time.Time) *Team {
	return &Team{
		TeamName:         in.TeamName,
		CompetitionTrack: CompetitionTrack(in.CompetitionTrack),
		ProjectName:      in.ProjectName,
		RepoURL:          OptionalString(in.RepoURL),
		CostrictUID:      in.CostrictUID,
		ProjectIntro:     OptionalString(in.ProjectIntro),
		TechSolution:     OptionalString(in.TechSolution),
		GoalsAndOutlook:  OptionalString(in.GoalsAndOutlook),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ApplyInput overwrites the team's editable fields
func (t *Team) ApplyInput(in TeamInput, now time.Time) {
	t.TeamName = in.TeamName
	t.CompetitionTrack = CompetitionTrack(in.CompetitionTrack)
	t.ProjectName = in.ProjectName
	t.RepoURL = OptionalString(in.RepoURL)
	t.CostrictUID = in.CostrictUID
	t.ProjectIntro = OptionalString(in.ProjectIntro)
	t.TechSolution = OptionalString(in.TechSolution)
	t.GoalsAndOutlook = OptionalString(in.GoalsAndOutlook)
	t.UpdatedAt = now
}

// NewTeamMember builds a member from already validated input
func NewTeamMember(in MemberInput, now time.Time) *TeamMember {
	m := &TeamMember{CreatedAt: now}
	m.ApplyInput(in, now)
	return m
}

// ApplyInput overwrites the member's editable fields
func (m *TeamMember) ApplyInput(in MemberInput, now time.Time) {
	m.Name = in.Name
	m.IsCaptain = in.IsCaptain
	m.School = in.School
	m.Department = in.Department
	m.MajorGrade = in.MajorGrade
	m.Phone = in.Phone
	m.Email = in.Email
	m.StudentID = OptionalString(in.StudentID)
	m.Role = in.Role
	m.TechStack = OptionalString(in.TechStack)
	m.Desc = OptionalString(in.Desc)
	m.UpdatedAt = now
}
