package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionTrack_Valid(t *testing.T) {
	assert.True(t, TrackTechChallenge.Valid())
	assert.True(t, TrackInnovation.Valid())
	assert.False(t, CompetitionTrack("技术挑战").Valid())
	assert.False(t, CompetitionTrack("").Valid())
}

func TestTeamInput_Trimmed(t *testing.T) {
	in := TeamInput{TeamName: "  Alpha ", CompetitionTrack: "\t创新应用赛\n", RepoURL: "  "}
	out := in.Trimmed()
	assert.Equal(t, "Alpha", out.TeamName)
	assert.Equal(t, "创新应用赛", out.CompetitionTrack)
	assert.Equal(t, "", out.RepoURL)
}

func TestNewTeam_OptionalFields(t *testing.T) {
	now := time.Now()
	team := NewTeam(TeamInput{TeamName: "Alpha", CompetitionTrack: string(TrackTechChallenge), RepoURL: "https://git.example/a"}, now)
	assert.Equal(t, "Alpha", team.TeamName)
	assert.True(t, team.RepoURL.Valid)
	assert.False(t, team.ProjectIntro.Valid)
	assert.Equal(t, now, team.CreatedAt)
	assert.Equal(t, now, team.UpdatedAt)

	later := now.Add(time.Hour)
	team.ApplyInput(TeamInput{TeamName: "Beta", CompetitionTrack: string(TrackInnovation)}, later)
	assert.Equal(t, "Beta", team.TeamName)
	assert.False(t, team.RepoURL.Valid)
	assert.Equal(t, now, team.CreatedAt)
	assert.Equal(t, later, team.UpdatedAt)
}

func TestNewTeamMember(t *testing.T) {
	now := time.Now()
	m := NewTeamMember(MemberInput{Name: "A", IsCaptain: true, StudentID: "2023001"}, now)
	assert.True(t, m.IsCaptain)
	assert.Equal(t, "2023001", m.StudentID.String)
	assert.False(t, m.TechStack.Valid)
	assert.False(t, m.Desc.Valid)
	assert.Equal(t, now, m.CreatedAt)

	trimmed := MemberInput{Name: " A ", Email: " a@b.com "}.Trimmed()
	assert.Equal(t, "A", trimmed.Name)
	assert.Equal(t, "a@b.com", trimmed.Email)
}
