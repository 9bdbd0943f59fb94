package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"campus-challenge.backend/internal/domain/entities"
	"campus-challenge.backend/internal/infrastructure/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(models.All()...), "migrate")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func sampleTeam(name string, at time.Time) *entities.Team {
	team := entities.NewTeam(entities.TeamInput{
		TeamName:         name,
		CompetitionTrack: string(entities.TrackTechChallenge),
		ProjectName:      name + " project",
		CostrictUID:      "uid-" + name,
		ProjectIntro:     "intro",
	}, at)
	captain := entities.NewTeamMember(entities.MemberInput{
		Name:       name + "-captain",
		IsCaptain:  true,
		School:     "School",
		Department: "CS",
		MajorGrade: "SE 2022",
		Phone:      "13800000000",
		Email:      "a@b.com",
		Role:       "lead",
	}, at)
	member := entities.NewTeamMember(entities.MemberInput{
		Name:       name + "-member",
		School:     "School",
		Department: "EE",
		MajorGrade: "EE 2023",
		Phone:      "13900000000",
		Email:      "c@d.com",
		Role:       "dev",
		TechStack:  "go",
	}, at)
	team.Members = []*entities.TeamMember{captain, member}
	return team
}
