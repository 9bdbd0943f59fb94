package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Team struct {
	ID               uint         `gorm:"primaryKey;autoIncrement"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null"`
	UpdatedAt        time.Time    `gorm:"column:updated_at;not null"`
	TeamName         string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_teams_team_name"`
	CompetitionTrack string       `gorm:"type:varchar(50);not null;index"`
	ProjectName      string       `gorm:"type:varchar(50);not null"`
	RepoURL          null.String  `gorm:"type:varchar(255)"`
	CostrictUID      string       `gorm:"column:costrict_uid;type:varchar(50);not null"`
	ProjectIntro     null.String  `gorm:"type:text"`
	TechSolution     null.String  `gorm:"type:text"`
	GoalsAndOutlook  null.String  `gorm:"type:text"`
	Members          []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
}

func (Team) TableName() string {
	return "teams"
}
