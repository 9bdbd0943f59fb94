package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type TeamMember struct {
	ID         uint        `gorm:"primaryKey;autoIncrement"`
	CreatedAt  time.Time   `gorm:"column:created_at;not null"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;not null"`
	TeamID     uint        `gorm:"not null;index"`
	TeamName   string      `gorm:"type:varchar(50);not null;index"`
	Name       string      `gorm:"type:varchar(100);not null"`
	IsCaptain  bool        `gorm:"not null;default:false"`
	School     string      `gorm:"type:varchar(200);not null"`
	Department string      `gorm:"type:varchar(200);not null"`
	MajorGrade string      `gorm:"type:varchar(200);not null"`
	Phone      string      `gorm:"type:varchar(20);not null"`
	Email      string      `gorm:"type:varchar(200);not null"`
	StudentID  null.String `gorm:"type:varchar(50)"`
	Role       string      `gorm:"type:varchar(100);not null"`
	TechStack  null.String `gorm:"type:varchar(500)"`
	Desc       null.String `gorm:"column:desc;type:text"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
