package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type Config struct {
	ID          uint        `gorm:"primaryKey;autoIncrement"`
	CreatedAt   time.Time   `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;not null"`
	ConfigKey   string      `gorm:"type:varchar(100);not null;uniqueIndex:idx_configs_config_key"`
	ConfigValue null.String `gorm:"type:text"`
	ConfigType  string      `gorm:"type:varchar(16);not null;default:'str'"`
	Description null.String `gorm:"type:varchar(255)"`
}

func (Config) TableName() string {
	return "configs"
}

// All lists every model migrated at startup.
func All() []interface{} {
	return []interface{}{&Team{}, &TeamMember{}, &Config{}}
}
