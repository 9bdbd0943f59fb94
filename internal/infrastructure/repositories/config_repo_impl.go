package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/infrastructure/models"
)

type ConfigRepository struct {
	db *gorm.DB
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) GetByKey(ctx context.Context, key string) (*entities.Config, error) {
	var m models.Config
	err := GetDB(ctx, r.db).
		Where("config_key = ?", key).
		Order("updated_at DESC, id DESC").
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toConfigEntity(&m), nil
}

func (r *ConfigRepository) List(ctx context.Context) ([]*entities.Config, error) {
	var ms []models.Config
	if err := GetDB(ctx, r.db).Order("config_key ASC").Find(&ms).Error; err != nil {
		return nil, err
	}
	items := make([]*entities.Config, 0, len(ms))
	for i := range ms {
		items = append(items, toConfigEntity(&ms[i]))
	}
	return items, nil
}

func (r *ConfigRepository) Upsert(ctx context.Context, cfg *entities.Config) error {
	db := GetDB(ctx, r.db)
	m := toConfigModel(cfg)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "config_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"config_value", "config_type", "description", "updated_at"}),
	}).Create(m).Error
	if err != nil {
		return translate(err)
	}

	var stored models.Config
	if err := db.Where("config_key = ?", cfg.Key).First(&stored).Error; err != nil {
		return translate(err)
	}
	*cfg = *toConfigEntity(&stored)
	return nil
}

func (r *ConfigRepository) DeleteByKey(ctx context.Context, key string) error {
	result := GetDB(ctx, r.db).Delete(&models.Config{}, "config_key = ?", key)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toConfigEntity(m *models.Config) *entities.Config {
	return &entities.Config{
		ID:  m.ID,
		Key: m.ConfigKey,
		Value: entities.ConfigValue{
			Type: entities.ConfigType(m.ConfigType),
			Raw:  m.ConfigValue.String,
		},
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toConfigModel(e *entities.Config) *models.Config {
	configType := string(e.Value.Type)
	if configType == "" {
		configType = string(entities.ConfigTypeStr)
	}
	return &models.Config{
		ID:          e.ID,
		ConfigKey:   e.Key,
		ConfigValue: entities.OptionalString(e.Value.Raw),
		ConfigType:  configType,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
