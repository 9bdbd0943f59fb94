package usecases

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"campus-challenge.backend/internal/domain/entities"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/domain/repositories"
	"campus-challenge.backend/pkg/clock"
	"campus-challenge.backend/pkg/logger"
)

const msgConfigNotFound = "配置项不存在"

// ConfigView is a config row with its value interpreted per declared type
type ConfigView struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	UpdatedAt   string      `json:"updated_at"`
}

// ConfigUsecase reads typed configuration
type ConfigUsecase struct {
	configRepo repositories.ConfigRepository
	clock      clock.Clock
}

func NewConfigUsecase(configRepo repositories.ConfigRepository, clk clock.Clock) *ConfigUsecase {
	return &ConfigUsecase{configRepo: configRepo, clock: clk}
}

// GetByKey returns the most recently updated row for key
func (u *ConfigUsecase) GetByKey(ctx context.Context, key string) (*ConfigView, error) {
	cfg, err := u.configRepo.GetByKey(ctx, key)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(msgConfigNotFound)
		}
		logger.Error(ctx, "Failed to read config", zap.String("config_key", key), zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	return newConfigView(cfg, u.clock), nil
}

func newConfigView(cfg *entities.Config, clk clock.Clock) *ConfigView {
	return &ConfigView{
		Key:         cfg.Key,
		Value:       cfg.Value.Interpret(clk.Location()),
		Type:        string(cfg.Value.Type),
		Description: cfg.Description.String,
		UpdatedAt:   clock.Format(cfg.UpdatedAt, clk.Location()),
	}
}
