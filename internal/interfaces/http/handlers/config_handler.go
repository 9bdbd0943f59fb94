package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/internal/interfaces/http/response"
	"campus-challenge.backend/internal/usecases"
)

const msgConfigKeyMissing = "缺少参数 config_key"

type ConfigService interface {
	GetByKey(ctx context.Context, key string) (*usecases.ConfigView, error)
}

type ConfigHandler struct {
	configs ConfigService
}

func NewConfigHandler(configs ConfigService) *ConfigHandler {
	return &ConfigHandler{configs: configs}
}

// GetConfig returns one interpreted configuration value
// GET /api/config?config_key=K
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	key := strings.TrimSpace(c.Query("config_key"))
	if key == "" {
		response.Error(c, domainerrors.Validation(msgConfigKeyMissing))
		return
	}

	view, err := h.configs.GetByKey(c.Request.Context(), key)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"key":         view.Key,
			"value":       view.Value,
			"type":        view.Type,
			"description": view.Description,
		},
	})
}
