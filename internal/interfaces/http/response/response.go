package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends {success:false, code, message}. Non-AppErrors become
// internal_error; their detail only reaches the log.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.AsAppError(err)
	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(appErr.Err),
		)
	}
	ErrorWithError(c, appErr.Status, appErr.Code, appErr.Message)
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"code":    code,
		"message": message,
	})
}

// Abort is Error for middlewares: it also stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
