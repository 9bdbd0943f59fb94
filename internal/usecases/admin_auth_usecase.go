package usecases

import (
	"context"

	"go.uber.org/zap"

	"campus-challenge.backend/internal/config"
	domainerrors "campus-challenge.backend/internal/domain/errors"
	"campus-challenge.backend/pkg/crypto"
	"campus-challenge.backend/pkg/jwt"
	"campus-challenge.backend/pkg/logger"
)

// AdminRole is the only role carried by admin tokens
const AdminRole = "admin"

const (
	msgAdminDisabled     = "管理后台未启用"
	msgAdminBadLogin     = "用户名或密码错误"
	msgAdminTokenInvalid = "登录状态无效或已过期"
	msgAdminNoTokens     = "未配置 ADMIN_JWT_SECRET，请使用 Basic 认证"
)

// AdminAuthUsecase checks organizer credentials and issues bearer tokens
type AdminAuthUsecase struct {
	username     string
	password     string
	passwordHash string
	tokens       bool
	jwtService   *jwt.JWTService
}

func NewAdminAuthUsecase(cfg config.AdminConfig, jwtService *jwt.JWTService) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		username:     cfg.Username,
		password:     cfg.Password,
		passwordHash: cfg.PasswordHash,
		tokens:       cfg.TokensEnabled(),
		jwtService:   jwtService,
	}
}

// Enabled reports whether any admin password is configured
func (u *AdminAuthUsecase) Enabled() bool {
	return u.passwordHash != "" || u.password != ""
}

// TokensEnabled reports whether bearer tokens are issued and accepted.
// Without a real signing secret only Basic credentials work.
func (u *AdminAuthUsecase) TokensEnabled() bool {
	return u.Enabled() && u.tokens
}

// CheckCredentials verifies a username/password pair. The bcrypt hash wins
// over the plain password when both are configured.
func (u *AdminAuthUsecase) CheckCredentials(username, password string) bool {
	if !u.Enabled() {
		return false
	}
	userOK := crypto.ConstantTimeEqual(username, u.username)
	var passOK bool
	if u.passwordHash != "" {
		passOK = crypto.CheckPassword(password, u.passwordHash)
	} else {
		passOK = crypto.ConstantTimeEqual(password, u.password)
	}
	return userOK && passOK
}

func (u *AdminAuthUsecase) Login(ctx context.Context, username, password string) (*jwt.Token, error) {
	if !u.Enabled() {
		return nil, domainerrors.Unauthorized(msgAdminDisabled)
	}
	if !u.CheckCredentials(username, password) {
		logger.Warn(ctx, "Admin login rejected", zap.String("username", username))
		return nil, domainerrors.Unauthorized(msgAdminBadLogin)
	}
	if !u.tokens {
		logger.Warn(ctx, "Admin token requested without ADMIN_JWT_SECRET")
		return nil, domainerrors.Unauthorized(msgAdminNoTokens)
	}
	token, err := u.jwtService.GenerateToken(username, AdminRole)
	if err != nil {
		logger.Error(ctx, "Failed to issue admin token", zap.Error(err))
		return nil, domainerrors.InternalError(err)
	}
	logger.Info(ctx, "Admin logged in", zap.String("username", username))
	return token, nil
}

// Authenticate validates a bearer token and returns its subject
func (u *AdminAuthUsecase) Authenticate(tokenString string) (string, error) {
	if !u.Enabled() {
		return "", domainerrors.Unauthorized(msgAdminDisabled)
	}
	if !u.tokens {
		return "", domainerrors.Unauthorized(msgAdminNoTokens)
	}
	claims, err := u.jwtService.ValidateToken(tokenString)
	if err != nil || claims.Role != AdminRole || claims.Username != u.username {
		return "", domainerrors.Unauthorized(msgAdminTokenInvalid)
	}
	return claims.Username, nil
}
