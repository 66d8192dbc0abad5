// Package auth implementa el apretón de manos de login con Telegram y la
// resolución de identidad que usa el middleware en cada request.
package auth

import (
	"context"
	"fmt"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
	"github.com/jhoicas/miniapp-api/pkg/jwt"
	"github.com/jhoicas/miniapp-api/pkg/logger"
	"github.com/jhoicas/miniapp-api/pkg/telegram"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// identityVerifier contrato mínimo sobre pkg/telegram; la interfaz permite
// sustituir el verificador en tests.
type identityVerifier interface {
	Verify(initData string) (*telegram.Claims, error)
}

// AuthUseCase casos de uso de autenticación: login con la Mini App y
// resolución del usuario vivo a partir de un token.
type AuthUseCase struct {
	verifier    identityVerifier
	userRepo    repository.UserRepository
	audit       *usecase.AuditUseCase
	jwtCfg      JWTConfig
	defaultRole string
	log         *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	verifier identityVerifier,
	userRepo repository.UserRepository,
	audit *usecase.AuditUseCase,
	jwtCfg JWTConfig,
	defaultRole string,
	log *logger.Logger,
) *AuthUseCase {
	if defaultRole == "" || !entity.ValidRole(defaultRole) {
		defaultRole = entity.RoleEmployee
	}
	return &AuthUseCase{
		verifier:    verifier,
		userRepo:    userRepo,
		audit:       audit,
		jwtCfg:      jwtCfg,
		defaultRole: defaultRole,
		log:         log,
	}
}

// LoginWithTelegram verifica el initData firmado por Telegram, resuelve (o crea
// en el primer login) el usuario, emite el token de sesión y registra el login
// consumado en la bitácora. Si la auditoría falla, el login falla.
func (uc *AuthUseCase) LoginWithTelegram(ctx context.Context, initData, ip string) (*dto.TokenResponse, error) {
	claims, err := uc.verifier.Verify(initData)
	if err != nil {
		uc.log.Warn().Err(err).Msg("initData rechazado")
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInitData, err)
	}

	user, err := uc.userRepo.CreateOrGet(ctx, &entity.User{
		TelegramID: claims.TelegramID,
		Username:   claims.Username,
		FullName:   claims.FullName(),
		Role:       uc.defaultRole,
		IsActive:   true,
	})
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.TelegramID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}

	// La bitácora registra logins CONSUMADOS: se escribe recién cuando el
	// token ya se emitió. Si la escritura falla, el login se rechaza.
	if err := uc.audit.Record(ctx, user.ID, entity.ActionLogin, "Telegram Mini App login", ip); err != nil {
		return nil, err
	}

	uc.log.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("login exitoso")
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        ToUserResponse(user),
	}, nil
}

// Authenticate valida el token y re-resuelve el usuario VIVO por su subject.
// El rol embebido en el token se ignora a propósito: una degradación de rol o
// una desactivación surten efecto en la siguiente request, sin esperar a que
// el token expire.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	telegramID, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		// Firma inválida, vencido o malformado: hacia afuera es el mismo 401.
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	user, err := uc.userRepo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ToUserResponse convierte la entidad a su DTO de salida.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FullName:   u.FullName,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
