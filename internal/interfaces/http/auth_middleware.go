package http

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// LocalUser key del usuario autenticado en c.Locals.
const LocalUser = "current_user"

// userAuthenticator es el contrato mínimo que necesita el middleware para
// resolver el usuario vivo a partir del token. Lo implementa *auth.AuthUseCase;
// el uso de interfaz permite sustituir la resolución en tests.
type userAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token y carga en c.Locals el usuario VIVO
// re-resuelto desde la base, no los claims del token. Un usuario desactivado
// recibe 401 aunque su token siga criptográficamente vigente.
func AuthMiddleware(authenticator userAuthenticator, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}

		user, err := authenticator.Authenticate(c.Context(), tokenString)
		if err != nil {
			// Firma inválida, token vencido, usuario inexistente o
			// desactivado: hacia afuera todo es el mismo 401. Un fallo de
			// infraestructura al re-resolver NO es un token malo y sale
			// como 5xx por la taxonomía general.
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o sesión revocada"})
			}
			return errorJSON(c, log, err)
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// RequireRole autoriza contra el rol VIVO del usuario cargado por
// AuthMiddleware. Un cambio de rol rige en la siguiente request sin esperar a
// que el token expire.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "usuario no resuelto en el contexto"})
		}
		for _, r := range roles {
			if user.Role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el rol '" + user.Role + "' no tiene acceso a esta operación"})
	}
}

// GetUser devuelve el usuario autenticado del contexto (después del middleware).
func GetUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// GetRole devuelve el rol vivo del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if u := GetUser(c); u != nil {
		return u.Role
	}
	return ""
}
