package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/miniapp-api/internal/application/auth"
	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// AuthHandler maneja el login con Telegram y la consulta del perfil propio.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	log *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, log: log}
}

// LoginTelegram recibe el initData firmado por la Mini App (campo _auth de un
// formulario, o init_data en JSON) y devuelve el token de sesión. El usuario
// se crea de forma perezosa en el primer login verificado.
// POST /api/auth/telegram
func (h *AuthHandler) LoginTelegram(c *fiber.Ctx) error {
	var in dto.TelegramAuthRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InitData == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "init_data es requerido"})
	}
	out, err := h.uc.LoginWithTelegram(c.Context(), in.InitData, c.IP())
	if err != nil {
		return errorJSON(c, h.log, err)
	}
	return c.JSON(out)
}

// Me devuelve el perfil vivo del usuario autenticado.
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autenticado"})
	}
	return c.JSON(auth.ToUserResponse(user))
}
