package repository

import (
	"context"

	"github.com/jhoicas/miniapp-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	// CreateOrGet inserta el usuario si su telegram_id no existe y devuelve la
	// fila resultante. Debe ser seguro ante dos primeros logins concurrentes de
	// la misma identidad: como máximo una fila por telegram_id (constraint único
	// + re-lectura en conflicto, nunca un lock de aplicación).
	CreateOrGet(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListActiveByRole es la fuente del fan-out de notificaciones por rol.
	ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
}
