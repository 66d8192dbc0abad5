package repository

import (
	"context"
	"time"

	"github.com/jhoicas/miniapp-api/internal/domain/entity"
)

// NotificationFilter filtros conjuntivos para listar notificaciones de un usuario.
// Category vacío = sin filtro; IsRead nil = sin filtro.
type NotificationFilter struct {
	UserID   int64
	Category string
	IsRead   *bool
	Limit    int
	Offset   int
}

// NotificationRepository puerto de persistencia para Notification.
// El orden de listado es created_at DESC con desempate por id DESC.
type NotificationRepository interface {
	// List devuelve la página y el total del conjunto filtrado (no de la página).
	List(ctx context.Context, f NotificationFilter) ([]*entity.Notification, int, error)
	Create(ctx context.Context, n *entity.Notification) error
	// CreateBatch inserta el lote en una sola transacción (fan-out por rol).
	CreateBatch(ctx context.Context, ns []*entity.Notification) error
	// MarkRead marca como leída una notificación del usuario; idempotente.
	// Devuelve (nil, nil) si no existe o no le pertenece.
	MarkRead(ctx context.Context, id, userID int64) (*entity.Notification, error)
	// MarkAllRead marca las no leídas del usuario (opcionalmente de una categoría)
	// y devuelve cuántas filas cambiaron de estado.
	MarkAllRead(ctx context.Context, userID int64, category string) (int64, error)
	// Delete elimina una notificación del usuario; false si no existe o no es suya.
	Delete(ctx context.Context, id, userID int64) (bool, error)
	// DeleteReadBefore purga las LEÍDAS creadas antes del corte; las no leídas
	// sobreviven sin importar su edad.
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
