package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, user_id, category, title, message, is_read, created_at`

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
type NotificationRepo struct {
	pool *pgxpool.Pool
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

// List devuelve la página ordenada (nuevas primero, desempate por id) y el total
// del conjunto filtrado, para que el cliente pueda paginar.
func (r *NotificationRepo) List(ctx context.Context, f repository.NotificationFilter) ([]*entity.Notification, int, error) {
	// Filtros conjuntivos: $2 vacío desactiva el filtro de categoría,
	// $3 NULL desactiva el de lectura.
	where := `user_id = $1 AND ($2 = '' OR category = $2) AND ($3::boolean IS NULL OR is_read = $3)`

	var total int
	countQuery := `SELECT count(*) FROM notifications WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, f.UserID, f.Category, f.IsRead).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE ` + where + `
		ORDER BY created_at DESC, id DESC LIMIT $4 OFFSET $5`
	rows, err := r.pool.Query(ctx, query, f.UserID, f.Category, f.IsRead, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Category, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, total, rows.Err()
}

// Create persiste una notificación individual y completa ID y CreatedAt.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO notifications (user_id, category, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, now())
		RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query, n.UserID, n.Category, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
		// FK rota: el destinatario fue borrado entre la validación y el
		// insert. Hacia arriba es un destinatario inexistente.
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario %d no existe", domain.ErrNotFound, n.UserID)
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	n.IsRead = false
	return nil
}

// CreateBatch inserta el lote en una sola transacción: o se crea el fan-out
// completo o nada.
func (r *NotificationRepo) CreateBatch(ctx context.Context, ns []*entity.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO notifications (user_id, category, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, false, now())
		RETURNING id, created_at`
	for _, n := range ns {
		if err := tx.QueryRow(ctx, query, n.UserID, n.Category, n.Title, n.Message).Scan(&n.ID, &n.CreatedAt); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("%w: usuario %d no existe", domain.ErrNotFound, n.UserID)
			}
			return fmt.Errorf("insert notification batch: %w", err)
		}
		n.IsRead = false
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// MarkRead marca como leída una notificación del usuario. Idempotente: una fila
// ya leída vuelve a coincidir y se devuelve sin cambio efectivo. Si la fila no
// existe o pertenece a otro usuario devuelve (nil, nil) — el dueño real no se revela.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, userID int64) (*entity.Notification, error) {
	query := `
		UPDATE notifications SET is_read = true
		WHERE id = $1 AND user_id = $2
		RETURNING ` + notificationColumns
	var n entity.Notification
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&n.ID, &n.UserID, &n.Category, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return &n, nil
}

// MarkAllRead voltea a leídas las no leídas del usuario (opcionalmente de una
// categoría) y devuelve cuántas filas cambiaron. Un solo UPDATE: atómico frente
// a mark_read/delete concurrentes sobre las mismas filas.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int64, category string) (int64, error) {
	query := `
		UPDATE notifications SET is_read = true
		WHERE user_id = $1 AND is_read = false AND ($2 = '' OR category = $2)`
	tag, err := r.pool.Exec(ctx, query, userID, category)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina una notificación del usuario. false si no existe o no es suya.
func (r *NotificationRepo) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete notification: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteReadBefore purga las notificaciones LEÍDAS creadas antes del corte.
// Las no leídas nunca se tocan, sin importar su edad.
func (r *NotificationRepo) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notifications WHERE is_read = true AND created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
