package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
)

var _ repository.UserActionRepository = (*UserActionRepo)(nil)

// UserActionRepo implementación del puerto UserActionRepository sobre PostgreSQL.
// La tabla es append-only: aquí no hay UPDATE ni DELETE.
type UserActionRepo struct {
	pool *pgxpool.Pool
}

// NewUserActionRepository construye el adaptador de persistencia para la bitácora.
func NewUserActionRepository(pool *pgxpool.Pool) *UserActionRepo {
	return &UserActionRepo{pool: pool}
}

// Create inserta un registro de auditoría.
func (r *UserActionRepo) Create(ctx context.Context, action *entity.UserAction) error {
	query := `
		INSERT INTO user_actions (user_id, action_type, action_details, ip_address, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), now())
		RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		action.UserID, action.Type, action.Details, action.IPAddress,
	).Scan(&action.ID, &action.CreatedAt); err != nil {
		return fmt.Errorf("insert user action: %w", err)
	}
	return nil
}

// ListByUser lista las acciones de un usuario, recientes primero.
func (r *UserActionRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.UserAction, error) {
	query := `
		SELECT id, user_id, action_type, action_details, coalesce(ip_address, ''), created_at
		FROM user_actions WHERE user_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user actions: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserAction
	for rows.Next() {
		var a entity.UserAction
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Details, &a.IPAddress, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user action: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
