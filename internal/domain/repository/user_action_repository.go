package repository

import (
	"context"

	"github.com/jhoicas/miniapp-api/internal/domain/entity"
)

// UserActionRepository puerto de persistencia para la bitácora (append-only).
type UserActionRepository interface {
	Create(ctx context.Context, action *entity.UserAction) error
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*entity.UserAction, error)
}
