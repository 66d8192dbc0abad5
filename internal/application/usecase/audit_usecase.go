package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
)

// AuditUseCase escribe y consulta la bitácora de acciones.
//
// Política de orden: los endpoints auditan DESPUÉS de que la acción protegida
// tuvo éxito, y si la escritura de auditoría falla la request completa falla.
// Así ninguna acción privilegiada queda ejecutada pero sin registrar.
type AuditUseCase struct {
	repo repository.UserActionRepository
}

// NewAuditUseCase construye el caso de uso con el puerto de persistencia.
func NewAuditUseCase(repo repository.UserActionRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// Record inserta un registro de bitácora. Un fallo se reporta como
// domain.ErrAuditWrite y debe abortar la request que lo envuelve.
func (uc *AuditUseCase) Record(ctx context.Context, userID int64, actionType, details, ip string) error {
	action := &entity.UserAction{
		UserID:    userID,
		Type:      actionType,
		Details:   details,
		IPAddress: ip,
	}
	if err := uc.repo.Create(ctx, action); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrAuditWrite, err)
	}
	return nil
}

// ListByUser devuelve las acciones registradas de un usuario (recientes primero).
func (uc *AuditUseCase) ListByUser(ctx context.Context, userID int64, page dto.PageRequest) ([]dto.UserActionResponse, error) {
	page.DefaultPage()
	actions, err := uc.repo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserActionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, dto.UserActionResponse{
			ID:        a.ID,
			UserID:    a.UserID,
			Type:      a.Type,
			Details:   a.Details,
			IPAddress: a.IPAddress,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}
