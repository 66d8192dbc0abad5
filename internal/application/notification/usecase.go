// Package notification implementa el almacén de notificaciones: listado
// filtrado, creación dirigida, fan-out por rol, marcado de lectura idempotente
// y purga de retención.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// UseCase casos de uso de notificaciones.
type UseCase struct {
	repo     repository.NotificationRepository
	userRepo repository.UserRepository
	log      *logger.Logger
}

// NewUseCase construye el caso de uso con sus puertos.
func NewUseCase(repo repository.NotificationRepository, userRepo repository.UserRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, userRepo: userRepo, log: log}
}

// List devuelve la página de notificaciones del usuario con los filtros
// conjuntivos y el total del conjunto filtrado.
func (uc *UseCase) List(ctx context.Context, userID int64, req dto.NotificationListRequest) (*dto.NotificationListResponse, error) {
	req.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.NotificationFilter{
		UserID:   userID,
		Category: req.Category,
		IsRead:   req.IsRead,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(items)),
		Total:         total,
	}
	for _, n := range items {
		out.Notifications = append(out.Notifications, toResponse(n))
	}
	return out, nil
}

// Create crea una notificación dirigida a un usuario concreto.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	if in.UserID == 0 || in.Title == "" {
		return nil, fmt.Errorf("%w: user_id y title son requeridos", domain.ErrInvalidInput)
	}
	target, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrNotFound
	}
	n := &entity.Notification{
		UserID:   in.UserID,
		Category: in.Category,
		Title:    in.Title,
		Message:  in.Message,
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	resp := toResponse(n)
	return &resp, nil
}

// CreateForRole crea una notificación independiente por cada usuario ACTIVO del
// rol (misma categoría/título/mensaje, estado de lectura propio por fila).
// Cohorte vacía devuelve lista vacía, no error.
func (uc *UseCase) CreateForRole(ctx context.Context, in dto.CreateForRoleRequest) ([]dto.NotificationResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title es requerido", domain.ErrInvalidInput)
	}
	cohort, err := uc.userRepo.ListActiveByRole(ctx, in.Role)
	if err != nil {
		return nil, err
	}
	if len(cohort) == 0 {
		return []dto.NotificationResponse{}, nil
	}

	batch := make([]*entity.Notification, 0, len(cohort))
	for _, u := range cohort {
		batch = append(batch, &entity.Notification{
			UserID:   u.ID,
			Category: in.Category,
			Title:    in.Title,
			Message:  in.Message,
		})
	}
	if err := uc.repo.CreateBatch(ctx, batch); err != nil {
		return nil, err
	}

	uc.log.Info().Str("role", in.Role).Int("count", len(batch)).Msg("fan-out de notificaciones por rol")
	out := make([]dto.NotificationResponse, 0, len(batch))
	for _, n := range batch {
		out = append(out, toResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación del usuario como leída. Idempotente: repetir
// la llamada no es error. Una notificación ajena o inexistente es ErrNotFound.
func (uc *UseCase) MarkRead(ctx context.Context, id, userID int64) (*dto.NotificationResponse, error) {
	n, err := uc.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(n)
	return &resp, nil
}

// MarkAllRead marca las no leídas del usuario (opcionalmente de una categoría)
// y devuelve cuántas cambiaron de estado (0 si no había).
func (uc *UseCase) MarkAllRead(ctx context.Context, userID int64, category string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID, category)
}

// Delete elimina una notificación del usuario. false = no existe o no es suya.
func (uc *UseCase) Delete(ctx context.Context, id, userID int64) (bool, error) {
	return uc.repo.Delete(ctx, id, userID)
}

// Prune purga notificaciones leídas con más de olderThanDays días y devuelve
// cuántas se eliminaron. Las no leídas sobreviven siempre.
func (uc *UseCase) Prune(ctx context.Context, olderThanDays int) (int64, error) {
	if olderThanDays <= 0 {
		return 0, fmt.Errorf("%w: umbral de retención inválido %d", domain.ErrInvalidInput, olderThanDays)
	}
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	deleted, err := uc.repo.DeleteReadBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		uc.log.Info().Int64("deleted", deleted).Int("older_than_days", olderThanDays).Msg("purga de notificaciones")
	}
	return deleted, nil
}

func toResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Category:  n.Category,
		Title:     n.Title,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
