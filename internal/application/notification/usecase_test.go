package notification_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/miniapp-api/internal/application/dto"
	"github.com/jhoicas/miniapp-api/internal/application/notification"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
	"github.com/jhoicas/miniapp-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeNotificationRepo reproduce el contrato del repositorio real, incluido el
// orden created_at DESC con desempate por id DESC.
type fakeNotificationRepo struct {
	rows   []*entity.Notification
	nextID int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (f *fakeNotificationRepo) insert(n *entity.Notification) {
	n.ID = f.nextID
	f.nextID++
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.rows = append(f.rows, n)
}

func (f *fakeNotificationRepo) matches(n *entity.Notification, flt repository.NotificationFilter) bool {
	if n.UserID != flt.UserID {
		return false
	}
	if flt.Category != "" && n.Category != flt.Category {
		return false
	}
	if flt.IsRead != nil && n.IsRead != *flt.IsRead {
		return false
	}
	return true
}

func (f *fakeNotificationRepo) List(_ context.Context, flt repository.NotificationFilter) ([]*entity.Notification, int, error) {
	var all []*entity.Notification
	for _, n := range f.rows {
		if f.matches(n, flt) {
			all = append(all, n)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := len(all)
	if flt.Offset >= total {
		return nil, total, nil
	}
	all = all[flt.Offset:]
	if flt.Limit > 0 && len(all) > flt.Limit {
		all = all[:flt.Limit]
	}
	return all, total, nil
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	f.insert(n)
	return nil
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, ns []*entity.Notification) error {
	for _, n := range ns {
		f.insert(n)
	}
	return nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, userID int64) (*entity.Notification, error) {
	for _, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return n, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64, category string) (int64, error) {
	var count int64
	for _, n := range f.rows {
		if n.UserID == userID && !n.IsRead && (category == "" || n.Category == category) {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, userID int64) (bool, error) {
	for i, n := range f.rows {
		if n.ID == id && n.UserID == userID {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNotificationRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*entity.Notification
	var deleted int64
	for _, n := range f.rows {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	f.rows = kept
	return deleted, nil
}

// fakeUserRepo lo mínimo que necesita el caso de uso: lookup por id y cohorte
// activa por rol.
type fakeUserRepo struct {
	users []*entity.User
}

func (f *fakeUserRepo) CreateOrGet(_ context.Context, u *entity.User) (*entity.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.TelegramID == telegramID {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ *entity.User) error { return nil }

func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.IsActive && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	return f.users, nil
}

func buildUC(repo *fakeNotificationRepo, users *fakeUserRepo) *notification.UseCase {
	return notification.NewUseCase(repo, users, logger.Nop())
}

func boolPtr(b bool) *bool { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// List — filtros conjuntivos, orden y total
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltrosConjuntivosYTotal(t *testing.T) {
	repo := newFakeNotificationRepo()
	users := &fakeUserRepo{}
	uc := buildUC(repo, users)

	base := time.Now()
	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategoryStock, IsRead: false, Title: "a", CreatedAt: base.Add(-3 * time.Hour)})
	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategoryStock, IsRead: true, Title: "b", CreatedAt: base.Add(-2 * time.Hour)})
	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategorySystem, IsRead: false, Title: "c", CreatedAt: base.Add(-1 * time.Hour)})
	repo.insert(&entity.Notification{UserID: 2, Category: entity.CategoryStock, IsRead: false, Title: "ajena", CreatedAt: base})

	// Sin filtros: solo lo del usuario 1, más reciente primero.
	out, err := uc.List(context.Background(), 1, dto.NotificationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Total)
	require.Len(t, out.Notifications, 3)
	assert.Equal(t, "c", out.Notifications[0].Title, "el orden es más reciente primero")

	// category + is_read se combinan con AND.
	out, err = uc.List(context.Background(), 1, dto.NotificationListRequest{
		Category: entity.CategoryStock,
		IsRead:   boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	require.Len(t, out.Notifications, 1)
	assert.Equal(t, "a", out.Notifications[0].Title)
}

func TestList_TotalEsDelConjuntoNoDeLaPagina(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := buildUC(repo, &fakeUserRepo{})

	for i := 0; i < 5; i++ {
		repo.insert(&entity.Notification{UserID: 1, Category: entity.CategoryStock, Title: "n", CreatedAt: time.Now().Add(time.Duration(-i) * time.Minute)})
	}

	out, err := uc.List(context.Background(), 1, dto.NotificationListRequest{
		PageRequest: dto.PageRequest{Limit: 2},
	})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 2)
	assert.Equal(t, 5, out.Total, "total cuenta el conjunto filtrado completo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / CreateForRole
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_UsuarioInexistenteEsNotFound(t *testing.T) {
	uc := buildUC(newFakeNotificationRepo(), &fakeUserRepo{})

	_, err := uc.Create(context.Background(), dto.CreateNotificationRequest{
		UserID: 99, Category: entity.CategorySystem, Title: "hola",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateForRole_SoloUsuariosActivosDelRol(t *testing.T) {
	repo := newFakeNotificationRepo()
	users := &fakeUserRepo{users: []*entity.User{
		{ID: 1, Role: entity.RoleManager, IsActive: true},
		{ID: 2, Role: entity.RoleManager, IsActive: false}, // desactivado: fuera
		{ID: 3, Role: entity.RoleEmployee, IsActive: true}, // otro rol: fuera
		{ID: 4, Role: entity.RoleManager, IsActive: true},
	}}
	uc := buildUC(repo, users)

	created, err := uc.CreateForRole(context.Background(), dto.CreateForRoleRequest{
		Role: entity.RoleManager, Category: entity.CategorySalesPlan, Title: "plan",
	})
	require.NoError(t, err)
	require.Len(t, created, 2, "una notificación por usuario activo del rol")

	// Cada destinatario tiene su propia fila con estado de lectura propio.
	recipients := map[int64]bool{}
	for _, n := range created {
		recipients[n.UserID] = true
		assert.False(t, n.IsRead)
	}
	assert.Equal(t, map[int64]bool{1: true, 4: true}, recipients)
}

func TestCreateForRole_CohorteVaciaNoEsError(t *testing.T) {
	uc := buildUC(newFakeNotificationRepo(), &fakeUserRepo{})

	created, err := uc.CreateForRole(context.Background(), dto.CreateForRoleRequest{
		Role: entity.RoleAdmin, Title: "aviso",
	})
	require.NoError(t, err)
	assert.Empty(t, created, "cohorte vacía devuelve lista vacía, no error")
}

func TestCreateForRole_RolDesconocidoEsInvalido(t *testing.T) {
	uc := buildUC(newFakeNotificationRepo(), &fakeUserRepo{})

	_, err := uc.CreateForRole(context.Background(), dto.CreateForRoleRequest{
		Role: "superuser", Title: "aviso",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// MarkRead / MarkAllRead
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkRead_IdempotenteYConPropiedad(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := buildUC(repo, &fakeUserRepo{})

	n := &entity.Notification{UserID: 1, Category: entity.CategoryStock, Title: "stock bajo"}
	repo.insert(n)

	out, err := uc.MarkRead(context.Background(), n.ID, 1)
	require.NoError(t, err)
	assert.True(t, out.IsRead)

	// Repetir no es error: misma respuesta.
	out, err = uc.MarkRead(context.Background(), n.ID, 1)
	require.NoError(t, err)
	assert.True(t, out.IsRead)

	// Una notificación ajena se reporta igual que una inexistente.
	_, err = uc.MarkRead(context.Background(), n.ID, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.MarkRead(context.Background(), 999, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarkAllRead_CuentaSoloLasQueCambiaron(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := buildUC(repo, &fakeUserRepo{})

	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategoryStock, IsRead: false})
	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategoryStock, IsRead: true}) // ya leída: no cuenta
	repo.insert(&entity.Notification{UserID: 1, Category: entity.CategorySystem, IsRead: false})
	repo.insert(&entity.Notification{UserID: 2, Category: entity.CategoryStock, IsRead: false}) // ajena

	count, err := uc.MarkAllRead(context.Background(), 1, entity.CategoryStock)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Sin categoría: el resto de no leídas del usuario.
	count, err = uc.MarkAllRead(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Nada pendiente: 0, sin error.
	count, err = uc.MarkAllRead(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Zero(t, count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / Prune
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_AjenaNoBorraNada(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := buildUC(repo, &fakeUserRepo{})

	n := &entity.Notification{UserID: 1, Title: "mía"}
	repo.insert(n)

	ok, err := uc.Delete(context.Background(), n.ID, 2)
	require.NoError(t, err)
	assert.False(t, ok, "otro usuario no puede borrar la notificación")
	assert.Len(t, repo.rows, 1, "la fila debe sobrevivir")

	ok, err = uc.Delete(context.Background(), n.ID, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, repo.rows)
}

func TestPrune_SoloLeidasViejas(t *testing.T) {
	repo := newFakeNotificationRepo()
	uc := buildUC(repo, &fakeUserRepo{})

	old := time.Now().AddDate(0, 0, -60)
	repo.insert(&entity.Notification{UserID: 1, IsRead: true, CreatedAt: old})   // leída y vieja: se purga
	repo.insert(&entity.Notification{UserID: 1, IsRead: false, CreatedAt: old})  // no leída: sobrevive sin importar la edad
	repo.insert(&entity.Notification{UserID: 1, IsRead: true})                   // leída reciente: sobrevive

	deleted, err := uc.Prune(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Len(t, repo.rows, 2)
}

func TestPrune_UmbralInvalido(t *testing.T) {
	uc := buildUC(newFakeNotificationRepo(), &fakeUserRepo{})

	_, err := uc.Prune(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
