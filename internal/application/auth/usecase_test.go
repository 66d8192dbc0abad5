package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/miniapp-api/internal/application/auth"
	"github.com/jhoicas/miniapp-api/internal/application/usecase"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/pkg/logger"
	"github.com/jhoicas/miniapp-api/pkg/telegram"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeVerifier acepta cualquier initData que esté en su mapa; el resto es
// firma inválida.
type fakeVerifier struct {
	valid map[string]*telegram.Claims
}

func (f *fakeVerifier) Verify(initData string) (*telegram.Claims, error) {
	if c, ok := f.valid[initData]; ok {
		return c, nil
	}
	return nil, telegram.ErrInvalidInitData
}

// fakeUserRepo persistencia en memoria indexada por telegram_id.
type fakeUserRepo struct {
	byTelegramID map[string]*entity.User
	nextID       int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byTelegramID: map[string]*entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) CreateOrGet(_ context.Context, user *entity.User) (*entity.User, error) {
	if existing, ok := f.byTelegramID[user.TelegramID]; ok {
		return existing, nil
	}
	u := *user
	u.ID = f.nextID
	f.nextID++
	f.byTelegramID[u.TelegramID] = &u
	return &u, nil
}

func (f *fakeUserRepo) GetByTelegramID(_ context.Context, telegramID string) (*entity.User, error) {
	return f.byTelegramID[telegramID], nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, u := range f.byTelegramID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.byTelegramID[user.TelegramID] = user
	return nil
}

func (f *fakeUserRepo) ListActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byTelegramID {
		if u.IsActive && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byTelegramID {
		out = append(out, u)
	}
	return out, nil
}

// fakeActionRepo bitácora en memoria; failCreate simula una base caída.
type fakeActionRepo struct {
	actions    []*entity.UserAction
	failCreate bool
}

func (f *fakeActionRepo) Create(_ context.Context, a *entity.UserAction) error {
	if f.failCreate {
		return errors.New("bitácora no disponible")
	}
	f.actions = append(f.actions, a)
	return nil
}

func (f *fakeActionRepo) ListByUser(_ context.Context, userID int64, _, _ int) ([]*entity.UserAction, error) {
	var out []*entity.UserAction
	for _, a := range f.actions {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testInitData = "query_id=AAA&user=...&hash=valida"
)

func testClaims() *telegram.Claims {
	return &telegram.Claims{
		TelegramID: "100200300",
		Username:   "tester",
		FirstName:  "Test",
		LastName:   "User",
	}
}

func buildAuthUC(users *fakeUserRepo, actions *fakeActionRepo) *auth.AuthUseCase {
	verifier := &fakeVerifier{valid: map[string]*telegram.Claims{testInitData: testClaims()}}
	return auth.NewAuthUseCase(
		verifier,
		users,
		usecase.NewAuditUseCase(actions),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "miniapp-test"},
		entity.RoleEmployee,
		logger.Nop(),
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// LoginWithTelegram
// ──────────────────────────────────────────────────────────────────────────────

// Primer login verificado: crea el usuario con el rol por defecto, lo deja
// activo, registra el login y emite token.
func TestLogin_PrimerLoginCreaUsuario(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, out.AccessToken)
	assert.Equal(t, "bearer", out.TokenType)

	assert.Equal(t, "100200300", out.User.TelegramID)
	assert.Equal(t, entity.RoleEmployee, out.User.Role, "el primer login asigna el rol por defecto")
	assert.True(t, out.User.IsActive)
	assert.Equal(t, "Test User", out.User.FullName)

	require.Len(t, actions.actions, 1, "el login debe quedar en la bitácora")
	assert.Equal(t, entity.ActionLogin, actions.actions[0].Type)
	assert.Equal(t, "10.0.0.1", actions.actions[0].IPAddress)
}

// Segundo login de la misma identidad: no duplica la fila y conserva el rol
// que un admin le haya asignado entre logins.
func TestLogin_SegundoLoginConservaRol(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	first, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	// Promoción fuera de banda.
	promoted := users.byTelegramID["100200300"]
	promoted.Role = entity.RoleManager

	second, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID, "misma identidad, misma fila")
	assert.Equal(t, entity.RoleManager, second.User.Role, "el rol asignado sobrevive a logins posteriores")
	assert.Len(t, users.byTelegramID, 1)
}

// initData con firma inválida: rechazo sin crear usuario ni tocar la bitácora.
func TestLogin_InitDataInvalidoNoCreaNada(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	_, err := uc.LoginWithTelegram(context.Background(), "hash=falsificado", "")
	require.ErrorIs(t, err, domain.ErrInvalidInitData)

	assert.Empty(t, users.byTelegramID, "un initData inválido no debe crear usuarios")
	assert.Empty(t, actions.actions, "un initData inválido no debe dejar rastro en la bitácora")
}

// Usuario desactivado: la firma es válida pero el login se rechaza.
func TestLogin_UsuarioDesactivadoEsForbidden(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	_, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	users.byTelegramID["100200300"].IsActive = false

	_, err = uc.LoginWithTelegram(context.Background(), testInitData, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// La bitácora no está disponible: el login completo falla, sin token.
func TestLogin_FalloDeAuditoriaAbortaElLogin(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{failCreate: true}
	uc := buildAuthUC(users, actions)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.ErrorIs(t, err, domain.ErrAuditWrite,
		"sin registro de auditoría no debe emitirse token")
	assert.Nil(t, out)
}

// La bitácora registra logins consumados: si la emisión del token falla
// (secret vacío), no debe quedar ninguna fila de login en la bitácora.
func TestLogin_FalloAlEmitirTokenNoDejaRastro(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	verifier := &fakeVerifier{valid: map[string]*telegram.Claims{testInitData: testClaims()}}
	uc := auth.NewAuthUseCase(
		verifier,
		users,
		usecase.NewAuditUseCase(actions),
		auth.JWTConfig{Secret: "", ExpMinutes: 60, Issuer: "miniapp-test"},
		entity.RoleEmployee,
		logger.Nop(),
	)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "10.0.0.1")
	require.Error(t, err)
	assert.Nil(t, out)
	assert.Empty(t, actions.actions,
		"un login que no emitió token no es un login consumado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate — re-resolución viva
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_TokenValidoResuelveUsuarioVivo(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	user, err := uc.Authenticate(context.Background(), out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "100200300", user.TelegramID)
}

// El token sigue siendo criptográficamente válido, pero el usuario fue
// desactivado: 401 en la siguiente request.
func TestAuthenticate_UsuarioDesactivadoConTokenVigente(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	users.byTelegramID["100200300"].IsActive = false

	_, err = uc.Authenticate(context.Background(), out.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// El rol viene de la base, no del claim del token: una degradación posterior
// al login se refleja de inmediato.
func TestAuthenticate_RolVivoNoElDelToken(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	out, err := uc.LoginWithTelegram(context.Background(), testInitData, "")
	require.NoError(t, err)

	users.byTelegramID["100200300"].Role = entity.RoleAdmin

	user, err := uc.Authenticate(context.Background(), out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, user.Role,
		"Authenticate debe devolver el rol actual de la base, no el embebido en el token")
}

func TestAuthenticate_TokenBasuraEsUnauthorized(t *testing.T) {
	users := newFakeUserRepo()
	actions := &fakeActionRepo{}
	uc := buildAuthUC(users, actions)

	_, err := uc.Authenticate(context.Background(), "ni.siquiera.jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
