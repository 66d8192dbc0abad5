package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/miniapp-api/internal/domain"
	"github.com/jhoicas/miniapp-api/internal/domain/entity"
	"github.com/jhoicas/miniapp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, telegram_id, username, full_name, role, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// CreateOrGet inserta el usuario si su telegram_id es nuevo; si otra request
// ganó la carrera del primer login, re-lee la fila existente. El constraint
// único sobre telegram_id garantiza como máximo una fila por identidad.
func (r *UserRepo) CreateOrGet(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (telegram_id, username, full_name, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (telegram_id) DO NOTHING
		RETURNING ` + userColumns
	var u entity.User
	err := r.pool.QueryRow(ctx, query,
		user.TelegramID, user.Username, user.FullName, user.Role, user.IsActive,
	).Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	// Conflicto: la fila ya existía (u otra transacción la creó primero).
	existing, err := r.GetByTelegramID(ctx, user.TelegramID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("insert user: conflicto sin fila visible para telegram_id %s", user.TelegramID)
	}
	return existing, nil
}

// GetByTelegramID obtiene un usuario por su identidad de Telegram. (nil, nil) si no existe.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`
	return r.scanOne(ctx, query, telegramID)
}

// GetByID obtiene un usuario por ID. (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update actualiza perfil, rol y estado de actividad de un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET username = $2, full_name = $3, role = $4, is_active = $5, updated_at = now()
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Username, user.FullName, user.Role, user.IsActive,
	)
	if err != nil {
		// El CHECK de la tabla rechaza roles fuera del catálogo; hacia
		// arriba eso es entrada inválida, no un fallo de infraestructura.
		if isCheckViolation(err) {
			return fmt.Errorf("%w: rol %q rechazado por la base", domain.ErrInvalidInput, user.Role)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// ListActiveByRole lista los usuarios ACTIVOS con el rol dado (cohorte de fan-out).
func (r *UserRepo) ListActiveByRole(ctx context.Context, role string) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 AND is_active ORDER BY id`
	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

// List lista usuarios con paginación (administración).
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	return scanUsers(rows)
}

func scanUsers(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}
