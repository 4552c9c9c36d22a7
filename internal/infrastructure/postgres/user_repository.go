package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	base
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier, timeout time.Duration) *UserRepo {
	return &UserRepo{base: base{q: q, timeout: timeout}}
}

const userColumns = `id, name, lastname, email, telefono, password_hash, role, client_count, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Lastname, &u.Email, &u.Telefono, &u.PasswordHash, &u.Role,
		&u.ClientCount, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Lastname, u.Email, u.Telefono, u.PasswordHash, u.Role,
		u.ClientCount, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrap("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, "get user", `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail búsqueda exacta sobre el email normalizado.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "get user by email", `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) findOne(ctx context.Context, op, query string, arg string) (*entity.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	u, err := scanUser(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return u, nil
}

// List usuarios por nombre; Search compara nombre, apellido o rol, Role filtra exacto.
func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `SELECT ` + userColumns + ` FROM users
		WHERE ($1 = '' OR role = $1)
		  AND ($2 = '' OR name ILIKE $2 OR lastname ILIKE $2 OR role ILIKE $2)
		ORDER BY lower(name), id`
	rows, err := r.q.Query(ctx, query, f.Role, searchPattern(f.Search))
	if err != nil {
		return nil, wrap("list users", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrap("scan user", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list users", err)
	}
	return list, nil
}

// Update no toca client_count; password_hash vacío conserva el actual.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		UPDATE users SET name = $2, lastname = $3, email = $4, telefono = $5,
			password_hash = COALESCE(NULLIF($6, ''), password_hash), role = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, u.ID, u.Name, u.Lastname, u.Email, u.Telefono, u.PasswordHash, u.Role, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return wrap("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockForUpdate toma el lock de fila (SELECT ... FOR UPDATE); dos reemplazos de asignaciones
// del mismo usuario se ejecutan uno después del otro.
func (r *UserRepo) LockForUpdate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var one int
	err := r.q.QueryRow(ctx, `SELECT 1 FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return wrap("lock user", err)
	}
	return nil
}

// SetClientCount actualiza la caché derivada de user_clients.
func (r *UserRepo) SetClientCount(ctx context.Context, id string, n int) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.q.Exec(ctx, `UPDATE users SET client_count = $2 WHERE id = $1`, id, n)
	if err != nil {
		return wrap("update client count", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
