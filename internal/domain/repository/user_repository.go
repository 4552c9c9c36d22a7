package repository

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// UserFilter filtro de listados de usuarios.
type UserFilter struct {
	Search string // subcadena de nombre, apellido o rol
	Role   string // rol exacto
}

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List ordena por nombre ascendente.
	List(ctx context.Context, f UserFilter) ([]*entity.User, error)
	// Update no modifica client_count; si PasswordHash está vacío conserva el actual.
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// SetClientCount actualiza la caché client_count.
	SetClientCount(ctx context.Context, id string, n int) error
	// LockForUpdate bloquea la fila del usuario hasta el fin de la transacción en curso.
	// Devuelve ErrNotFound si no existe.
	LockForUpdate(ctx context.Context, id string) error
}
