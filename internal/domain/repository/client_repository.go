package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// ClientFilter filtro de listados de clientes.
type ClientFilter struct {
	Search string // subcadena de razón social (sin mayúsculas) o de RUC
}

// ClientRepository define el puerto de persistencia para Client (tabla clients).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// List devuelve todos los clientes ordenados por razón social ascendente.
	List(ctx context.Context, f ClientFilter) ([]*entity.Client, error)
	// ListByUser devuelve los clientes alcanzables a través de user_clients para el usuario, mismo orden que List.
	ListByUser(ctx context.Context, userID string, f ClientFilter) ([]*entity.Client, error)
	// Update aplica todos los campos editables. Si expectedUpdatedAt no es nil y no coincide, devuelve domain.ErrConflict.
	// Devuelve domain.ErrNotFound si el cliente no existe.
	Update(ctx context.Context, client *entity.Client, expectedUpdatedAt *time.Time) error
	// Delete elimina solo el cliente (sin cascada a cotizaciones ni asignaciones).
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	// ExistingIDs devuelve el subconjunto de ids que existen.
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}
