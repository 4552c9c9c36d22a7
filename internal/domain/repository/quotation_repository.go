package repository

import (
	"context"
	"time"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// QuotationFilter filtro de listados de cotizaciones de un cliente.
type QuotationFilter struct {
	Search string // subcadena de cliente/servicio (sin mayúsculas) o de RUC
}

// QuotationRepository define el puerto de persistencia para Quotation (tabla quotations).
type QuotationRepository interface {
	Create(ctx context.Context, q *entity.Quotation) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Quotation, error)
	// ListByClient devuelve las cotizaciones del cliente, más nuevas primero.
	ListByClient(ctx context.Context, clientID string, f QuotationFilter) ([]*entity.Quotation, error)
	Update(ctx context.Context, q *entity.Quotation, expectedUpdatedAt *time.Time) error
	Delete(ctx context.Context, id string) error
	CountByClient(ctx context.Context, clientID string) (int, error)
}
