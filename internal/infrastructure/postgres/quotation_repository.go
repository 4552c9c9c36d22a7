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

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo implementación del puerto QuotationRepository.
type QuotationRepo struct {
	base
}

func NewQuotationRepository(q Querier, timeout time.Duration) *QuotationRepo {
	return &QuotationRepo{base: base{q: q, timeout: timeout}}
}

const quotationColumns = `id, client_id, tipo, cotizacion, ruc, facturar_a, cliente, moneda, importe, producto_starsoft,
	servicio, mes_facturacion, observaciones, tipo_cobro, area, supervisor, encargado, inicio_facturacion,
	ver_cotizacion, funcionarios, created_at, updated_at`

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var q entity.Quotation
	err := row.Scan(
		&q.ID, &q.ClientID, &q.Tipo, &q.Cotizacion, &q.RUC, &q.FacturarA, &q.Cliente, &q.Moneda, &q.Importe, &q.ProductoStarSoft,
		&q.Servicio, &q.MesFacturacion, &q.Observaciones, &q.TipoCobro, &q.Area, &q.Supervisor, &q.Encargado, &q.InicioFacturacion,
		&q.VerCotizacion, &q.Funcionarios, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// Create persiste una cotización.
func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `INSERT INTO quotations (` + quotationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(ctx, query,
		q.ID, q.ClientID, q.Tipo, q.Cotizacion, q.RUC, q.FacturarA, q.Cliente, q.Moneda, q.Importe, q.ProductoStarSoft,
		q.Servicio, q.MesFacturacion, q.Observaciones, q.TipoCobro, q.Area, q.Supervisor, q.Encargado, q.InicioFacturacion,
		q.VerCotizacion, q.Funcionarios, q.CreatedAt, q.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert quotation", err)
	}
	return nil
}

// GetByID (nil, nil) si no existe.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	q, err := scanQuotation(r.q.QueryRow(ctx, `SELECT `+quotationColumns+` FROM quotations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get quotation", err)
	}
	return q, nil
}

// ListByClient cotizaciones del cliente, más nuevas primero.
func (r *QuotationRepo) ListByClient(ctx context.Context, clientID string, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `SELECT ` + quotationColumns + ` FROM quotations
		WHERE client_id = $1 AND ($2 = '' OR cliente ILIKE $2 OR servicio ILIKE $2 OR ruc ILIKE $2)
		ORDER BY created_at DESC, id`
	rows, err := r.q.Query(ctx, query, clientID, searchPattern(f.Search))
	if err != nil {
		return nil, wrap("list quotations", err)
	}
	defer rows.Close()
	var list []*entity.Quotation
	for rows.Next() {
		q, err := scanQuotation(rows)
		if err != nil {
			return nil, wrap("scan quotation", err)
		}
		list = append(list, q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list quotations", err)
	}
	return list, nil
}

// Update reemplaza los campos editables; client_id y created_at no cambian.
func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation, expectedUpdatedAt *time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		UPDATE quotations SET tipo = $2, cotizacion = $3, ruc = $4, facturar_a = $5, cliente = $6, moneda = $7,
			importe = $8, producto_starsoft = $9, servicio = $10, mes_facturacion = $11, observaciones = $12,
			tipo_cobro = $13, area = $14, supervisor = $15, encargado = $16, inicio_facturacion = $17,
			ver_cotizacion = $18, funcionarios = $19, updated_at = $20
		WHERE id = $1 AND ($21::timestamptz IS NULL OR updated_at = $21)`
	tag, err := r.q.Exec(ctx, query,
		q.ID, q.Tipo, q.Cotizacion, q.RUC, q.FacturarA, q.Cliente, q.Moneda, q.Importe, q.ProductoStarSoft,
		q.Servicio, q.MesFacturacion, q.Observaciones, q.TipoCobro, q.Area, q.Supervisor, q.Encargado,
		q.InicioFacturacion, q.VerCotizacion, q.Funcionarios, q.UpdatedAt, expectedUpdatedAt,
	)
	if err != nil {
		return wrap("update quotation", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, `SELECT EXISTS (SELECT 1 FROM quotations WHERE id = $1)`, q.ID)
	}
	return nil
}

func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.q.Exec(ctx, `DELETE FROM quotations WHERE id = $1`, id)
	if err != nil {
		return wrap("delete quotation", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *QuotationRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE client_id = $1`, clientID).Scan(&n); err != nil {
		return 0, wrap("count quotations", err)
	}
	return n, nil
}
