package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	base
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier, timeout time.Duration) *ClientRepo {
	return &ClientRepo{base: base{q: q, timeout: timeout}}
}

const clientColumns = `c.id, c.razon_social, c.ruc, c.fecha_constitucion, c.personeria, c.contador_senior, c.contador_junior,
	c.asistente_contabilidad, c.administrador, c.laboralista, c.vencimiento_iva, c.vencimiento_ips, c.domicilio,
	c.tiene_patronal_ips, c.nro_patronal, c.ruc_mtess, c.nro_ci, c.contrasena, c.nro_patronal_mtess, c.contrasena_mtess,
	c.situacion, c.obligaciones_ruc, c.contactos, c.tiene_patente, c.municipio_patente, c.nro_patente, c.presenta_balance,
	c.fecha_presentacion_balance, c.rubrica_libros, c.correos_dnit, c.representante_legal, c.socios, c.actividades_set,
	c.nro_cuenta, c.created_at, c.updated_at`

// clientSearch: subcadena de razón social (sin mayúsculas) o de RUC. $n vacío = sin filtro.
const clientSearch = `($%[1]d = '' OR c.razon_social ILIKE $%[1]d OR c.ruc ILIKE $%[1]d)`

const clientOrder = ` ORDER BY lower(c.razon_social), c.id`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.RazonSocial, &c.RUC, &c.FechaConstitucion, &c.Personeria, &c.ContadorSenior, &c.ContadorJunior,
		&c.AsistenteContabilidad, &c.Administrador, &c.Laboralista, &c.VencimientoIVA, &c.VencimientoIPS, &c.Domicilio,
		&c.TienePatronalIPS, &c.NroPatronal, &c.RucMTESS, &c.NroCI, &c.Contrasena, &c.NroPatronalMTESS, &c.ContrasenaMTESS,
		&c.Situacion, &c.ObligacionesRUC, &c.Contactos, &c.TienePatente, &c.MunicipioPatente, &c.NroPatente, &c.PresentaBalance,
		&c.FechaPresentacionBalance, &c.RubricaLibros, &c.CorreosDNIT, &c.RepresentanteLegal, &c.Socios, &c.ActividadesSET,
		&c.NroCuenta, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func clientArgs(c *entity.Client) []any {
	return []any{
		c.ID, c.RazonSocial, c.RUC, c.FechaConstitucion, c.Personeria, c.ContadorSenior, c.ContadorJunior,
		c.AsistenteContabilidad, c.Administrador, c.Laboralista, c.VencimientoIVA, c.VencimientoIPS, c.Domicilio,
		c.TienePatronalIPS, c.NroPatronal, c.RucMTESS, c.NroCI, c.Contrasena, c.NroPatronalMTESS, c.ContrasenaMTESS,
		c.Situacion, c.ObligacionesRUC, c.Contactos, c.TienePatente, c.MunicipioPatente, c.NroPatente, c.PresentaBalance,
		c.FechaPresentacionBalance, c.RubricaLibros, c.CorreosDNIT, c.RepresentanteLegal, c.Socios, c.ActividadesSET,
		c.NroCuenta, c.CreatedAt, c.UpdatedAt,
	}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		INSERT INTO clients (id, razon_social, ruc, fecha_constitucion, personeria, contador_senior, contador_junior,
			asistente_contabilidad, administrador, laboralista, vencimiento_iva, vencimiento_ips, domicilio,
			tiene_patronal_ips, nro_patronal, ruc_mtess, nro_ci, contrasena, nro_patronal_mtess, contrasena_mtess,
			situacion, obligaciones_ruc, contactos, tiene_patente, municipio_patente, nro_patente, presenta_balance,
			fecha_presentacion_balance, rubrica_libros, correos_dnit, representante_legal, socios, actividades_set,
			nro_cuenta, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36)`
	if _, err := r.q.Exec(ctx, query, clientArgs(c)...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients c WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get client", err)
	}
	return c, nil
}

// List todos los clientes ordenados por razón social.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients c WHERE ` + fmt.Sprintf(clientSearch, 1) + clientOrder
	return r.list(ctx, "list clients", query, searchPattern(f.Search))
}

// ListByUser clientes alcanzables por user_clients (join interno): una asignación a un cliente
// eliminado no aporta filas.
func (r *ClientRepo) ListByUser(ctx context.Context, userID string, f repository.ClientFilter) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + `
		FROM user_clients uc
		JOIN clients c ON c.id = uc.client_id
		WHERE uc.user_id = $1 AND ` + fmt.Sprintf(clientSearch, 2) + clientOrder
	return r.list(ctx, "list clients by user", query, userID, searchPattern(f.Search))
}

func (r *ClientRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Client, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, wrap("scan client", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return list, nil
}

// Update reemplaza los campos editables. Con expectedUpdatedAt aplica control optimista.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client, expectedUpdatedAt *time.Time) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		UPDATE clients SET razon_social = $2, ruc = $3, fecha_constitucion = $4, personeria = $5,
			contador_senior = $6, contador_junior = $7, asistente_contabilidad = $8, administrador = $9,
			laboralista = $10, vencimiento_iva = $11, vencimiento_ips = $12, domicilio = $13,
			tiene_patronal_ips = $14, nro_patronal = $15, ruc_mtess = $16, nro_ci = $17, contrasena = $18,
			nro_patronal_mtess = $19, contrasena_mtess = $20, situacion = $21, obligaciones_ruc = $22,
			contactos = $23, tiene_patente = $24, municipio_patente = $25, nro_patente = $26,
			presenta_balance = $27, fecha_presentacion_balance = $28, rubrica_libros = $29, correos_dnit = $30,
			representante_legal = $31, socios = $32, actividades_set = $33, nro_cuenta = $34, updated_at = $35
		WHERE id = $1 AND ($36::timestamptz IS NULL OR updated_at = $36)`
	args := append(clientArgs(c)[:34:34], c.UpdatedAt, expectedUpdatedAt)
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return wrap("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`, c.ID)
	}
	return nil
}

// Delete elimina solo la fila del cliente.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return wrap("delete client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de clientes.
func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n); err != nil {
		return 0, wrap("count clients", err)
	}
	return n, nil
}

// ExistingIDs subconjunto de ids que existen en clients.
func (r *ClientRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT id FROM clients WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, wrap("select client ids", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrap("select client ids", err)
	}
	return out, nil
}

// missingOrConflict distingue, tras un UPDATE sin filas, entre fila inexistente y versión obsoleta.
func (b base) missingOrConflict(ctx context.Context, existsQuery, id string) error {
	var exists bool
	if err := b.q.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return wrap("check version", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
