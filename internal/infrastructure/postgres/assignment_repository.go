package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo persistencia de la relación user_clients (PK compuesta user_id, client_id).
type AssignmentRepo struct {
	base
}

func NewAssignmentRepository(q Querier, timeout time.Duration) *AssignmentRepo {
	return &AssignmentRepo{base: base{q: q, timeout: timeout}}
}

// ListClientIDs ids asignados al usuario, ordenados.
func (r *AssignmentRepo) ListClientIDs(ctx context.Context, userID string) ([]string, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.q.Query(ctx, `SELECT client_id FROM user_clients WHERE user_id = $1 ORDER BY client_id`, userID)
	if err != nil {
		return nil, wrap("list assignments", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrap("list assignments", err)
	}
	return ids, nil
}

func (r *AssignmentRepo) IsAssigned(ctx context.Context, userID, clientID string) (bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM user_clients WHERE user_id = $1 AND client_id = $2)`, userID, clientID,
	).Scan(&ok)
	if err != nil {
		return false, wrap("check assignment", err)
	}
	return ok, nil
}

// Add inserta los pares en una sola sentencia; los existentes se ignoran.
func (r *AssignmentRepo) Add(ctx context.Context, userID string, clientIDs []string) error {
	if len(clientIDs) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		INSERT INTO user_clients (user_id, client_id, created_at)
		SELECT $1, unnest($2::text[]), now()
		ON CONFLICT (user_id, client_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, userID, clientIDs); err != nil {
		return wrap("insert assignments", err)
	}
	return nil
}

func (r *AssignmentRepo) Remove(ctx context.Context, userID string, clientIDs []string) error {
	if len(clientIDs) == 0 {
		return nil
	}
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_clients WHERE user_id = $1 AND client_id = ANY($2)`, userID, clientIDs); err != nil {
		return wrap("delete assignments", err)
	}
	return nil
}

func (r *AssignmentRepo) Count(ctx context.Context, userID string) (int, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM user_clients WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, wrap("count assignments", err)
	}
	return n, nil
}
