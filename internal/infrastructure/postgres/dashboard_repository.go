package postgres

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de agregación para el dashboard.
type DashboardRepo struct {
	base
}

func NewDashboardRepository(q Querier, timeout time.Duration) *DashboardRepo {
	return &DashboardRepo{base: base{q: q, timeout: timeout}}
}

// RoleStats cuenta desde user_clients; client_count no interviene.
func (r *DashboardRepo) RoleStats(ctx context.Context, role string) (repository.RoleStats, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	query := `
		WITH per_user AS (
			SELECT u.id, COUNT(uc.client_id) AS n
			FROM users u
			LEFT JOIN user_clients uc ON uc.user_id = u.id
			WHERE u.role = $1
			GROUP BY u.id
		)
		SELECT COUNT(*), COALESCE(SUM(n), 0)::bigint, COALESCE(AVG(n), 0)::numeric
		FROM per_user`
	var (
		stats repository.RoleStats
		avg   decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, query, role).Scan(&stats.Users, &stats.AssignedClients, &avg); err != nil {
		return repository.RoleStats{}, wrap("role stats", err)
	}
	stats.AvgClients = avg
	return stats, nil
}
