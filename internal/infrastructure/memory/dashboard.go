package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo métricas de asignación calculadas sobre el estado en memoria.
type DashboardRepo struct {
	s *Store
}

func (r *DashboardRepo) RoleStats(ctx context.Context, role string) (repository.RoleStats, error) {
	var out repository.RoleStats
	err := r.s.read(ctx, false, "dashboard.role_stats", func(st *state) error {
		members := map[string]bool{}
		for id, u := range st.users {
			if u.Role == role {
				members[id] = true
			}
		}
		out.Users = len(members)
		for k := range st.assignments {
			if members[k.userID] {
				out.AssignedClients++
			}
		}
		return nil
	})
	if err != nil {
		return repository.RoleStats{}, err
	}
	out.AvgClients = decimal.Zero
	if out.Users > 0 {
		out.AvgClients = decimal.NewFromInt(int64(out.AssignedClients)).Div(decimal.NewFromInt(int64(out.Users)))
	}
	return out, nil
}
