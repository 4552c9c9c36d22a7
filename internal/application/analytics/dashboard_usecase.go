// Package analytics contiene el caso de uso del dashboard: totales de clientes y
// distribución de asignaciones por rol de contador.
package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// DashboardUseCase arma las vistas del dashboard.
//
// Fuente de datos: DashboardRepository (consultas read-only) y ScopeService para la vista
// del personal; no hay un camino de autorización propio.
type DashboardUseCase struct {
	scope     *scope.ScopeService
	clients   repository.ClientRepository
	users     repository.UserRepository
	dashboard repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	sc *scope.ScopeService,
	clients repository.ClientRepository,
	users repository.UserRepository,
	dashboard repository.DashboardRepository,
) *DashboardUseCase {
	return &DashboardUseCase{scope: sc, clients: clients, users: users, dashboard: dashboard}
}

// GetSummary devuelve la vista pedida. El personal siempre recibe la vista "staff" sin importar view.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor entity.Actor, view string) (*dto.DashboardDTO, error) {
	if err := uc.scope.RequireAdministrator(actor); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return uc.staffView(ctx, actor)
		}
		return nil, err
	}
	switch view {
	case "", dto.DashboardViewGeneral:
		return uc.generalView(ctx)
	case dto.DashboardViewSenior:
		return uc.roleView(ctx, dto.DashboardViewSenior, entity.RoleContadorSenior)
	case dto.DashboardViewJunior:
		return uc.roleView(ctx, dto.DashboardViewJunior, entity.RoleContadorJunior)
	default:
		return nil, &domain.ValidationError{Fields: []string{"view"}}
	}
}

// generalView: total de clientes y cantidad de contadores Senior/Junior (gráfico de torta).
//
// Dos llamadas en paralelo:
//  1. Count de clients
//  2. List de users (se agrupa por rol)
func (uc *DashboardUseCase) generalView(ctx context.Context) (*dto.DashboardDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	countCh := make(chan countResult, 1)
	usersCh := make(chan usersResult, 1)

	go func() {
		n, err := uc.clients.Count(ctx)
		countCh <- countResult{n, err}
	}()
	go func() {
		list, err := uc.users.List(ctx, repository.UserFilter{})
		usersCh <- usersResult{list, err}
	}()

	count := <-countCh
	users := <-usersCh

	if count.err != nil {
		return nil, fmt.Errorf("dashboard: total de clientes: %w", count.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: usuarios: %w", users.err)
	}

	byRole := export.GroupAndCount(users.users, func(u *entity.User) string { return u.Role })
	return &dto.DashboardDTO{
		View:         dto.DashboardViewGeneral,
		TotalClients: count.n,
		RoleDistribution: map[string]int{
			entity.RoleContadorSenior: byRole[entity.RoleContadorSenior],
			entity.RoleContadorJunior: byRole[entity.RoleContadorJunior],
		},
	}, nil
}

// roleView: totales del rol y listado de sus contadores con la cantidad de clientes asignados.
func (uc *DashboardUseCase) roleView(ctx context.Context, view, role string) (*dto.DashboardDTO, error) {
	type statsResult struct {
		stats repository.RoleStats
		err   error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	statsCh := make(chan statsResult, 1)
	usersCh := make(chan usersResult, 1)

	go func() {
		st, err := uc.dashboard.RoleStats(ctx, role)
		statsCh <- statsResult{st, err}
	}()
	go func() {
		list, err := uc.users.List(ctx, repository.UserFilter{Role: role})
		usersCh <- usersResult{list, err}
	}()

	stats := <-statsCh
	users := <-usersCh

	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de %s: %w", role, stats.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: contadores %s: %w", role, users.err)
	}

	accountants := make([]dto.AccountantDTO, 0, len(users.users))
	for _, u := range users.users {
		accountants = append(accountants, dto.AccountantDTO{
			ID:          u.ID,
			Name:        u.Name,
			Lastname:    u.Lastname,
			Email:       u.Email,
			Telefono:    u.Telefono,
			ClientCount: u.ClientCount,
		})
	}
	return &dto.DashboardDTO{
		View: view,
		Role: &dto.RoleSummaryDTO{
			Role:            role,
			Users:           stats.stats.Users,
			AssignedClients: stats.stats.AssignedClients,
			AvgClients:      stats.stats.AvgClients.Round(2),
			AvgRounded:      stats.stats.AvgClients.Round(0).IntPart(),
		},
		Accountants: accountants,
	}, nil
}

// staffView: cantidad de clientes visibles ("Mis Clientes") y rol del actor.
func (uc *DashboardUseCase) staffView(ctx context.Context, actor entity.Actor) (*dto.DashboardDTO, error) {
	list, err := uc.scope.VisibleClients(ctx, actor, repository.ClientFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: mis clientes: %w", err)
	}
	n := len(list)
	return &dto.DashboardDTO{View: dto.DashboardViewStaff, MyClients: &n, ActorRole: actor.Role}, nil
}
