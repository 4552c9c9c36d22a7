package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/analytics"
	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
)

var admin = entity.Actor{ID: "admin", Name: "Root", Role: entity.RoleAdministrador}

func newDashboard(t *testing.T) (*analytics.DashboardUseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for _, id := range []string{"C1", "C2", "C3", "C4", "C5"} {
		require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: id, RazonSocial: id, RUC: id}))
	}
	for _, u := range []entity.User{
		{ID: "admin", Name: "Root", Role: entity.RoleAdministrador},
		{ID: "s1", Name: "Ana", Role: entity.RoleContadorSenior},
		{ID: "s2", Name: "Beto", Role: entity.RoleContadorSenior},
		{ID: "s3", Name: "Caro", Role: entity.RoleContadorSenior},
		{ID: "j1", Name: "Dani", Role: entity.RoleContadorJunior},
	} {
		u := u
		require.NoError(t, s.Users().Create(ctx, &u))
	}
	require.NoError(t, s.Assignments().Add(ctx, "s1", []string{"C1", "C2", "C3"}))
	require.NoError(t, s.Assignments().Add(ctx, "s2", []string{"C4"}))
	require.NoError(t, s.Assignments().Add(ctx, "j1", []string{"C5", "C1"}))

	sc := scope.NewScopeService(s.Clients(), s.Quotations(), s.Users(), s.Assignments())
	return analytics.NewDashboardUseCase(sc, s.Clients(), s.Users(), s.Dashboard()), s
}

func TestGetSummary_VistaGeneral(t *testing.T) {
	uc, _ := newDashboard(t)
	out, err := uc.GetSummary(context.Background(), admin, "")
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardViewGeneral, out.View)
	assert.Equal(t, 5, out.TotalClients)
	assert.Equal(t, map[string]int{entity.RoleContadorSenior: 3, entity.RoleContadorJunior: 1}, out.RoleDistribution)
}

func TestGetSummary_VistaSeniorPromedioRedondeado(t *testing.T) {
	uc, _ := newDashboard(t)
	out, err := uc.GetSummary(context.Background(), admin, dto.DashboardViewSenior)
	require.NoError(t, err)
	require.NotNil(t, out.Role)
	assert.Equal(t, 3, out.Role.Users)
	assert.Equal(t, 4, out.Role.AssignedClients)
	assert.Equal(t, "1.33", out.Role.AvgClients.String())
	assert.Equal(t, int64(1), out.Role.AvgRounded)
	require.Len(t, out.Accountants, 3)
	assert.Equal(t, "Ana", out.Accountants[0].Name)
}

func TestGetSummary_VistaJunior(t *testing.T) {
	uc, _ := newDashboard(t)
	out, err := uc.GetSummary(context.Background(), admin, dto.DashboardViewJunior)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Role.AssignedClients)
	assert.Equal(t, int64(2), out.Role.AvgRounded)
}

func TestGetSummary_PersonalVeMisClientes(t *testing.T) {
	uc, _ := newDashboard(t)
	out, err := uc.GetSummary(context.Background(), entity.Actor{ID: "j1", Role: entity.RoleContadorJunior}, dto.DashboardViewGeneral)
	require.NoError(t, err)
	assert.Equal(t, dto.DashboardViewStaff, out.View)
	require.NotNil(t, out.MyClients)
	assert.Equal(t, 2, *out.MyClients)
	assert.Equal(t, entity.RoleContadorJunior, out.ActorRole)
	assert.Zero(t, out.TotalClients)
}

func TestGetSummary_VistaDesconocida(t *testing.T) {
	uc, _ := newDashboard(t)
	_, err := uc.GetSummary(context.Background(), admin, "semanal")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSummary_FallaDelAlmacen(t *testing.T) {
	uc, s := newDashboard(t)
	s.SetFault(func(op string) error {
		if op == "dashboard.role_stats" {
			return errors.New("timeout")
		}
		return nil
	})
	_, err := uc.GetSummary(context.Background(), admin, dto.DashboardViewSenior)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
