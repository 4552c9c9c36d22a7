package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/assignment"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
)

var (
	admin  = entity.Actor{ID: "admin", Name: "Root", Role: entity.RoleAdministrador}
	senior = entity.Actor{ID: "s1", Name: "Sara", Role: entity.RoleContadorSenior}
	junior = entity.Actor{ID: "j1", Name: "Juan", Role: entity.RoleContadorJunior}
)

type fixture struct {
	store      *memory.Store
	clients    *usecase.ClientUseCase
	quotations *usecase.QuotationUseCase
	users      *usecase.UserUseCase
}

// newFixture: clientes C1 (asignado a junior y senior) y C2 (sin asignar).
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: "C1", RazonSocial: "Acme SA", RUC: "80012345-6"}))
	require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: "C2", RazonSocial: "Beta SRL", RUC: "80098765-4"}))
	for _, a := range []entity.Actor{admin, senior, junior} {
		require.NoError(t, s.Users().Create(ctx, &entity.User{ID: a.ID, Name: a.Name, Email: a.ID + "@estudio.com", Role: a.Role}))
	}
	require.NoError(t, s.Assignments().Add(ctx, junior.ID, []string{"C1"}))
	require.NoError(t, s.Assignments().Add(ctx, senior.ID, []string{"C1"}))

	sc := scope.NewScopeService(s.Clients(), s.Quotations(), s.Users(), s.Assignments())
	mgr := assignment.NewManager(s.Users(), s.Clients(), s.Assignments(), s.TxRunner(), nil)
	return &fixture{
		store:      s,
		clients:    usecase.NewClientUseCase(sc, s.Clients(), nil),
		quotations: usecase.NewQuotationUseCase(sc, s.Quotations(), nil, nil),
		users:      usecase.NewUserUseCase(sc, s.Users(), s.Clients(), mgr, nil),
	}
}
