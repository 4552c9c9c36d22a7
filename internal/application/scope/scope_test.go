package scope_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/access"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
)

var (
	admin  = entity.Actor{ID: "admin", Name: "Root", Role: entity.RoleAdministrador}
	junior = entity.Actor{ID: "j1", Name: "Juan", Role: entity.RoleContadorJunior}
)

func newScope(t *testing.T) (*scope.ScopeService, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	for id, name := range map[string]string{"C1": "Zeta SRL", "C2": "alfa SA", "C3": "Beta SA"} {
		require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: id, RazonSocial: name, RUC: "80-" + id}))
	}
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: admin.ID, Name: admin.Name, Role: admin.Role}))
	require.NoError(t, s.Users().Create(ctx, &entity.User{ID: junior.ID, Name: junior.Name, Role: junior.Role}))
	require.NoError(t, s.Assignments().Add(ctx, junior.ID, []string{"C1"}))
	return scope.NewScopeService(s.Clients(), s.Quotations(), s.Users(), s.Assignments()), s
}

func ids(cs []*entity.Client) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// VisibleClients
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleClients_AdministradorVeTodosOrdenados(t *testing.T) {
	svc, _ := newScope(t)
	list, err := svc.VisibleClients(context.Background(), admin, repository.ClientFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C2", "C3", "C1"}, ids(list))
}

func TestVisibleClients_PersonalSoloAsignados(t *testing.T) {
	svc, s := newScope(t)
	ctx := context.Background()

	// más clientes en el almacén no cambian lo visible
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("X%02d", i)
		require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: id, RazonSocial: "Extra " + id, RUC: id}))
	}
	list, err := svc.VisibleClients(ctx, junior, repository.ClientFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, ids(list))

	require.NoError(t, s.Assignments().Add(ctx, junior.ID, []string{"C3", "X05"}))
	list, err = svc.VisibleClients(ctx, junior, repository.ClientFilter{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"C1", "C3", "X05"}, ids(list))
}

func TestVisibleClients_SinActorNoAutorizado(t *testing.T) {
	svc, _ := newScope(t)
	_, err := svc.VisibleClients(context.Background(), entity.Actor{}, repository.ClientFilter{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestVisibleClients_RolDesconocidoTratadoComoPersonal(t *testing.T) {
	svc, _ := newScope(t)
	list, err := svc.VisibleClients(context.Background(), entity.Actor{ID: "x", Role: "Superusuario"}, repository.ClientFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// VisibleQuotations
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleQuotations_JuniorPideClienteNoAsignado(t *testing.T) {
	svc, _ := newScope(t)
	list, err := svc.VisibleQuotations(context.Background(), junior, "C2", repository.QuotationFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, list, "debe ser un error de autorización, no una lista vacía")
}

func TestVisibleQuotations_ClienteVisibleDevuelveTodasMasNuevasPrimero(t *testing.T) {
	svc, s := newScope(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"q1", "q2", "q3"} {
		require.NoError(t, s.Quotations().Create(ctx, &entity.Quotation{
			ID: id, ClientID: "C1", Tipo: "Mensual", CreatedAt: t0.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.Quotations().Create(ctx, &entity.Quotation{ID: "otro", ClientID: "C2", CreatedAt: t0}))

	list, err := svc.VisibleQuotations(ctx, junior, "C1", repository.QuotationFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "q3", list[0].ID)
	assert.Equal(t, "q1", list[2].ID)

	empty, err := svc.VisibleQuotations(ctx, admin, "C3", repository.QuotationFilter{})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestVisibleQuotations_ClienteInexistenteParaAdministrador(t *testing.T) {
	svc, _ := newScope(t)
	_, err := svc.VisibleQuotations(context.Background(), admin, "nope", repository.QuotationFilter{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuotationInScope_CotizacionDeOtroCliente(t *testing.T) {
	svc, s := newScope(t)
	ctx := context.Background()
	require.NoError(t, s.Quotations().Create(ctx, &entity.Quotation{ID: "q9", ClientID: "C2"}))

	_, err := svc.QuotationInScope(ctx, junior, "C1", "q9")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	q, err := svc.QuotationInScope(ctx, admin, "C2", "q9")
	require.NoError(t, err)
	assert.Equal(t, "q9", q.ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios y mutaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestVisibleUsers_PersonalSoloSiMismo(t *testing.T) {
	svc, _ := newScope(t)
	ctx := context.Background()

	all, err := svc.VisibleUsers(ctx, admin, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.VisibleUsers(ctx, junior, repository.UserFilter{})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, junior.ID, mine[0].ID)

	_, err = svc.UserInScope(ctx, junior, admin.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.UserInScope(ctx, admin, "nadie")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthorize_PersonalNoCreaNiEliminaClientes(t *testing.T) {
	svc, _ := newScope(t)
	assert.ErrorIs(t, svc.Authorize(junior, access.ResourceClients, access.ActionCreate), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(junior, access.ResourceClients, access.ActionDelete), domain.ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(junior, access.ResourceUsers, access.ActionUpdate), domain.ErrForbidden)
	assert.NoError(t, svc.Authorize(junior, access.ResourceClients, access.ActionUpdate))
	assert.NoError(t, svc.Authorize(admin, access.ResourceUsers, access.ActionDelete))
	assert.False(t, svc.CanMutate(entity.Actor{Role: entity.RoleAdministrador}, access.ResourceClients, access.ActionCreate))
}

func TestAuthorizeClient_UpdatePermitidoSoloSobreAsignados(t *testing.T) {
	svc, _ := newScope(t)
	ctx := context.Background()

	c, err := svc.AuthorizeClient(ctx, junior, access.ResourceClients, access.ActionUpdate, "C1")
	require.NoError(t, err)
	assert.Equal(t, "C1", c.ID)

	_, err = svc.AuthorizeClient(ctx, junior, access.ResourceClients, access.ActionUpdate, "C3")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestClientInScope_FallaDelAlmacen(t *testing.T) {
	svc, s := newScope(t)
	s.SetFault(func(op string) error {
		if op == "user_clients.select_one" {
			return errors.New("timeout")
		}
		return nil
	})
	_, err := svc.ClientInScope(context.Background(), junior, "C1")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}
