package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

func TestUserCreate_HasheaYAsigna(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.users.Create(ctx, admin, dto.CreateUserRequest{
		Name: "Eva", Email: " Eva@Estudio.com ", Password: "secreto123",
		Role: entity.RoleEncargado, ClientIDs: []string{"C1", "C2", "C1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "eva@estudio.com", out.Email)
	assert.Equal(t, 2, out.ClientCount)

	stored, err := f.store.Users().GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))
	assert.Equal(t, 2, stored.ClientCount)
}

func TestUserCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := dto.CreateUserRequest{Name: "Eva", Email: "eva@estudio.com", Password: "x", Role: entity.RoleEncargado}

	_, err := f.users.Create(ctx, junior, base)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bad := base
	bad.Role = "Gerente"
	_, err = f.users.Create(ctx, admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	dup := base
	dup.Email = "J1@estudio.com"
	_, err = f.users.Create(ctx, admin, dup)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	unknown := base
	unknown.ClientIDs = []string{"ZZ"}
	_, err = f.users.Create(ctx, admin, unknown)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	list, err := f.store.Users().List(ctx, repository.UserFilter{Search: "eva"})
	require.NoError(t, err)
	assert.Empty(t, list, "no se crea el usuario si las asignaciones son inválidas")
}

func TestUserUpdate_PasswordVacioConservaYReemplazaAsignaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.users.Create(ctx, admin, dto.CreateUserRequest{
		Name: "Eva", Email: "eva@estudio.com", Password: "secreto123", Role: entity.RoleEncargado,
	})
	require.NoError(t, err)
	before, err := f.store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)

	ids := []string{"C2"}
	out, err := f.users.Update(ctx, admin, created.ID, dto.UpdateUserRequest{
		Name: "Eva María", Role: entity.RoleSupervisor, ClientIDs: &ids,
	})
	require.NoError(t, err)
	assert.Equal(t, "Eva María", out.Name)
	assert.Equal(t, 1, out.ClientCount)

	after, err := f.store.Users().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)
	assert.Equal(t, "eva@estudio.com", after.Email)

	_, err = f.users.Update(ctx, junior, created.ID, dto.UpdateUserRequest{Name: "x", Role: entity.RoleEncargado})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserDelete_NoPropioYLimpiaAsignaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.users.Delete(ctx, admin, admin.ID), domain.ErrSelfDelete)
	assert.ErrorIs(t, f.users.Delete(ctx, junior, senior.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.users.Delete(ctx, admin, "nadie"), domain.ErrUserNotFound)

	require.NoError(t, f.users.Delete(ctx, admin, junior.ID))
	n, err := f.store.Assignments().Count(ctx, junior.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUserGet_PropioPerfilConClientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	me, err := f.users.Get(ctx, junior, junior.ID)
	require.NoError(t, err)
	require.Len(t, me.Clients, 1)
	assert.Equal(t, "C1", me.Clients[0].ID)

	_, err = f.users.Get(ctx, junior, senior.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.users.List(ctx, junior, repository.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserAssignments_SetAddRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.users.SetAssignments(ctx, admin, junior.ID, []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{}, res.ClientIDs)
	assert.Equal(t, 1, res.Removed)

	res, err = f.users.AddAssignment(ctx, admin, junior.ID, "C2")
	require.NoError(t, err)
	res, err = f.users.AddAssignment(ctx, admin, junior.ID, "C2")
	require.NoError(t, err)
	assert.Equal(t, []string{"C2"}, res.ClientIDs)
	assert.Zero(t, res.Added)

	res, err = f.users.RemoveAssignment(ctx, admin, junior.ID, "C1")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ClientCount)

	_, err = f.users.SetAssignments(ctx, senior, junior.ID, []string{"C1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUserSetAssignments_FallaDelAlmacenConservaConjunto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.store.SetFault(func(op string) error {
		if op == "users.update_client_count" {
			return errors.New("timeout")
		}
		return nil
	})
	_, err := f.users.SetAssignments(ctx, admin, junior.ID, []string{"C2"})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	f.store.SetFault(nil)
	ids, err := f.store.Assignments().ListClientIDs(ctx, junior.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C1"}, ids)
}

func TestUserExport_SoloAdministrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Export(ctx, junior, repository.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := f.users.Export(ctx, admin, repository.UserFilter{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	assert.Equal(t, "Nombre,Apellido,Email,Teléfono,Rol,Clientes Asignados", lines[0])
	assert.Len(t, lines, 4)
}
