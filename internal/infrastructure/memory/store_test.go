package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
)

func seedClients(t *testing.T, s *memory.Store, names map[string]string) {
	t.Helper()
	for id, name := range names {
		require.NoError(t, s.Clients().Create(context.Background(), &entity.Client{ID: id, RazonSocial: name, RUC: "RUC-" + id}))
	}
}

func TestClientRepo_ListByUserEsJoinInterno(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seedClients(t, s, map[string]string{"c1": "Beta", "c2": "alfa", "c3": "Gamma"})
	require.NoError(t, s.Assignments().Add(ctx, "u1", []string{"c3", "c2", "inexistente"}))

	list, err := s.Clients().ListByUser(ctx, "u1", repository.ClientFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2, "una asignación a un cliente inexistente no aporta filas")
	assert.Equal(t, "c2", list[0].ID)
	assert.Equal(t, "c3", list[1].ID)
}

func TestClientRepo_UpdateConControlDeVersion(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	t0 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Clients().Create(ctx, &entity.Client{ID: "c1", RazonSocial: "Acme", RUC: "1", CreatedAt: t0, UpdatedAt: t0}))

	stale := t0.Add(-time.Minute)
	err := s.Clients().Update(ctx, &entity.Client{ID: "c1", RazonSocial: "Acme 2", RUC: "1"}, &stale)
	assert.ErrorIs(t, err, domain.ErrConflict)

	err = s.Clients().Update(ctx, &entity.Client{ID: "c1", RazonSocial: "Acme 2", RUC: "1", UpdatedAt: t0.Add(time.Minute)}, &t0)
	require.NoError(t, err)
	got, err := s.Clients().GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Acme 2", got.RazonSocial)
	assert.Equal(t, t0, got.CreatedAt)

	err = s.Clients().Update(ctx, &entity.Client{ID: "zz"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssignmentRepo_AddIgnoraDuplicados(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Assignments().Add(ctx, "u1", []string{"c1"}))
	require.NoError(t, s.Assignments().Add(ctx, "u1", []string{"c1", "c1"}))

	n, err := s.Assignments().Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Assignments().Remove(ctx, "u1", []string{"c9"}))
	n, err = s.Assignments().Count(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.Assignments().Add(ctx, "u1", []string{"c1", "c2"}))

	boom := errors.New("boom")
	err := s.TxRunner().Run(ctx, func(tx repository.TxStores) error {
		require.NoError(t, tx.Assignments.Remove(ctx, "u1", []string{"c1", "c2"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ids, err := s.Assignments().ListClientIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids)
}

func TestStore_FallaInyectadaEsStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.SetFault(func(op string) error {
		if op == "clients.select" {
			return errors.New("timeout")
		}
		return nil
	})

	_, err := s.Clients().List(ctx, repository.ClientFilter{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	_, err = s.Clients().Count(ctx)
	assert.NoError(t, err)
}

func TestStore_ContextoCanceladoEsStoreUnavailable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := memory.NewStore().Users().List(ctx, repository.UserFilter{})
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDashboardRepo_RoleStats(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	for _, u := range []entity.User{
		{ID: "s1", Name: "Ana", Role: entity.RoleContadorSenior},
		{ID: "s2", Name: "Beto", Role: entity.RoleContadorSenior},
		{ID: "j1", Name: "Caro", Role: entity.RoleContadorJunior},
	} {
		u := u
		require.NoError(t, s.Users().Create(ctx, &u))
	}
	require.NoError(t, s.Assignments().Add(ctx, "s1", []string{"c1", "c2", "c3"}))
	require.NoError(t, s.Assignments().Add(ctx, "s2", []string{"c1"}))

	st, err := s.Dashboard().RoleStats(ctx, entity.RoleContadorSenior)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Users)
	assert.Equal(t, 4, st.AssignedClients)
	assert.Equal(t, "2", st.AvgClients.String())

	st, err = s.Dashboard().RoleStats(ctx, entity.RoleEncargado)
	require.NoError(t, err)
	assert.Zero(t, st.Users)
	assert.True(t, st.AvgClients.IsZero())
}
