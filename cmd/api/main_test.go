package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/auth"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/pkg/config"
	"github.com/jhoicas/contable-api/pkg/logger"
)

func memoryConfig(seed config.SeedConfig) *config.Config {
	cfg := &config.Config{Seed: seed}
	cfg.DB.Driver = config.StoreDriverMemory
	return cfg
}

func TestOpenStores_MemoriaCreaAdministrador(t *testing.T) {
	ctx := context.Background()
	st, err := openStores(ctx, memoryConfig(config.SeedConfig{
		AdminEmail: "admin@estudio.com", AdminPassword: "clave-segura", AdminName: "Root",
	}), logger.Nop())
	require.NoError(t, err)
	defer st.close()

	u, err := st.users.GetByEmail(ctx, "admin@estudio.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdministrador, u.Role)
}

func TestOpenStores_MemoriaSinCredencialesFalla(t *testing.T) {
	_, err := openStores(context.Background(), memoryConfig(config.SeedConfig{}), logger.Nop())
	assert.ErrorIs(t, err, auth.ErrMissingAdminSeed)
}
