package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contable-api/internal/application/auth"
	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/infrastructure/memory"
	"github.com/jhoicas/contable-api/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.Users().Create(context.Background(), &entity.User{
		ID: "u1", Name: "Ana", Email: "ana@estudio.com", PasswordHash: string(hash), Role: entity.RoleContadorSenior,
	}))
	uc := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, nil, nil)
	return uc, s
}

func TestLogin_CredencialesValidas(t *testing.T) {
	uc, _ := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ANA@estudio.com ", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", out.User.ID)

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, entity.RoleContadorSenior, claims.Role)
}

func TestLogin_PasswordIncorrectoYEmailInexistenteIguales(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@estudio.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@estudio.com", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogout_RevocaHastaExpirar(t *testing.T) {
	uc, _ := newAuth(t)
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@estudio.com", Password: "secreto123"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	assert.False(t, uc.IsRevoked(claims.ID))
	uc.Logout(claims.ID, out.ExpiresAt)
	assert.True(t, uc.IsRevoked(claims.ID))
}

func TestRevocations_DescartaVencidos(t *testing.T) {
	r := auth.NewRevocations()
	r.Revoke("viejo", time.Now().Add(-time.Minute))
	assert.False(t, r.IsRevoked("viejo"))
	r.Revoke("nuevo", time.Now().Add(time.Hour))
	assert.True(t, r.IsRevoked("nuevo"))
	assert.Equal(t, 1, r.Len())
}

func TestResolveActor_UsuarioEliminado(t *testing.T) {
	uc, s := newAuth(t)
	ctx := context.Background()

	a, err := uc.ResolveActor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.Actor{ID: "u1", Name: "Ana", Role: entity.RoleContadorSenior}, a)

	require.NoError(t, s.Users().Delete(ctx, "u1"))
	_, err = uc.ResolveActor(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
