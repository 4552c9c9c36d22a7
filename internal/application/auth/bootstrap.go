package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// ErrMissingAdminSeed faltan las credenciales del Administrador inicial.
var ErrMissingAdminSeed = errors.New("SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD son requeridos")

// AdminSeed credenciales del primer Administrador.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin crea el Administrador inicial si su email no existe. Idempotente:
// created indica si se dio de alta en esta llamada.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, seed AdminSeed) (created bool, err error) {
	email := strings.ToLower(strings.TrimSpace(seed.Email))
	if email == "" || seed.Password == "" {
		return false, ErrMissingAdminSeed
	}
	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	now := time.Now().UTC().Truncate(time.Microsecond)
	err = users.Create(ctx, &entity.User{
		ID:           uuid.New().String(),
		Name:         seed.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdministrador,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return err == nil, err
}
