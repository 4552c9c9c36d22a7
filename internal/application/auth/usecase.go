package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/jwt"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase ciclo de vida de la sesión: login (inicio), logout (cierre) y resolución del actor.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	revoked  *Revocations
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, revoked *Revocations, log *logger.Logger) *AuthUseCase {
	if revoked == nil {
		revoked = NewRevocations()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, revoked: revoked, log: log.Component("auth")}
}

// Login verifica email/password (bcrypt), genera JWT y retorna token + usuario.
// Email inexistente y password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := domain.Require([2]string{"email", email}, [2]string{"password", in.Password}); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.PasswordHash == "" {
		uc.log.Warn().Str("email", email).Msg("login: usuario inexistente")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.log.Warn().Str("user_id", user.ID).Msg("login: password incorrecto")
		return nil, domain.ErrUnauthorized
	}
	issued, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login")
	return &dto.LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      *usecase.ToUserResponse(user),
	}, nil
}

// Logout revoca el token (por su jti) hasta su expiración.
func (uc *AuthUseCase) Logout(tokenID string, expiresAt time.Time) {
	if tokenID == "" {
		return
	}
	uc.revoked.Revoke(tokenID, expiresAt)
	uc.log.Debug().Str("jti", tokenID).Msg("logout")
}

// IsRevoked informa si el token fue cerrado con Logout.
func (uc *AuthUseCase) IsRevoked(tokenID string) bool {
	return uc.revoked.IsRevoked(tokenID)
}

// ResolveActor relee el usuario del token: si fue eliminado la sesión deja de valer,
// y un cambio de rol aplica sin esperar a un nuevo login.
func (uc *AuthUseCase) ResolveActor(ctx context.Context, userID string) (entity.Actor, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Actor{}, err
	}
	if u == nil {
		return entity.Actor{}, domain.ErrUnauthorized
	}
	return entity.Actor{ID: u.ID, Name: u.Name, Role: u.Role}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	u, err := uc.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return usecase.ToUserResponse(u), nil
}
