package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/contable-api/internal/application/assignment"
	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/access"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// UserUseCase aplica reglas de negocio para usuarios y sus asignaciones.
type UserUseCase struct {
	scope   *scope.ScopeService
	users   repository.UserRepository
	clients repository.ClientRepository
	manager *assignment.Manager
	log     *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(
	sc *scope.ScopeService,
	users repository.UserRepository,
	clients repository.ClientRepository,
	manager *assignment.Manager,
	log *logger.Logger,
) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{scope: sc, users: users, clients: clients, manager: manager, log: log.Component("users")}
}

// List lista usuarios ordenados por nombre. Solo Administrador.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, f repository.UserFilter) ([]dto.UserResponse, error) {
	if err := uc.scope.RequireAdministrator(actor); err != nil {
		return nil, err
	}
	f.Search = strings.TrimSpace(f.Search)
	list, err := uc.scope.VisibleUsers(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// Get devuelve el usuario con sus clientes asignados. Administrador o el propio usuario.
func (uc *UserUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.UserDetailResponse, error) {
	u, err := uc.scope.UserInScope(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	clients, err := uc.clients.ListByUser(ctx, id, repository.ClientFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.UserDetailResponse{UserResponse: *toUserResponse(u), Clients: make([]dto.ClientSummary, 0, len(clients))}
	for _, c := range clients {
		out.Clients = append(out.Clients, toClientSummary(c))
	}
	return out, nil
}

// Create crea un usuario con su conjunto inicial de clientes. Hashea el password con bcrypt.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UserUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionCreate); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = normalizeEmail(in.Email)
	if err := domain.Require(
		[2]string{"name", in.Name},
		[2]string{"email", in.Email},
		[2]string{"password", in.Password},
		[2]string{"role", in.Role},
	); err != nil {
		return nil, err
	}
	if !entity.IsValidRole(in.Role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}}
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	ts := now()
	u := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Lastname:     strings.TrimSpace(in.Lastname),
		Email:        in.Email,
		Telefono:     strings.TrimSpace(in.Telefono),
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if _, err := uc.manager.CreateUser(ctx, u, in.ClientIDs); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", u.ID).Str("role", u.Role).Int("client_count", u.ClientCount).Str("actor_id", actor.ID).Msg("usuario creado")
	return toUserResponse(u), nil
}

// Update actualiza los datos del usuario. Password vacío conserva el actual;
// ClientIDs no nil reemplaza el conjunto de asignaciones.
func (uc *UserUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionUpdate); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := domain.Require([2]string{"name", in.Name}, [2]string{"role", in.Role}); err != nil {
		return nil, err
	}
	if !entity.IsValidRole(in.Role) {
		return nil, &domain.ValidationError{Fields: []string{"role"}}
	}
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Name = in.Name
	u.Lastname = strings.TrimSpace(in.Lastname)
	if email := normalizeEmail(in.Email); email != "" {
		u.Email = email
	}
	u.Telefono = strings.TrimSpace(in.Telefono)
	u.Role = in.Role
	u.PasswordHash = ""
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = now()
	if err := uc.users.Update(ctx, u); err != nil {
		return nil, err
	}
	if in.ClientIDs != nil {
		res, err := uc.manager.SetAssignments(ctx, id, *in.ClientIDs)
		if err != nil {
			return nil, err
		}
		u.ClientCount = res.ClientCount
	}
	uc.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("usuario actualizado")
	return toUserResponse(u), nil
}

// Delete elimina un usuario y sus asignaciones. Un administrador no puede eliminarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionDelete); err != nil {
		return err
	}
	if actor.ID == id {
		return domain.ErrSelfDelete
	}
	if err := uc.manager.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	uc.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("usuario eliminado")
	return nil
}

// Export genera usuarios.csv. Solo Administrador.
func (uc *UserUseCase) Export(ctx context.Context, actor entity.Actor, f repository.UserFilter) ([]byte, error) {
	if err := uc.scope.RequireAdministrator(actor); err != nil {
		return nil, err
	}
	list, err := uc.scope.VisibleUsers(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	return export.CSV(list, export.UserColumns)
}

// SetAssignments reemplaza el conjunto de clientes asignados al usuario.
func (uc *UserUseCase) SetAssignments(ctx context.Context, actor entity.Actor, userID string, clientIDs []string) (*dto.AssignmentsResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionUpdate); err != nil {
		return nil, err
	}
	res, err := uc.manager.SetAssignments(ctx, userID, clientIDs)
	if err != nil {
		return nil, err
	}
	return toAssignmentsResponse(res), nil
}

// AddAssignment asigna un cliente al usuario (idempotente).
func (uc *UserUseCase) AddAssignment(ctx context.Context, actor entity.Actor, userID, clientID string) (*dto.AssignmentsResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionUpdate); err != nil {
		return nil, err
	}
	res, err := uc.manager.AddAssignment(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return toAssignmentsResponse(res), nil
}

// RemoveAssignment quita un cliente del usuario (idempotente).
func (uc *UserUseCase) RemoveAssignment(ctx context.Context, actor entity.Actor, userID, clientID string) (*dto.AssignmentsResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceUsers, access.ActionUpdate); err != nil {
		return nil, err
	}
	res, err := uc.manager.RemoveAssignment(ctx, userID, clientID)
	if err != nil {
		return nil, err
	}
	return toAssignmentsResponse(res), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func toAssignmentsResponse(r *assignment.Result) *dto.AssignmentsResponse {
	ids := r.ClientIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.AssignmentsResponse{
		UserID:      r.UserID,
		ClientIDs:   ids,
		ClientCount: r.ClientCount,
		Added:       r.Added,
		Removed:     r.Removed,
	}
}

// ToUserResponse convierte la entidad a DTO (sin password). Lo usa también el caso de uso de auth.
func ToUserResponse(u *entity.User) *dto.UserResponse { return toUserResponse(u) }

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Lastname:    u.Lastname,
		Email:       u.Email,
		Telefono:    u.Telefono,
		Role:        u.Role,
		ClientCount: u.ClientCount,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
