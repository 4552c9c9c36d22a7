// Package scope resuelve qué filas puede leer y qué mutaciones puede aplicar un actor.
// Toda consulta de clientes, cotizaciones y usuarios pasa por ScopeService.
package scope

import (
	"context"
	"fmt"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/access"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

// ScopeService motor de alcance por rol.
type ScopeService struct {
	clients     repository.ClientRepository
	quotations  repository.QuotationRepository
	users       repository.UserRepository
	assignments repository.AssignmentRepository
}

// NewScopeService construye el motor con los puertos de persistencia.
func NewScopeService(
	clients repository.ClientRepository,
	quotations repository.QuotationRepository,
	users repository.UserRepository,
	assignments repository.AssignmentRepository,
) *ScopeService {
	return &ScopeService{clients: clients, quotations: quotations, users: users, assignments: assignments}
}

func policyFor(actor entity.Actor) (access.Policy, error) {
	if actor.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return access.For(actor), nil
}

// VisibleClients devuelve los clientes que el actor puede ver, ordenados por razón social.
// Administrador: todos. Personal: exactamente los alcanzables por sus asignaciones.
func (s *ScopeService) VisibleClients(ctx context.Context, actor entity.Actor, f repository.ClientFilter) ([]*entity.Client, error) {
	p, err := policyFor(actor)
	if err != nil {
		return nil, err
	}
	if p.SeesAllClients() {
		return s.clients.List(ctx, f)
	}
	return s.clients.ListByUser(ctx, actor.ID, f)
}

// ClientInScope devuelve el cliente si el actor puede verlo.
// Para personal se verifica la asignación antes que la existencia, así un id ajeno
// responde ErrForbidden tanto si existe como si no.
func (s *ScopeService) ClientInScope(ctx context.Context, actor entity.Actor, clientID string) (*entity.Client, error) {
	p, err := policyFor(actor)
	if err != nil {
		return nil, err
	}
	if !p.SeesAllClients() {
		ok, err := s.assignments.IsAssigned(ctx, actor.ID, clientID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: cliente %s fuera del alcance", domain.ErrForbidden, clientID)
		}
	}
	c, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// VisibleQuotations devuelve todas las cotizaciones del cliente (más nuevas primero) si el cliente
// está en el alcance del actor; en otro caso un error de autorización, nunca una lista vacía.
func (s *ScopeService) VisibleQuotations(ctx context.Context, actor entity.Actor, clientID string, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	if _, err := s.ClientInScope(ctx, actor, clientID); err != nil {
		return nil, err
	}
	return s.quotations.ListByClient(ctx, clientID, f)
}

// QuotationInScope devuelve la cotización si pertenece al cliente indicado y el cliente es visible.
func (s *ScopeService) QuotationInScope(ctx context.Context, actor entity.Actor, clientID, quotationID string) (*entity.Quotation, error) {
	_, q, err := s.QuotationWithClient(ctx, actor, clientID, quotationID)
	return q, err
}

// QuotationWithClient como QuotationInScope, devolviendo también el cliente dueño con una sola
// verificación de alcance.
func (s *ScopeService) QuotationWithClient(ctx context.Context, actor entity.Actor, clientID, quotationID string) (*entity.Client, *entity.Quotation, error) {
	c, err := s.ClientInScope(ctx, actor, clientID)
	if err != nil {
		return nil, nil, err
	}
	q, err := s.quotations.GetByID(ctx, quotationID)
	if err != nil {
		return nil, nil, err
	}
	if q == nil || q.ClientID != clientID {
		return nil, nil, domain.ErrNotFound
	}
	return c, q, nil
}

// VisibleUsers Administrador ve todos los usuarios; el personal solo a sí mismo.
func (s *ScopeService) VisibleUsers(ctx context.Context, actor entity.Actor, f repository.UserFilter) ([]*entity.User, error) {
	p, err := policyFor(actor)
	if err != nil {
		return nil, err
	}
	if p.Category() == access.CategoryAdministrator {
		return s.users.List(ctx, f)
	}
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return []*entity.User{}, nil
	}
	return []*entity.User{u}, nil
}

// UserInScope devuelve el usuario si el actor es Administrador o es él mismo.
func (s *ScopeService) UserInScope(ctx context.Context, actor entity.Actor, userID string) (*entity.User, error) {
	p, err := policyFor(actor)
	if err != nil {
		return nil, err
	}
	if p.Category() != access.CategoryAdministrator && actor.ID != userID {
		return nil, domain.ErrForbidden
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

// RequireAdministrator devuelve ErrForbidden si el actor no es de la categoría Administrador
// (listados y exportación de usuarios).
func (s *ScopeService) RequireAdministrator(actor entity.Actor) error {
	p, err := policyFor(actor)
	if err != nil {
		return err
	}
	if p.Category() != access.CategoryAdministrator {
		return domain.ErrForbidden
	}
	return nil
}

// CanMutate informa si la categoría del actor permite la acción sobre el recurso.
func (s *ScopeService) CanMutate(actor entity.Actor, resource access.Resource, action access.Action) bool {
	p, err := policyFor(actor)
	if err != nil {
		return false
	}
	return p.CanMutate(resource, action)
}

// Authorize es CanMutate como error: ErrUnauthorized sin actor, ErrForbidden si no está permitido.
func (s *ScopeService) Authorize(actor entity.Actor, resource access.Resource, action access.Action) error {
	p, err := policyFor(actor)
	if err != nil {
		return err
	}
	if !p.CanMutate(resource, action) {
		return fmt.Errorf("%w: %s %s", domain.ErrForbidden, action, resource)
	}
	return nil
}

// AuthorizeClient combina Authorize con ClientInScope: la acción debe estar permitida y el cliente ser visible.
func (s *ScopeService) AuthorizeClient(ctx context.Context, actor entity.Actor, resource access.Resource, action access.Action, clientID string) (*entity.Client, error) {
	if err := s.Authorize(actor, resource, action); err != nil {
		return nil, err
	}
	return s.ClientInScope(ctx, actor, clientID)
}
