// Package access define qué puede hacer cada categoría de rol sobre cada recurso.
// Es la única fuente de la bifurcación Administrador / personal con alcance.
package access

import "github.com/jhoicas/contable-api/internal/domain/entity"

// Resource colección sobre la que se opera.
type Resource string

const (
	ResourceClients    Resource = "clients"
	ResourceQuotations Resource = "quotations"
	ResourceUsers      Resource = "users"
)

// Action tipo de mutación solicitada.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Category variante de política según el rol.
type Category int

const (
	CategoryScopedStaff Category = iota
	CategoryAdministrator
)

func (c Category) String() string {
	if c == CategoryAdministrator {
		return "administrator"
	}
	return "scoped-staff"
}

// Policy reglas de visibilidad y mutación para una categoría de rol.
type Policy interface {
	Category() Category
	// SeesAllClients true si la visibilidad de clientes no depende de asignaciones.
	SeesAllClients() bool
	// CanMutate informa si la categoría permite la acción sobre el recurso.
	// Para personal con alcance, el permiso aplica solo a clientes visibles.
	CanMutate(resource Resource, action Action) bool
}

// For devuelve la política del actor. Un rol fuera del conjunto cerrado recibe la política más restrictiva.
func For(actor entity.Actor) Policy {
	if actor.IsAdmin() {
		return administratorPolicy{}
	}
	return scopedStaffPolicy{}
}

type administratorPolicy struct{}

func (administratorPolicy) Category() Category                 { return CategoryAdministrator }
func (administratorPolicy) SeesAllClients() bool               { return true }
func (administratorPolicy) CanMutate(_ Resource, _ Action) bool { return true }

type scopedStaffPolicy struct{}

func (scopedStaffPolicy) Category() Category   { return CategoryScopedStaff }
func (scopedStaffPolicy) SeesAllClients() bool { return false }

// Personal: edita clientes asignados y crea/edita sus cotizaciones; no da de alta ni elimina
// clientes, no elimina cotizaciones y no administra usuarios.
func (scopedStaffPolicy) CanMutate(resource Resource, action Action) bool {
	switch resource {
	case ResourceClients:
		return action == ActionUpdate
	case ResourceQuotations:
		return action == ActionCreate || action == ActionUpdate
	default:
		return false
	}
}
