package entity

// Actor identidad del usuario autenticado que ejecuta una operación.
// Se arma en login y viaja explícitamente en cada llamada al núcleo.
type Actor struct {
	ID   string
	Name string
	Role string
}

// IsAdmin informa si el actor tiene rol Administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdministrador }
