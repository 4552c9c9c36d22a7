package entity

import "time"

// Roles válidos para User (conjunto cerrado, se persisten tal cual).
const (
	RoleAdministrador  = "Administrador"
	RoleSupervisor     = "Supervisor"
	RoleContadorSenior = "Contador Senior"
	RoleContadorJunior = "Contador Junior"
	RoleEncargado      = "Encargado"
)

// Roles lista ordenada de roles válidos.
var Roles = []string{RoleAdministrador, RoleSupervisor, RoleContadorSenior, RoleContadorJunior, RoleEncargado}

// IsValidRole informa si r pertenece al conjunto cerrado de roles.
func IsValidRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// User representa un usuario del sistema (administrador o personal del estudio).
type User struct {
	ID           string
	Name         string
	Lastname     string
	Email        string
	Telefono     string
	PasswordHash string // bcrypt
	Role         string
	ClientCount  int // caché derivada de user_clients, nunca entrada del cliente
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
