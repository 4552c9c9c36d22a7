package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// RoleStats métricas de asignación de un rol.
type RoleStats struct {
	Users           int
	AssignedClients int
	AvgClients      decimal.Decimal // promedio de clientes por usuario del rol
}

// DashboardRepository consultas read-only para el dashboard de administradores.
type DashboardRepository interface {
	// RoleStats calcula las métricas desde user_clients (no desde la caché client_count).
	RoleStats(ctx context.Context, role string) (RoleStats, error)
}
