package dto

import "github.com/shopspring/decimal"

// Vistas del dashboard.
const (
	DashboardViewGeneral = "general"
	DashboardViewSenior  = "senior"
	DashboardViewJunior  = "junior"
	DashboardViewStaff   = "staff"
)

// DashboardDTO respuesta de GET /api/dashboard.
// Administradores: vista general (totales) o por rol (senior/junior) con el listado de contadores.
// Personal: cantidad de clientes asignados y su rol.
type DashboardDTO struct {
	View string `json:"view"`

	// Vista general
	TotalClients     int            `json:"total_clients,omitempty"`
	RoleDistribution map[string]int `json:"role_distribution,omitempty"` // gráfico de torta Senior/Junior

	// Vistas senior/junior
	Role        *RoleSummaryDTO `json:"role_summary,omitempty"`
	Accountants []AccountantDTO `json:"accountants,omitempty"`

	// Vista de personal
	MyClients *int   `json:"my_clients,omitempty"`
	ActorRole string `json:"actor_role,omitempty"`
}

// RoleSummaryDTO totales de un rol de contador.
type RoleSummaryDTO struct {
	Role            string          `json:"role"`
	Users           int             `json:"users"`
	AssignedClients int             `json:"assigned_clients"`
	AvgClients      decimal.Decimal `json:"avg_clients"`
	AvgRounded      int64           `json:"avg_clients_rounded"`
}

// AccountantDTO fila del listado de contadores.
type AccountantDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Lastname    string `json:"lastname"`
	Email       string `json:"email"`
	Telefono    string `json:"telefono"`
	ClientCount int    `json:"client_count"`
}
