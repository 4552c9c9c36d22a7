package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// Nombres de los archivos descargables.
const (
	ClientsFilename    = "clientes.csv"
	QuotationsFilename = "cotizaciones.csv"
	UsersFilename      = "usuarios.csv"
)

// ClientColumns columnas fijas de la exportación de clientes.
var ClientColumns = []Column[*entity.Client]{
	{"Razón Social", func(c *entity.Client) string { return c.RazonSocial }},
	{"RUC", func(c *entity.Client) string { return c.RUC }},
	{"Fecha de Constitución", func(c *entity.Client) string { return c.FechaConstitucion }},
	{"Personería", func(c *entity.Client) string { return c.Personeria }},
	{"Contador Senior", func(c *entity.Client) string { return c.ContadorSenior }},
	{"Contador Junior", func(c *entity.Client) string { return c.ContadorJunior }},
	{"Situación", func(c *entity.Client) string { return c.Situacion }},
	{"Contactos", func(c *entity.Client) string { return c.Contactos }},
}

// QuotationColumns columnas fijas de la exportación de cotizaciones.
var QuotationColumns = []Column[*entity.Quotation]{
	{"Tipo", func(q *entity.Quotation) string { return q.Tipo }},
	{"Cotización", func(q *entity.Quotation) string { return q.Cotizacion }},
	{"RUC", func(q *entity.Quotation) string { return q.RUC }},
	{"Cliente", func(q *entity.Quotation) string { return q.Cliente }},
	{"Servicio", func(q *entity.Quotation) string { return q.Servicio }},
	{"Moneda", func(q *entity.Quotation) string { return q.Moneda }},
	{"Importe", func(q *entity.Quotation) string { return q.Importe }},
	{"Área", func(q *entity.Quotation) string { return q.Area }},
	{"Supervisor", func(q *entity.Quotation) string { return q.Supervisor }},
}

// UserColumns columnas fijas de la exportación de usuarios.
var UserColumns = []Column[*entity.User]{
	{"Nombre", func(u *entity.User) string { return u.Name }},
	{"Apellido", func(u *entity.User) string { return u.Lastname }},
	{"Email", func(u *entity.User) string { return u.Email }},
	{"Teléfono", func(u *entity.User) string { return u.Telefono }},
	{"Rol", func(u *entity.User) string { return u.Role }},
	{"Clientes Asignados", func(u *entity.User) string { return strconv.Itoa(u.ClientCount) }},
}

// QuotationArea clave de agrupación por área.
func QuotationArea(q *entity.Quotation) string { return q.Area }

// QuotationAmount importe de la cotización como decimal.
func QuotationAmount(q *entity.Quotation) (decimal.Decimal, error) { return ParseAmount(q.Importe) }
