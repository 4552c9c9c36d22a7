package entity

import "time"

// Quotation cotización de servicios; pertenece a exactamente un Client.
// Importe se guarda como texto tal como lo carga el usuario (ej. "2,500.50").
type Quotation struct {
	ID                string
	ClientID          string
	Tipo              string
	Cotizacion        string // estado de la cotización
	RUC               string
	FacturarA         string
	Cliente           string
	Moneda            string
	Importe           string
	ProductoStarSoft  string
	Servicio          string
	MesFacturacion    string
	Observaciones     string
	TipoCobro         string
	Area              string
	Supervisor        string
	Encargado         string
	InicioFacturacion string
	VerCotizacion     string
	Funcionarios      string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
