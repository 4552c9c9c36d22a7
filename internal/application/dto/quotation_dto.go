package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotationRequest entrada para crear o actualizar una cotización.
type QuotationRequest struct {
	Tipo              string     `json:"tipo" validate:"required"`
	Cotizacion        string     `json:"cotizacion" validate:"required"`
	RUC               string     `json:"ruc" validate:"required"`
	FacturarA         string     `json:"facturar_a"`
	Cliente           string     `json:"cliente" validate:"required"`
	Moneda            string     `json:"moneda" validate:"required"`
	Importe           string     `json:"importe" validate:"required"`
	ProductoStarSoft  string     `json:"producto_starsoft"`
	Servicio          string     `json:"servicio" validate:"required"`
	MesFacturacion    string     `json:"mes_facturacion"`
	Observaciones     string     `json:"observaciones"`
	TipoCobro         string     `json:"tipo_cobro" validate:"required"`
	Area              string     `json:"area" validate:"required"`
	Supervisor        string     `json:"supervisor"`
	Encargado         string     `json:"encargado"`
	InicioFacturacion string     `json:"inicio_facturacion"`
	VerCotizacion     string     `json:"ver_cotizacion"`
	Funcionarios      string     `json:"funcionarios"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"client_id"`
	Tipo              string    `json:"tipo"`
	Cotizacion        string    `json:"cotizacion"`
	RUC               string    `json:"ruc"`
	FacturarA         string    `json:"facturar_a"`
	Cliente           string    `json:"cliente"`
	Moneda            string    `json:"moneda"`
	Importe           string    `json:"importe"`
	ProductoStarSoft  string    `json:"producto_starsoft"`
	Servicio          string    `json:"servicio"`
	MesFacturacion    string    `json:"mes_facturacion"`
	Observaciones     string    `json:"observaciones"`
	TipoCobro         string    `json:"tipo_cobro"`
	Area              string    `json:"area"`
	Supervisor        string    `json:"supervisor"`
	Encargado         string    `json:"encargado"`
	InicioFacturacion string    `json:"inicio_facturacion"`
	VerCotizacion     string    `json:"ver_cotizacion"`
	Funcionarios      string    `json:"funcionarios"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// QuotationStatsResponse datos para los gráficos de la lista de cotizaciones de un cliente.
type QuotationStatsResponse struct {
	ClientID     string                     `json:"client_id"`
	CountByArea  map[string]int             `json:"count_by_area"`
	AmountByArea map[string]decimal.Decimal `json:"amount_by_area"`
	// SkippedAmounts cotizaciones cuyo importe no se pudo interpretar (excluidas de la suma).
	SkippedAmounts int `json:"skipped_amounts"`
}
