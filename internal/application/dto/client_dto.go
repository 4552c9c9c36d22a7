package dto

import "time"

// ClientRequest entrada para crear o actualizar un cliente.
// UpdatedAt es opcional: si se envía en una actualización, se usa como control de concurrencia.
type ClientRequest struct {
	RazonSocial              string     `json:"razon_social" validate:"required"`
	RUC                      string     `json:"ruc" validate:"required"`
	FechaConstitucion        string     `json:"fecha_constitucion"`
	Personeria               string     `json:"personeria"`
	ContadorSenior           string     `json:"contador_senior"`
	ContadorJunior           string     `json:"contador_junior"`
	AsistenteContabilidad    string     `json:"asistente_contabilidad"`
	Administrador            string     `json:"administrador"`
	Laboralista              string     `json:"laboralista"`
	VencimientoIVA           string     `json:"vencimiento_iva"`
	VencimientoIPS           string     `json:"vencimiento_ips"`
	Domicilio                string     `json:"domicilio"`
	TienePatronalIPS         bool       `json:"tiene_patronal_ips"`
	NroPatronal              string     `json:"nro_patronal"`
	RucMTESS                 string     `json:"ruc_mtess"`
	NroCI                    string     `json:"nro_ci"`
	Contrasena               string     `json:"contrasena"`
	NroPatronalMTESS         string     `json:"nro_patronal_mtess"`
	ContrasenaMTESS          string     `json:"contrasena_mtess"`
	Situacion                string     `json:"situacion"`
	ObligacionesRUC          string     `json:"obligaciones_ruc"`
	Contactos                string     `json:"contactos"`
	TienePatente             bool       `json:"tiene_patente"`
	MunicipioPatente         string     `json:"municipio_patente"`
	NroPatente               string     `json:"nro_patente"`
	PresentaBalance          bool       `json:"presenta_balance"`
	FechaPresentacionBalance string     `json:"fecha_presentacion_balance"`
	RubricaLibros            bool       `json:"rubrica_libros"`
	CorreosDNIT              string     `json:"correos_dnit"`
	RepresentanteLegal       string     `json:"representante_legal"`
	Socios                   string     `json:"socios"`
	ActividadesSET           string     `json:"actividades_set"`
	NroCuenta                string     `json:"nro_cuenta"`
	UpdatedAt                *time.Time `json:"updated_at,omitempty"`
}

// ClientResponse salida completa de un cliente.
type ClientResponse struct {
	ID                       string    `json:"id"`
	RazonSocial              string    `json:"razon_social"`
	RUC                      string    `json:"ruc"`
	FechaConstitucion        string    `json:"fecha_constitucion"`
	Personeria               string    `json:"personeria"`
	ContadorSenior           string    `json:"contador_senior"`
	ContadorJunior           string    `json:"contador_junior"`
	AsistenteContabilidad    string    `json:"asistente_contabilidad"`
	Administrador            string    `json:"administrador"`
	Laboralista              string    `json:"laboralista"`
	VencimientoIVA           string    `json:"vencimiento_iva"`
	VencimientoIPS           string    `json:"vencimiento_ips"`
	Domicilio                string    `json:"domicilio"`
	TienePatronalIPS         bool      `json:"tiene_patronal_ips"`
	NroPatronal              string    `json:"nro_patronal"`
	RucMTESS                 string    `json:"ruc_mtess"`
	NroCI                    string    `json:"nro_ci"`
	Contrasena               string    `json:"contrasena"`
	NroPatronalMTESS         string    `json:"nro_patronal_mtess"`
	ContrasenaMTESS          string    `json:"contrasena_mtess"`
	Situacion                string    `json:"situacion"`
	ObligacionesRUC          string    `json:"obligaciones_ruc"`
	Contactos                string    `json:"contactos"`
	TienePatente             bool      `json:"tiene_patente"`
	MunicipioPatente         string    `json:"municipio_patente"`
	NroPatente               string    `json:"nro_patente"`
	PresentaBalance          bool      `json:"presenta_balance"`
	FechaPresentacionBalance string    `json:"fecha_presentacion_balance"`
	RubricaLibros            bool      `json:"rubrica_libros"`
	CorreosDNIT              string    `json:"correos_dnit"`
	RepresentanteLegal       string    `json:"representante_legal"`
	Socios                   string    `json:"socios"`
	ActividadesSET           string    `json:"actividades_set"`
	NroCuenta                string    `json:"nro_cuenta"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// ClientSummary datos mínimos de un cliente (listas de asignación).
type ClientSummary struct {
	ID          string `json:"id"`
	RazonSocial string `json:"razon_social"`
	RUC         string `json:"ruc"`
}
