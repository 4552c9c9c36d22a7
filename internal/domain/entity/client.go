package entity

import "time"

// Client representa un cliente del estudio contable.
// RazonSocial y RUC son obligatorios; el resto son datos descriptivos y de cumplimiento.
type Client struct {
	ID                       string
	RazonSocial              string
	RUC                      string
	FechaConstitucion        string
	Personeria               string
	ContadorSenior           string
	ContadorJunior           string
	AsistenteContabilidad    string
	Administrador            string
	Laboralista              string
	VencimientoIVA           string
	VencimientoIPS           string
	Domicilio                string
	TienePatronalIPS         bool
	NroPatronal              string
	RucMTESS                 string
	NroCI                    string
	Contrasena               string // credencial del cliente ante la SET, no del sistema
	NroPatronalMTESS         string
	ContrasenaMTESS          string
	Situacion                string
	ObligacionesRUC          string
	Contactos                string
	TienePatente             bool
	MunicipioPatente         string
	NroPatente               string
	PresentaBalance          bool
	FechaPresentacionBalance string
	RubricaLibros            bool
	CorreosDNIT              string
	RepresentanteLegal       string
	Socios                   string
	ActividadesSET           string
	NroCuenta                string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
