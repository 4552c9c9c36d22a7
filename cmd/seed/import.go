package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

type clientSetter func(c *entity.Client, v string)

func text(dst func(c *entity.Client) *string) clientSetter {
	return func(c *entity.Client, v string) { *dst(c) = v }
}

func yesNo(dst func(c *entity.Client) *bool) clientSetter {
	return func(c *entity.Client, v string) { *dst(c) = parseYesNo(v) }
}

// clientFields columnas aceptadas, por nombre normalizado (sin acentos, minúsculas, "_" por espacios).
var clientFields = map[string]clientSetter{
	"razon_social":               text(func(c *entity.Client) *string { return &c.RazonSocial }),
	"ruc":                        text(func(c *entity.Client) *string { return &c.RUC }),
	"fecha_constitucion":         text(func(c *entity.Client) *string { return &c.FechaConstitucion }),
	"fecha_de_constitucion":      text(func(c *entity.Client) *string { return &c.FechaConstitucion }),
	"personeria":                 text(func(c *entity.Client) *string { return &c.Personeria }),
	"contador_senior":            text(func(c *entity.Client) *string { return &c.ContadorSenior }),
	"contador_junior":            text(func(c *entity.Client) *string { return &c.ContadorJunior }),
	"asistente_contabilidad":     text(func(c *entity.Client) *string { return &c.AsistenteContabilidad }),
	"administrador":              text(func(c *entity.Client) *string { return &c.Administrador }),
	"laboralista":                text(func(c *entity.Client) *string { return &c.Laboralista }),
	"vencimiento_iva":            text(func(c *entity.Client) *string { return &c.VencimientoIVA }),
	"vencimiento_ips":            text(func(c *entity.Client) *string { return &c.VencimientoIPS }),
	"domicilio":                  text(func(c *entity.Client) *string { return &c.Domicilio }),
	"tiene_patronal_ips":         yesNo(func(c *entity.Client) *bool { return &c.TienePatronalIPS }),
	"nro_patronal":               text(func(c *entity.Client) *string { return &c.NroPatronal }),
	"ruc_mtess":                  text(func(c *entity.Client) *string { return &c.RucMTESS }),
	"nro_ci":                     text(func(c *entity.Client) *string { return &c.NroCI }),
	"contrasena":                 text(func(c *entity.Client) *string { return &c.Contrasena }),
	"nro_patronal_mtess":         text(func(c *entity.Client) *string { return &c.NroPatronalMTESS }),
	"contrasena_mtess":           text(func(c *entity.Client) *string { return &c.ContrasenaMTESS }),
	"situacion":                  text(func(c *entity.Client) *string { return &c.Situacion }),
	"obligaciones_ruc":           text(func(c *entity.Client) *string { return &c.ObligacionesRUC }),
	"contactos":                  text(func(c *entity.Client) *string { return &c.Contactos }),
	"tiene_patente":              yesNo(func(c *entity.Client) *bool { return &c.TienePatente }),
	"municipio_patente":          text(func(c *entity.Client) *string { return &c.MunicipioPatente }),
	"nro_patente":                text(func(c *entity.Client) *string { return &c.NroPatente }),
	"presenta_balance":           yesNo(func(c *entity.Client) *bool { return &c.PresentaBalance }),
	"fecha_presentacion_balance": text(func(c *entity.Client) *string { return &c.FechaPresentacionBalance }),
	"rubrica_libros":             yesNo(func(c *entity.Client) *bool { return &c.RubricaLibros }),
	"correos_dnit":               text(func(c *entity.Client) *string { return &c.CorreosDNIT }),
	"representante_legal":        text(func(c *entity.Client) *string { return &c.RepresentanteLegal }),
	"socios":                     text(func(c *entity.Client) *string { return &c.Socios }),
	"actividades_set":            text(func(c *entity.Client) *string { return &c.ActividadesSET }),
	"nro_cuenta":                 text(func(c *entity.Client) *string { return &c.NroCuenta }),
}

// normalizeHeader "Razón Social" -> "razon_social".
func normalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(h))
	if err != nil {
		s = h
	}
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

func parseYesNo(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "si", "sí", "s", "true", "1", "x":
		return true
	}
	return false
}

// rowError fila descartada durante la importación.
type rowError struct {
	Line   int
	Reason string
}

// parseClientsCSV lee clientes desde CSV con encabezado. latin1 decodifica ISO-8859-1
// (exportaciones de planillas antiguas). Filas sin razón social o RUC se descartan.
func parseClientsCSV(r io.Reader, latin1 bool) ([]*entity.Client, []rowError, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leer encabezado: %w", err)
	}
	setters := make([]clientSetter, len(header))
	known := 0
	for i, h := range header {
		if s, ok := clientFields[normalizeHeader(h)]; ok {
			setters[i] = s
			known++
		}
	}
	if known == 0 {
		return nil, nil, fmt.Errorf("encabezado sin columnas reconocidas")
	}

	var (
		out     []*entity.Client
		skipped []rowError
	)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, nil, fmt.Errorf("línea %d: %w", line, err)
		}
		c := &entity.Client{}
		for i, v := range rec {
			if i < len(setters) && setters[i] != nil {
				setters[i](c, strings.TrimSpace(v))
			}
		}
		if c.RazonSocial == "" || c.RUC == "" {
			skipped = append(skipped, rowError{Line: line, Reason: "razón social o RUC vacío"})
			continue
		}
		out = append(out, c)
	}
	return out, skipped, nil
}
