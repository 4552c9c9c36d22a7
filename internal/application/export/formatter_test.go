package export_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

func TestGroupAndSum_ImporteInvalidoSeExcluye(t *testing.T) {
	rows := []*entity.Quotation{
		{ID: "1", Area: "Contabilidad", Importe: "1,000"},
		{ID: "2", Area: "Contabilidad", Importe: "2,500.50"},
		{ID: "3", Area: "Contabilidad", Importe: "bad"},
	}

	sums, skipped := export.GroupAndSum(rows, export.QuotationArea, export.QuotationAmount)

	require.Len(t, sums, 1)
	assert.True(t, sums["Contabilidad"].Equal(decimal.RequireFromString("3500.50")),
		"suma esperada 3500.50, obtenida %s", sums["Contabilidad"])
	assert.Equal(t, []int{2}, skipped)
}

func TestGroupAndSum_GrupoSoloConInvalidosNoAparece(t *testing.T) {
	rows := []*entity.Quotation{
		{Area: "Auditoría", Importe: ""},
		{Area: "Impuestos", Importe: "10"},
	}
	sums, skipped := export.GroupAndSum(rows, export.QuotationArea, export.QuotationAmount)
	assert.NotContains(t, sums, "Auditoría")
	assert.True(t, sums["Impuestos"].Equal(decimal.NewFromInt(10)))
	assert.Len(t, skipped, 1)
}

func TestGroupAndCount_PorArea(t *testing.T) {
	rows := []*entity.Quotation{{Area: "Contabilidad"}, {Area: "Impuestos"}, {Area: "Contabilidad"}}
	assert.Equal(t, map[string]int{"Contabilidad": 2, "Impuestos": 1},
		export.GroupAndCount(rows, export.QuotationArea))
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1,000":        "1000",
		" 2,500.50 ":   "2500.5",
		"1,234,567.89": "1234567.89",
		"-15":          "-15",
	}
	for in, want := range cases {
		got, err := export.ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s → %s", in, got)
	}
	for _, bad := range []string{"", "bad", "1.2.3", "USD 10"} {
		_, err := export.ParseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestCSV_ClienteEncabezadoYOrden(t *testing.T) {
	c := &entity.Client{
		RazonSocial:       "Acme, S.A.",
		RUC:               "80012345-6",
		FechaConstitucion: "2001-03-15",
		Personeria:        "Jurídica",
		ContadorSenior:    "Ana",
		ContadorJunior:    "Beto",
		Situacion:         "Activo",
		Contactos:         "ana@acme.com",
		Domicilio:         "no se exporta",
	}

	out, err := export.CSV([]*entity.Client{c}, export.ClientColumns)
	require.NoError(t, err)

	lines, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, []string{
		"Razón Social", "RUC", "Fecha de Constitución", "Personería",
		"Contador Senior", "Contador Junior", "Situación", "Contactos",
	}, lines[0])
	assert.Equal(t, []string{
		"Acme, S.A.", "80012345-6", "2001-03-15", "Jurídica", "Ana", "Beto", "Activo", "ana@acme.com",
	}, lines[1])
	assert.True(t, strings.HasPrefix(string(out), "Razón Social,RUC,"), "UTF-8 sin BOM")
}

func TestCSV_EncabezadosCotizacionesYUsuarios(t *testing.T) {
	out, err := export.CSV(nil, export.QuotationColumns)
	require.NoError(t, err)
	assert.Equal(t, "Tipo,Cotización,RUC,Cliente,Servicio,Moneda,Importe,Área,Supervisor\n", string(out))

	u := &entity.User{Name: "Ana", Lastname: "Pérez", Email: "ana@x.com", Telefono: "0981", Role: entity.RoleContadorSenior, ClientCount: 7}
	out, err = export.CSV([]*entity.User{u}, export.UserColumns)
	require.NoError(t, err)
	assert.Equal(t,
		"Nombre,Apellido,Email,Teléfono,Rol,Clientes Asignados\nAna,Pérez,ana@x.com,0981,Contador Senior,7\n",
		string(out))
}

func TestToFlatRecords_ConservaOrden(t *testing.T) {
	rows := []*entity.Quotation{{Tipo: "A", Importe: "1"}, {Tipo: "B", Importe: "2"}}
	recs := export.ToFlatRecords(rows, export.QuotationColumns)

	require.Len(t, recs, 2)
	assert.Equal(t, "Tipo", recs[0][0].Name)
	assert.Equal(t, "Supervisor", recs[0][len(recs[0])-1].Name)
	assert.Equal(t, "B", recs[1].Get("Tipo"))
	assert.Equal(t, "2", recs[1].Get("Importe"))
	assert.Equal(t, "", recs[1].Get("Inexistente"))
}

func TestWriteCSV_RegistroConCamposDeMas(t *testing.T) {
	var buf bytes.Buffer
	err := export.WriteCSV(&buf, []string{"A"}, []export.Record{{{Name: "A"}, {Name: "B"}}})
	assert.Error(t, err)
}
