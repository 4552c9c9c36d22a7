package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/application/usecase"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
)

func validQuotation() dto.QuotationRequest {
	return dto.QuotationRequest{
		Tipo: "Mensual", Cotizacion: "Pendiente", Moneda: "PYG", Importe: "1,000",
		Servicio: "Contabilidad", TipoCobro: "Mensual", Area: "Contabilidad",
	}
}

func TestQuotationDraft_PrecargaDatosDelCliente(t *testing.T) {
	f := newFixture(t)
	d, err := f.quotations.Draft(context.Background(), junior, "C1")
	require.NoError(t, err)
	assert.Equal(t, "80012345-6", d.RUC)
	assert.Equal(t, "Acme SA", d.Cliente)
	assert.Equal(t, "Acme SA", d.FacturarA)
}

func TestQuotationCreate_CompletaIdentidadYValida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.quotations.Create(ctx, junior, "C1", validQuotation())
	require.NoError(t, err)
	assert.Equal(t, "C1", out.ClientID)
	assert.Equal(t, "80012345-6", out.RUC)
	assert.Equal(t, "Acme SA", out.Cliente)

	bad := validQuotation()
	bad.Importe = "mil"
	_, err = f.quotations.Create(ctx, junior, "C1", bad)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"importe"}, vErr.Fields)

	missing := validQuotation()
	missing.Area = ""
	missing.Tipo = ""
	_, err = f.quotations.Create(ctx, junior, "C1", missing)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []string{"tipo", "area"}, vErr.Fields)
}

func TestQuotationList_JuniorClienteNoAsignadoEsAutorizacion(t *testing.T) {
	f := newFixture(t)
	list, err := f.quotations.List(context.Background(), junior, "C2", "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, list)

	_, err = f.quotations.Create(context.Background(), junior, "C2", validQuotation())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestQuotationDelete_SoloAdministrador(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q, err := f.quotations.Create(ctx, junior, "C1", validQuotation())
	require.NoError(t, err)

	assert.ErrorIs(t, f.quotations.Delete(ctx, junior, "C1", q.ID), domain.ErrForbidden)
	assert.ErrorIs(t, f.quotations.Delete(ctx, admin, "C2", q.ID), domain.ErrNotFound, "la cotización pertenece a otro cliente")
	require.NoError(t, f.quotations.Delete(ctx, admin, "C1", q.ID))

	_, err = f.quotations.Get(ctx, admin, "C1", q.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuotationUpdate_ConservaCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	q, err := f.quotations.Create(ctx, senior, "C1", validQuotation())
	require.NoError(t, err)

	in := validQuotation()
	in.RUC, in.Cliente = "80012345-6", "Acme SA"
	in.Cotizacion = "Aprobada"
	out, err := f.quotations.Update(ctx, junior, "C1", q.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Aprobada", out.Cotizacion)
	assert.Equal(t, "C1", out.ClientID)
}

func TestQuotationStats_ImporteInvalidoExcluido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	// importes cargados antes de que existiera la validación
	for i, imp := range []string{"1,000", "2,500.50", "bad"} {
		require.NoError(t, f.store.Quotations().Create(ctx, &entity.Quotation{
			ID: string(rune('a' + i)), ClientID: "C1", Area: "Contabilidad", Importe: imp,
		}))
	}
	require.NoError(t, f.store.Quotations().Create(ctx, &entity.Quotation{ID: "z", ClientID: "C1", Area: "Impuestos", Importe: "10"}))

	stats, err := f.quotations.Stats(ctx, junior, "C1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Contabilidad": 3, "Impuestos": 1}, stats.CountByArea)
	assert.Equal(t, 1, stats.SkippedAmounts)
	assert.True(t, stats.AmountByArea["Contabilidad"].Equal(decimal.RequireFromString("3500.50")))
	assert.True(t, stats.AmountByArea["Impuestos"].Equal(decimal.NewFromInt(10)))
}

func TestQuotationExport_SeleccionPorIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.quotations.Create(ctx, admin, "C1", validQuotation())
	require.NoError(t, err)
	_, err = f.quotations.Create(ctx, admin, "C1", validQuotation())
	require.NoError(t, err)

	out, err := f.quotations.Export(ctx, junior, "C1", []string{a.ID})
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Tipo", rows[0][0])

	out, err = f.quotations.Export(ctx, junior, "C1", nil)
	require.NoError(t, err)
	rows, err = csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = f.quotations.Export(ctx, junior, "C2", nil)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF
// ──────────────────────────────────────────────────────────────────────────────

type recordingPDF struct{ client *entity.Client }

func (g *recordingPDF) GenerateQuotationPDF(_ context.Context, _ *entity.Quotation, c *entity.Client) ([]byte, error) {
	g.client = c
	return []byte("%PDF-1.4"), nil
}

func TestQuotationPDF_UnaLecturaPorEntidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.quotations.Create(ctx, junior, "C1", validQuotation())
	require.NoError(t, err)

	gen := &recordingPDF{}
	s := f.store
	uc := usecase.NewQuotationUseCase(scope.NewScopeService(s.Clients(), s.Quotations(), s.Users(), s.Assignments()), s.Quotations(), gen, nil)

	reads := map[string]int{}
	s.SetFault(func(op string) error {
		reads[op]++
		return nil
	})
	out, err := uc.PDF(ctx, junior, "C1", created.ID)
	s.SetFault(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), out)
	require.NotNil(t, gen.client)
	assert.Equal(t, "Acme SA", gen.client.RazonSocial)
	assert.Equal(t, map[string]int{
		"user_clients.select_one": 1,
		"clients.select_one":      1,
		"quotations.select_one":   1,
	}, reads)
}

func TestQuotationPDF_CotizacionDeOtroCliente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.quotations.Create(ctx, admin, "C2", validQuotation())
	require.NoError(t, err)

	s := f.store
	uc := usecase.NewQuotationUseCase(scope.NewScopeService(s.Clients(), s.Quotations(), s.Users(), s.Assignments()), s.Quotations(), &recordingPDF{}, nil)
	_, err = uc.PDF(ctx, junior, "C1", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
