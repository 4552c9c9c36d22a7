package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/ports"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/access"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// QuotationUseCase casos de uso de cotizaciones. Siempre se opera dentro de un cliente:
// si el cliente no es visible para el actor, ninguna operación continúa.
type QuotationUseCase struct {
	scope      *scope.ScopeService
	quotations repository.QuotationRepository
	pdf        ports.QuotationPDFGenerator
	log        *logger.Logger
}

// NewQuotationUseCase construye el caso de uso. pdf puede ser nil (PDF deshabilitado).
func NewQuotationUseCase(sc *scope.ScopeService, quotations repository.QuotationRepository, pdf ports.QuotationPDFGenerator, log *logger.Logger) *QuotationUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &QuotationUseCase{scope: sc, quotations: quotations, pdf: pdf, log: log.Component("quotations")}
}

// List devuelve las cotizaciones del cliente, más nuevas primero.
func (uc *QuotationUseCase) List(ctx context.Context, actor entity.Actor, clientID, search string) ([]dto.QuotationResponse, error) {
	list, err := uc.scope.VisibleQuotations(ctx, actor, clientID, repository.QuotationFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuotationResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *toQuotationResponse(q))
	}
	return out, nil
}

// Get obtiene una cotización del cliente.
func (uc *QuotationUseCase) Get(ctx context.Context, actor entity.Actor, clientID, id string) (*dto.QuotationResponse, error) {
	q, err := uc.scope.QuotationInScope(ctx, actor, clientID, id)
	if err != nil {
		return nil, err
	}
	return toQuotationResponse(q), nil
}

// Draft devuelve una cotización nueva precargada con la identidad del cliente (no se persiste).
func (uc *QuotationUseCase) Draft(ctx context.Context, actor entity.Actor, clientID string) (*dto.QuotationRequest, error) {
	c, err := uc.scope.AuthorizeClient(ctx, actor, access.ResourceQuotations, access.ActionCreate, clientID)
	if err != nil {
		return nil, err
	}
	return &dto.QuotationRequest{
		RUC:       c.RUC,
		Cliente:   c.RazonSocial,
		FacturarA: c.RazonSocial,
	}, nil
}

// Create registra una cotización para el cliente. ruc, cliente y facturar_a vacíos se
// completan con los datos del cliente antes de validar.
func (uc *QuotationUseCase) Create(ctx context.Context, actor entity.Actor, clientID string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	c, err := uc.scope.AuthorizeClient(ctx, actor, access.ResourceQuotations, access.ActionCreate, clientID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.RUC) == "" {
		in.RUC = c.RUC
	}
	if strings.TrimSpace(in.Cliente) == "" {
		in.Cliente = c.RazonSocial
	}
	if strings.TrimSpace(in.FacturarA) == "" {
		in.FacturarA = c.RazonSocial
	}
	if err := validateQuotation(&in); err != nil {
		return nil, err
	}
	ts := now()
	q := &entity.Quotation{ID: uuid.New().String(), ClientID: clientID, CreatedAt: ts, UpdatedAt: ts}
	applyQuotationRequest(q, in)
	if err := uc.quotations.Create(ctx, q); err != nil {
		return nil, err
	}
	uc.log.Info().Str("quotation_id", q.ID).Str("client_id", clientID).Str("actor_id", actor.ID).Msg("cotización creada")
	return toQuotationResponse(q), nil
}

// Update reemplaza los campos editables de la cotización. El cliente dueño no cambia.
func (uc *QuotationUseCase) Update(ctx context.Context, actor entity.Actor, clientID, id string, in dto.QuotationRequest) (*dto.QuotationResponse, error) {
	if err := validateQuotation(&in); err != nil {
		return nil, err
	}
	if err := uc.scope.Authorize(actor, access.ResourceQuotations, access.ActionUpdate); err != nil {
		return nil, err
	}
	q, err := uc.scope.QuotationInScope(ctx, actor, clientID, id)
	if err != nil {
		return nil, err
	}
	applyQuotationRequest(q, in)
	q.UpdatedAt = now()
	if err := uc.quotations.Update(ctx, q, in.UpdatedAt); err != nil {
		return nil, err
	}
	uc.log.Info().Str("quotation_id", q.ID).Str("actor_id", actor.ID).Msg("cotización actualizada")
	return toQuotationResponse(q), nil
}

// Delete elimina la cotización. Solo Administrador.
func (uc *QuotationUseCase) Delete(ctx context.Context, actor entity.Actor, clientID, id string) error {
	if err := uc.scope.Authorize(actor, access.ResourceQuotations, access.ActionDelete); err != nil {
		return err
	}
	if _, err := uc.scope.QuotationInScope(ctx, actor, clientID, id); err != nil {
		return err
	}
	if err := uc.quotations.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("quotation_id", id).Str("client_id", clientID).Str("actor_id", actor.ID).Msg("cotización eliminada")
	return nil
}

// Export genera cotizaciones.csv. Si ids no está vacío, solo exporta las seleccionadas.
func (uc *QuotationUseCase) Export(ctx context.Context, actor entity.Actor, clientID string, ids []string) ([]byte, error) {
	list, err := uc.scope.VisibleQuotations(ctx, actor, clientID, repository.QuotationFilter{})
	if err != nil {
		return nil, err
	}
	return export.CSV(selectQuotations(list, ids), export.QuotationColumns)
}

// Stats cantidad e importe por área de las cotizaciones del cliente.
// Los importes que no se pueden interpretar no suman y se informan en SkippedAmounts.
func (uc *QuotationUseCase) Stats(ctx context.Context, actor entity.Actor, clientID string) (*dto.QuotationStatsResponse, error) {
	list, err := uc.scope.VisibleQuotations(ctx, actor, clientID, repository.QuotationFilter{})
	if err != nil {
		return nil, err
	}
	sums, skipped := export.GroupAndSum(list, export.QuotationArea, export.QuotationAmount)
	if len(skipped) > 0 {
		uc.log.Debug().Str("client_id", clientID).Int("skipped", len(skipped)).Msg("importes no interpretables excluidos")
	}
	return &dto.QuotationStatsResponse{
		ClientID:       clientID,
		CountByArea:    export.GroupAndCount(list, export.QuotationArea),
		AmountByArea:   sums,
		SkippedAmounts: len(skipped),
	}, nil
}

// PDF genera la representación imprimible de la cotización.
func (uc *QuotationUseCase) PDF(ctx context.Context, actor entity.Actor, clientID, id string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, domain.ErrNotFound
	}
	c, q, err := uc.scope.QuotationWithClient(ctx, actor, clientID, id)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateQuotationPDF(ctx, q, c)
}

func selectQuotations(list []*entity.Quotation, ids []string) []*entity.Quotation {
	if len(ids) == 0 {
		return list
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			want[id] = true
		}
	}
	if len(want) == 0 {
		return list
	}
	out := make([]*entity.Quotation, 0, len(want))
	for _, q := range list {
		if want[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func validateQuotation(in *dto.QuotationRequest) error {
	in.Importe = strings.TrimSpace(in.Importe)
	if err := domain.Require(
		[2]string{"tipo", in.Tipo},
		[2]string{"cotizacion", in.Cotizacion},
		[2]string{"ruc", in.RUC},
		[2]string{"cliente", in.Cliente},
		[2]string{"moneda", in.Moneda},
		[2]string{"importe", in.Importe},
		[2]string{"servicio", in.Servicio},
		[2]string{"tipo_cobro", in.TipoCobro},
		[2]string{"area", in.Area},
	); err != nil {
		return err
	}
	if _, err := export.ParseAmount(in.Importe); err != nil {
		return &domain.ValidationError{Fields: []string{"importe"}}
	}
	return nil
}

func applyQuotationRequest(q *entity.Quotation, in dto.QuotationRequest) {
	q.Tipo = in.Tipo
	q.Cotizacion = in.Cotizacion
	q.RUC = in.RUC
	q.FacturarA = in.FacturarA
	q.Cliente = in.Cliente
	q.Moneda = in.Moneda
	q.Importe = in.Importe
	q.ProductoStarSoft = in.ProductoStarSoft
	q.Servicio = in.Servicio
	q.MesFacturacion = in.MesFacturacion
	q.Observaciones = in.Observaciones
	q.TipoCobro = in.TipoCobro
	q.Area = in.Area
	q.Supervisor = in.Supervisor
	q.Encargado = in.Encargado
	q.InicioFacturacion = in.InicioFacturacion
	q.VerCotizacion = in.VerCotizacion
	q.Funcionarios = in.Funcionarios
}

func toQuotationResponse(q *entity.Quotation) *dto.QuotationResponse {
	if q == nil {
		return nil
	}
	return &dto.QuotationResponse{
		ID:                q.ID,
		ClientID:          q.ClientID,
		Tipo:              q.Tipo,
		Cotizacion:        q.Cotizacion,
		RUC:               q.RUC,
		FacturarA:         q.FacturarA,
		Cliente:           q.Cliente,
		Moneda:            q.Moneda,
		Importe:           q.Importe,
		ProductoStarSoft:  q.ProductoStarSoft,
		Servicio:          q.Servicio,
		MesFacturacion:    q.MesFacturacion,
		Observaciones:     q.Observaciones,
		TipoCobro:         q.TipoCobro,
		Area:              q.Area,
		Supervisor:        q.Supervisor,
		Encargado:         q.Encargado,
		InicioFacturacion: q.InicioFacturacion,
		VerCotizacion:     q.VerCotizacion,
		Funcionarios:      q.Funcionarios,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}
