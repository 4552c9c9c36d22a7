package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/contable-api/internal/application/dto"
	"github.com/jhoicas/contable-api/internal/application/export"
	"github.com/jhoicas/contable-api/internal/application/scope"
	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/access"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// ClientUseCase casos de uso de clientes. La visibilidad y los permisos se resuelven en ScopeService.
type ClientUseCase struct {
	scope   *scope.ScopeService
	clients repository.ClientRepository
	log     *logger.Logger
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(sc *scope.ScopeService, clients repository.ClientRepository, log *logger.Logger) *ClientUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ClientUseCase{scope: sc, clients: clients, log: log.Component("clients")}
}

// List devuelve los clientes visibles para el actor, filtrados por search.
func (uc *ClientUseCase) List(ctx context.Context, actor entity.Actor, search string) ([]dto.ClientResponse, error) {
	list, err := uc.scope.VisibleClients(ctx, actor, repository.ClientFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toClientResponse(c))
	}
	return out, nil
}

// Get obtiene un cliente visible para el actor.
func (uc *ClientUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.ClientResponse, error) {
	c, err := uc.scope.ClientInScope(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Create da de alta un cliente. Solo Administrador.
func (uc *ClientUseCase) Create(ctx context.Context, actor entity.Actor, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := uc.scope.Authorize(actor, access.ResourceClients, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := validateClient(&in); err != nil {
		return nil, err
	}
	ts := now()
	c := &entity.Client{ID: uuid.New().String(), CreatedAt: ts, UpdatedAt: ts}
	applyClientRequest(c, in)
	if err := uc.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Str("actor_id", actor.ID).Msg("cliente creado")
	return toClientResponse(c), nil
}

// Update reemplaza los campos editables. Administrador o personal con el cliente asignado.
// Si in.UpdatedAt viene informado y no coincide con el almacenado devuelve ErrConflict.
func (uc *ClientUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := validateClient(&in); err != nil {
		return nil, err
	}
	c, err := uc.scope.AuthorizeClient(ctx, actor, access.ResourceClients, access.ActionUpdate, id)
	if err != nil {
		return nil, err
	}
	applyClientRequest(c, in)
	c.UpdatedAt = now()
	if err := uc.clients.Update(ctx, c, in.UpdatedAt); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Str("actor_id", actor.ID).Msg("cliente actualizado")
	return toClientResponse(c), nil
}

// Delete elimina el cliente. Solo Administrador.
// No elimina sus cotizaciones ni sus asignaciones.
func (uc *ClientUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if _, err := uc.scope.AuthorizeClient(ctx, actor, access.ResourceClients, access.ActionDelete, id); err != nil {
		return err
	}
	if err := uc.clients.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("client_id", id).Str("actor_id", actor.ID).Msg("cliente eliminado")
	return nil
}

// Export genera clientes.csv con los clientes visibles para el actor.
func (uc *ClientUseCase) Export(ctx context.Context, actor entity.Actor, search string) ([]byte, error) {
	list, err := uc.scope.VisibleClients(ctx, actor, repository.ClientFilter{Search: strings.TrimSpace(search)})
	if err != nil {
		return nil, err
	}
	return export.CSV(list, export.ClientColumns)
}

func validateClient(in *dto.ClientRequest) error {
	in.RazonSocial = strings.TrimSpace(in.RazonSocial)
	in.RUC = strings.TrimSpace(in.RUC)
	return domain.Require(
		[2]string{"razon_social", in.RazonSocial},
		[2]string{"ruc", in.RUC},
	)
}

func applyClientRequest(c *entity.Client, in dto.ClientRequest) {
	c.RazonSocial = in.RazonSocial
	c.RUC = in.RUC
	c.FechaConstitucion = in.FechaConstitucion
	c.Personeria = in.Personeria
	c.ContadorSenior = in.ContadorSenior
	c.ContadorJunior = in.ContadorJunior
	c.AsistenteContabilidad = in.AsistenteContabilidad
	c.Administrador = in.Administrador
	c.Laboralista = in.Laboralista
	c.VencimientoIVA = in.VencimientoIVA
	c.VencimientoIPS = in.VencimientoIPS
	c.Domicilio = in.Domicilio
	c.TienePatronalIPS = in.TienePatronalIPS
	c.NroPatronal = in.NroPatronal
	c.RucMTESS = in.RucMTESS
	c.NroCI = in.NroCI
	c.Contrasena = in.Contrasena
	c.NroPatronalMTESS = in.NroPatronalMTESS
	c.ContrasenaMTESS = in.ContrasenaMTESS
	c.Situacion = in.Situacion
	c.ObligacionesRUC = in.ObligacionesRUC
	c.Contactos = in.Contactos
	c.TienePatente = in.TienePatente
	c.MunicipioPatente = in.MunicipioPatente
	c.NroPatente = in.NroPatente
	c.PresentaBalance = in.PresentaBalance
	c.FechaPresentacionBalance = in.FechaPresentacionBalance
	c.RubricaLibros = in.RubricaLibros
	c.CorreosDNIT = in.CorreosDNIT
	c.RepresentanteLegal = in.RepresentanteLegal
	c.Socios = in.Socios
	c.ActividadesSET = in.ActividadesSET
	c.NroCuenta = in.NroCuenta
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:                       c.ID,
		RazonSocial:              c.RazonSocial,
		RUC:                      c.RUC,
		FechaConstitucion:        c.FechaConstitucion,
		Personeria:               c.Personeria,
		ContadorSenior:           c.ContadorSenior,
		ContadorJunior:           c.ContadorJunior,
		AsistenteContabilidad:    c.AsistenteContabilidad,
		Administrador:            c.Administrador,
		Laboralista:              c.Laboralista,
		VencimientoIVA:           c.VencimientoIVA,
		VencimientoIPS:           c.VencimientoIPS,
		Domicilio:                c.Domicilio,
		TienePatronalIPS:         c.TienePatronalIPS,
		NroPatronal:              c.NroPatronal,
		RucMTESS:                 c.RucMTESS,
		NroCI:                    c.NroCI,
		Contrasena:               c.Contrasena,
		NroPatronalMTESS:         c.NroPatronalMTESS,
		ContrasenaMTESS:          c.ContrasenaMTESS,
		Situacion:                c.Situacion,
		ObligacionesRUC:          c.ObligacionesRUC,
		Contactos:                c.Contactos,
		TienePatente:             c.TienePatente,
		MunicipioPatente:         c.MunicipioPatente,
		NroPatente:               c.NroPatente,
		PresentaBalance:          c.PresentaBalance,
		FechaPresentacionBalance: c.FechaPresentacionBalance,
		RubricaLibros:            c.RubricaLibros,
		CorreosDNIT:              c.CorreosDNIT,
		RepresentanteLegal:       c.RepresentanteLegal,
		Socios:                   c.Socios,
		ActividadesSET:           c.ActividadesSET,
		NroCuenta:                c.NroCuenta,
		CreatedAt:                c.CreatedAt,
		UpdatedAt:                c.UpdatedAt,
	}
}

func toClientSummary(c *entity.Client) dto.ClientSummary {
	return dto.ClientSummary{ID: c.ID, RazonSocial: c.RazonSocial, RUC: c.RUC}
}
