package ports

import (
	"context"

	"github.com/jhoicas/contable-api/internal/domain/entity"
)

// QuotationPDFGenerator define el puerto de salida para la representación imprimible de una cotización.
// La aplicación solo conoce este contrato; el adaptador concreto vive en infrastructure/pdf.
type QuotationPDFGenerator interface {
	// GenerateQuotationPDF devuelve los bytes del documento. client es el dueño de la cotización.
	GenerateQuotationPDF(ctx context.Context, q *entity.Quotation, client *entity.Client) ([]byte, error)
}
