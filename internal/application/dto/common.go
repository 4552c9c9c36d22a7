package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Fields    []string `json:"fields,omitempty"`    // campos faltantes en errores de validación
	Retryable bool     `json:"retryable,omitempty"` // true si la acción puede repetirse (almacén no disponible)
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewListResponse construye el listado garantizando items no nulo en el JSON.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
