package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrSelfDelete         = errors.New("un administrador no puede eliminar su propia cuenta")

	// ErrStoreUnavailable falla o timeout del almacén; la acción puede repetirse.
	ErrStoreUnavailable = errors.New("no se pudo acceder al almacén de datos")

	// ErrAssignmentConsistency la actualización de asignaciones no quedó confirmada:
	// el conjunto de clientes del usuario debe verificarse nuevamente.
	ErrAssignmentConsistency = errors.New("las asignaciones del usuario pueden haber quedado incompletas")
)

// ValidationError lista los campos requeridos ausentes o inválidos. Envuelve ErrInvalidInput.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error() + ": " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Require acumula los nombres cuyo valor esté vacío (tras TrimSpace). Devuelve nil si no falta ninguno.
func Require(fields ...[2]string) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			missing = append(missing, f[0])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &ValidationError{Fields: missing}
}
