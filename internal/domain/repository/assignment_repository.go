package repository

import "context"

// AssignmentRepository define el puerto de persistencia para user_clients.
type AssignmentRepository interface {
	// ListClientIDs devuelve los ids de clientes asignados al usuario.
	ListClientIDs(ctx context.Context, userID string) ([]string, error)
	IsAssigned(ctx context.Context, userID, clientID string) (bool, error)
	// Add inserta los pares ignorando los ya existentes.
	Add(ctx context.Context, userID string, clientIDs []string) error
	// Remove elimina los pares indicados; los inexistentes se ignoran.
	Remove(ctx context.Context, userID string, clientIDs []string) error
	Count(ctx context.Context, userID string) (int, error)
}
