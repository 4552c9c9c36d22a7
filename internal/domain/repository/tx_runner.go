package repository

import "context"

// TxStores repositorios atados a una misma transacción.
type TxStores struct {
	Clients     ClientRepository
	Users       UserRepository
	Assignments AssignmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(s TxStores) error) error
}
