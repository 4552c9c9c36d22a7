// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con STORE_DRIVER=memory (desarrollo) y como almacén de los tests.
// Las transacciones toman el lock de escritura durante todo el callback y restauran
// una copia del estado si el callback falla.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

type assignmentKey struct {
	userID   string
	clientID string
}

type state struct {
	clients     map[string]entity.Client
	quotations  map[string]entity.Quotation
	users       map[string]entity.User
	assignments map[assignmentKey]entity.Assignment
}

func newState() state {
	return state{
		clients:     map[string]entity.Client{},
		quotations:  map[string]entity.Quotation{},
		users:       map[string]entity.User{},
		assignments: map[assignmentKey]entity.Assignment{},
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.clients {
		c.clients[k] = v
	}
	for k, v := range s.quotations {
		c.quotations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.assignments {
		c.assignments[k] = v
	}
	return c
}

// FaultFunc se invoca antes de cada operación con su nombre (ej. "assignments.add").
// Si devuelve error, la operación falla con ese error envuelto en domain.ErrStoreUnavailable.
type FaultFunc func(op string) error

// Store almacén en memoria con las cuatro tablas.
type Store struct {
	mu    sync.RWMutex
	st    state
	fault FaultFunc
	now   func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// SetFault instala (o quita con nil) el inyector de fallas.
func (s *Store) SetFault(f FaultFunc) {
	s.mu.Lock()
	s.fault = f
	s.mu.Unlock()
}

// SetClock reemplaza el reloj usado para created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Clients, Quotations, Users, Assignments y Dashboard devuelven los adaptadores fuera de transacción.
func (s *Store) Clients() *ClientRepo           { return &ClientRepo{s: s} }
func (s *Store) Quotations() *QuotationRepo     { return &QuotationRepo{s: s} }
func (s *Store) Users() *UserRepo               { return &UserRepo{s: s} }
func (s *Store) Assignments() *AssignmentRepo   { return &AssignmentRepo{s: s} }
func (s *Store) Dashboard() *DashboardRepo      { return &DashboardRepo{s: s} }
func (s *Store) TxRunner() repository.TxRunner  { return &txRunner{s: s} }

// check valida el contexto y consulta el inyector de fallas. Requiere s.mu tomado.
func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
	}
	if s.fault != nil {
		if err := s.fault(op); err != nil {
			return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
		}
	}
	return nil
}

func (s *Store) read(ctx context.Context, inTx bool, op string, fn func(st *state) error) error {
	if !inTx {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	if err := s.check(ctx, op); err != nil {
		return err
	}
	return fn(&s.st)
}

func (s *Store) write(ctx context.Context, inTx bool, op string, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if err := s.check(ctx, op); err != nil {
		return err
	}
	return fn(&s.st)
}

type txRunner struct {
	s *Store
}

// Run mantiene el lock de escritura durante fn; ante error restaura el estado previo.
func (r *txRunner) Run(ctx context.Context, fn func(s repository.TxStores) error) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "tx.begin"); err != nil {
		return err
	}
	snapshot := s.st.clone()
	err := fn(repository.TxStores{
		Clients:     &ClientRepo{s: s, inTx: true},
		Users:       &UserRepo{s: s, inTx: true},
		Assignments: &AssignmentRepo{s: s, inTx: true},
	})
	if err == nil {
		err = s.check(ctx, "tx.commit")
	}
	if err != nil {
		s.st = snapshot
		return err
	}
	return nil
}
