package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store agrupa los adaptadores PostgreSQL sobre un mismo pool.
type Store struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewStore construye el almacén. timeout es el máximo por llamada (DB_QUERY_TIMEOUT_SECONDS).
func NewStore(pool *pgxpool.Pool, timeout time.Duration) *Store {
	return &Store{pool: pool, timeout: timeout}
}

func (s *Store) base() base { return base{q: s.pool, timeout: s.timeout} }

// Clients, Quotations, Users, Assignments y Dashboard devuelven los adaptadores fuera de transacción.
func (s *Store) Clients() *ClientRepo         { return &ClientRepo{base: s.base()} }
func (s *Store) Quotations() *QuotationRepo   { return &QuotationRepo{base: s.base()} }
func (s *Store) Users() *UserRepo             { return &UserRepo{base: s.base()} }
func (s *Store) Assignments() *AssignmentRepo { return &AssignmentRepo{base: s.base()} }
func (s *Store) Dashboard() *DashboardRepo    { return &DashboardRepo{base: s.base()} }
func (s *Store) TxRunner() *TxRunner          { return NewTxRunner(s.pool, s.timeout) }
