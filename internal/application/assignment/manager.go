// Package assignment mantiene la relación muchos-a-muchos usuario ↔ cliente (tabla user_clients)
// y la caché client_count del usuario.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
	"github.com/jhoicas/contable-api/pkg/logger"
)

// Result estado de las asignaciones tras una modificación confirmada.
type Result struct {
	UserID      string
	ClientIDs   []string // ordenados
	ClientCount int
	Added       int
	Removed     int
}

// Manager aplica cambios de asignaciones dentro de una transacción.
type Manager struct {
	users       repository.UserRepository
	clients     repository.ClientRepository
	assignments repository.AssignmentRepository
	tx          repository.TxRunner
	log         *logger.Logger
}

// NewManager construye el administrador de asignaciones.
func NewManager(
	users repository.UserRepository,
	clients repository.ClientRepository,
	assignments repository.AssignmentRepository,
	tx repository.TxRunner,
	log *logger.Logger,
) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{users: users, clients: clients, assignments: assignments, tx: tx, log: log.Component("assignment")}
}

// SetAssignments reemplaza el conjunto de clientes de userID por clientIDs.
// Dentro de una transacción bloquea al usuario, lee el conjunto actual, aplica solo la
// diferencia (altas y bajas) y recalcula client_count. Después relee el conjunto: lo leído
// debe coincidir con el objetivo. Dos reemplazos concurrentes quedan serializados y gana el último.
func (m *Manager) SetAssignments(ctx context.Context, userID string, clientIDs []string) (*Result, error) {
	target := dedupe(clientIDs)
	if err := m.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := m.requireClients(ctx, target); err != nil {
		return nil, err
	}

	var (
		before          []string
		read            bool
		toAdd, toRemove []string
	)
	err := m.tx.Run(ctx, func(s repository.TxStores) error {
		if err := s.Users.LockForUpdate(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		cur, err := s.Assignments.ListClientIDs(ctx, userID)
		if err != nil {
			return err
		}
		before, read = cur, true
		toAdd, toRemove = diff(before, target)
		if len(toRemove) > 0 {
			if err := s.Assignments.Remove(ctx, userID, toRemove); err != nil {
				return err
			}
		}
		if len(toAdd) > 0 {
			if err := s.Assignments.Add(ctx, userID, toAdd); err != nil {
				return err
			}
		}
		return recount(ctx, s, userID)
	})
	if err != nil {
		if !read {
			return nil, err
		}
		return nil, m.classify(ctx, userID, before, err)
	}

	res, err := m.verify(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	res.Added, res.Removed = len(toAdd), len(toRemove)
	m.log.Info().
		Str("user_id", userID).
		Int("added", res.Added).
		Int("removed", res.Removed).
		Int("client_count", res.ClientCount).
		Msg("asignaciones reemplazadas")
	return res, nil
}

// CreateUser persiste un usuario nuevo junto con su conjunto inicial de clientes en una sola transacción.
func (m *Manager) CreateUser(ctx context.Context, u *entity.User, clientIDs []string) (*Result, error) {
	target := dedupe(clientIDs)
	if err := m.requireClients(ctx, target); err != nil {
		return nil, err
	}
	err := m.tx.Run(ctx, func(s repository.TxStores) error {
		if err := s.Users.Create(ctx, u); err != nil {
			return err
		}
		if len(target) > 0 {
			if err := s.Assignments.Add(ctx, u.ID, target); err != nil {
				return err
			}
		}
		return recount(ctx, s, u.ID)
	})
	if err != nil {
		return nil, err
	}
	res, err := m.verify(ctx, u.ID, target)
	if err != nil {
		return nil, err
	}
	res.Added = len(target)
	u.ClientCount = res.ClientCount
	return res, nil
}

// DeleteUser elimina el usuario y sus filas de user_clients en una sola transacción.
func (m *Manager) DeleteUser(ctx context.Context, userID string) error {
	return m.tx.Run(ctx, func(s repository.TxStores) error {
		ids, err := s.Assignments.ListClientIDs(ctx, userID)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := s.Assignments.Remove(ctx, userID, ids); err != nil {
				return err
			}
		}
		return s.Users.Delete(ctx, userID)
	})
}

// AddAssignment asigna un cliente; si ya estaba asignado no hace nada.
func (m *Manager) AddAssignment(ctx context.Context, userID, clientID string) (*Result, error) {
	if err := m.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := m.requireClients(ctx, []string{clientID}); err != nil {
		return nil, err
	}
	return m.single(ctx, userID, clientID, true)
}

// RemoveAssignment quita un cliente; si no estaba asignado no hace nada.
func (m *Manager) RemoveAssignment(ctx context.Context, userID, clientID string) (*Result, error) {
	if err := m.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return m.single(ctx, userID, clientID, false)
}

// ClientIDs devuelve los clientes asignados al usuario, ordenados.
func (m *Manager) ClientIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := m.assignments.ListClientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (m *Manager) single(ctx context.Context, userID, clientID string, add bool) (*Result, error) {
	var changed bool
	err := m.tx.Run(ctx, func(s repository.TxStores) error {
		if err := s.Users.LockForUpdate(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		assigned, err := s.Assignments.IsAssigned(ctx, userID, clientID)
		if err != nil {
			return err
		}
		switch {
		case add && !assigned:
			if err := s.Assignments.Add(ctx, userID, []string{clientID}); err != nil {
				return err
			}
			changed = true
		case !add && assigned:
			if err := s.Assignments.Remove(ctx, userID, []string{clientID}); err != nil {
				return err
			}
			changed = true
		}
		return recount(ctx, s, userID)
	})
	if err != nil {
		return nil, err
	}
	ids, err := m.ClientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := &Result{UserID: userID, ClientIDs: ids, ClientCount: len(ids)}
	if changed && add {
		res.Added = 1
	} else if changed {
		res.Removed = 1
	}
	m.log.Debug().Str("user_id", userID).Str("client_id", clientID).Bool("add", add).Bool("changed", changed).Msg("asignación")
	return res, nil
}

// recount recalcula client_count desde user_clients dentro de la transacción.
func recount(ctx context.Context, s repository.TxStores, userID string) error {
	n, err := s.Assignments.Count(ctx, userID)
	if err != nil {
		return err
	}
	return s.Users.SetClientCount(ctx, userID, n)
}

func (m *Manager) requireUser(ctx context.Context, userID string) error {
	u, err := m.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

// requireClients rechaza ids inexistentes antes de tocar el almacén.
func (m *Manager) requireClients(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	existing, err := m.clients.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	found := make(map[string]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, "client_ids:"+id)
		}
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Fields: missing}
	}
	return nil
}

// classify decide si una falla dejó el conjunto intacto (error original) o posiblemente
// alterado (ErrAssignmentConsistency).
func (m *Manager) classify(ctx context.Context, userID string, before []string, cause error) error {
	if errors.Is(cause, domain.ErrAssignmentConsistency) {
		return cause
	}
	after, err := m.assignments.ListClientIDs(ctx, userID)
	if err != nil {
		m.log.Error().Err(cause).Str("user_id", userID).Msg("asignaciones sin verificar tras falla")
		return fmt.Errorf("%w: %w", domain.ErrAssignmentConsistency, cause)
	}
	if sameSet(before, after) {
		m.log.Warn().Err(cause).Str("user_id", userID).Msg("reemplazo de asignaciones revertido")
		return cause
	}
	m.log.Error().Err(cause).Str("user_id", userID).Strs("after", after).Msg("asignaciones parcialmente aplicadas")
	return fmt.Errorf("%w: %w", domain.ErrAssignmentConsistency, cause)
}

// verify relee el conjunto confirmado y lo compara con el objetivo.
func (m *Manager) verify(ctx context.Context, userID string, target []string) (*Result, error) {
	after, err := m.ClientIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: relectura: %w", domain.ErrAssignmentConsistency, err)
	}
	if !sameSet(after, target) {
		m.log.Error().Str("user_id", userID).Strs("expected", target).Strs("got", after).Msg("relectura de asignaciones no coincide")
		return nil, fmt.Errorf("%w: se esperaban %d clientes, hay %d", domain.ErrAssignmentConsistency, len(target), len(after))
	}
	return &Result{UserID: userID, ClientIDs: after, ClientCount: len(after)}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// diff devuelve (target − current, current − target).
func diff(current, target []string) (toAdd, toRemove []string) {
	cur := make(map[string]bool, len(current))
	for _, id := range current {
		cur[id] = true
	}
	tgt := make(map[string]bool, len(target))
	for _, id := range target {
		tgt[id] = true
		if !cur[id] {
			toAdd = append(toAdd, id)
		}
	}
	for _, id := range current {
		if !tgt[id] {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, id := range a {
		set[id] = true
	}
	for _, id := range b {
		if !set[id] {
			return false
		}
	}
	return true
}
