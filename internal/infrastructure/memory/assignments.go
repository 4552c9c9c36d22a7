package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

// AssignmentRepo tabla user_clients en memoria; la clave compuesta impide duplicados.
type AssignmentRepo struct {
	s    *Store
	inTx bool
}

func (r *AssignmentRepo) ListClientIDs(ctx context.Context, userID string) ([]string, error) {
	var out []string
	err := r.s.read(ctx, r.inTx, "user_clients.select", func(st *state) error {
		for k := range st.assignments {
			if k.userID == userID {
				out = append(out, k.clientID)
			}
		}
		return nil
	})
	sort.Strings(out)
	return out, err
}

func (r *AssignmentRepo) IsAssigned(ctx context.Context, userID, clientID string) (bool, error) {
	var ok bool
	err := r.s.read(ctx, r.inTx, "user_clients.select_one", func(st *state) error {
		_, ok = st.assignments[assignmentKey{userID, clientID}]
		return nil
	})
	return ok, err
}

func (r *AssignmentRepo) Add(ctx context.Context, userID string, clientIDs []string) error {
	return r.s.write(ctx, r.inTx, "user_clients.insert", func(st *state) error {
		now := r.s.now()
		for _, id := range clientIDs {
			k := assignmentKey{userID, id}
			if _, exists := st.assignments[k]; !exists {
				st.assignments[k] = entity.Assignment{UserID: userID, ClientID: id, CreatedAt: now}
			}
		}
		return nil
	})
}

func (r *AssignmentRepo) Remove(ctx context.Context, userID string, clientIDs []string) error {
	return r.s.write(ctx, r.inTx, "user_clients.delete", func(st *state) error {
		for _, id := range clientIDs {
			delete(st.assignments, assignmentKey{userID, id})
		}
		return nil
	})
}

func (r *AssignmentRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.s.read(ctx, r.inTx, "user_clients.count", func(st *state) error {
		for k := range st.assignments {
			if k.userID == userID {
				n++
			}
		}
		return nil
	})
	return n, err
}
