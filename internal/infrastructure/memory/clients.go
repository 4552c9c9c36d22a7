package memory

import (
	"context"
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo tabla clients en memoria.
type ClientRepo struct {
	s    *Store
	inTx bool
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.s.write(ctx, r.inTx, "clients.insert", func(st *state) error {
		if _, ok := st.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.s.read(ctx, r.inTx, "clients.select_one", func(st *state) error {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.s.read(ctx, r.inTx, "clients.select", func(st *state) error {
		for _, c := range st.clients {
			c := c
			if c.MatchesSearch(f.Search) {
				out = append(out, &c)
			}
		}
		return nil
	})
	entity.SortClientsByRazonSocial(out)
	return out, err
}

func (r *ClientRepo) ListByUser(ctx context.Context, userID string, f repository.ClientFilter) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.s.read(ctx, r.inTx, "user_clients.select_clients", func(st *state) error {
		for k := range st.assignments {
			if k.userID != userID {
				continue
			}
			c, ok := st.clients[k.clientID]
			if ok && c.MatchesSearch(f.Search) {
				out = append(out, &c)
			}
		}
		return nil
	})
	entity.SortClientsByRazonSocial(out)
	return out, err
}

func (r *ClientRepo) Update(ctx context.Context, c *entity.Client, expectedUpdatedAt *time.Time) error {
	return r.s.write(ctx, r.inTx, "clients.update", func(st *state) error {
		cur, ok := st.clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if expectedUpdatedAt != nil && !cur.UpdatedAt.Equal(*expectedUpdatedAt) {
			return domain.ErrConflict
		}
		next := *c
		next.CreatedAt = cur.CreatedAt
		st.clients[c.ID] = next
		return nil
	})
}

func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, r.inTx, "clients.delete", func(st *state) error {
		if _, ok := st.clients[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.clients, id)
		return nil
	})
}

func (r *ClientRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.read(ctx, r.inTx, "clients.count", func(st *state) error {
		n = len(st.clients)
		return nil
	})
	return n, err
}

func (r *ClientRepo) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	var out []string
	err := r.s.read(ctx, r.inTx, "clients.select_ids", func(st *state) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if _, ok := st.clients[id]; ok && !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
		return nil
	})
	return out, err
}
