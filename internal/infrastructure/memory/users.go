package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo tabla users en memoria.
type UserRepo struct {
	s    *Store
	inTx bool
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.s.write(ctx, r.inTx, "users.insert", func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		if u.Email != "" {
			for _, other := range st.users {
				if strings.EqualFold(other.Email, u.Email) {
					return domain.ErrEmailAlreadyExists
				}
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(ctx, r.inTx, "users.select_one", func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.s.read(ctx, r.inTx, "users.select_one", func(st *state) error {
		for _, u := range st.users {
			if u.Email != "" && strings.EqualFold(u.Email, email) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	err := r.s.read(ctx, r.inTx, "users.select", func(st *state) error {
		for _, u := range st.users {
			u := u
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if u.MatchesSearch(f.Search) {
				out = append(out, &u)
			}
		}
		return nil
	})
	entity.SortUsersByName(out)
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.s.write(ctx, r.inTx, "users.update", func(st *state) error {
		cur, ok := st.users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if u.Email != "" {
			for id, other := range st.users {
				if id != u.ID && strings.EqualFold(other.Email, u.Email) {
					return domain.ErrEmailAlreadyExists
				}
			}
		}
		next := *u
		next.CreatedAt = cur.CreatedAt
		next.ClientCount = cur.ClientCount
		if next.PasswordHash == "" {
			next.PasswordHash = cur.PasswordHash
		}
		st.users[u.ID] = next
		return nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, r.inTx, "users.delete", func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.users, id)
		return nil
	})
}

// LockForUpdate dentro de una transacción el lock del store ya está tomado; solo verifica existencia.
func (r *UserRepo) LockForUpdate(ctx context.Context, id string) error {
	return r.s.write(ctx, r.inTx, "users.lock", func(st *state) error {
		if _, ok := st.users[id]; !ok {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *UserRepo) SetClientCount(ctx context.Context, id string, n int) error {
	return r.s.write(ctx, r.inTx, "users.update_client_count", func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrNotFound
		}
		u.ClientCount = n
		st.users[id] = u
		return nil
	})
}
