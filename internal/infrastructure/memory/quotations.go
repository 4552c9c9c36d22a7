package memory

import (
	"context"
	"time"

	"github.com/jhoicas/contable-api/internal/domain"
	"github.com/jhoicas/contable-api/internal/domain/entity"
	"github.com/jhoicas/contable-api/internal/domain/repository"
)

var _ repository.QuotationRepository = (*QuotationRepo)(nil)

// QuotationRepo tabla quotations en memoria.
type QuotationRepo struct {
	s *Store
}

func (r *QuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	return r.s.write(ctx, false, "quotations.insert", func(st *state) error {
		if _, ok := st.quotations[q.ID]; ok {
			return domain.ErrDuplicate
		}
		st.quotations[q.ID] = *q
		return nil
	})
}

func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	var out *entity.Quotation
	err := r.s.read(ctx, false, "quotations.select_one", func(st *state) error {
		if q, ok := st.quotations[id]; ok {
			out = &q
		}
		return nil
	})
	return out, err
}

func (r *QuotationRepo) ListByClient(ctx context.Context, clientID string, f repository.QuotationFilter) ([]*entity.Quotation, error) {
	var out []*entity.Quotation
	err := r.s.read(ctx, false, "quotations.select", func(st *state) error {
		for _, q := range st.quotations {
			q := q
			if q.ClientID == clientID && q.MatchesSearch(f.Search) {
				out = append(out, &q)
			}
		}
		return nil
	})
	entity.SortQuotationsNewestFirst(out)
	return out, err
}

func (r *QuotationRepo) Update(ctx context.Context, q *entity.Quotation, expectedUpdatedAt *time.Time) error {
	return r.s.write(ctx, false, "quotations.update", func(st *state) error {
		cur, ok := st.quotations[q.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if expectedUpdatedAt != nil && !cur.UpdatedAt.Equal(*expectedUpdatedAt) {
			return domain.ErrConflict
		}
		next := *q
		next.CreatedAt = cur.CreatedAt
		next.ClientID = cur.ClientID
		st.quotations[q.ID] = next
		return nil
	})
}

func (r *QuotationRepo) Delete(ctx context.Context, id string) error {
	return r.s.write(ctx, false, "quotations.delete", func(st *state) error {
		if _, ok := st.quotations[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.quotations, id)
		return nil
	})
}

func (r *QuotationRepo) CountByClient(ctx context.Context, clientID string) (int, error) {
	var n int
	err := r.s.read(ctx, false, "quotations.count", func(st *state) error {
		for _, q := range st.quotations {
			if q.ClientID == clientID {
				n++
			}
		}
		return nil
	})
	return n, err
}
