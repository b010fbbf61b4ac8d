package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.LoanRepository = (*loanRepo)(nil)

type loanRepo struct {
	s *Store
	t *tx
}

func (r *loanRepo) get(id string) (entity.Loan, bool) {
	if r.t != nil {
		if l, ok := r.t.loans[id]; ok {
			return l, true
		}
	}
	l, ok := r.s.loans[id]
	return l, ok
}

func (r *loanRepo) put(l entity.Loan) {
	if r.t != nil {
		r.t.loans[l.ID] = l
		return
	}
	r.s.loans[l.ID] = l
}

func (r *loanRepo) Create(ctx context.Context, l *entity.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(l.ID); ok {
		return domain.ErrDuplicate
	}
	r.put(*l)
	return nil
}

func (r *loanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *loanRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	if r.t != nil {
		if err := r.t.lock(ctx, loanKey(id)); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *loanRepo) Update(ctx context.Context, l *entity.Loan) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(l.ID); !ok {
		return domain.ErrNotFound
	}
	r.put(*l)
	return nil
}

func (r *loanRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Loan, 0)
	for id, l := range r.s.loans {
		if r.t != nil {
			if pending, ok := r.t.loans[id]; ok {
				l = pending
			}
		}
		if l.EmployeeID == employeeID {
			out = append(out, &l)
		}
	}
	if r.t != nil {
		for id, l := range r.t.loans {
			if _, committed := r.s.loans[id]; !committed && l.EmployeeID == employeeID {
				out = append(out, &l)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
