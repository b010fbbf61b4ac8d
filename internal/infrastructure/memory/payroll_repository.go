package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.PayrollRepository = (*payrollRepo)(nil)

type payrollRepo struct {
	s *Store
	t *tx
}

func (r *payrollRepo) get(id string) (entity.PayrollLine, bool) {
	if r.t != nil {
		if line, ok := r.t.payroll[id]; ok {
			return line, true
		}
	}
	line, ok := r.s.payroll[id]
	return line, ok
}

func (r *payrollRepo) put(line entity.PayrollLine) {
	if r.t != nil {
		r.t.payroll[line.ID] = line
		return
	}
	r.s.payroll[line.ID] = line
}

func (r *payrollRepo) Create(ctx context.Context, line *entity.PayrollLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(line.ID); ok {
		return domain.ErrDuplicate
	}
	r.put(*line)
	return nil
}

func (r *payrollRepo) GetByID(ctx context.Context, id string) (*entity.PayrollLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	line, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &line, nil
}

func (r *payrollRepo) GetForUpdate(ctx context.Context, id string) (*entity.PayrollLine, error) {
	if r.t != nil {
		if err := r.t.lock(ctx, payrollKey(id)); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *payrollRepo) Update(ctx context.Context, line *entity.PayrollLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(line.ID); !ok {
		return domain.ErrNotFound
	}
	r.put(*line)
	return nil
}

func (r *payrollRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.PayrollLine, 0)
	for id, line := range r.s.payroll {
		if r.t != nil {
			if pending, ok := r.t.payroll[id]; ok {
				line = pending
			}
		}
		if line.EmployeeID == employeeID {
			out = append(out, &line)
		}
	}
	if r.t != nil {
		for id, line := range r.t.payroll {
			if _, committed := r.s.payroll[id]; !committed && line.EmployeeID == employeeID {
				out = append(out, &line)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PayDate.Equal(out[j].PayDate) {
			return out[i].PayDate.After(out[j].PayDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
