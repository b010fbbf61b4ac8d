package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*movementRepo)(nil)

type movementRepo struct {
	s *Store
	t *tx
}

// Create asigna la secuencia al insertar; una tx revertida deja huecos, igual que BIGSERIAL.
func (r *movementRepo) Create(ctx context.Context, movement *entity.MovementEvent) error {
	movement.Sequence = r.s.nextSeq()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.t != nil {
		r.t.movements = append(r.t.movements, *movement)
		return nil
	}
	r.s.movements = append(r.s.movements, *movement)
	return nil
}

func (r *movementRepo) ListByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.MovementEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MovementEvent, 0)
	collect := func(movs []entity.MovementEvent) {
		for i := range movs {
			if movs[i].StockRecordID == stockRecordID {
				m := movs[i]
				out = append(out, &m)
			}
		}
	}
	collect(r.s.movements)
	if r.t != nil {
		collect(r.t.movements)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}
