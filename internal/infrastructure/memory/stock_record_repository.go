package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRecordRepository = (*stockRecordRepo)(nil)

type stockRecordRepo struct {
	s *Store
	t *tx
}

// get lee el registro visible: primero lo escrito en la tx, luego lo confirmado. Requiere s.mu.
func (r *stockRecordRepo) get(id string) (entity.StockRecord, bool) {
	if r.t != nil {
		if rec, ok := r.t.stock[id]; ok {
			return rec, true
		}
	}
	rec, ok := r.s.stock[id]
	return rec, ok
}

func (r *stockRecordRepo) put(rec entity.StockRecord) {
	if r.t != nil {
		r.t.stock[rec.ID] = rec
		return
	}
	r.s.stock[rec.ID] = rec
}

func (r *stockRecordRepo) Create(ctx context.Context, record *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(record.ID); ok {
		return domain.ErrDuplicate
	}
	r.put(*record)
	return nil
}

func (r *stockRecordRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *stockRecordRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRecord, error) {
	if r.t != nil {
		if err := r.t.lock(ctx, stockKey(id)); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *stockRecordRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	rec.QuantityOnHand = quantity
	rec.UpdatedAt = updatedAt
	r.put(rec)
	return nil
}

func (r *stockRecordRepo) SetOrderPlaced(ctx context.Context, id string, placed bool, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	rec.OrderPlaced = placed
	rec.UpdatedAt = updatedAt
	r.put(rec)
	return nil
}

func (r *stockRecordRepo) List(ctx context.Context, siteID string) ([]*entity.StockRecord, error) {
	return r.filter(siteID, func(entity.StockRecord) bool { return true }), nil
}

func (r *stockRecordRepo) ListBelowThreshold(ctx context.Context, siteID string) ([]*entity.StockRecord, error) {
	return r.filter(siteID, func(rec entity.StockRecord) bool {
		return rec.QuantityOnHand.LessThan(rec.ReorderThreshold)
	}), nil
}

func (r *stockRecordRepo) filter(siteID string, keep func(entity.StockRecord) bool) []*entity.StockRecord {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make(map[string]struct{}, len(r.s.stock))
	for id := range r.s.stock {
		ids[id] = struct{}{}
	}
	if r.t != nil {
		for id := range r.t.stock {
			ids[id] = struct{}{}
		}
	}
	out := make([]*entity.StockRecord, 0, len(ids))
	for id := range ids {
		rec, _ := r.get(id)
		if siteID != "" && rec.SiteID != siteID {
			continue
		}
		if keep(rec) {
			out = append(out, &rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
