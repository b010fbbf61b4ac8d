package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*alertRepo)(nil)

type alertRepo struct {
	s *Store
	t *tx
}

// get requiere s.mu.
func (r *alertRepo) get(id string) (entity.Alert, bool) {
	if r.t != nil {
		if a, ok := r.t.alerts[id]; ok {
			return a, true
		}
	}
	a, ok := r.s.alerts[id]
	return a, ok
}

func (r *alertRepo) put(a entity.Alert) {
	if r.t != nil {
		r.t.alerts[a.ID] = a
		return
	}
	r.s.alerts[a.ID] = a
}

func (r *alertRepo) seqOf(id string) int64 {
	if r.t != nil {
		if seq, ok := r.t.alertSeq[id]; ok {
			return seq
		}
	}
	return r.s.alertSeq[id]
}

// visible devuelve todas las alertas que ve el llamador. Requiere s.mu.
func (r *alertRepo) visible() []entity.Alert {
	ids := make(map[string]struct{}, len(r.s.alerts))
	for id := range r.s.alerts {
		ids[id] = struct{}{}
	}
	if r.t != nil {
		for id := range r.t.alerts {
			ids[id] = struct{}{}
		}
	}
	out := make([]entity.Alert, 0, len(ids))
	for id := range ids {
		a, _ := r.get(id)
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return r.seqOf(out[i].ID) < r.seqOf(out[j].ID) })
	return out
}

func (r *alertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	seq := r.s.nextSeq()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.get(alert.ID); ok {
		return domain.ErrDuplicate
	}
	r.put(*alert)
	if r.t != nil {
		r.t.alertSeq[alert.ID] = seq
	} else {
		r.s.alertSeq[alert.ID] = seq
	}
	return nil
}

func (r *alertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.get(id)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *alertRepo) GetForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	if r.t != nil {
		if err := r.t.lock(ctx, alertKey(id)); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

func (r *alertRepo) ListUnacknowledgedByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.Alert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Alert, 0)
	for _, a := range r.visible() {
		if a.StockRecordID == stockRecordID && !a.Acknowledged {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *alertRepo) Acknowledge(ctx context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	a.Acknowledged = true
	a.AcknowledgedAt = &at
	r.put(a)
	return nil
}

func (r *alertRepo) AcknowledgeAll(ctx context.Context, siteID string, at time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, a := range r.visible() {
		if a.Acknowledged || (siteID != "" && a.SiteID != siteID) {
			continue
		}
		ackAt := at
		a.Acknowledged = true
		a.AcknowledgedAt = &ackAt
		r.put(a)
		n++
	}
	return n, nil
}
