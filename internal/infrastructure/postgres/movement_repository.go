package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo ledger de movimientos sobre PostgreSQL (solo inserción).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento; la secuencia la asigna la columna BIGSERIAL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.MovementEvent) error {
	query := `
		INSERT INTO movement_events (id, stock_record_id, site_id, kind, amount, occurred_at, actor_id, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.StockRecordID, nullable(m.SiteID), m.Kind, m.Amount, m.OccurredAt, nullable(m.ActorID), m.Note,
	).Scan(&m.Sequence)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByStockRecord devuelve los movimientos en orden de commit.
func (r *MovementRepo) ListByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.MovementEvent, error) {
	query := `
		SELECT seq, id, stock_record_id, site_id, kind, amount, occurred_at, actor_id, note
		FROM movement_events WHERE stock_record_id = $1
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, stockRecordID)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MovementEvent, 0)
	for rows.Next() {
		var m entity.MovementEvent
		var siteID, actorID *string
		if err := rows.Scan(&m.Sequence, &m.ID, &m.StockRecordID, &siteID, &m.Kind,
			&m.Amount, &m.OccurredAt, &actorID, &m.Note); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.SiteID = deref(siteID)
		m.ActorID = deref(actorID)
		list = append(list, &m)
	}
	return list, rows.Err()
}
