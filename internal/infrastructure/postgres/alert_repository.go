package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, stock_record_id, site_id, category, severity, title, message,
	acknowledged, acknowledged_at, created_at`

// AlertRepo alertas de stock sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	query := `INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.StockRecordID, nullable(a.SiteID), a.Category, a.Severity, a.Title, a.Message,
		a.Acknowledged, a.AcknowledgedAt, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create alert: %w", err)
	}
	return nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
}

func (r *AlertRepo) GetForUpdate(ctx context.Context, id string) (*entity.Alert, error) {
	return r.getOne(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1 FOR UPDATE`, id)
}

func (r *AlertRepo) getOne(ctx context.Context, query, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

func (r *AlertRepo) ListUnacknowledgedByStockRecord(ctx context.Context, stockRecordID string) ([]*entity.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts
		WHERE stock_record_id = $1 AND NOT acknowledged
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, stockRecordID)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AlertRepo) Acknowledge(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE alerts SET acknowledged = TRUE, acknowledged_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("acknowledge alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AlertRepo) AcknowledgeAll(ctx context.Context, siteID string, at time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE alerts SET acknowledged = TRUE, acknowledged_at = $2
		WHERE NOT acknowledged AND ($1::text IS NULL OR site_id = $1)`,
		nullable(siteID), at)
	if err != nil {
		return 0, fmt.Errorf("acknowledge all alerts: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var a entity.Alert
	var siteID *string
	if err := row.Scan(&a.ID, &a.StockRecordID, &siteID, &a.Category, &a.Severity, &a.Title,
		&a.Message, &a.Acknowledged, &a.AcknowledgedAt, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.SiteID = deref(siteID)
	return &a, nil
}
