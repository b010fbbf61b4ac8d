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
	"github.com/shopspring/decimal"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

const stockRecordColumns = `id, site_id, name, category, unit, quantity_on_hand,
	reorder_threshold, max_capacity, unit_price, order_placed, created_at, updated_at`

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Create persiste un registro de stock.
func (r *StockRecordRepo) Create(ctx context.Context, rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockRecordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, nullable(rec.SiteID), rec.Name, rec.Category, rec.Unit, rec.QuantityOnHand,
		rec.ReorderThreshold, rec.MaxCapacity, rec.UnitPrice, rec.OrderPlaced, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *StockRecordRepo) GetByID(ctx context.Context, id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetForUpdate obtiene el registro y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRecordRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *StockRecordRepo) getOne(ctx context.Context, query, id string) (*entity.StockRecord, error) {
	rec, err := scanStockRecord(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// UpdateQuantity actualiza el snapshot; el CHECK de la tabla impide cantidades negativas.
func (r *StockRecordRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_records SET quantity_on_hand = $2, updated_at = $3 WHERE id = $1`,
		id, quantity, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetOrderPlaced marca o limpia el pedido de compra.
func (r *StockRecordRepo) SetOrderPlaced(ctx context.Context, id string, placed bool, updatedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE stock_records SET order_placed = $2, updated_at = $3 WHERE id = $1`,
		id, placed, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("set order placed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve los registros de una finca (siteID vacío = todas).
func (r *StockRecordRepo) List(ctx context.Context, siteID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records
		WHERE ($1::text IS NULL OR site_id = $1)
		ORDER BY name, id`
	return r.list(ctx, query, nullable(siteID))
}

// ListBelowThreshold devuelve los registros con stock menor al umbral de reorden.
func (r *StockRecordRepo) ListBelowThreshold(ctx context.Context, siteID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records
		WHERE quantity_on_hand < reorder_threshold
		  AND ($1::text IS NULL OR site_id = $1)
		ORDER BY name, id`
	return r.list(ctx, query, nullable(siteID))
}

func (r *StockRecordRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.StockRecord, 0)
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var siteID *string
	if err := row.Scan(
		&rec.ID, &siteID, &rec.Name, &rec.Category, &rec.Unit, &rec.QuantityOnHand,
		&rec.ReorderThreshold, &rec.MaxCapacity, &rec.UnitPrice, &rec.OrderPlaced, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.SiteID = deref(siteID)
	return &rec, nil
}
