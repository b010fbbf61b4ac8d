package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRecordRepository define el puerto de persistencia para los registros de stock (DIP).
// Las lecturas devuelven (nil, nil) si el registro no existe.
type StockRecordRepository interface {
	Create(ctx context.Context, record *entity.StockRecord) error
	GetByID(ctx context.Context, id string) (*entity.StockRecord, error)
	// GetForUpdate obtiene el registro y lo bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.StockRecord, error)
	// UpdateQuantity es de uso exclusivo del ledger de movimientos.
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal, updatedAt time.Time) error
	// SetOrderPlaced marca o limpia el pedido de compra del registro.
	SetOrderPlaced(ctx context.Context, id string, placed bool, updatedAt time.Time) error
	// List devuelve los registros de una finca (siteID vacío = todas), ordenados por nombre.
	List(ctx context.Context, siteID string) ([]*entity.StockRecord, error)
	// ListBelowThreshold devuelve los registros con stock menor a su umbral de reorden.
	ListBelowThreshold(ctx context.Context, siteID string) ([]*entity.StockRecord, error)
}
