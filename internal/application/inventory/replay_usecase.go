package inventory

import (
	"context"

	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/inventory"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplayReport compara el snapshot de un registro con la suma de sus movimientos.
type ReplayReport struct {
	StockRecordID string
	Name          string
	Snapshot      decimal.Decimal
	Replayed      decimal.Decimal
	Movements     int
}

// Consistent indica si el snapshot coincide con el replay.
func (r ReplayReport) Consistent() bool { return r.Snapshot.Equal(r.Replayed) }

// ReplayUseCase verifica el invariante de replay del ledger (usado por ledgerctl verify).
type ReplayUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
}

// NewReplayUseCase construye el verificador. stockRepo solo se usa para listar registros.
func NewReplayUseCase(txRunner TxRunner, stockRepo repository.StockRecordRepository) *ReplayUseCase {
	return &ReplayUseCase{txRunner: txRunner, stockRepo: stockRepo}
}

// Verify reproduce los movimientos de un registro desde cero. Snapshot y movimientos se leen
// en la misma transacción con la fila bloqueada, así un movimiento concurrente no aparece a medias.
func (uc *ReplayUseCase) Verify(ctx context.Context, stockRecordID string) (*ReplayReport, error) {
	var report *ReplayReport
	err := uc.txRunner.RunInventory(ctx, func(
		stockRepo repository.StockRecordRepository,
		movRepo repository.MovementRepository,
		_ repository.AlertRepository,
	) error {
		record, err := stockRepo.GetForUpdate(ctx, stockRecordID)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		movs, err := movRepo.ListByStockRecord(ctx, stockRecordID)
		if err != nil {
			return err
		}
		report = &ReplayReport{
			StockRecordID: record.ID,
			Name:          record.Name,
			Snapshot:      record.QuantityOnHand,
			Replayed:      inventory.Replay(movs),
			Movements:     len(movs),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// VerifyAll verifica todos los registros de una finca (siteID vacío = todas).
func (uc *ReplayUseCase) VerifyAll(ctx context.Context, siteID string) ([]ReplayReport, error) {
	records, err := uc.stockRepo.List(ctx, siteID)
	if err != nil {
		return nil, err
	}
	reports := make([]ReplayReport, 0, len(records))
	for _, rec := range records {
		rep, err := uc.Verify(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	return reports, nil
}
