package http

import (
	"github.com/jhoicas/bananera-ledger/internal/application/dto"
	appinventory "github.com/jhoicas/bananera-ledger/internal/application/inventory"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	domaininventory "github.com/jhoicas/bananera-ledger/internal/domain/inventory"
)

func toStockRecordResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ID:               r.ID,
		SiteID:           r.SiteID,
		Name:             r.Name,
		Category:         r.Category,
		Unit:             r.Unit,
		QuantityOnHand:   r.QuantityOnHand,
		ReorderThreshold: r.ReorderThreshold,
		MaxCapacity:      r.MaxCapacity,
		UnitPrice:        r.UnitPrice,
		Level:            string(domaininventory.ClassifyLevel(r.QuantityOnHand, r.ReorderThreshold)),
		OrderPlaced:      r.OrderPlaced,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toMovementResponse(m *entity.MovementEvent) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		Sequence:      m.Sequence,
		StockRecordID: m.StockRecordID,
		Kind:          m.Kind,
		Amount:        m.Amount,
		OccurredAt:    m.OccurredAt,
		ActorID:       m.ActorID,
		Note:          m.Note,
	}
}

func toAlertResponse(a *entity.Alert) dto.AlertResponse {
	return dto.AlertResponse{
		ID:             a.ID,
		StockRecordID:  a.StockRecordID,
		SiteID:         a.SiteID,
		Category:       a.Category,
		Severity:       a.Severity,
		Title:          a.Title,
		Message:        a.Message,
		Acknowledged:   a.Acknowledged,
		AcknowledgedAt: a.AcknowledgedAt,
		CreatedAt:      a.CreatedAt,
	}
}

func toMovementResultResponse(res *appinventory.MovementResult) dto.MovementResultResponse {
	out := dto.MovementResultResponse{Record: toStockRecordResponse(res.Record)}
	if res.Movement != nil {
		m := toMovementResponse(res.Movement)
		out.Movement = &m
	}
	if res.Alert != nil {
		a := toAlertResponse(res.Alert)
		out.Alert = &a
	}
	return out
}

func toPayrollLineResponse(p *entity.PayrollLine) dto.PayrollLineResponse {
	return dto.PayrollLineResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		PayDate:      p.PayDate,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
		BaseSalary:   p.BaseSalary,
		Overtime:     p.Overtime,
		Bonuses:      p.Bonuses,
		Deductions:   p.Deductions,
		TotalPayable: p.TotalPayable,
		Status:       p.Status,
		Notes:        p.Notes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toLoanResponse(l *entity.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:               l.ID,
		EmployeeID:       l.EmployeeID,
		Principal:        l.Principal,
		AmountPaid:       l.AmountPaid,
		Outstanding:      l.Outstanding(),
		InstallmentCount: l.InstallmentCount,
		InstallmentsPaid: l.InstallmentsPaid,
		Status:           l.Status,
		Reason:           l.Reason,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
