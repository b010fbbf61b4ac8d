package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/domain/repository"
)

var _ repository.PayrollRepository = (*PayrollRepo)(nil)

const payrollColumns = `id, employee_id, pay_date, period_start, period_end, base_salary, overtime,
	bonuses, deductions, total_payable, status, notes, created_at, updated_at`

// PayrollRepo roles de pago sobre PostgreSQL.
type PayrollRepo struct {
	q Querier
}

// NewPayrollRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPayrollRepository(q Querier) *PayrollRepo {
	return &PayrollRepo{q: q}
}

func (r *PayrollRepo) Create(ctx context.Context, l *entity.PayrollLine) error {
	query := `INSERT INTO payroll_lines (` + payrollColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.EmployeeID, l.PayDate, l.PeriodStart, l.PeriodEnd, l.BaseSalary, l.Overtime,
		l.Bonuses, l.Deductions, l.TotalPayable, l.Status, l.Notes, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create payroll line: %w", err)
	}
	return nil
}

func (r *PayrollRepo) GetByID(ctx context.Context, id string) (*entity.PayrollLine, error) {
	return r.getOne(ctx, `SELECT `+payrollColumns+` FROM payroll_lines WHERE id = $1`, id)
}

func (r *PayrollRepo) GetForUpdate(ctx context.Context, id string) (*entity.PayrollLine, error) {
	return r.getOne(ctx, `SELECT `+payrollColumns+` FROM payroll_lines WHERE id = $1 FOR UPDATE`, id)
}

func (r *PayrollRepo) getOne(ctx context.Context, query, id string) (*entity.PayrollLine, error) {
	var l entity.PayrollLine
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.PayDate, &l.PeriodStart, &l.PeriodEnd, &l.BaseSalary, &l.Overtime,
		&l.Bonuses, &l.Deductions, &l.TotalPayable, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payroll line: %w", err)
	}
	return &l, nil
}

// Update reescribe montos, total, estado y notas.
func (r *PayrollRepo) Update(ctx context.Context, l *entity.PayrollLine) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payroll_lines
		SET base_salary = $2, overtime = $3, bonuses = $4, deductions = $5,
		    total_payable = $6, status = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		l.ID, l.BaseSalary, l.Overtime, l.Bonuses, l.Deductions, l.TotalPayable, l.Status, l.Notes, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update payroll line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEmployee historial de roles del empleado.
func (r *PayrollRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.PayrollLine, error) {
	rows, err := r.q.Query(ctx, `SELECT `+payrollColumns+` FROM payroll_lines
		WHERE employee_id = $1
		ORDER BY pay_date DESC, id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list payroll lines: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.PayrollLine, 0)
	for rows.Next() {
		var l entity.PayrollLine
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.PayDate, &l.PeriodStart, &l.PeriodEnd, &l.BaseSalary, &l.Overtime,
			&l.Bonuses, &l.Deductions, &l.TotalPayable, &l.Status, &l.Notes, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payroll line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
