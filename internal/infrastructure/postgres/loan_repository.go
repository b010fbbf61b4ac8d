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

var _ repository.LoanRepository = (*LoanRepo)(nil)

const loanColumns = `id, employee_id, principal, amount_paid, installment_count, installments_paid,
	status, reason, created_at, updated_at`

// LoanRepo préstamos a empleados sobre PostgreSQL.
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

func (r *LoanRepo) Create(ctx context.Context, l *entity.Loan) error {
	query := `INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.EmployeeID, l.Principal, l.AmountPaid, l.InstallmentCount, l.InstallmentsPaid,
		l.Status, l.Reason, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create loan: %w", err)
	}
	return nil
}

func (r *LoanRepo) GetByID(ctx context.Context, id string) (*entity.Loan, error) {
	return r.getOne(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id)
}

func (r *LoanRepo) GetForUpdate(ctx context.Context, id string) (*entity.Loan, error) {
	return r.getOne(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1 FOR UPDATE`, id)
}

func (r *LoanRepo) getOne(ctx context.Context, query, id string) (*entity.Loan, error) {
	var l entity.Loan
	err := r.q.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.EmployeeID, &l.Principal, &l.AmountPaid, &l.InstallmentCount, &l.InstallmentsPaid,
		&l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// Update persiste pago acumulado, cuotas y estado.
func (r *LoanRepo) Update(ctx context.Context, l *entity.Loan) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE loans
		SET amount_paid = $2, installments_paid = $3, status = $4, updated_at = $5
		WHERE id = $1`,
		l.ID, l.AmountPaid, l.InstallmentsPaid, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByEmployee préstamos del empleado.
func (r *LoanRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*entity.Loan, error) {
	rows, err := r.q.Query(ctx, `SELECT `+loanColumns+` FROM loans
		WHERE employee_id = $1
		ORDER BY created_at DESC, id`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Loan, 0)
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(
			&l.ID, &l.EmployeeID, &l.Principal, &l.AmountPaid, &l.InstallmentCount, &l.InstallmentsPaid,
			&l.Status, &l.Reason, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
