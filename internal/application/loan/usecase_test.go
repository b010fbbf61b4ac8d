package loan_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bananera-ledger/internal/application/loan"
	"github.com/jhoicas/bananera-ledger/internal/application/ports"
	"github.com/jhoicas/bananera-ledger/internal/domain"
	"github.com/jhoicas/bananera-ledger/internal/domain/entity"
	"github.com/jhoicas/bananera-ledger/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intPtr(n int) *int { return &n }

func newLoan(t *testing.T, principal string, count int) (*loan.UseCase, *entity.Loan) {
	t.Helper()
	store := memory.New()
	uc := loan.NewUseCase(store, store.Loans(), nil, nil, nil, nil)
	l, err := uc.Create(context.Background(), loan.CreateInput{
		EmployeeID: "emp-7", Principal: d(principal), InstallmentCount: count, Reason: "anticipo",
	})
	require.NoError(t, err)
	return uc, l
}

func TestRegisterPayment_Boundary(t *testing.T) {
	uc, l := newLoan(t, "300", 6)
	ctx := context.Background()

	got, err := uc.RegisterPayment(ctx, l.ID, d("250"), intPtr(5))
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusActive, got.Status)
	assert.Equal(t, 5, got.InstallmentsPaid)

	got, err = uc.RegisterPayment(ctx, l.ID, d("50"), nil)
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusPaid, got.Status)
	assert.True(t, got.AmountPaid.Equal(d("300")))
	assert.Equal(t, 5, got.InstallmentsPaid)

	_, err = uc.RegisterPayment(ctx, l.ID, d("1"), nil)
	assert.ErrorIs(t, err, domain.ErrOverpaymentRejected)

	after, err := uc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, after.AmountPaid.Equal(d("300")))
	assert.Equal(t, entity.LoanStatusPaid, after.Status)
}

func TestRegisterPayment_Rejections(t *testing.T) {
	uc, l := newLoan(t, "100", 2)
	ctx := context.Background()

	_, err := uc.RegisterPayment(ctx, l.ID, d("0"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.RegisterPayment(ctx, l.ID, d("10"), intPtr(3))
	assert.ErrorIs(t, err, domain.ErrInvalidInstallmentCount)
	_, err = uc.RegisterPayment(ctx, "nope", d("10"), nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.IsZero())
	assert.Zero(t, got.InstallmentsPaid)
}

func TestUpdateInstallments(t *testing.T) {
	uc, l := newLoan(t, "100", 4)
	ctx := context.Background()

	got, err := uc.UpdateInstallments(ctx, l.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.InstallmentsPaid)

	_, err = uc.UpdateInstallments(ctx, l.ID, 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInstallmentCount)
	_, err = uc.UpdateInstallments(ctx, l.ID, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInstallmentCount)
}

func TestCreate_Validation(t *testing.T) {
	store := memory.New()
	uc := loan.NewUseCase(store, store.Loans(), nil, nil, nil, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, loan.CreateInput{EmployeeID: "e", Principal: d("0"), InstallmentCount: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, loan.CreateInput{EmployeeID: "e", Principal: d("10"), InstallmentCount: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInstallmentCount)
	_, err = uc.Create(ctx, loan.CreateInput{Principal: d("10"), InstallmentCount: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPayment_ConcurrentNeverOverpays(t *testing.T) {
	uc, l := newLoan(t, "100", 10)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.RegisterPayment(ctx, l.ID, d("10"), nil)
		}()
	}
	wg.Wait()

	got, err := uc.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.True(t, got.AmountPaid.Equal(d("100")))
	assert.Equal(t, entity.LoanStatusPaid, got.Status)
}

// stepClock avanza un minuto en cada lectura.
type stepClock struct {
	mu sync.Mutex
	at time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.at = c.at.Add(time.Minute)
	return c.at
}

var _ ports.Clock = (*stepClock)(nil)

func TestListByEmployee(t *testing.T) {
	store := memory.New()
	clock := &stepClock{at: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	uc := loan.NewUseCase(store, store.Loans(), nil, clock, nil, nil)
	ctx := context.Background()

	first, err := uc.Create(ctx, loan.CreateInput{EmployeeID: "emp-7", Principal: d("200"), InstallmentCount: 2})
	require.NoError(t, err)
	second, err := uc.Create(ctx, loan.CreateInput{EmployeeID: "emp-7", Principal: d("90"), InstallmentCount: 1})
	require.NoError(t, err)
	_, err = uc.Create(ctx, loan.CreateInput{EmployeeID: "emp-8", Principal: d("50"), InstallmentCount: 1})
	require.NoError(t, err)

	_, err = uc.RegisterPayment(ctx, second.ID, d("90"), nil)
	require.NoError(t, err)

	list, err := uc.ListByEmployee(ctx, "emp-7")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, entity.LoanStatusPaid, list[0].Status)
	assert.True(t, list[0].Outstanding().IsZero())
	assert.Equal(t, first.ID, list[1].ID)
	assert.True(t, list[1].Outstanding().Equal(d("200")))

	_, err = uc.ListByEmployee(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
