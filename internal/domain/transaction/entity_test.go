package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
)

func newTestTransaction(t *testing.T, txType transaction.Type, category transaction.Category, due time.Time) *transaction.Transaction {
	t.Helper()

	tx, err := transaction.NewTransaction(
		txType,
		category,
		"Aluguel do galpão",
		decimal.NewFromInt(1500),
		due,
		transaction.MethodBoleto,
		"user-1",
	)
	require.NoError(t, err)

	return tx
}

func TestNewTransaction_CategoryByType(t *testing.T) {
	future := time.Now().AddDate(0, 1, 0)

	// Categoria de despesa em uma receita
	_, err := transaction.NewTransaction(transaction.TypeIncome, transaction.CategoryRent,
		"x", decimal.NewFromInt(10), future, transaction.MethodPix, "user-1")
	require.ErrorIs(t, err, transaction.ErrInvalidCategory)

	// Categoria de receita em uma despesa
	_, err = transaction.NewTransaction(transaction.TypeExpense, transaction.CategorySale,
		"x", decimal.NewFromInt(10), future, transaction.MethodPix, "user-1")
	require.ErrorIs(t, err, transaction.ErrInvalidCategory)

	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, future)
	require.Equal(t, transaction.StatusPending, tx.Status)
	require.Equal(t, transaction.Installments{Total: 1, Current: 1}, tx.Installments)
	require.Equal(t, transaction.PeriodicityMonthly, tx.Periodicity)
}

func TestNewTransaction_OverdueOnCreate(t *testing.T) {
	past := time.Now().AddDate(0, 0, -3)

	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryEnergy, past)
	require.Equal(t, transaction.StatusOverdue, tx.Status)
}

func TestRegisterPayment(t *testing.T) {
	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, time.Now().AddDate(0, 1, 0))

	paid := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	require.NoError(t, tx.RegisterPayment(paid))

	require.Equal(t, transaction.StatusPaid, tx.Status)
	require.NotNil(t, tx.PaidDate)
	require.True(t, tx.PaidDate.Equal(paid))
}

func TestRegisterPayment_ZeroDateUsesNow(t *testing.T) {
	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, time.Now().AddDate(0, 1, 0))

	require.NoError(t, tx.RegisterPayment(time.Time{}))
	require.NotNil(t, tx.PaidDate)
	require.WithinDuration(t, time.Now(), *tx.PaidDate, time.Minute)
}

func TestRegisterPayment_CanceledRejected(t *testing.T) {
	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, time.Now().AddDate(0, 1, 0))
	require.NoError(t, tx.Cancel())

	require.ErrorIs(t, tx.RegisterPayment(time.Now()), transaction.ErrAlreadyCanceled)
}

func TestCancel_PaidRejected(t *testing.T) {
	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, time.Now().AddDate(0, 1, 0))
	require.NoError(t, tx.RegisterPayment(time.Now()))

	require.ErrorIs(t, tx.Cancel(), transaction.ErrAlreadyPaid)
	require.Equal(t, transaction.StatusPaid, tx.Status)
}

func TestNextInstallment_MonthlyRecurrence(t *testing.T) {
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, due)
	tx.Recurrent = true
	require.NoError(t, tx.RegisterPayment(time.Now()))

	next := tx.NextInstallment()
	require.NotNil(t, next)
	require.NotEqual(t, tx.ID, next.ID)
	require.Equal(t, time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), next.DueDate)
	require.Equal(t, transaction.StatusPending, next.Status)
	require.Nil(t, next.PaidDate)
	require.Nil(t, next.Receipt)
	require.True(t, next.Amount.Equal(tx.Amount))
}

func TestNextInstallment_Periodicities(t *testing.T) {
	due := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		periodicity transaction.Periodicity
		wantMonth   time.Month
		wantYear    int
	}{
		{transaction.PeriodicityMonthly, time.February, 2024},
		{transaction.PeriodicityBimonthly, time.March, 2024},
		{transaction.PeriodicityQuarterly, time.April, 2024},
		{transaction.PeriodicitySemiannual, time.July, 2024},
		{transaction.PeriodicityAnnual, time.January, 2025},
	}

	for _, tt := range tests {
		t.Run(string(tt.periodicity), func(t *testing.T) {
			tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, due)
			tx.Recurrent = true
			tx.Periodicity = tt.periodicity
			require.NoError(t, tx.RegisterPayment(time.Now()))

			next := tx.NextInstallment()
			require.NotNil(t, next)
			require.Equal(t, tt.wantYear, next.DueDate.Year())
			require.Equal(t, tt.wantMonth, next.DueDate.Month())
			require.Equal(t, 15, next.DueDate.Day())
		})
	}
}

func TestNextInstallment_NotGenerated(t *testing.T) {
	due := time.Now().AddDate(0, 1, 0)

	// Não recorrente
	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, due)
	require.NoError(t, tx.RegisterPayment(time.Now()))
	require.Nil(t, tx.NextInstallment())

	// Recorrente mas não paga
	tx = newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, due)
	tx.Recurrent = true
	require.Nil(t, tx.NextInstallment())
}

func TestRefreshOverdue(t *testing.T) {
	due := time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)

	tx := newTestTransaction(t, transaction.TypeExpense, transaction.CategoryRent, time.Now().AddDate(0, 1, 0))
	tx.DueDate = due
	tx.Status = transaction.StatusPending

	// Antes do vencimento nada muda
	tx.RefreshOverdue(due.AddDate(0, 0, -1))
	require.Equal(t, transaction.StatusPending, tx.Status)

	tx.RefreshOverdue(due.AddDate(0, 0, 1))
	require.Equal(t, transaction.StatusOverdue, tx.Status)

	// Transações pagas não atrasam
	paid := newTestTransaction(t, transaction.TypeIncome, transaction.CategorySale, time.Now().AddDate(0, 1, 0))
	require.NoError(t, paid.RegisterPayment(time.Now()))
	paid.RefreshOverdue(time.Now().AddDate(1, 0, 0))
	require.Equal(t, transaction.StatusPaid, paid.Status)
}
