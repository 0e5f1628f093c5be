package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
	"github.com/rmacedo/gestor-pme/internal/service"
)

type financeEnv struct {
	svc          *service.FinanceService
	transactions *memTransactionRepo
	sales        *memSaleRepo
	customers    *memCustomerRepo
}

func newFinanceEnv(t *testing.T) *financeEnv {
	t.Helper()

	env := &financeEnv{
		transactions: newMemTransactionRepo(),
		sales:        newMemSaleRepo(),
		customers:    newMemCustomerRepo(),
	}
	env.svc = service.NewFinanceService(env.transactions, env.sales, env.customers, nopLogger{})
	return env
}

func (e *financeEnv) seedTransaction(t *testing.T, txType transaction.Type, category transaction.Category, amount decimal.Decimal) *transaction.Transaction {
	t.Helper()

	tx, err := transaction.NewTransaction(txType, category, "Lançamento de teste",
		amount, time.Now().AddDate(0, 0, 10), transaction.MethodBoleto, "user-1")
	require.NoError(t, err)
	require.NoError(t, e.transactions.Create(context.Background(), tx))
	return tx
}

func TestFinanceServiceRegisterPayment(t *testing.T) {
	env := newFinanceEnv(t)
	tx := env.seedTransaction(t, transaction.TypeExpense, transaction.CategorySupplier, decimal.NewFromInt(250))

	paidAt := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	result, err := env.svc.RegisterPayment(context.Background(), tx.ID, paidAt,
		&transaction.Receipt{Name: "boleto.pdf", URL: "https://files/boleto.pdf", Type: "pdf"})
	require.NoError(t, err)

	require.Equal(t, transaction.StatusPaid, result.Paid.Status)
	require.NotNil(t, result.Paid.PaidDate)
	require.True(t, result.Paid.PaidDate.Equal(paidAt))
	require.NotNil(t, result.Paid.Receipt)
	require.Equal(t, "boleto.pdf", result.Paid.Receipt.Name)
	require.Nil(t, result.Next)

	persisted, err := env.transactions.FindByID(context.Background(), tx.ID)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusPaid, persisted.Status)
}

func TestFinanceServiceRecurrentPaymentGeneratesNextInstallment(t *testing.T) {
	env := newFinanceEnv(t)

	tx, err := transaction.NewTransaction(transaction.TypeExpense, transaction.CategoryRent,
		"Aluguel da loja", decimal.NewFromInt(1800),
		time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), transaction.MethodTransfer, "user-1")
	require.NoError(t, err)
	tx.Recurrent = true
	tx.Periodicity = transaction.PeriodicityMonthly
	require.NoError(t, env.transactions.Create(context.Background(), tx))

	result, err := env.svc.RegisterPayment(context.Background(), tx.ID, time.Now(), nil)
	require.NoError(t, err)

	require.NotNil(t, result.Next)
	require.NotEqual(t, tx.ID, result.Next.ID)
	require.Equal(t, transaction.StatusPending, result.Next.Status)
	require.Nil(t, result.Next.PaidDate)
	require.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), result.Next.DueDate)
	require.True(t, result.Next.Amount.Equal(tx.Amount))

	// A próxima parcela é persistida
	persisted, err := env.transactions.FindByID(context.Background(), result.Next.ID)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusPending, persisted.Status)
}

func TestFinanceServicePaymentReleasesCredit(t *testing.T) {
	env := newFinanceEnv(t)
	saleEnvFixture := &saleEnv{sales: env.sales, products: newMemProductRepo(), customers: env.customers}
	saleEnvFixture.svc = service.NewSaleService(env.sales, saleEnvFixture.products, env.customers, nopLogger{})

	cust := saleEnvFixture.seedCustomer(t, decimal.NewFromInt(1000))
	p := saleEnvFixture.seedProduct(t, "P001", 10, decimal.NewFromInt(100))

	s, err := saleEnvFixture.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 3, UnitPrice: decimal.NewFromInt(100)}))
	require.NoError(t, err)
	_, err = saleEnvFixture.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusApproved)
	require.NoError(t, err)

	before, err := env.customers.FindByID(context.Background(), cust.ID)
	require.NoError(t, err)
	require.True(t, before.CreditLimit.Used.Equal(decimal.NewFromInt(300)))

	tx, err := transaction.NewTransaction(transaction.TypeIncome, transaction.CategorySale,
		"Recebimento da venda "+s.Number, s.Payment.Total,
		time.Now().AddDate(0, 0, 30), transaction.MethodBoleto, "user-1")
	require.NoError(t, err)
	tx.SaleID = s.ID
	require.NoError(t, env.transactions.Create(context.Background(), tx))

	_, err = env.svc.RegisterPayment(context.Background(), tx.ID, time.Now(), nil)
	require.NoError(t, err)

	after, err := env.customers.FindByID(context.Background(), cust.ID)
	require.NoError(t, err)
	require.True(t, after.CreditLimit.Used.IsZero())
	require.True(t, after.CreditLimit.Available.Equal(decimal.NewFromInt(1000)))
}

func TestFinanceServicePaymentWithoutSaleKeepsCredit(t *testing.T) {
	env := newFinanceEnv(t)
	tx := env.seedTransaction(t, transaction.TypeIncome, transaction.CategoryService, decimal.NewFromInt(500))

	result, err := env.svc.RegisterPayment(context.Background(), tx.ID, time.Now(), nil)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusPaid, result.Paid.Status)
}

func TestFinanceServiceCancel(t *testing.T) {
	env := newFinanceEnv(t)
	tx := env.seedTransaction(t, transaction.TypeExpense, transaction.CategorySupplier, decimal.NewFromInt(90))

	canceled, err := env.svc.Cancel(context.Background(), tx.ID)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusCanceled, canceled.Status)

	persisted, err := env.transactions.FindByID(context.Background(), tx.ID)
	require.NoError(t, err)
	require.Equal(t, transaction.StatusCanceled, persisted.Status)
}

func TestFinanceServiceCancelPaid(t *testing.T) {
	env := newFinanceEnv(t)
	tx := env.seedTransaction(t, transaction.TypeExpense, transaction.CategorySupplier, decimal.NewFromInt(90))

	_, err := env.svc.RegisterPayment(context.Background(), tx.ID, time.Now(), nil)
	require.NoError(t, err)

	_, err = env.svc.Cancel(context.Background(), tx.ID)
	require.ErrorIs(t, err, transaction.ErrAlreadyPaid)
}

func TestFinanceServiceBalance(t *testing.T) {
	env := newFinanceEnv(t)

	income := env.seedTransaction(t, transaction.TypeIncome, transaction.CategorySale, decimal.NewFromInt(1000))
	expense := env.seedTransaction(t, transaction.TypeExpense, transaction.CategorySupplier, decimal.NewFromInt(400))
	env.seedTransaction(t, transaction.TypeExpense, transaction.CategoryRent, decimal.NewFromInt(999)) // pendente, fora do balanço

	_, err := env.svc.RegisterPayment(context.Background(), income.ID, time.Now(), nil)
	require.NoError(t, err)
	_, err = env.svc.RegisterPayment(context.Background(), expense.ID, time.Now(), nil)
	require.NoError(t, err)

	balance, err := env.svc.Balance(context.Background(), transaction.BalanceFilter{})
	require.NoError(t, err)
	require.True(t, balance.Income.Equal(decimal.NewFromInt(1000)))
	require.True(t, balance.Expense.Equal(decimal.NewFromInt(400)))
	require.True(t, balance.Total.Equal(decimal.NewFromInt(600)))
}
