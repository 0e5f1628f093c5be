package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/product"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/internal/service"
)

type saleEnv struct {
	svc       *service.SaleService
	sales     *memSaleRepo
	products  *memProductRepo
	customers *memCustomerRepo
}

func newSaleEnv(t *testing.T) *saleEnv {
	t.Helper()

	env := &saleEnv{
		sales:     newMemSaleRepo(),
		products:  newMemProductRepo(),
		customers: newMemCustomerRepo(),
	}
	env.svc = service.NewSaleService(env.sales, env.products, env.customers, nopLogger{})
	return env
}

func (e *saleEnv) seedProduct(t *testing.T, code string, quantity int, salePrice decimal.Decimal) *product.Product {
	t.Helper()

	p, err := product.NewProduct(code, "Produto "+code, "papelaria", product.UnitUN,
		decimal.NewFromInt(5), salePrice, 2, 100)
	require.NoError(t, err)

	if quantity > 0 {
		require.NoError(t, p.ApplyMovement(product.MovementIn, quantity, "user-1", "Estoque inicial"))
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *saleEnv) seedCustomer(t *testing.T, creditLimit decimal.Decimal) *customer.Customer {
	t.Helper()

	c, err := customer.NewCustomer(customer.PersonTypeIndividual, "Maria Souza",
		customer.Document{Type: customer.DocumentCPF, Number: "12345678901"},
		customer.Contact{Email: "maria@example.com", Phone: "1133334444"},
		customer.Address{City: "São Paulo", State: "SP"})
	require.NoError(t, err)
	require.NoError(t, c.SetCreditLimit(creditLimit))
	require.NoError(t, e.customers.Create(context.Background(), c))
	return c
}

func saleInput(customerID string, items ...sale.Item) service.CreateSaleInput {
	return service.CreateSaleInput{
		CustomerID: customerID,
		Items:      items,
		Payment:    sale.Payment{Method: sale.MethodPix, Installments: 1},
	}
}

var (
	admin    = service.Actor{ID: "admin-1", Role: user.RoleAdmin}
	seller   = service.Actor{ID: "vend-1", Role: user.RoleSalesman}
	seller2  = service.Actor{ID: "vend-2", Role: user.RoleSalesman}
	tenReais = decimal.NewFromInt(10)
)

func TestSaleServiceCreate(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, tenReais)

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 3, UnitPrice: tenReais}))
	require.NoError(t, err)

	require.Equal(t, sale.StatusPending, s.Status)
	require.True(t, s.Payment.Total.Equal(decimal.NewFromInt(30)))
	require.Equal(t, cust.Name, s.Customer.Name)
	require.Equal(t, cust.Document.Number, s.Customer.Document.Number)

	// A criação não movimenta o estoque
	stored, err := env.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 10, stored.Quantity)
}

func TestSaleServiceCreateResolvesUnitPrice(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, decimal.NewFromFloat(9.90))

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 2}))
	require.NoError(t, err)

	require.True(t, s.Items[0].UnitPrice.Equal(decimal.NewFromFloat(9.90)))
	require.True(t, s.Payment.Total.Equal(decimal.NewFromFloat(19.80)))
}

func TestSaleServiceSequentialNumbers(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 100, tenReais)

	first, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	second, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	prefix := sale.NumberPrefix(first.CreatedAt)
	require.Equal(t, prefix+"0001", first.Number)
	require.Equal(t, prefix+"0002", second.Number)
}

func TestSaleServiceCreateInsufficientStock(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 2, tenReais)

	_, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 5, UnitPrice: tenReais}))
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	// Nada é gravado quando a verificação falha
	count, err := env.sales.Count(context.Background(), sale.ListFilter{})
	require.NoError(t, err)
	require.Zero(t, count)

	stored, err := env.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.Quantity)
	require.Len(t, stored.Movements, 1)
}

func TestSaleServiceCreateInactiveCustomer(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	cust.Deactivate()
	require.NoError(t, env.customers.Update(context.Background(), cust))
	p := env.seedProduct(t, "P001", 10, tenReais)

	_, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.ErrorIs(t, err, service.ErrInactiveCustomer)
}

func TestSaleServiceCreateInactiveProduct(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, tenReais)
	p.Deactivate()
	require.NoError(t, env.products.Update(context.Background(), p))

	_, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.ErrorIs(t, err, service.ErrInactiveProduct)
}

func TestSaleServiceApprove(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, tenReais)

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 3, UnitPrice: tenReais}))
	require.NoError(t, err)

	approved, err := env.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusApproved)
	require.NoError(t, err)
	require.Equal(t, sale.StatusApproved, approved.Status)

	// A aprovação efetua a baixa de estoque com a movimentação registrada
	stored, err := env.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 7, stored.Quantity)
	require.Len(t, stored.Movements, 2)
	require.Equal(t, product.MovementOut, stored.Movements[1].Type)
	require.Equal(t, "Venda #"+s.Number, stored.Movements[1].Note)

	// E consome o limite de crédito do cliente
	storedCust, err := env.customers.FindByID(context.Background(), cust.ID)
	require.NoError(t, err)
	require.True(t, storedCust.CreditLimit.Used.Equal(decimal.NewFromInt(30)))
	require.True(t, storedCust.CreditLimit.Available.Equal(decimal.NewFromInt(970)))
	require.Equal(t, 1, storedCust.Metadata.TotalPurchases)
	require.True(t, storedCust.Metadata.TotalPurchaseValue.Equal(decimal.NewFromInt(30)))
}

func TestSaleServiceApproveCreditExceeded(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(20))
	p := env.seedProduct(t, "P001", 10, tenReais)

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 3, UnitPrice: tenReais}))
	require.NoError(t, err)

	_, err = env.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusApproved)
	require.ErrorIs(t, err, service.ErrCreditExceeded)

	// A falha de crédito acontece antes de qualquer baixa de estoque
	stored, err := env.products.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, 10, stored.Quantity)

	persisted, err := env.sales.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.Equal(t, sale.StatusPending, persisted.Status)
}

func TestSaleServiceApproveInsufficientStock(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 5, tenReais)

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 5, UnitPrice: tenReais}))
	require.NoError(t, err)

	// Outra venda consome o estoque entre a criação e a aprovação
	other, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 3, UnitPrice: tenReais}))
	require.NoError(t, err)
	_, err = env.svc.ChangeStatus(context.Background(), admin, other.ID, sale.StatusApproved)
	require.NoError(t, err)

	_, err = env.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusApproved)
	require.ErrorIs(t, err, service.ErrInsufficientStock)

	persisted, err := env.sales.FindByID(context.Background(), s.ID)
	require.NoError(t, err)
	require.Equal(t, sale.StatusPending, persisted.Status)
}

func TestSaleServiceInvalidTransition(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, tenReais)

	s, err := env.svc.Create(context.Background(), admin,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	// pendente -> entregue não é permitido
	_, err = env.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusDelivered)
	require.ErrorIs(t, err, sale.ErrInvalidTransition)
}

func TestSaleServiceSalesmanScope(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 100, tenReais)

	mine, err := env.svc.Create(context.Background(), seller,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	theirs, err := env.svc.Create(context.Background(), seller2,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	// O vendedor só enxerga as próprias vendas
	listed, total, err := env.svc.List(context.Background(), seller, sale.ListFilter{}, 50, 0)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, listed, 1)
	require.Equal(t, mine.ID, listed[0].ID)

	_, err = env.svc.FindByID(context.Background(), seller, theirs.ID)
	require.ErrorIs(t, err, service.ErrNotAllowed)

	// E não pode aprovar nem cancelar vendas de terceiros
	_, err = env.svc.ChangeStatus(context.Background(), seller, mine.ID, sale.StatusApproved)
	require.ErrorIs(t, err, service.ErrNotAllowed)

	_, err = env.svc.ChangeStatus(context.Background(), seller, theirs.ID, sale.StatusCanceled)
	require.ErrorIs(t, err, service.ErrNotAllowed)

	// Cancelar a própria venda pendente é permitido
	canceled, err := env.svc.ChangeStatus(context.Background(), seller, mine.ID, sale.StatusCanceled)
	require.NoError(t, err)
	require.Equal(t, sale.StatusCanceled, canceled.Status)
}

func TestSaleServiceSalesmanCannotCancelApproved(t *testing.T) {
	env := newSaleEnv(t)
	cust := env.seedCustomer(t, decimal.NewFromInt(1000))
	p := env.seedProduct(t, "P001", 10, tenReais)

	s, err := env.svc.Create(context.Background(), seller,
		saleInput(cust.ID, sale.Item{ProductID: p.ID, Quantity: 1, UnitPrice: tenReais}))
	require.NoError(t, err)

	_, err = env.svc.ChangeStatus(context.Background(), admin, s.ID, sale.StatusApproved)
	require.NoError(t, err)

	_, err = env.svc.ChangeStatus(context.Background(), seller, s.ID, sale.StatusCanceled)
	require.ErrorIs(t, err, service.ErrNotAllowed)
}
