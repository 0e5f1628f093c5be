package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/product"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
)

var errNotFound = errors.New("não encontrado")

// nopLogger descarta todas as mensagens
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

// memProductRepo é uma implementação em memória de product.Repository
type memProductRepo struct {
	products map[string]*product.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: map[string]*product.Product{}}
}

func cloneProduct(p *product.Product) *product.Product {
	c := *p
	c.Movements = append([]product.Movement(nil), p.Movements...)
	return &c
}

func (r *memProductRepo) Create(_ context.Context, p *product.Product) error {
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneProduct(p), nil
}

func (r *memProductRepo) FindByCode(_ context.Context, code string) (*product.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return cloneProduct(p), nil
		}
	}
	return nil, errNotFound
}

func (r *memProductRepo) List(_ context.Context, _ product.ListFilter, _, _ int) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, cloneProduct(p))
	}
	return out, nil
}

func (r *memProductRepo) Count(_ context.Context, _ product.ListFilter) (int, error) {
	return len(r.products), nil
}

func (r *memProductRepo) Update(_ context.Context, p *product.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return errNotFound
	}
	r.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *memProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, err := r.FindByCode(context.Background(), code)
	return err == nil, nil
}

func (r *memProductRepo) FindBelowMinimum(_ context.Context) ([]*product.Product, error) {
	out := []*product.Product{}
	for _, p := range r.products {
		if p.IsBelowMinimum() {
			out = append(out, cloneProduct(p))
		}
	}
	return out, nil
}

// memCustomerRepo é uma implementação em memória de customer.Repository
type memCustomerRepo struct {
	customers map[string]*customer.Customer
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: map[string]*customer.Customer{}}
}

func cloneCustomer(c *customer.Customer) *customer.Customer {
	clone := *c
	return &clone
}

func (r *memCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *memCustomerRepo) FindByID(_ context.Context, id string) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneCustomer(c), nil
}

func (r *memCustomerRepo) FindByDocument(_ context.Context, document string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Document.Number == document {
			return cloneCustomer(c), nil
		}
	}
	return nil, errNotFound
}

func (r *memCustomerRepo) List(_ context.Context, _ customer.ListFilter, _, _ int) ([]*customer.Customer, error) {
	out := make([]*customer.Customer, 0, len(r.customers))
	for _, c := range r.customers {
		out = append(out, cloneCustomer(c))
	}
	return out, nil
}

func (r *memCustomerRepo) Count(_ context.Context, _ customer.ListFilter) (int, error) {
	return len(r.customers), nil
}

func (r *memCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	if _, ok := r.customers[c.ID]; !ok {
		return errNotFound
	}
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *memCustomerRepo) UpdateStatus(_ context.Context, id string, status customer.Status) error {
	c, ok := r.customers[id]
	if !ok {
		return errNotFound
	}
	c.Status = status
	return nil
}

func (r *memCustomerRepo) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	_, err := r.FindByDocument(ctx, document)
	return err == nil, nil
}

func (r *memCustomerRepo) Report(_ context.Context, _ customer.ReportFilter) ([]customer.ReportRow, error) {
	return nil, nil
}

// memSaleRepo é uma implementação em memória de sale.Repository
type memSaleRepo struct {
	sales map[string]*sale.Sale
}

func newMemSaleRepo() *memSaleRepo {
	return &memSaleRepo{sales: map[string]*sale.Sale{}}
}

func cloneSale(s *sale.Sale) *sale.Sale {
	clone := *s
	clone.Items = append([]sale.Item(nil), s.Items...)
	return &clone
}

func (r *memSaleRepo) Create(_ context.Context, s *sale.Sale) error {
	for _, existing := range r.sales {
		if existing.Number == s.Number {
			return errors.New("duplicate key")
		}
	}
	r.sales[s.ID] = cloneSale(s)
	return nil
}

func (r *memSaleRepo) FindByID(_ context.Context, id string) (*sale.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneSale(s), nil
}

func (r *memSaleRepo) FindByNumber(_ context.Context, number string) (*sale.Sale, error) {
	for _, s := range r.sales {
		if s.Number == number {
			return cloneSale(s), nil
		}
	}
	return nil, errNotFound
}

func (r *memSaleRepo) List(_ context.Context, filter sale.ListFilter, _, _ int) ([]*sale.Sale, error) {
	out := []*sale.Sale{}
	for _, s := range r.sales {
		if filter.SalesmanID != "" && s.SalesmanID != filter.SalesmanID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		out = append(out, cloneSale(s))
	}
	return out, nil
}

func (r *memSaleRepo) Count(ctx context.Context, filter sale.ListFilter) (int, error) {
	out, _ := r.List(ctx, filter, 0, 0)
	return len(out), nil
}

func (r *memSaleRepo) Update(_ context.Context, s *sale.Sale) error {
	if _, ok := r.sales[s.ID]; !ok {
		return errNotFound
	}
	r.sales[s.ID] = cloneSale(s)
	return nil
}

func (r *memSaleRepo) LastNumberForPeriod(_ context.Context, prefix string) (string, error) {
	numbers := []string{}
	for _, s := range r.sales {
		if strings.HasPrefix(s.Number, prefix) {
			numbers = append(numbers, s.Number)
		}
	}
	if len(numbers) == 0 {
		return "", nil
	}
	sort.Strings(numbers)
	return numbers[len(numbers)-1], nil
}

func (r *memSaleRepo) Report(_ context.Context, _ sale.ListFilter) ([]sale.ReportRow, error) {
	return nil, nil
}

// memTransactionRepo é uma implementação em memória de transaction.Repository
type memTransactionRepo struct {
	transactions map[string]*transaction.Transaction
}

func newMemTransactionRepo() *memTransactionRepo {
	return &memTransactionRepo{transactions: map[string]*transaction.Transaction{}}
}

func cloneTransaction(t *transaction.Transaction) *transaction.Transaction {
	clone := *t
	return &clone
}

func (r *memTransactionRepo) Create(_ context.Context, t *transaction.Transaction) error {
	r.transactions[t.ID] = cloneTransaction(t)
	return nil
}

func (r *memTransactionRepo) FindByID(_ context.Context, id string) (*transaction.Transaction, error) {
	t, ok := r.transactions[id]
	if !ok {
		return nil, errNotFound
	}
	return cloneTransaction(t), nil
}

func (r *memTransactionRepo) List(_ context.Context, _ transaction.ListFilter, _, _ int) ([]*transaction.Transaction, error) {
	out := make([]*transaction.Transaction, 0, len(r.transactions))
	for _, t := range r.transactions {
		out = append(out, cloneTransaction(t))
	}
	return out, nil
}

func (r *memTransactionRepo) Count(_ context.Context, _ transaction.ListFilter) (int, error) {
	return len(r.transactions), nil
}

func (r *memTransactionRepo) Update(_ context.Context, t *transaction.Transaction) error {
	if _, ok := r.transactions[t.ID]; !ok {
		return errNotFound
	}
	r.transactions[t.ID] = cloneTransaction(t)
	return nil
}

func (r *memTransactionRepo) Balance(_ context.Context, _ transaction.BalanceFilter) (transaction.Balance, error) {
	balance := transaction.Balance{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range r.transactions {
		if t.Status != transaction.StatusPaid {
			continue
		}
		switch t.Type {
		case transaction.TypeIncome:
			balance.Income = balance.Income.Add(t.Amount)
		case transaction.TypeExpense:
			balance.Expense = balance.Expense.Add(t.Amount)
		}
	}
	balance.Total = balance.Income.Sub(balance.Expense)
	return balance, nil
}

func (r *memTransactionRepo) Breakdown(_ context.Context, _ transaction.BalanceFilter) ([]transaction.TypeBreakdown, error) {
	return nil, nil
}
