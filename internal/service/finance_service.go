package service

import (
	"context"
	"time"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// PaymentResult agrega a transação paga e a próxima parcela gerada, quando houver
type PaymentResult struct {
	Paid *transaction.Transaction
	Next *transaction.Transaction
}

// FinanceService orquestra o fluxo financeiro: pagamento com geração de
// recorrência e liberação de crédito de vendas vinculadas.
type FinanceService struct {
	transactions transaction.Repository
	sales        sale.Repository
	customers    customer.Repository
	logger       logger.Logger
}

// NewFinanceService cria uma nova instância de FinanceService
func NewFinanceService(transactions transaction.Repository, sales sale.Repository, customers customer.Repository, logger logger.Logger) *FinanceService {
	return &FinanceService{
		transactions: transactions,
		sales:        sales,
		customers:    customers,
		logger:       logger,
	}
}

// RegisterPayment registra o pagamento de uma transação. Transações
// recorrentes geram automaticamente a próxima parcela, com o vencimento
// deslocado pela periodicidade. Receitas vinculadas a uma venda liberam o
// limite de crédito consumido pelo cliente.
func (s *FinanceService) RegisterPayment(ctx context.Context, id string, paidDate time.Time, receipt *transaction.Receipt) (*PaymentResult, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.RegisterPayment(paidDate); err != nil {
		return nil, err
	}
	if receipt != nil {
		t.Receipt = receipt
	}

	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}

	result := &PaymentResult{Paid: t}

	if next := t.NextInstallment(); next != nil {
		if err := s.transactions.Create(ctx, next); err != nil {
			return nil, err
		}
		result.Next = next

		s.logger.Info("próxima parcela gerada",
			"transaction_id", t.ID,
			"next_id", next.ID,
			"due_date", next.DueDate.Format("2006-01-02"))
	}

	if t.Type == transaction.TypeIncome && t.SaleID != "" {
		if err := s.releaseCredit(ctx, t); err != nil {
			// A liberação de crédito não desfaz o pagamento já registrado
			s.logger.Warn("falha ao liberar crédito do cliente",
				"transaction_id", t.ID,
				"sale_id", t.SaleID,
				"error", err.Error())
		}
	}

	s.logger.Info("pagamento registrado",
		"transaction_id", t.ID,
		"amount", t.Amount.String())

	return result, nil
}

// Cancel cancela uma transação. Transações pagas não podem ser canceladas.
func (s *FinanceService) Cancel(ctx context.Context, id string) (*transaction.Transaction, error) {
	t, err := s.transactions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := t.Cancel(); err != nil {
		return nil, err
	}

	if err := s.transactions.Update(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Balance calcula o balanço das transações pagas na janela informada
func (s *FinanceService) Balance(ctx context.Context, filter transaction.BalanceFilter) (transaction.Balance, error) {
	return s.transactions.Balance(ctx, filter)
}

// Breakdown agrupa as transações pagas por tipo e categoria
func (s *FinanceService) Breakdown(ctx context.Context, filter transaction.BalanceFilter) ([]transaction.TypeBreakdown, error) {
	return s.transactions.Breakdown(ctx, filter)
}

// releaseCredit devolve ao cliente o limite consumido pela venda vinculada
func (s *FinanceService) releaseCredit(ctx context.Context, t *transaction.Transaction) error {
	linked, err := s.sales.FindByID(ctx, t.SaleID)
	if err != nil {
		return err
	}

	cust, err := s.customers.FindByDocument(ctx, linked.Customer.Document.Number)
	if err != nil {
		return err
	}

	if err := cust.ReleaseCredit(t.Amount); err != nil {
		return err
	}

	return s.customers.Update(ctx, cust)
}
