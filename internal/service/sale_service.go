package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/product"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
	"github.com/rmacedo/gestor-pme/internal/domain/user"
	"github.com/rmacedo/gestor-pme/pkg/logger"
)

// Erros de regra de negócio do fluxo de vendas
var (
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInactiveProduct   = errors.New("produto não está ativo")
	ErrInactiveCustomer  = errors.New("cliente não está ativo")
	ErrCreditExceeded    = errors.New("limite de crédito insuficiente")
	ErrNotAllowed        = errors.New("operação não permitida para o usuário")
)

// Actor identifica o usuário autenticado que executa a operação
type Actor struct {
	ID   string
	Role user.Role
}

// CanManageSales indica se o usuário pode operar sobre vendas de terceiros
func (a Actor) CanManageSales() bool {
	return a.Role == user.RoleAdmin || a.Role == user.RoleManager
}

// CreateSaleInput agrega os dados necessários para registrar uma venda
type CreateSaleInput struct {
	CustomerID   string
	Items        []sale.Item
	Payment      sale.Payment
	Observations string
	DeliveryDate *time.Time
}

// SaleService orquestra o fluxo de vendas: verificação e baixa de estoque,
// numeração sequencial e consumo de limite de crédito do cliente.
type SaleService struct {
	sales     sale.Repository
	products  product.Repository
	customers customer.Repository
	logger    logger.Logger
}

// NewSaleService cria uma nova instância de SaleService
func NewSaleService(sales sale.Repository, products product.Repository, customers customer.Repository, logger logger.Logger) *SaleService {
	return &SaleService{
		sales:     sales,
		products:  products,
		customers: customers,
		logger:    logger,
	}
}

// Create registra uma nova venda pendente. O estoque é verificado antes de
// qualquer gravação: se algum item não tiver saldo, nada é alterado. A baixa
// de estoque acontece apenas na aprovação.
func (s *SaleService) Create(ctx context.Context, actor Actor, input CreateSaleInput) (*sale.Sale, error) {
	cust, err := s.customers.FindByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !cust.IsActive() {
		return nil, fmt.Errorf("%w: %s", ErrInactiveCustomer, cust.Name)
	}

	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	snapshot := sale.CustomerSnapshot{
		Name:     cust.Name,
		Document: cust.Document,
		Email:    cust.Contact.Email,
		Phone:    cust.Contact.Phone,
		Address:  cust.Address,
	}

	newSale, err := sale.NewSale(snapshot, items, input.Payment, actor.ID)
	if err != nil {
		return nil, err
	}
	newSale.Observations = input.Observations
	newSale.DeliveryDate = input.DeliveryDate

	if err := s.VerifyStock(ctx, newSale.Items); err != nil {
		return nil, err
	}

	number, err := s.nextNumber(ctx, newSale.CreatedAt)
	if err != nil {
		return nil, err
	}
	newSale.Number = number

	if err := s.sales.Create(ctx, newSale); err != nil {
		return nil, err
	}

	s.logger.Info("venda registrada",
		"sale_id", newSale.ID,
		"number", newSale.Number,
		"total", newSale.Payment.Total.String())

	return newSale, nil
}

// FindByID busca uma venda, restringindo vendedores às próprias vendas
func (s *SaleService) FindByID(ctx context.Context, actor Actor, id string) (*sale.Sale, error) {
	found, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.canView(actor, found) {
		return nil, ErrNotAllowed
	}

	return found, nil
}

// List lista as vendas. Vendedores só enxergam as próprias vendas.
func (s *SaleService) List(ctx context.Context, actor Actor, filter sale.ListFilter, limit, offset int) ([]*sale.Sale, int, error) {
	if !actor.CanManageSales() {
		filter.SalesmanID = actor.ID
	}

	sales, err := s.sales.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.sales.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

// ChangeStatus aplica uma transição de status validada. A aprovação verifica
// o estoque novamente, efetua a baixa e consome o limite de crédito do
// cliente. Vendedores só podem cancelar as próprias vendas pendentes.
func (s *SaleService) ChangeStatus(ctx context.Context, actor Actor, id string, to sale.Status) (*sale.Sale, error) {
	found, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(actor, found, to); err != nil {
		return nil, err
	}

	if to == sale.StatusApproved {
		if err := s.approve(ctx, actor, found); err != nil {
			return nil, err
		}
	} else {
		if err := found.Transition(to); err != nil {
			return nil, err
		}
	}

	if err := s.sales.Update(ctx, found); err != nil {
		return nil, err
	}

	s.logger.Info("status da venda alterado",
		"sale_id", found.ID,
		"number", found.Number,
		"status", string(found.Status))

	return found, nil
}

// Report gera o relatório mensal de vendas
func (s *SaleService) Report(ctx context.Context, actor Actor, filter sale.ListFilter) ([]sale.ReportRow, error) {
	if !actor.CanManageSales() {
		filter.SalesmanID = actor.ID
	}

	return s.sales.Report(ctx, filter)
}

// VerifyStock verifica se todos os itens possuem saldo em estoque, sem alterar nada
func (s *SaleService) VerifyStock(ctx context.Context, items []sale.Item) error {
	for _, item := range items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if p.Status == product.StatusInactive {
			return fmt.Errorf("%w: %s", ErrInactiveProduct, p.Name)
		}
		if p.Quantity < item.Quantity {
			return fmt.Errorf("%w: %s (disponível: %d, solicitado: %d)",
				ErrInsufficientStock, p.Name, p.Quantity, item.Quantity)
		}
	}
	return nil
}

// approve executa a aprovação: valida o limite de crédito do cliente, efetua
// a baixa de estoque item a item e registra a compra
func (s *SaleService) approve(ctx context.Context, actor Actor, found *sale.Sale) error {
	if err := found.Transition(sale.StatusApproved); err != nil {
		return err
	}

	cust, err := s.customers.FindByDocument(ctx, found.Customer.Document.Number)
	if err != nil {
		return err
	}

	if !cust.VerifyCreditLimit(found.Payment.Total) {
		return fmt.Errorf("%w: disponível %s, necessário %s",
			ErrCreditExceeded,
			cust.CreditLimit.Available.StringFixed(2),
			found.Payment.Total.StringFixed(2))
	}

	if err := s.debitStock(ctx, actor, found); err != nil {
		return err
	}

	if err := cust.RegisterPurchase(found.Payment.Total); err != nil {
		return err
	}

	return s.customers.Update(ctx, cust)
}

// debitStock aplica uma movimentação de saída para cada item da venda
func (s *SaleService) debitStock(ctx context.Context, actor Actor, found *sale.Sale) error {
	for _, item := range found.Items {
		p, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}

		note := fmt.Sprintf("Venda #%s", found.Number)
		if err := p.ApplyMovement(product.MovementOut, item.Quantity, actor.ID, note); err != nil {
			if errors.Is(err, product.ErrInsufficientStock) {
				return fmt.Errorf("%w: %s (disponível: %d, solicitado: %d)",
					ErrInsufficientStock, p.Name, p.Quantity, item.Quantity)
			}
			return err
		}

		if err := s.products.Update(ctx, p); err != nil {
			return err
		}
	}

	return nil
}

// resolveItems completa o preço unitário dos itens a partir do cadastro de
// produtos quando não informado
func (s *SaleService) resolveItems(ctx context.Context, items []sale.Item) ([]sale.Item, error) {
	resolved := make([]sale.Item, len(items))
	for i, item := range items {
		if item.UnitPrice.IsZero() {
			p, err := s.products.FindByID(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			item.UnitPrice = p.SalePrice
		}
		resolved[i] = item
	}
	return resolved, nil
}

// nextNumber atribui o próximo número sequencial do período AAAAMM com base
// no maior número já gravado. Criações concorrentes no mesmo período contam
// com o índice único da coluna para rejeitar duplicatas.
func (s *SaleService) nextNumber(ctx context.Context, at time.Time) (string, error) {
	prefix := sale.NumberPrefix(at)

	last, err := s.sales.LastNumberForPeriod(ctx, prefix)
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" && len(last) > len(prefix) {
		n, err := strconv.Atoi(last[len(prefix):])
		if err != nil {
			return "", fmt.Errorf("número de venda inválido no período %s: %q", prefix, last)
		}
		seq = n + 1
	}

	return sale.FormatNumber(prefix, seq), nil
}

// canView indica se o usuário pode consultar a venda
func (s *SaleService) canView(actor Actor, found *sale.Sale) bool {
	return actor.CanManageSales() || found.SalesmanID == actor.ID
}

// authorizeTransition aplica a política de transição por cargo
func (s *SaleService) authorizeTransition(actor Actor, found *sale.Sale, to sale.Status) error {
	if actor.CanManageSales() {
		return nil
	}

	// Vendedor: apenas cancelamento das próprias vendas pendentes
	if found.SalesmanID != actor.ID {
		return ErrNotAllowed
	}
	if to != sale.StatusCanceled || found.Status != sale.StatusPending {
		return ErrNotAllowed
	}

	return nil
}
