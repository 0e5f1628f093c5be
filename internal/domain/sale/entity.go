package sale

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
)

var (
	ErrNoItems              = errors.New("venda deve possuir ao menos um item")
	ErrInvalidItemQuantity  = errors.New("quantidade do item deve ser maior que zero")
	ErrNegativeUnitPrice    = errors.New("preço unitário não pode ser negativo")
	ErrNegativeDiscount     = errors.New("desconto não pode ser negativo")
	ErrInvalidInstallments  = errors.New("número de parcelas deve ser maior que zero")
	ErrInvalidPaymentMethod = errors.New("forma de pagamento inválida")
	ErrEmptySalesman        = errors.New("vendedor é obrigatório")
	ErrEmptyCustomerName    = errors.New("nome do cliente é obrigatório")
	ErrInvalidTransition    = errors.New("transição de status inválida")
)

// Status representa o estado da venda
type Status string

const (
	StatusPending   Status = "pendente"
	StatusApproved  Status = "aprovada"
	StatusCanceled  Status = "cancelada"
	StatusDelivered Status = "entregue"
)

// PaymentStatus representa o estado do pagamento da venda
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pendente"
	PaymentApproved PaymentStatus = "aprovado"
	PaymentRefused  PaymentStatus = "recusado"
	PaymentRefunded PaymentStatus = "estornado"
)

// PaymentMethod define a forma de pagamento da venda
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "dinheiro"
	MethodCreditCard PaymentMethod = "cartao_credito"
	MethodDebitCard  PaymentMethod = "cartao_debito"
	MethodPix        PaymentMethod = "pix"
	MethodBoleto     PaymentMethod = "boleto"
)

// ValidPaymentMethod verifica se a forma de pagamento é aceita
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodPix, MethodBoleto:
		return true
	}
	return false
}

// CustomerSnapshot é a cópia dos dados do cliente capturada no momento da venda.
// Alterações posteriores no cadastro não afetam vendas já registradas.
type CustomerSnapshot struct {
	Name     string            `json:"name"`
	Document customer.Document `json:"document"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Address  customer.Address  `json:"address"`
}

// Item representa um item da venda
type Item struct {
	ProductID string          `json:"product_id"` // Referência ao produto
	Quantity  int             `json:"quantity"`   // Quantidade (>= 1)
	UnitPrice decimal.Decimal `json:"unit_price"` // Preço unitário
	Discount  decimal.Decimal `json:"discount"`   // Desconto do item
	Total     decimal.Decimal `json:"total"`      // Total do item
}

// Payment representa o bloco de pagamento da venda
type Payment struct {
	Method       PaymentMethod   `json:"method"`       // Forma de pagamento
	Status       PaymentStatus   `json:"status"`       // Status do pagamento
	Installments int             `json:"installments"` // Número de parcelas
	Total        decimal.Decimal `json:"total"`        // Valor total
	Discount     decimal.Decimal `json:"discount"`     // Desconto geral
}

// Invoice representa os metadados da nota fiscal da venda
type Invoice struct {
	Number    string     `json:"number"`
	Series    string     `json:"series"`
	AccessKey string     `json:"access_key"`
	IssuedAt  *time.Time `json:"issued_at"`
	XML       string     `json:"xml"`
	PDF       string     `json:"pdf"`
}

// Sale representa uma venda
type Sale struct {
	ID           string           `json:"id"`            // ID da venda
	Number       string           `json:"number"`        // Número sequencial AAAAMM#### (atribuído na primeira gravação)
	Customer     CustomerSnapshot `json:"customer"`      // Dados do cliente no momento da venda
	Items        []Item           `json:"items"`         // Itens da venda
	Payment      Payment          `json:"payment"`       // Bloco de pagamento
	Status       Status           `json:"status"`        // Status da venda
	SalesmanID   string           `json:"salesman_id"`   // Vendedor responsável
	Observations string           `json:"observations"`  // Observações
	DeliveryDate *time.Time       `json:"delivery_date"` // Data de entrega
	Invoice      *Invoice         `json:"invoice"`       // Nota fiscal
	CreatedAt    time.Time        `json:"created_at"`    // Data de criação
	UpdatedAt    time.Time        `json:"updated_at"`    // Data de atualização
}

// NewSale cria uma nova venda pendente
func NewSale(cust CustomerSnapshot, items []Item, payment Payment, salesmanID string) (*Sale, error) {
	if cust.Name == "" {
		return nil, ErrEmptyCustomerName
	}
	if salesmanID == "" {
		return nil, ErrEmptySalesman
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidItemQuantity
		}
		if item.UnitPrice.IsNegative() {
			return nil, ErrNegativeUnitPrice
		}
		if item.Discount.IsNegative() {
			return nil, ErrNegativeDiscount
		}
	}
	if !ValidPaymentMethod(payment.Method) {
		return nil, ErrInvalidPaymentMethod
	}
	if payment.Installments < 1 {
		return nil, ErrInvalidInstallments
	}
	if payment.Discount.IsNegative() {
		return nil, ErrNegativeDiscount
	}

	now := time.Now()
	s := &Sale{
		ID:         uuid.New().String(),
		Customer:   cust,
		Items:      items,
		Payment:    payment,
		Status:     StatusPending,
		SalesmanID: salesmanID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Payment.Status = PaymentPending
	s.ComputeTotals()

	return s, nil
}

// ComputeTotals recalcula o total de cada item e o valor total do pagamento:
// soma de (quantidade x preço unitário - desconto do item) menos o desconto geral.
func (s *Sale) ComputeTotals() decimal.Decimal {
	total := decimal.Zero
	for i, item := range s.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		s.Items[i].Total = lineTotal
		total = total.Add(lineTotal)
	}
	s.Payment.Total = total.Sub(s.Payment.Discount)
	return s.Payment.Total
}

// transitions define as mudanças de status permitidas
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusCanceled},
	StatusApproved: {StatusDelivered, StatusCanceled},
}

// CanTransition verifica se a mudança de status é permitida
func (s *Sale) CanTransition(to Status) bool {
	for _, allowed := range transitions[s.Status] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition aplica uma mudança de status validada
func (s *Sale) Transition(to Status) error {
	if !s.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.Status, to)
	}
	s.Status = to
	s.UpdatedAt = time.Now()
	return nil
}

// NumberPrefix retorna o prefixo AAAAMM do número da venda para a data informada
func NumberPrefix(t time.Time) string {
	return t.Format("200601")
}

// FormatNumber monta o número da venda a partir do prefixo e da sequência
func FormatNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}
