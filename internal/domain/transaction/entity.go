package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType        = errors.New("tipo de transação inválido")
	ErrInvalidCategory    = errors.New("categoria inválida para o tipo de transação")
	ErrEmptyDescription   = errors.New("descrição é obrigatória")
	ErrNegativeAmount     = errors.New("valor não pode ser negativo")
	ErrEmptyDueDate       = errors.New("data de vencimento é obrigatória")
	ErrEmptyResponsible   = errors.New("responsável é obrigatório")
	ErrInvalidMethod      = errors.New("forma de pagamento inválida")
	ErrInvalidPeriodicity = errors.New("periodicidade inválida")
	ErrAlreadyPaid        = errors.New("não é possível cancelar uma transação já paga")
	ErrAlreadyCanceled    = errors.New("transação já está cancelada")
)

// Type define o tipo da transação
type Type string

const (
	TypeIncome  Type = "receita"
	TypeExpense Type = "despesa"
)

// Category define a categoria da transação
type Category string

const (
	// Categorias de receita
	CategorySale       Category = "venda"
	CategoryService    Category = "servico"
	CategoryInvestment Category = "investimento"
	CategoryOtherIn    Category = "outras_receitas"

	// Categorias de despesa
	CategorySupplier    Category = "fornecedor"
	CategoryPayroll     Category = "funcionario"
	CategoryRent        Category = "aluguel"
	CategoryEnergy      Category = "energia"
	CategoryWater       Category = "agua"
	CategoryInternet    Category = "internet"
	CategoryPhone       Category = "telefone"
	CategoryMarketing   Category = "marketing"
	CategoryMaintenance Category = "manutencao"
	CategoryTaxes       Category = "impostos"
	CategoryOtherOut    Category = "outras_despesas"
)

var incomeCategories = map[Category]bool{
	CategorySale:       true,
	CategoryService:    true,
	CategoryInvestment: true,
	CategoryOtherIn:    true,
}

var expenseCategories = map[Category]bool{
	CategorySupplier:    true,
	CategoryPayroll:     true,
	CategoryRent:        true,
	CategoryEnergy:      true,
	CategoryWater:       true,
	CategoryInternet:    true,
	CategoryPhone:       true,
	CategoryMarketing:   true,
	CategoryMaintenance: true,
	CategoryTaxes:       true,
	CategoryOtherOut:    true,
}

// ValidCategory verifica se a categoria pertence ao tipo informado
func ValidCategory(t Type, c Category) bool {
	switch t {
	case TypeIncome:
		return incomeCategories[c]
	case TypeExpense:
		return expenseCategories[c]
	}
	return false
}

// Status representa o estado da transação
type Status string

const (
	StatusPending  Status = "pendente"
	StatusPaid     Status = "pago"
	StatusOverdue  Status = "atrasado"
	StatusCanceled Status = "cancelado"
)

// PaymentMethod define a forma de pagamento da transação
type PaymentMethod string

const (
	MethodCash       PaymentMethod = "dinheiro"
	MethodCreditCard PaymentMethod = "cartao_credito"
	MethodDebitCard  PaymentMethod = "cartao_debito"
	MethodPix        PaymentMethod = "pix"
	MethodBoleto     PaymentMethod = "boleto"
	MethodTransfer   PaymentMethod = "transferencia"
)

// ValidPaymentMethod verifica se a forma de pagamento é aceita
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodDebitCard, MethodPix, MethodBoleto, MethodTransfer:
		return true
	}
	return false
}

// Periodicity define o intervalo de recorrência
type Periodicity string

const (
	PeriodicityMonthly    Periodicity = "mensal"
	PeriodicityBimonthly  Periodicity = "bimestral"
	PeriodicityQuarterly  Periodicity = "trimestral"
	PeriodicitySemiannual Periodicity = "semestral"
	PeriodicityAnnual     Periodicity = "anual"
)

// Months retorna o número de meses do intervalo de recorrência
func (p Periodicity) Months() int {
	switch p {
	case PeriodicityMonthly:
		return 1
	case PeriodicityBimonthly:
		return 2
	case PeriodicityQuarterly:
		return 3
	case PeriodicitySemiannual:
		return 6
	case PeriodicityAnnual:
		return 12
	}
	return 0
}

// Receipt representa o comprovante anexado à transação
type Receipt struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Installments representa os contadores de parcelamento
type Installments struct {
	Total   int `json:"total"`   // Total de parcelas
	Current int `json:"current"` // Parcela atual
}

// Metadata agrega referências externas da transação
type Metadata struct {
	OrderNumber   string `json:"order_number"`
	InvoiceNumber string `json:"invoice_number"`
	Barcode       string `json:"barcode"`
}

// Transaction representa um lançamento financeiro (receita ou despesa)
type Transaction struct {
	ID            string          `json:"id"`             // ID da transação
	Type          Type            `json:"type"`           // receita ou despesa
	Category      Category        `json:"category"`       // Categoria
	Description   string          `json:"description"`    // Descrição
	Amount        decimal.Decimal `json:"amount"`         // Valor
	DueDate       time.Time       `json:"due_date"`       // Data de vencimento
	PaidDate      *time.Time      `json:"paid_date"`      // Data de pagamento
	Status        Status          `json:"status"`         // Status
	PaymentMethod PaymentMethod   `json:"payment_method"` // Forma de pagamento
	Receipt       *Receipt        `json:"receipt"`        // Comprovante
	Installments  Installments    `json:"installments"`   // Parcelamento
	Recurrent     bool            `json:"recurrent"`      // Transação recorrente
	Periodicity   Periodicity     `json:"periodicity"`    // Intervalo de recorrência
	SaleID        string          `json:"sale_id"`        // Venda vinculada (opcional)
	ResponsibleID string          `json:"responsible_id"` // Usuário responsável
	Observations  string          `json:"observations"`   // Observações
	Metadata      Metadata        `json:"metadata"`       // Referências externas
	CreatedAt     time.Time       `json:"created_at"`     // Data de criação
	UpdatedAt     time.Time       `json:"updated_at"`     // Data de atualização
}

// NewTransaction cria uma nova transação pendente
func NewTransaction(txType Type, category Category, description string, amount decimal.Decimal, dueDate time.Time, method PaymentMethod, responsibleID string) (*Transaction, error) {
	if txType != TypeIncome && txType != TypeExpense {
		return nil, ErrInvalidType
	}
	if !ValidCategory(txType, category) {
		return nil, ErrInvalidCategory
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if dueDate.IsZero() {
		return nil, ErrEmptyDueDate
	}
	if !ValidPaymentMethod(method) {
		return nil, ErrInvalidMethod
	}
	if responsibleID == "" {
		return nil, ErrEmptyResponsible
	}

	now := time.Now()
	t := &Transaction{
		ID:            uuid.New().String(),
		Type:          txType,
		Category:      category,
		Description:   description,
		Amount:        amount,
		DueDate:       dueDate,
		Status:        StatusPending,
		PaymentMethod: method,
		Installments:  Installments{Total: 1, Current: 1},
		Periodicity:   PeriodicityMonthly,
		ResponsibleID: responsibleID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	t.RefreshOverdue(now)

	return t, nil
}

// RefreshOverdue escala pendente para atrasado quando o vencimento passou sem pagamento
func (t *Transaction) RefreshOverdue(now time.Time) {
	if t.PaidDate == nil && t.Status == StatusPending && t.DueDate.Before(now) {
		t.Status = StatusOverdue
	}
}

// RegisterPayment registra o pagamento da transação
func (t *Transaction) RegisterPayment(paidDate time.Time) error {
	if t.Status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}
	t.PaidDate = &paidDate
	t.Status = StatusPaid
	t.UpdatedAt = time.Now()
	return nil
}

// Cancel cancela a transação. Transações pagas não podem ser canceladas.
func (t *Transaction) Cancel() error {
	if t.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	t.Status = StatusCanceled
	t.UpdatedAt = time.Now()
	return nil
}

// NextInstallment gera a próxima parcela de uma transação recorrente já paga.
// Retorna nil quando não há parcela a gerar.
func (t *Transaction) NextInstallment() *Transaction {
	if !t.Recurrent || t.Status != StatusPaid {
		return nil
	}

	now := time.Now()
	next := *t
	next.ID = uuid.New().String()
	next.DueDate = t.DueDate.AddDate(0, t.Periodicity.Months(), 0)
	next.PaidDate = nil
	next.Status = StatusPending
	next.Receipt = nil
	next.CreatedAt = now
	next.UpdatedAt = now

	return &next
}
