package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName           = errors.New("nome não pode ser vazio")
	ErrEmptyDocument       = errors.New("documento não pode ser vazio")
	ErrInvalidPersonType   = errors.New("tipo de cliente inválido")
	ErrInvalidDocumentType = errors.New("tipo de documento inválido")
	ErrEmptyEmail          = errors.New("email é obrigatório")
	ErrEmptyPhone          = errors.New("telefone é obrigatório")
	ErrNegativeAmount      = errors.New("valor não pode ser negativo")
)

// PersonType define o tipo de pessoa (física ou jurídica)
type PersonType string

const (
	PersonTypeIndividual   PersonType = "fisica"
	PersonTypeOrganization PersonType = "juridica"
)

// DocumentType define o tipo de documento do cliente
type DocumentType string

const (
	DocumentCPF  DocumentType = "cpf"
	DocumentCNPJ DocumentType = "cnpj"
)

// Status representa o estado do cliente
type Status string

const (
	StatusActive   Status = "ativo"
	StatusInactive Status = "inativo"
	StatusBlocked  Status = "bloqueado"
)

// PaymentMethod define a forma de pagamento padrão do cliente
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "dinheiro"
	PaymentCreditCard PaymentMethod = "cartao_credito"
	PaymentDebitCard  PaymentMethod = "cartao_debito"
	PaymentPix        PaymentMethod = "pix"
	PaymentBoleto     PaymentMethod = "boleto"
)

// Document representa o documento de identificação do cliente
type Document struct {
	Type   DocumentType `json:"type"`   // cpf ou cnpj
	Number string       `json:"number"` // Número do documento (único)
}

// Contact representa o bloco de contato do cliente
type Contact struct {
	Email       string `json:"email"`        // Email
	Phone       string `json:"phone"`        // Telefone fixo
	MobilePhone string `json:"mobile_phone"` // Celular
	WhatsApp    bool   `json:"whatsapp"`     // Celular é WhatsApp
}

// Address representa o endereço do cliente
type Address struct {
	ZipCode    string `json:"zip_code"`   // CEP
	Street     string `json:"street"`     // Logradouro
	Number     string `json:"number"`     // Número
	Complement string `json:"complement"` // Complemento
	District   string `json:"district"`   // Bairro
	City       string `json:"city"`       // Cidade
	State      string `json:"state"`      // UF
}

// CreditLimit representa o envelope de crédito do cliente
type CreditLimit struct {
	Granted   decimal.Decimal `json:"granted"`   // Limite concedido
	Used      decimal.Decimal `json:"used"`      // Limite utilizado
	Available decimal.Decimal `json:"available"` // Limite disponível (concedido - utilizado)
}

// PaymentTerms representa as condições de pagamento padrão
type PaymentTerms struct {
	DefaultTermDays int           `json:"default_term_days"` // Prazo padrão em dias
	DefaultMethod   PaymentMethod `json:"default_method"`    // Forma de pagamento padrão
}

// PurchaseMetadata agrega o histórico de compras do cliente
type PurchaseMetadata struct {
	LastPurchaseAt     *time.Time      `json:"last_purchase_at"`     // Data da última compra
	TotalPurchases     int             `json:"total_purchases"`      // Quantidade de compras
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"` // Valor total comprado
	AverageTicket      decimal.Decimal `json:"average_ticket"`       // Ticket médio
}

// Customer representa um cliente no sistema
type Customer struct {
	ID            string           `json:"id"`             // ID do Cliente
	PersonType    PersonType       `json:"person_type"`    // Pessoa física ou jurídica
	Name          string           `json:"name"`           // Nome/Razão Social
	TradeName     string           `json:"trade_name"`     // Nome Fantasia
	Document      Document         `json:"document"`       // CPF/CNPJ
	StateDocument string           `json:"state_document"` // Inscrição Estadual
	Contact       Contact          `json:"contact"`        // Bloco de contato
	Address       Address          `json:"address"`        // Endereço
	SalesmanID    string           `json:"salesman_id"`    // Vendedor responsável
	Status        Status           `json:"status"`         // Status do cliente
	CreditLimit   CreditLimit      `json:"credit_limit"`   // Envelope de crédito
	PaymentTerms  PaymentTerms     `json:"payment_terms"`  // Condições de pagamento
	Metadata      PurchaseMetadata `json:"metadata"`       // Histórico de compras
	Observations  string           `json:"observations"`   // Observações
	CreatedAt     time.Time        `json:"created_at"`     // Data de criação
	UpdatedAt     time.Time        `json:"updated_at"`     // Data de atualização
}

// NewCustomer cria um novo cliente
func NewCustomer(personType PersonType, name string, document Document, contact Contact, address Address) (*Customer, error) {
	if personType != PersonTypeIndividual && personType != PersonTypeOrganization {
		return nil, ErrInvalidPersonType
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if document.Number == "" {
		return nil, ErrEmptyDocument
	}
	if document.Type != DocumentCPF && document.Type != DocumentCNPJ {
		return nil, ErrInvalidDocumentType
	}
	if contact.Email == "" {
		return nil, ErrEmptyEmail
	}
	if contact.Phone == "" {
		return nil, ErrEmptyPhone
	}

	now := time.Now()
	return &Customer{
		ID:         uuid.New().String(),
		PersonType: personType,
		Name:       name,
		Document:   document,
		Contact:    contact,
		Address:    address,
		Status:     StatusActive,
		PaymentTerms: PaymentTerms{
			DefaultTermDays: 30,
			DefaultMethod:   PaymentBoleto,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// refreshAvailable recalcula o limite disponível a partir do concedido e utilizado
func (c *Customer) refreshAvailable() {
	c.CreditLimit.Available = c.CreditLimit.Granted.Sub(c.CreditLimit.Used)
}

// SetCreditLimit define o limite de crédito concedido
func (c *Customer) SetCreditLimit(granted decimal.Decimal) error {
	if granted.IsNegative() {
		return ErrNegativeAmount
	}
	c.CreditLimit.Granted = granted
	c.refreshAvailable()
	c.UpdatedAt = time.Now()
	return nil
}

// VerifyCreditLimit verifica se há limite disponível para o valor informado
func (c *Customer) VerifyCreditLimit(amount decimal.Decimal) bool {
	return c.CreditLimit.Available.GreaterThanOrEqual(amount)
}

// RegisterPurchase atualiza as métricas do cliente e consome limite após uma compra
func (c *Customer) RegisterPurchase(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	now := time.Now()
	c.Metadata.LastPurchaseAt = &now
	c.Metadata.TotalPurchases++
	c.Metadata.TotalPurchaseValue = c.Metadata.TotalPurchaseValue.Add(amount)
	c.Metadata.AverageTicket = c.Metadata.TotalPurchaseValue.Div(decimal.NewFromInt(int64(c.Metadata.TotalPurchases)))

	c.CreditLimit.Used = c.CreditLimit.Used.Add(amount)
	c.refreshAvailable()
	c.UpdatedAt = now

	return nil
}

// ReleaseCredit libera limite utilizado após um pagamento (nunca fica negativo)
func (c *Customer) ReleaseCredit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	c.CreditLimit.Used = c.CreditLimit.Used.Sub(amount)
	if c.CreditLimit.Used.IsNegative() {
		c.CreditLimit.Used = decimal.Zero
	}
	c.refreshAvailable()
	c.UpdatedAt = time.Now()

	return nil
}

// IsActive verifica se o cliente está ativo
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Activate ativa o cliente
func (c *Customer) Activate() {
	c.Status = StatusActive
	c.UpdatedAt = time.Now()
}

// Deactivate desativa o cliente
func (c *Customer) Deactivate() {
	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
}

// Block bloqueia o cliente
func (c *Customer) Block() {
	c.Status = StatusBlocked
	c.UpdatedAt = time.Now()
}

// Update atualiza os dados cadastrais do cliente
func (c *Customer) Update(name, tradeName, stateDocument string, contact Contact, address Address, salesmanID string, terms PaymentTerms, observations string) error {
	if name == "" {
		return ErrEmptyName
	}
	if contact.Email == "" {
		return ErrEmptyEmail
	}

	c.Name = name
	c.TradeName = tradeName
	c.StateDocument = stateDocument
	c.Contact = contact
	c.Address = address
	c.SalesmanID = salesmanID
	c.PaymentTerms = terms
	c.Observations = observations
	c.UpdatedAt = time.Now()

	return nil
}
