package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCode         = errors.New("código do produto não pode ser vazio")
	ErrEmptyName         = errors.New("nome do produto não pode ser vazio")
	ErrEmptyCategory     = errors.New("categoria é obrigatória")
	ErrInvalidUnit       = errors.New("unidade de medida inválida")
	ErrNegativePrice     = errors.New("preço não pode ser negativo")
	ErrInvalidQuantity   = errors.New("quantidade deve ser maior que zero")
	ErrInvalidMovement   = errors.New("tipo de movimentação inválido")
	ErrInsufficientStock = errors.New("quantidade insuficiente em estoque")
)

// Unit define a unidade de medida do produto
type Unit string

const (
	UnitUN  Unit = "un"
	UnitKG  Unit = "kg"
	UnitL   Unit = "l"
	UnitM   Unit = "m"
	UnitM2  Unit = "m2"
	UnitM3  Unit = "m3"
	UnitCX  Unit = "cx"
	UnitPCT Unit = "pct"
)

// ValidUnit verifica se a unidade informada é uma das unidades aceitas
func ValidUnit(u Unit) bool {
	switch u {
	case UnitUN, UnitKG, UnitL, UnitM, UnitM2, UnitM3, UnitCX, UnitPCT:
		return true
	}
	return false
}

// Status representa o estado do produto
type Status string

const (
	StatusActive     Status = "ativo"
	StatusInactive   Status = "inativo"
	StatusOutOfStock Status = "em_falta"
)

// MovementType define a direção de uma movimentação de estoque
type MovementType string

const (
	MovementIn  MovementType = "entrada"
	MovementOut MovementType = "saida"
)

// Movement representa uma movimentação de estoque (registro imutável)
type Movement struct {
	Type          MovementType `json:"type"`           // Direção (entrada/saída)
	Quantity      int          `json:"quantity"`       // Quantidade movimentada
	Date          time.Time    `json:"date"`           // Data da movimentação
	ResponsibleID string       `json:"responsible_id"` // Usuário responsável
	Note          string       `json:"note"`           // Observação
}

// Supplier representa o fornecedor do produto
type Supplier struct {
	Name    string `json:"name"`    // Nome do fornecedor
	CNPJ    string `json:"cnpj"`    // CNPJ do fornecedor
	Contact string `json:"contact"` // Contato
}

// Product representa um produto do catálogo
type Product struct {
	ID            string          `json:"id"`             // ID do Produto
	Code          string          `json:"code"`           // Código único
	Name          string          `json:"name"`           // Nome
	Description   string          `json:"description"`    // Descrição
	Category      string          `json:"category"`       // Categoria
	PurchasePrice decimal.Decimal `json:"purchase_price"` // Preço de compra
	SalePrice     decimal.Decimal `json:"sale_price"`     // Preço de venda
	Quantity      int             `json:"quantity"`       // Quantidade em estoque
	MinStock      int             `json:"min_stock"`      // Estoque mínimo
	MaxStock      int             `json:"max_stock"`      // Estoque máximo
	Unit          Unit            `json:"unit"`           // Unidade de medida
	Supplier      Supplier        `json:"supplier"`       // Fornecedor
	Status        Status          `json:"status"`         // Status do produto
	Movements     []Movement      `json:"movements"`      // Histórico de movimentações
	CreatedAt     time.Time       `json:"created_at"`     // Data de criação
	UpdatedAt     time.Time       `json:"updated_at"`     // Data de atualização
}

// NewProduct cria um novo produto
func NewProduct(code, name, category string, unit Unit, purchasePrice, salePrice decimal.Decimal, minStock, maxStock int) (*Product, error) {
	if code == "" {
		return nil, ErrEmptyCode
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if category == "" {
		return nil, ErrEmptyCategory
	}
	if !ValidUnit(unit) {
		return nil, ErrInvalidUnit
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	now := time.Now()
	return &Product{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          name,
		Category:      category,
		PurchasePrice: purchasePrice,
		SalePrice:     salePrice,
		MinStock:      minStock,
		MaxStock:      maxStock,
		Unit:          unit,
		Status:        StatusActive,
		Movements:     []Movement{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyMovement registra uma movimentação e ajusta a quantidade em estoque.
// Saídas são verificadas contra a quantidade disponível no momento da chamada.
func (p *Product) ApplyMovement(movType MovementType, quantity int, responsibleID, note string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	switch movType {
	case MovementIn:
		p.Quantity += quantity
	case MovementOut:
		if p.Quantity < quantity {
			return ErrInsufficientStock
		}
		p.Quantity -= quantity
	default:
		return ErrInvalidMovement
	}

	p.Movements = append(p.Movements, Movement{
		Type:          movType,
		Quantity:      quantity,
		Date:          time.Now(),
		ResponsibleID: responsibleID,
		Note:          note,
	})

	p.refreshStatus()
	p.UpdatedAt = time.Now()

	return nil
}

// refreshStatus recalcula o status a partir da quantidade em estoque.
// Estoque abaixo do mínimo não altera o status, apenas quantidade zero.
func (p *Product) refreshStatus() {
	if p.Quantity == 0 {
		p.Status = StatusOutOfStock
	} else {
		p.Status = StatusActive
	}
}

// IsActive verifica se o produto está ativo
func (p *Product) IsActive() bool {
	return p.Status == StatusActive
}

// IsBelowMinimum verifica se a quantidade está abaixo do estoque mínimo
func (p *Product) IsBelowMinimum() bool {
	return p.Quantity <= p.MinStock
}

// StockValue calcula o valor total em estoque (quantidade x preço de compra)
func (p *Product) StockValue() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// Update atualiza os dados cadastrais do produto (a quantidade só muda via movimentação)
func (p *Product) Update(name, description, category string, unit Unit, purchasePrice, salePrice decimal.Decimal, minStock, maxStock int, supplier Supplier) error {
	if name == "" {
		return ErrEmptyName
	}
	if category == "" {
		return ErrEmptyCategory
	}
	if !ValidUnit(unit) {
		return ErrInvalidUnit
	}
	if purchasePrice.IsNegative() || salePrice.IsNegative() {
		return ErrNegativePrice
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.Unit = unit
	p.PurchasePrice = purchasePrice
	p.SalePrice = salePrice
	p.MinStock = minStock
	p.MaxStock = maxStock
	p.Supplier = supplier
	p.UpdatedAt = time.Now()

	return nil
}

// Deactivate desativa o produto
func (p *Product) Deactivate() {
	p.Status = StatusInactive
	p.UpdatedAt = time.Now()
}
