package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/product"
)

// ProductSupplierRequest representa a requisição de fornecedor do produto
type ProductSupplierRequest struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Contact string `json:"contact"`
}

// ProductRequest representa a requisição de criação de produto
type ProductRequest struct {
	Code          string                 `json:"code" binding:"required"`
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category" binding:"required"`
	PurchasePrice decimal.Decimal        `json:"purchase_price"`
	SalePrice     decimal.Decimal        `json:"sale_price"`
	Quantity      int                    `json:"quantity"`
	MinStock      int                    `json:"min_stock"`
	MaxStock      int                    `json:"max_stock"`
	Unit          product.Unit           `json:"unit" binding:"required"`
	Supplier      ProductSupplierRequest `json:"supplier"`
}

// ProductUpdateRequest representa a requisição de atualização de produto
type ProductUpdateRequest struct {
	Name          string                 `json:"name" binding:"required"`
	Description   string                 `json:"description"`
	Category      string                 `json:"category" binding:"required"`
	PurchasePrice decimal.Decimal        `json:"purchase_price"`
	SalePrice     decimal.Decimal        `json:"sale_price"`
	MinStock      int                    `json:"min_stock"`
	MaxStock      int                    `json:"max_stock"`
	Unit          product.Unit           `json:"unit" binding:"required"`
	Supplier      ProductSupplierRequest `json:"supplier"`
}

// MovementRequest representa a requisição de movimentação de estoque
type MovementRequest struct {
	Type     product.MovementType `json:"type" binding:"required"`
	Quantity int                  `json:"quantity" binding:"required,gt=0"`
	Note     string               `json:"note"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Quantity      int             `json:"quantity"`
	MinStock      int             `json:"min_stock"`
	MaxStock      int             `json:"max_stock"`
	Unit          product.Unit    `json:"unit"`
	Supplier      product.Supplier `json:"supplier"`
	Status        product.Status  `json:"status"`
	BelowMinimum  bool            `json:"below_minimum"`
	StockValue    decimal.Decimal `json:"stock_value"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementResponse representa uma movimentação do histórico de estoque
type MovementResponse struct {
	Type          product.MovementType `json:"type"`
	Quantity      int                  `json:"quantity"`
	Date          time.Time            `json:"date"`
	ResponsibleID string               `json:"responsible_id"`
	Note          string               `json:"note"`
}

// ToProductResponse converte um produto do domínio para DTO
func ToProductResponse(p *product.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		Unit:          p.Unit,
		Supplier:      p.Supplier,
		Status:        p.Status,
		BelowMinimum:  p.IsBelowMinimum(),
		StockValue:    p.StockValue(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO
func ToProductListResponse(products []*product.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(p)
	}
	return responses
}

// ToMovementListResponse converte o histórico de movimentações para DTO
func ToMovementListResponse(movements []product.Movement) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = MovementResponse{
			Type:          m.Type,
			Quantity:      m.Quantity,
			Date:          m.Date,
			ResponsibleID: m.ResponsibleID,
			Note:          m.Note,
		}
	}
	return responses
}

// Supplier converte a requisição de fornecedor para o domínio
func (r ProductSupplierRequest) Supplier() product.Supplier {
	return product.Supplier{
		Name:    r.Name,
		CNPJ:    r.CNPJ,
		Contact: r.Contact,
	}
}
