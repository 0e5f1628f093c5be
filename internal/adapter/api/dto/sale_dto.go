package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/sale"
)

// SaleItemRequest representa um item na requisição de venda
type SaleItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
}

// SalePaymentRequest representa o bloco de pagamento na requisição de venda
type SalePaymentRequest struct {
	Method       sale.PaymentMethod `json:"method" binding:"required"`
	Installments int                `json:"installments"`
	Discount     decimal.Decimal    `json:"discount"`
}

// SaleRequest representa a requisição de criação de venda
type SaleRequest struct {
	CustomerID   string             `json:"customer_id" binding:"required"`
	Items        []SaleItemRequest  `json:"items" binding:"required,min=1"`
	Payment      SalePaymentRequest `json:"payment" binding:"required"`
	Observations string             `json:"observations"`
	DeliveryDate *time.Time         `json:"delivery_date"`
}

// SaleStatusRequest representa a requisição de mudança de status da venda
type SaleStatusRequest struct {
	Status sale.Status `json:"status" binding:"required"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"number"`
	Customer     sale.CustomerSnapshot `json:"customer"`
	Items        []sale.Item           `json:"items"`
	Payment      sale.Payment          `json:"payment"`
	Status       sale.Status           `json:"status"`
	SalesmanID   string                `json:"salesman_id"`
	Observations string                `json:"observations"`
	DeliveryDate *time.Time            `json:"delivery_date"`
	Invoice      *sale.Invoice         `json:"invoice,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// SaleReportResponse representa uma linha do relatório mensal de vendas
type SaleReportResponse struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Total    int             `json:"total"`
	Value    decimal.Decimal `json:"value"`
	Approved int             `json:"approved"`
	Canceled int             `json:"canceled"`
}

// ToSaleResponse converte uma venda do domínio para DTO
func ToSaleResponse(s *sale.Sale) SaleResponse {
	return SaleResponse{
		ID:           s.ID,
		Number:       s.Number,
		Customer:     s.Customer,
		Items:        s.Items,
		Payment:      s.Payment,
		Status:       s.Status,
		SalesmanID:   s.SalesmanID,
		Observations: s.Observations,
		DeliveryDate: s.DeliveryDate,
		Invoice:      s.Invoice,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas do domínio para DTO
func ToSaleListResponse(sales []*sale.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(sales))
	for i, s := range sales {
		responses[i] = ToSaleResponse(s)
	}
	return responses
}

// ToSaleReportResponse converte as linhas do relatório de vendas para DTO
func ToSaleReportResponse(rows []sale.ReportRow) []SaleReportResponse {
	responses := make([]SaleReportResponse, len(rows))
	for i, row := range rows {
		responses[i] = SaleReportResponse{
			Year:     row.Year,
			Month:    row.Month,
			Total:    row.Total,
			Value:    row.Value,
			Approved: row.Approved,
			Canceled: row.Canceled,
		}
	}
	return responses
}

// DomainItems converte os itens da requisição para o domínio
func (r SaleRequest) DomainItems() []sale.Item {
	items := make([]sale.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = sale.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Discount:  item.Discount,
		}
	}
	return items
}

// DomainPayment converte o bloco de pagamento da requisição para o domínio
func (r SaleRequest) DomainPayment() sale.Payment {
	installments := r.Payment.Installments
	if installments <= 0 {
		installments = 1
	}
	return sale.Payment{
		Method:       r.Payment.Method,
		Installments: installments,
		Discount:     r.Payment.Discount,
	}
}
