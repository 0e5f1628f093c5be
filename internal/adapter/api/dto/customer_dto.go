package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
)

// CustomerContactRequest representa a requisição de contato do cliente
type CustomerContactRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	MobilePhone string `json:"mobile_phone"`
	WhatsApp    bool   `json:"whatsapp"`
}

// CustomerAddressRequest representa a requisição de endereço do cliente
type CustomerAddressRequest struct {
	ZipCode    string `json:"zip_code"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// CustomerRequest representa a requisição de criação de cliente
type CustomerRequest struct {
	PersonType      customer.PersonType    `json:"person_type" binding:"required"`
	Name            string                 `json:"name" binding:"required"`
	TradeName       string                 `json:"trade_name"`
	DocumentType    customer.DocumentType  `json:"document_type" binding:"required"`
	DocumentNumber  string                 `json:"document_number" binding:"required"`
	StateDocument   string                 `json:"state_document"`
	Contact         CustomerContactRequest `json:"contact" binding:"required"`
	Address         CustomerAddressRequest `json:"address"`
	SalesmanID      string                 `json:"salesman_id"`
	DefaultTermDays int                    `json:"default_term_days"`
	DefaultMethod   customer.PaymentMethod `json:"default_method"`
	Observations    string                 `json:"observations"`
}

// CustomerUpdateRequest representa a requisição de atualização de cliente
type CustomerUpdateRequest struct {
	Name            string                 `json:"name" binding:"required"`
	TradeName       string                 `json:"trade_name"`
	StateDocument   string                 `json:"state_document"`
	Contact         CustomerContactRequest `json:"contact" binding:"required"`
	Address         CustomerAddressRequest `json:"address"`
	SalesmanID      string                 `json:"salesman_id"`
	DefaultTermDays int                    `json:"default_term_days"`
	DefaultMethod   customer.PaymentMethod `json:"default_method"`
	Observations    string                 `json:"observations"`
}

// CustomerStatusRequest representa a requisição de mudança de status do cliente
type CustomerStatusRequest struct {
	Status customer.Status `json:"status" binding:"required"`
}

// CreditLimitRequest representa a requisição de definição de limite de crédito
type CreditLimitRequest struct {
	Granted decimal.Decimal `json:"granted" binding:"required"`
}

// CreditReleaseRequest representa a requisição de liberação de crédito utilizado
type CreditReleaseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PurchaseRequest representa o registro manual de uma compra do cliente
type PurchaseRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreditCheckResponse representa o resultado da verificação de limite de crédito
type CreditCheckResponse struct {
	Allowed   bool            `json:"allowed"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
}

// CreditLimitResponse representa o envelope de crédito do cliente
type CreditLimitResponse struct {
	Granted   decimal.Decimal `json:"granted"`
	Used      decimal.Decimal `json:"used"`
	Available decimal.Decimal `json:"available"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID             string                    `json:"id"`
	PersonType     customer.PersonType       `json:"person_type"`
	Name           string                    `json:"name"`
	TradeName      string                    `json:"trade_name"`
	DocumentType   customer.DocumentType     `json:"document_type"`
	DocumentNumber string                    `json:"document_number"`
	StateDocument  string                    `json:"state_document"`
	Contact        customer.Contact          `json:"contact"`
	Address        customer.Address          `json:"address"`
	SalesmanID     string                    `json:"salesman_id"`
	Status         customer.Status           `json:"status"`
	CreditLimit    CreditLimitResponse       `json:"credit_limit"`
	PaymentTerms   customer.PaymentTerms     `json:"payment_terms"`
	Metadata       customer.PurchaseMetadata `json:"metadata"`
	Observations   string                    `json:"observations"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
}

// CustomerReportResponse representa uma linha do relatório de clientes
type CustomerReportResponse struct {
	PersonType         customer.PersonType `json:"person_type"`
	Status             customer.Status     `json:"status"`
	Total              int                 `json:"total"`
	TotalPurchaseValue decimal.Decimal     `json:"total_purchase_value"`
	AverageTicket      decimal.Decimal     `json:"average_ticket"`
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:             c.ID,
		PersonType:     c.PersonType,
		Name:           c.Name,
		TradeName:      c.TradeName,
		DocumentType:   c.Document.Type,
		DocumentNumber: c.Document.Number,
		StateDocument:  c.StateDocument,
		Contact:        c.Contact,
		Address:        c.Address,
		SalesmanID:     c.SalesmanID,
		Status:         c.Status,
		CreditLimit: CreditLimitResponse{
			Granted:   c.CreditLimit.Granted,
			Used:      c.CreditLimit.Used,
			Available: c.CreditLimit.Available,
		},
		PaymentTerms: c.PaymentTerms,
		Metadata:     c.Metadata,
		Observations: c.Observations,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes do domínio para DTO
func ToCustomerListResponse(customers []*customer.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(c)
	}
	return responses
}

// ToCustomerReportResponse converte as linhas do relatório de clientes para DTO
func ToCustomerReportResponse(rows []customer.ReportRow) []CustomerReportResponse {
	responses := make([]CustomerReportResponse, len(rows))
	for i, row := range rows {
		responses[i] = CustomerReportResponse{
			PersonType:         row.PersonType,
			Status:             row.Status,
			Total:              row.Total,
			TotalPurchaseValue: row.TotalPurchaseValue,
			AverageTicket:      row.AverageTicket,
		}
	}
	return responses
}

// Contact converte a requisição de contato para o domínio
func (r CustomerContactRequest) Contact() customer.Contact {
	return customer.Contact{
		Email:       r.Email,
		Phone:       r.Phone,
		MobilePhone: r.MobilePhone,
		WhatsApp:    r.WhatsApp,
	}
}

// Address converte a requisição de endereço para o domínio
func (r CustomerAddressRequest) Address() customer.Address {
	return customer.Address{
		ZipCode:    r.ZipCode,
		Street:     r.Street,
		Number:     r.Number,
		Complement: r.Complement,
		District:   r.District,
		City:       r.City,
		State:      r.State,
	}
}
