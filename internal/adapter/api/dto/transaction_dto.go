package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
)

// TransactionRequest representa a requisição de criação de transação
type TransactionRequest struct {
	Type          transaction.Type          `json:"type" binding:"required"`
	Category      transaction.Category      `json:"category" binding:"required"`
	Description   string                    `json:"description" binding:"required"`
	Amount        decimal.Decimal           `json:"amount" binding:"required"`
	DueDate       time.Time                 `json:"due_date" binding:"required"`
	PaymentMethod transaction.PaymentMethod `json:"payment_method" binding:"required"`
	Recurrent     bool                      `json:"recurrent"`
	Periodicity   transaction.Periodicity   `json:"periodicity"`
	Installments  *transaction.Installments `json:"installments"`
	SaleID        string                    `json:"sale_id"`
	Observations  string                    `json:"observations"`
	Metadata      transaction.Metadata      `json:"metadata"`
}

// PaymentRequest representa a requisição de registro de pagamento
type PaymentRequest struct {
	PaidDate time.Time            `json:"paid_date"`
	Receipt  *transaction.Receipt `json:"receipt"`
}

// TransactionResponse representa a resposta de transação
type TransactionResponse struct {
	ID            string                    `json:"id"`
	Type          transaction.Type          `json:"type"`
	Category      transaction.Category      `json:"category"`
	Description   string                    `json:"description"`
	Amount        decimal.Decimal           `json:"amount"`
	DueDate       time.Time                 `json:"due_date"`
	PaidDate      *time.Time                `json:"paid_date"`
	Status        transaction.Status        `json:"status"`
	PaymentMethod transaction.PaymentMethod `json:"payment_method"`
	Receipt       *transaction.Receipt      `json:"receipt,omitempty"`
	Installments  transaction.Installments  `json:"installments"`
	Recurrent     bool                      `json:"recurrent"`
	Periodicity   transaction.Periodicity   `json:"periodicity"`
	SaleID        string                    `json:"sale_id,omitempty"`
	ResponsibleID string                    `json:"responsible_id"`
	Observations  string                    `json:"observations"`
	Metadata      transaction.Metadata      `json:"metadata"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// PaymentResponse representa a resposta de registro de pagamento
type PaymentResponse struct {
	Transaction     TransactionResponse  `json:"transaction"`
	NextInstallment *TransactionResponse `json:"next_installment,omitempty"`
}

// BalanceResponse representa a resposta do balanço financeiro
type BalanceResponse struct {
	Income    decimal.Decimal             `json:"income"`
	Expense   decimal.Decimal             `json:"expense"`
	Total     decimal.Decimal             `json:"total"`
	Breakdown []transaction.TypeBreakdown `json:"breakdown,omitempty"`
}

// ToTransactionResponse converte uma transação do domínio para DTO
func ToTransactionResponse(t *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          t.Type,
		Category:      t.Category,
		Description:   t.Description,
		Amount:        t.Amount,
		DueDate:       t.DueDate,
		PaidDate:      t.PaidDate,
		Status:        t.Status,
		PaymentMethod: t.PaymentMethod,
		Receipt:       t.Receipt,
		Installments:  t.Installments,
		Recurrent:     t.Recurrent,
		Periodicity:   t.Periodicity,
		SaleID:        t.SaleID,
		ResponsibleID: t.ResponsibleID,
		Observations:  t.Observations,
		Metadata:      t.Metadata,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTransactionListResponse converte uma lista de transações do domínio para DTO
func ToTransactionListResponse(transactions []*transaction.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = ToTransactionResponse(t)
	}
	return responses
}

// ToBalanceResponse converte o balanço do domínio para DTO
func ToBalanceResponse(b transaction.Balance, breakdown []transaction.TypeBreakdown) BalanceResponse {
	return BalanceResponse{
		Income:    b.Income,
		Expense:   b.Expense,
		Total:     b.Total,
		Breakdown: breakdown,
	}
}
