package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter define os filtros de listagem de transações
type ListFilter struct {
	Type      Type
	Category  Category
	Status    Status
	Recurrent *bool
	DueFrom   *time.Time
	DueTo     *time.Time
}

// BalanceFilter define a janela do balanço (por data de pagamento)
type BalanceFilter struct {
	PaidFrom *time.Time
	PaidTo   *time.Time
}

// Balance representa o resultado do balanço sobre transações pagas
type Balance struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Total   decimal.Decimal `json:"total"` // receitas - despesas
}

// CategoryTotal representa o total de uma categoria dentro de um tipo
type CategoryTotal struct {
	Category Category        `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TypeBreakdown agrupa os totais por categoria dentro de um tipo
type TypeBreakdown struct {
	Type       Type            `json:"type"`
	Categories []CategoryTotal `json:"categories"`
	Total      decimal.Decimal `json:"total"`
}

// Repository define a interface para operações de repositório de transações
type Repository interface {
	// Create cria uma nova transação
	Create(ctx context.Context, t *Transaction) error

	// FindByID busca uma transação pelo ID
	FindByID(ctx context.Context, id string) (*Transaction, error)

	// List lista as transações com filtros e paginação, ordenadas por vencimento
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Transaction, error)

	// Count conta as transações que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update atualiza uma transação existente
	Update(ctx context.Context, t *Transaction) error

	// Balance soma receitas e despesas pagas dentro da janela informada
	Balance(ctx context.Context, filter BalanceFilter) (Balance, error)

	// Breakdown agrupa transações pagas por tipo e categoria e reagrupa por tipo
	Breakdown(ctx context.Context, filter BalanceFilter) ([]TypeBreakdown, error)
}
