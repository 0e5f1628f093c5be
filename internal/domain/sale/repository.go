package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter define os filtros de listagem de vendas
type ListFilter struct {
	Status      Status
	SalesmanID  string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// ReportRow representa uma linha do relatório mensal de vendas
type ReportRow struct {
	Year     int
	Month    int
	Total    int
	Value    decimal.Decimal
	Approved int
	Canceled int
}

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create persiste uma nova venda (o número já deve ter sido atribuído)
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id string) (*Sale, error)

	// FindByNumber busca uma venda pelo número
	FindByNumber(ctx context.Context, number string) (*Sale, error)

	// List lista as vendas com filtros e paginação, mais recentes primeiro
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Sale, error)

	// Count conta as vendas que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update atualiza uma venda existente
	Update(ctx context.Context, s *Sale) error

	// LastNumberForPeriod retorna o maior número de venda com o prefixo AAAAMM
	// informado, ou vazio se não houver venda no período. A leitura não é
	// atômica em relação à gravação: criações concorrentes no mesmo período
	// dependem do índice único de número para não duplicar.
	LastNumberForPeriod(ctx context.Context, prefix string) (string, error)

	// Report agrupa as vendas por ano/mês com contagens por status
	Report(ctx context.Context, filter ListFilter) ([]ReportRow, error)
}
