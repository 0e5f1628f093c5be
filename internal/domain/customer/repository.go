package customer

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ListFilter define os filtros de listagem de clientes
type ListFilter struct {
	PersonType PersonType
	Status     Status
	SalesmanID string
	Search     string // busca por nome, documento ou email
	OrderBy    string // nome, ultima_compra, valor_total (padrão: criação desc)
}

// ReportRow representa uma linha do relatório de clientes agrupado por tipo e status
type ReportRow struct {
	PersonType         PersonType
	Status             Status
	Total              int
	TotalPurchaseValue decimal.Decimal
	AverageTicket      decimal.Decimal
}

// ReportFilter define a janela do relatório de clientes
type ReportFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SalesmanID  string
}

// Repository define a interface para operações de repositório de clientes
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id string) (*Customer, error)

	// FindByDocument busca um cliente pelo número do documento (CPF/CNPJ)
	FindByDocument(ctx context.Context, document string) (*Customer, error)

	// List lista os clientes com filtros e paginação
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Customer, error)

	// Count conta os clientes que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// UpdateStatus atualiza o status de um cliente
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ExistsByDocument verifica se um cliente existe pelo número do documento
	ExistsByDocument(ctx context.Context, document string) (bool, error)

	// Report agrupa clientes por tipo e status com totais de compra
	Report(ctx context.Context, filter ReportFilter) ([]ReportRow, error)
}
