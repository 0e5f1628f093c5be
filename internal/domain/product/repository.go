package product

import (
	"context"
)

// ListFilter define os filtros de listagem de produtos
type ListFilter struct {
	Category string
	Status   Status
	Search   string // busca por nome ou código
}

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByCode busca um produto pelo código
	FindByCode(ctx context.Context, code string) (*Product, error)

	// List lista os produtos com filtros e paginação (sem o histórico de movimentações)
	List(ctx context.Context, filter ListFilter, limit, offset int) ([]*Product, error)

	// Count conta os produtos que atendem aos filtros
	Count(ctx context.Context, filter ListFilter) (int, error)

	// Update atualiza os dados de um produto existente, incluindo estoque e movimentações
	Update(ctx context.Context, p *Product) error

	// ExistsByCode verifica se um produto existe pelo código
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// FindBelowMinimum lista os produtos com quantidade menor ou igual ao estoque mínimo
	FindBelowMinimum(ctx context.Context) ([]*Product, error)
}
