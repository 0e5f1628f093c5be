package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/gestor-pme/internal/domain/product"
)

// Erros específicos do repositório
var (
	ErrProductNotFound      = errors.New("produto não encontrado")
	ErrProductDuplicateCode = errors.New("produto com mesmo código já existe")
)

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) product.Repository {
	return &ProductRepository{
		db: db,
	}
}

const productColumns = `
	id, code, name, description, category, purchase_price, sale_price,
	quantity, min_stock, max_stock, unit, supplier, status, movements,
	created_at, updated_at`

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	exists, err := r.ExistsByCode(ctx, p.Code)
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do produto: %w", err)
	}
	if exists {
		return ErrProductDuplicateCode
	}

	supplier, err := json.Marshal(p.Supplier)
	if err != nil {
		return fmt.Errorf("erro ao converter fornecedor para JSON: %w", err)
	}

	movements, err := json.Marshal(p.Movements)
	if err != nil {
		return fmt.Errorf("erro ao converter movimentações para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO products (
			id, code, name, description, category, purchase_price, sale_price,
			quantity, min_stock, max_stock, unit, supplier, status, movements,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)`,
		p.ID, p.Code, p.Name, p.Description, p.Category, p.PurchasePrice,
		p.SalePrice, p.Quantity, p.MinStock, p.MaxStock, p.Unit, supplier,
		p.Status, movements, p.CreatedAt, p.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrProductDuplicateCode
		}
		return fmt.Errorf("erro ao criar produto: %w", err)
	}

	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	return r.scanProduct(row)
}

// FindByCode implementa product.Repository.FindByCode
func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE code = $1`, code)

	return r.scanProduct(row)
}

// List implementa product.Repository.List. O histórico de movimentações não é
// carregado na listagem.
func (r *ProductRepository) List(ctx context.Context, filter product.ListFilter, limit, offset int) ([]*product.Product, error) {
	where, args := productFilterClause(filter)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT
			id, code, name, description, category, purchase_price, sale_price,
			quantity, min_stock, max_stock, unit, supplier, status, '[]'::jsonb,
			created_at, updated_at
		FROM products`+where+`
		ORDER BY name ASC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	return r.scanProductRows(rows)
}

// Count implementa product.Repository.Count
func (r *ProductRepository) Count(ctx context.Context, filter product.ListFilter) (int, error) {
	where, args := productFilterClause(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar produtos: %w", err)
	}

	return count, nil
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	supplier, err := json.Marshal(p.Supplier)
	if err != nil {
		return fmt.Errorf("erro ao converter fornecedor para JSON: %w", err)
	}

	movements, err := json.Marshal(p.Movements)
	if err != nil {
		return fmt.Errorf("erro ao converter movimentações para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE products SET
			name = $1, description = $2, category = $3, purchase_price = $4,
			sale_price = $5, quantity = $6, min_stock = $7, max_stock = $8,
			unit = $9, supplier = $10, status = $11, movements = $12,
			updated_at = $13
		WHERE id = $14`,
		p.Name, p.Description, p.Category, p.PurchasePrice, p.SalePrice,
		p.Quantity, p.MinStock, p.MaxStock, p.Unit, supplier, p.Status,
		movements, p.UpdatedAt, p.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar produto: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

// ExistsByCode implementa product.Repository.ExistsByCode
func (r *ProductRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM products WHERE code = $1)",
		code).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do produto: %w", err)
	}

	return exists, nil
}

// FindBelowMinimum implementa product.Repository.FindBelowMinimum
func (r *ProductRepository) FindBelowMinimum(ctx context.Context) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT
			id, code, name, description, category, purchase_price, sale_price,
			quantity, min_stock, max_stock, unit, supplier, status, '[]'::jsonb,
			created_at, updated_at
		FROM products
		WHERE quantity <= min_stock
		ORDER BY quantity ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produtos com estoque baixo: %w", err)
	}
	defer rows.Close()

	return r.scanProductRows(rows)
}

// productFilterClause monta a cláusula WHERE para os filtros de listagem
func productFilterClause(filter product.ListFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanProduct lê um único produto de uma linha de consulta
func (r *ProductRepository) scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var supplierJSON, movementsJSON []byte

	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Category,
		&p.PurchasePrice, &p.SalePrice, &p.Quantity, &p.MinStock,
		&p.MaxStock, &p.Unit, &supplierJSON, &p.Status, &movementsJSON,
		&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}

	if err := json.Unmarshal(supplierJSON, &p.Supplier); err != nil {
		return nil, fmt.Errorf("erro ao converter fornecedor: %w", err)
	}

	if err := json.Unmarshal(movementsJSON, &p.Movements); err != nil {
		return nil, fmt.Errorf("erro ao converter movimentações: %w", err)
	}

	return &p, nil
}

// scanProductRows processa resultados de consultas que retornam múltiplos produtos
func (r *ProductRepository) scanProductRows(rows pgx.Rows) ([]*product.Product, error) {
	products := make([]*product.Product, 0)

	for rows.Next() {
		var p product.Product
		var supplierJSON, movementsJSON []byte

		err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description, &p.Category,
			&p.PurchasePrice, &p.SalePrice, &p.Quantity, &p.MinStock,
			&p.MaxStock, &p.Unit, &supplierJSON, &p.Status, &movementsJSON,
			&p.CreatedAt, &p.UpdatedAt)

		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}

		if err := json.Unmarshal(supplierJSON, &p.Supplier); err != nil {
			return nil, fmt.Errorf("erro ao converter fornecedor: %w", err)
		}

		if err := json.Unmarshal(movementsJSON, &p.Movements); err != nil {
			return nil, fmt.Errorf("erro ao converter movimentações: %w", err)
		}

		products = append(products, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return products, nil
}
