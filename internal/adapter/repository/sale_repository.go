package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/gestor-pme/internal/domain/sale"
)

// Erros específicos do repositório
var (
	ErrSaleNotFound        = errors.New("venda não encontrada")
	ErrSaleDuplicateNumber = errors.New("venda com mesmo número já existe")
)

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *pgxpool.Pool
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool) sale.Repository {
	return &SaleRepository{
		db: db,
	}
}

const saleColumns = `
	id, number, customer, items, payment_method, payment_status,
	payment_installments, payment_total, payment_discount, status,
	salesman_id, observations, delivery_date, invoice, created_at, updated_at`

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	customerJSON, err := json.Marshal(s.Customer)
	if err != nil {
		return fmt.Errorf("erro ao converter cliente para JSON: %w", err)
	}

	itemsJSON, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	invoiceJSON, err := marshalNullable(s.Invoice)
	if err != nil {
		return fmt.Errorf("erro ao converter nota fiscal para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO sales (
			id, number, customer, items, payment_method, payment_status,
			payment_installments, payment_total, payment_discount, status,
			salesman_id, observations, delivery_date, invoice, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		)`,
		s.ID, s.Number, customerJSON, itemsJSON, s.Payment.Method,
		s.Payment.Status, s.Payment.Installments, s.Payment.Total,
		s.Payment.Discount, s.Status, s.SalesmanID, s.Observations,
		s.DeliveryDate, invoiceJSON, s.CreatedAt, s.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrSaleDuplicateNumber
		}
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)

	return r.scanSale(row)
}

// FindByNumber implementa sale.Repository.FindByNumber
func (r *SaleRepository) FindByNumber(ctx context.Context, number string) (*sale.Sale, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE number = $1`, number)

	return r.scanSale(row)
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, filter sale.ListFilter, limit, offset int) ([]*sale.Sale, error) {
	where, args := saleFilterClause(filter)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM sales`+where+`
		ORDER BY created_at DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	sales := make([]*sale.Sale, 0)
	for rows.Next() {
		s, err := r.scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return sales, nil
}

// Count implementa sale.Repository.Count
func (r *SaleRepository) Count(ctx context.Context, filter sale.ListFilter) (int, error) {
	where, args := saleFilterClause(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return count, nil
}

// Update implementa sale.Repository.Update
func (r *SaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	customerJSON, err := json.Marshal(s.Customer)
	if err != nil {
		return fmt.Errorf("erro ao converter cliente para JSON: %w", err)
	}

	itemsJSON, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("erro ao converter itens para JSON: %w", err)
	}

	invoiceJSON, err := marshalNullable(s.Invoice)
	if err != nil {
		return fmt.Errorf("erro ao converter nota fiscal para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE sales SET
			customer = $1, items = $2, payment_method = $3, payment_status = $4,
			payment_installments = $5, payment_total = $6, payment_discount = $7,
			status = $8, observations = $9, delivery_date = $10, invoice = $11,
			updated_at = $12
		WHERE id = $13`,
		customerJSON, itemsJSON, s.Payment.Method, s.Payment.Status,
		s.Payment.Installments, s.Payment.Total, s.Payment.Discount,
		s.Status, s.Observations, s.DeliveryDate, invoiceJSON,
		s.UpdatedAt, s.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// LastNumberForPeriod implementa sale.Repository.LastNumberForPeriod
func (r *SaleRepository) LastNumberForPeriod(ctx context.Context, prefix string) (string, error) {
	var number string
	err := r.db.QueryRow(ctx,
		"SELECT number FROM sales WHERE number LIKE $1 ORDER BY number DESC LIMIT 1",
		prefix+"%").Scan(&number)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("erro ao buscar último número do período: %w", err)
	}

	return number, nil
}

// Report implementa sale.Repository.Report
func (r *SaleRepository) Report(ctx context.Context, filter sale.ListFilter) ([]sale.ReportRow, error) {
	where, args := saleFilterClause(filter)

	rows, err := r.db.Query(ctx,
		`SELECT
			EXTRACT(YEAR FROM created_at)::int,
			EXTRACT(MONTH FROM created_at)::int,
			COUNT(*),
			COALESCE(SUM(payment_total), 0),
			COUNT(*) FILTER (WHERE status = 'aprovada'),
			COUNT(*) FILTER (WHERE status = 'cancelada')
		FROM sales`+where+`
		GROUP BY 1, 2
		ORDER BY 1, 2`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar relatório de vendas: %w", err)
	}
	defer rows.Close()

	report := make([]sale.ReportRow, 0)
	for rows.Next() {
		var row sale.ReportRow
		if err := rows.Scan(&row.Year, &row.Month, &row.Total, &row.Value,
			&row.Approved, &row.Canceled); err != nil {
			return nil, fmt.Errorf("erro ao ler relatório: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return report, nil
}

// saleFilterClause monta a cláusula WHERE para os filtros de listagem
func saleFilterClause(filter sale.ListFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SalesmanID != "" {
		args = append(args, filter.SalesmanID)
		clauses = append(clauses, fmt.Sprintf("salesman_id = $%d", len(args)))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanSale lê uma única venda de uma linha de consulta
func (r *SaleRepository) scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	var customerJSON, itemsJSON []byte
	var invoiceJSON []byte

	err := row.Scan(
		&s.ID, &s.Number, &customerJSON, &itemsJSON, &s.Payment.Method,
		&s.Payment.Status, &s.Payment.Installments, &s.Payment.Total,
		&s.Payment.Discount, &s.Status, &s.SalesmanID, &s.Observations,
		&s.DeliveryDate, &invoiceJSON, &s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := json.Unmarshal(customerJSON, &s.Customer); err != nil {
		return nil, fmt.Errorf("erro ao converter cliente: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &s.Items); err != nil {
		return nil, fmt.Errorf("erro ao converter itens: %w", err)
	}

	if invoiceJSON != nil {
		var invoice sale.Invoice
		if err := json.Unmarshal(invoiceJSON, &invoice); err != nil {
			return nil, fmt.Errorf("erro ao converter nota fiscal: %w", err)
		}
		s.Invoice = &invoice
	}

	return &s, nil
}

// marshalNullable serializa a nota fiscal, preservando NULL quando ausente
func marshalNullable(invoice *sale.Invoice) ([]byte, error) {
	if invoice == nil {
		return nil, nil
	}
	return json.Marshal(invoice)
}
