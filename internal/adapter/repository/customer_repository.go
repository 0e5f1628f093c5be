package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
)

// Erros específicos do repositório
var (
	ErrCustomerNotFound     = errors.New("cliente não encontrado")
	ErrCustomerDuplicateKey = errors.New("cliente com mesmo documento já existe")
)

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool) customer.Repository {
	return &CustomerRepository{
		db: db,
	}
}

const customerColumns = `
	id, person_type, name, trade_name, document_type, document_number,
	state_document, contact, address, salesman_id, status, credit_granted,
	credit_used, credit_available, payment_term_days, payment_method,
	last_purchase_at, total_purchases, total_purchase_value, average_ticket,
	observations, created_at, updated_at`

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	exists, err := r.ExistsByDocument(ctx, c.Document.Number)
	if err != nil {
		return fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}
	if exists {
		return ErrCustomerDuplicateKey
	}

	contact, err := json.Marshal(c.Contact)
	if err != nil {
		return fmt.Errorf("erro ao converter contato para JSON: %w", err)
	}

	address, err := json.Marshal(c.Address)
	if err != nil {
		return fmt.Errorf("erro ao converter endereço para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO customers (
			id, person_type, name, trade_name, document_type, document_number,
			state_document, contact, address, salesman_id, status, credit_granted,
			credit_used, credit_available, payment_term_days, payment_method,
			last_purchase_at, total_purchases, total_purchase_value, average_ticket,
			observations, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21, $22, $23
		)`,
		c.ID, c.PersonType, c.Name, c.TradeName, c.Document.Type,
		c.Document.Number, c.StateDocument, contact, address,
		nullString(c.SalesmanID), c.Status, c.CreditLimit.Granted,
		c.CreditLimit.Used, c.CreditLimit.Available,
		c.PaymentTerms.DefaultTermDays, c.PaymentTerms.DefaultMethod,
		c.Metadata.LastPurchaseAt, c.Metadata.TotalPurchases,
		c.Metadata.TotalPurchaseValue, c.Metadata.AverageTicket,
		c.Observations, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)

	return r.scanCustomer(row)
}

// FindByDocument implementa customer.Repository.FindByDocument
func (r *CustomerRepository) FindByDocument(ctx context.Context, document string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE document_number = $1`, document)

	return r.scanCustomer(row)
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, filter customer.ListFilter, limit, offset int) ([]*customer.Customer, error) {
	where, args := customerFilterClause(filter)

	orderBy := "created_at DESC"
	switch filter.OrderBy {
	case "nome":
		orderBy = "name ASC"
	case "ultima_compra":
		orderBy = "last_purchase_at DESC NULLS LAST"
	case "valor_total":
		orderBy = "total_purchase_value DESC"
	}

	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers`+where+`
		ORDER BY `+orderBy+`
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	return r.scanCustomerRows(rows)
}

// Count implementa customer.Repository.Count
func (r *CustomerRepository) Count(ctx context.Context, filter customer.ListFilter) (int, error) {
	where, args := customerFilterClause(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	contact, err := json.Marshal(c.Contact)
	if err != nil {
		return fmt.Errorf("erro ao converter contato para JSON: %w", err)
	}

	address, err := json.Marshal(c.Address)
	if err != nil {
		return fmt.Errorf("erro ao converter endereço para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE customers SET
			person_type = $1, name = $2, trade_name = $3, state_document = $4,
			contact = $5, address = $6, salesman_id = $7, status = $8,
			credit_granted = $9, credit_used = $10, credit_available = $11,
			payment_term_days = $12, payment_method = $13, last_purchase_at = $14,
			total_purchases = $15, total_purchase_value = $16, average_ticket = $17,
			observations = $18, updated_at = $19
		WHERE id = $20`,
		c.PersonType, c.Name, c.TradeName, c.StateDocument, contact, address,
		nullString(c.SalesmanID), c.Status, c.CreditLimit.Granted,
		c.CreditLimit.Used, c.CreditLimit.Available,
		c.PaymentTerms.DefaultTermDays, c.PaymentTerms.DefaultMethod,
		c.Metadata.LastPurchaseAt, c.Metadata.TotalPurchases,
		c.Metadata.TotalPurchaseValue, c.Metadata.AverageTicket,
		c.Observations, c.UpdatedAt, c.ID)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return ErrCustomerDuplicateKey
		}
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// UpdateStatus implementa customer.Repository.UpdateStatus
func (r *CustomerRepository) UpdateStatus(ctx context.Context, id string, status customer.Status) error {
	result, err := r.db.Exec(ctx,
		"UPDATE customers SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id)

	if err != nil {
		return fmt.Errorf("erro ao atualizar status do cliente: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// ExistsByDocument implementa customer.Repository.ExistsByDocument
func (r *CustomerRepository) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM customers WHERE document_number = $1)",
		document).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}

// Report implementa customer.Repository.Report. O agrupamento por (tipo, status)
// é feito no banco; o reagrupamento por tipo fica a cargo do chamador.
func (r *CustomerRepository) Report(ctx context.Context, filter customer.ReportFilter) ([]customer.ReportRow, error) {
	clauses := []string{}
	args := []interface{}{}

	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SalesmanID != "" {
		args = append(args, filter.SalesmanID)
		clauses = append(clauses, fmt.Sprintf("salesman_id = $%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	rows, err := r.db.Query(ctx,
		`SELECT person_type, status, COUNT(*),
			COALESCE(SUM(total_purchase_value), 0),
			COALESCE(AVG(average_ticket), 0)
		FROM customers`+where+`
		GROUP BY person_type, status
		ORDER BY person_type, status`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar relatório de clientes: %w", err)
	}
	defer rows.Close()

	report := make([]customer.ReportRow, 0)
	for rows.Next() {
		var row customer.ReportRow
		if err := rows.Scan(&row.PersonType, &row.Status, &row.Total,
			&row.TotalPurchaseValue, &row.AverageTicket); err != nil {
			return nil, fmt.Errorf("erro ao ler relatório: %w", err)
		}
		report = append(report, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return report, nil
}

// customerFilterClause monta a cláusula WHERE para os filtros de listagem
func customerFilterClause(filter customer.ListFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.PersonType != "" {
		args = append(args, filter.PersonType)
		clauses = append(clauses, fmt.Sprintf("person_type = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.SalesmanID != "" {
		args = append(args, filter.SalesmanID)
		clauses = append(clauses, fmt.Sprintf("salesman_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf(
			"(name ILIKE $%d OR document_number ILIKE $%d OR contact->>'email' ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanCustomer lê um único cliente de uma linha de consulta
func (r *CustomerRepository) scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	var contactJSON, addressJSON []byte
	var salesmanID *string

	err := row.Scan(
		&c.ID, &c.PersonType, &c.Name, &c.TradeName, &c.Document.Type,
		&c.Document.Number, &c.StateDocument, &contactJSON, &addressJSON,
		&salesmanID, &c.Status, &c.CreditLimit.Granted, &c.CreditLimit.Used,
		&c.CreditLimit.Available, &c.PaymentTerms.DefaultTermDays,
		&c.PaymentTerms.DefaultMethod, &c.Metadata.LastPurchaseAt,
		&c.Metadata.TotalPurchases, &c.Metadata.TotalPurchaseValue,
		&c.Metadata.AverageTicket, &c.Observations, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	if salesmanID != nil {
		c.SalesmanID = *salesmanID
	}

	if err := json.Unmarshal(contactJSON, &c.Contact); err != nil {
		return nil, fmt.Errorf("erro ao converter contato: %w", err)
	}

	if err := json.Unmarshal(addressJSON, &c.Address); err != nil {
		return nil, fmt.Errorf("erro ao converter endereço: %w", err)
	}

	return &c, nil
}

// scanCustomerRows processa resultados de consultas que retornam múltiplos clientes
func (r *CustomerRepository) scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	customers := make([]*customer.Customer, 0)

	for rows.Next() {
		var c customer.Customer
		var contactJSON, addressJSON []byte
		var salesmanID *string

		err := rows.Scan(
			&c.ID, &c.PersonType, &c.Name, &c.TradeName, &c.Document.Type,
			&c.Document.Number, &c.StateDocument, &contactJSON, &addressJSON,
			&salesmanID, &c.Status, &c.CreditLimit.Granted, &c.CreditLimit.Used,
			&c.CreditLimit.Available, &c.PaymentTerms.DefaultTermDays,
			&c.PaymentTerms.DefaultMethod, &c.Metadata.LastPurchaseAt,
			&c.Metadata.TotalPurchases, &c.Metadata.TotalPurchaseValue,
			&c.Metadata.AverageTicket, &c.Observations, &c.CreatedAt, &c.UpdatedAt)

		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}

		if salesmanID != nil {
			c.SalesmanID = *salesmanID
		}

		if err := json.Unmarshal(contactJSON, &c.Contact); err != nil {
			return nil, fmt.Errorf("erro ao converter contato: %w", err)
		}

		if err := json.Unmarshal(addressJSON, &c.Address); err != nil {
			return nil, fmt.Errorf("erro ao converter endereço: %w", err)
		}

		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return customers, nil
}

// nullString converte string vazia em NULL para colunas UUID opcionais
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
