package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/gestor-pme/internal/domain/transaction"
)

// Erros específicos do repositório
var (
	ErrTransactionNotFound = errors.New("transação não encontrada")
)

// TransactionRepository implementa a interface transaction.Repository
type TransactionRepository struct {
	db *pgxpool.Pool
}

// NewTransactionRepository cria uma nova instância de TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) transaction.Repository {
	return &TransactionRepository{
		db: db,
	}
}

const transactionColumns = `
	id, type, category, description, amount, due_date, paid_date, status,
	payment_method, receipt, installments_total, installments_current,
	recurrent, periodicity, sale_id, responsible_id, observations,
	metadata, created_at, updated_at`

// Create implementa transaction.Repository.Create
func (r *TransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	receiptJSON, err := marshalReceipt(t.Receipt)
	if err != nil {
		return fmt.Errorf("erro ao converter comprovante para JSON: %w", err)
	}

	metadataJSON, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("erro ao converter metadados para JSON: %w", err)
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO transactions (
			id, type, category, description, amount, due_date, paid_date, status,
			payment_method, receipt, installments_total, installments_current,
			recurrent, periodicity, sale_id, responsible_id, observations,
			metadata, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20
		)`,
		t.ID, t.Type, t.Category, t.Description, t.Amount, t.DueDate,
		t.PaidDate, t.Status, t.PaymentMethod, receiptJSON,
		t.Installments.Total, t.Installments.Current, t.Recurrent,
		t.Periodicity, nullString(t.SaleID), t.ResponsibleID,
		t.Observations, metadataJSON, t.CreatedAt, t.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar transação: %w", err)
	}

	return nil
}

// FindByID implementa transaction.Repository.FindByID
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*transaction.Transaction, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)

	return r.scanTransaction(row)
}

// List implementa transaction.Repository.List
func (r *TransactionRepository) List(ctx context.Context, filter transaction.ListFilter, limit, offset int) ([]*transaction.Transaction, error) {
	where, args := transactionFilterClause(filter)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+` FROM transactions`+where+`
		ORDER BY due_date DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar transações: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	transactions := make([]*transaction.Transaction, 0)
	for rows.Next() {
		t, err := r.scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		t.RefreshOverdue(now)
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return transactions, nil
}

// Count implementa transaction.Repository.Count
func (r *TransactionRepository) Count(ctx context.Context, filter transaction.ListFilter) (int, error) {
	where, args := transactionFilterClause(filter)

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar transações: %w", err)
	}

	return count, nil
}

// Update implementa transaction.Repository.Update
func (r *TransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	receiptJSON, err := marshalReceipt(t.Receipt)
	if err != nil {
		return fmt.Errorf("erro ao converter comprovante para JSON: %w", err)
	}

	metadataJSON, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("erro ao converter metadados para JSON: %w", err)
	}

	result, err := r.db.Exec(ctx,
		`UPDATE transactions SET
			type = $1, category = $2, description = $3, amount = $4,
			due_date = $5, paid_date = $6, status = $7, payment_method = $8,
			receipt = $9, installments_total = $10, installments_current = $11,
			recurrent = $12, periodicity = $13, sale_id = $14,
			observations = $15, metadata = $16, updated_at = $17
		WHERE id = $18`,
		t.Type, t.Category, t.Description, t.Amount, t.DueDate, t.PaidDate,
		t.Status, t.PaymentMethod, receiptJSON, t.Installments.Total,
		t.Installments.Current, t.Recurrent, t.Periodicity,
		nullString(t.SaleID), t.Observations, metadataJSON, t.UpdatedAt, t.ID)

	if err != nil {
		return fmt.Errorf("erro ao atualizar transação: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}

	return nil
}

// Balance implementa transaction.Repository.Balance
func (r *TransactionRepository) Balance(ctx context.Context, filter transaction.BalanceFilter) (transaction.Balance, error) {
	where, args := balanceFilterClause(filter)

	var balance transaction.Balance
	err := r.db.QueryRow(ctx,
		`SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'receita'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'despesa'), 0)
		FROM transactions`+where,
		args...).Scan(&balance.Income, &balance.Expense)

	if err != nil {
		return transaction.Balance{}, fmt.Errorf("erro ao calcular balanço: %w", err)
	}

	balance.Total = balance.Income.Sub(balance.Expense)

	return balance, nil
}

// Breakdown implementa transaction.Repository.Breakdown. O banco agrupa por
// (tipo, categoria); o reagrupamento por tipo é feito aqui preservando a ordem.
func (r *TransactionRepository) Breakdown(ctx context.Context, filter transaction.BalanceFilter) ([]transaction.TypeBreakdown, error) {
	where, args := balanceFilterClause(filter)

	rows, err := r.db.Query(ctx,
		`SELECT type, category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM transactions`+where+`
		GROUP BY type, category
		ORDER BY type, 3 DESC`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao agrupar transações: %w", err)
	}
	defer rows.Close()

	breakdown := make([]transaction.TypeBreakdown, 0)
	index := map[transaction.Type]int{}

	for rows.Next() {
		var txType transaction.Type
		var ct transaction.CategoryTotal
		if err := rows.Scan(&txType, &ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("erro ao ler agrupamento: %w", err)
		}

		i, ok := index[txType]
		if !ok {
			breakdown = append(breakdown, transaction.TypeBreakdown{
				Type:  txType,
				Total: decimal.Zero,
			})
			i = len(breakdown) - 1
			index[txType] = i
		}

		breakdown[i].Categories = append(breakdown[i].Categories, ct)
		breakdown[i].Total = breakdown[i].Total.Add(ct.Total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler resultados: %w", err)
	}

	return breakdown, nil
}

// transactionFilterClause monta a cláusula WHERE para os filtros de listagem
func transactionFilterClause(filter transaction.ListFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.Type != "" {
		args = append(args, filter.Type)
		clauses = append(clauses, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Recurrent != nil {
		args = append(args, *filter.Recurrent)
		clauses = append(clauses, fmt.Sprintf("recurrent = $%d", len(args)))
	}
	if filter.DueFrom != nil {
		args = append(args, *filter.DueFrom)
		clauses = append(clauses, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.DueTo != nil {
		args = append(args, *filter.DueTo)
		clauses = append(clauses, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// balanceFilterClause restringe às transações pagas dentro da janela informada
func balanceFilterClause(filter transaction.BalanceFilter) (string, []interface{}) {
	clauses := []string{"status = 'pago'"}
	args := []interface{}{}

	if filter.PaidFrom != nil {
		args = append(args, *filter.PaidFrom)
		clauses = append(clauses, fmt.Sprintf("paid_date >= $%d", len(args)))
	}
	if filter.PaidTo != nil {
		args = append(args, *filter.PaidTo)
		clauses = append(clauses, fmt.Sprintf("paid_date <= $%d", len(args)))
	}

	return " WHERE " + strings.Join(clauses, " AND "), args
}

// scanTransaction lê uma única transação de uma linha de consulta
func (r *TransactionRepository) scanTransaction(row pgx.Row) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var receiptJSON, metadataJSON []byte
	var saleID *string

	err := row.Scan(
		&t.ID, &t.Type, &t.Category, &t.Description, &t.Amount, &t.DueDate,
		&t.PaidDate, &t.Status, &t.PaymentMethod, &receiptJSON,
		&t.Installments.Total, &t.Installments.Current, &t.Recurrent,
		&t.Periodicity, &saleID, &t.ResponsibleID, &t.Observations,
		&metadataJSON, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("erro ao buscar transação: %w", err)
	}

	if saleID != nil {
		t.SaleID = *saleID
	}

	if receiptJSON != nil {
		var receipt transaction.Receipt
		if err := json.Unmarshal(receiptJSON, &receipt); err != nil {
			return nil, fmt.Errorf("erro ao converter comprovante: %w", err)
		}
		t.Receipt = &receipt
	}

	if err := json.Unmarshal(metadataJSON, &t.Metadata); err != nil {
		return nil, fmt.Errorf("erro ao converter metadados: %w", err)
	}

	return &t, nil
}

// marshalReceipt serializa o comprovante, preservando NULL quando ausente
func marshalReceipt(receipt *transaction.Receipt) ([]byte, error) {
	if receipt == nil {
		return nil, nil
	}
	return json.Marshal(receipt)
}
