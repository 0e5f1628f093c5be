package product_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/product"
)

func newTestProduct(t *testing.T) *product.Product {
	t.Helper()

	p, err := product.NewProduct(
		"P001",
		"Caderno 96 folhas",
		"papelaria",
		product.UnitUN,
		decimal.NewFromFloat(5.50),
		decimal.NewFromFloat(9.90),
		5,
		100,
	)
	require.NoError(t, err)

	return p
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		productName string
		unit        product.Unit
		wantErr     error
	}{
		{"código vazio", "", "Caderno", product.UnitUN, product.ErrEmptyCode},
		{"nome vazio", "P001", "", product.UnitUN, product.ErrEmptyName},
		{"unidade inválida", "P001", "Caderno", product.Unit("ton"), product.ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := product.NewProduct(tt.code, tt.productName, "papelaria", tt.unit,
				decimal.NewFromInt(1), decimal.NewFromInt(2), 0, 10)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyMovement_InAndOut(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.ApplyMovement(product.MovementIn, 10, "user-1", "compra"))
	require.Equal(t, 10, p.Quantity)
	require.Equal(t, product.StatusActive, p.Status)

	require.NoError(t, p.ApplyMovement(product.MovementOut, 4, "user-1", "venda"))
	require.Equal(t, 6, p.Quantity)

	require.Len(t, p.Movements, 2)
	require.Equal(t, product.MovementIn, p.Movements[0].Type)
	require.Equal(t, product.MovementOut, p.Movements[1].Type)
	require.Equal(t, "user-1", p.Movements[1].ResponsibleID)
}

func TestApplyMovement_InsufficientStock(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.ApplyMovement(product.MovementIn, 3, "user-1", ""))

	err := p.ApplyMovement(product.MovementOut, 5, "user-1", "")
	require.ErrorIs(t, err, product.ErrInsufficientStock)

	// A falha não pode deixar rastro na quantidade nem no histórico
	require.Equal(t, 3, p.Quantity)
	require.Len(t, p.Movements, 1)
}

func TestApplyMovement_InvalidQuantity(t *testing.T) {
	p := newTestProduct(t)

	require.ErrorIs(t, p.ApplyMovement(product.MovementIn, 0, "user-1", ""), product.ErrInvalidQuantity)
	require.ErrorIs(t, p.ApplyMovement(product.MovementIn, -2, "user-1", ""), product.ErrInvalidQuantity)
}

func TestStatus_OutOfStockOnlyAtZero(t *testing.T) {
	p := newTestProduct(t)

	require.NoError(t, p.ApplyMovement(product.MovementIn, 2, "user-1", ""))
	require.NoError(t, p.ApplyMovement(product.MovementOut, 1, "user-1", ""))

	// Abaixo do mínimo mas acima de zero continua ativo
	require.True(t, p.IsBelowMinimum())
	require.Equal(t, product.StatusActive, p.Status)

	require.NoError(t, p.ApplyMovement(product.MovementOut, 1, "user-1", ""))
	require.Equal(t, product.StatusOutOfStock, p.Status)

	require.NoError(t, p.ApplyMovement(product.MovementIn, 1, "user-1", ""))
	require.Equal(t, product.StatusActive, p.Status)
}

func TestStockValue(t *testing.T) {
	p := newTestProduct(t)
	require.NoError(t, p.ApplyMovement(product.MovementIn, 10, "user-1", ""))

	require.True(t, p.StockValue().Equal(decimal.NewFromFloat(55.0)),
		"valor em estoque: %s", p.StockValue())
}
