package sale_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
	"github.com/rmacedo/gestor-pme/internal/domain/sale"
)

func testSnapshot() sale.CustomerSnapshot {
	return sale.CustomerSnapshot{
		Name:     "Maria Souza",
		Document: customer.Document{Type: customer.DocumentCPF, Number: "12345678901"},
		Email:    "maria@email.com",
		Phone:    "1133334444",
	}
}

func newTestSale(t *testing.T, items []sale.Item) *sale.Sale {
	t.Helper()

	s, err := sale.NewSale(testSnapshot(), items, sale.Payment{
		Method:       sale.MethodPix,
		Installments: 1,
	}, "salesman-1")
	require.NoError(t, err)

	return s
}

func TestComputeTotals(t *testing.T) {
	s := newTestSale(t, []sale.Item{
		{ProductID: "p1", Quantity: 2, UnitPrice: decimal.NewFromInt(10)},
		{ProductID: "p2", Quantity: 1, UnitPrice: decimal.NewFromInt(2)},
	})

	require.True(t, s.Payment.Total.Equal(decimal.NewFromInt(22)),
		"total da venda: %s", s.Payment.Total)
	require.True(t, s.Items[0].Total.Equal(decimal.NewFromInt(20)))
	require.True(t, s.Items[1].Total.Equal(decimal.NewFromInt(2)))
}

func TestComputeTotals_Discounts(t *testing.T) {
	s, err := sale.NewSale(testSnapshot(), []sale.Item{
		{ProductID: "p1", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(5)},
	}, sale.Payment{
		Method:       sale.MethodCash,
		Installments: 1,
		Discount:     decimal.NewFromInt(2),
	}, "salesman-1")
	require.NoError(t, err)

	// (3 x 10 - 5) - 2
	require.True(t, s.Payment.Total.Equal(decimal.NewFromInt(23)),
		"total da venda: %s", s.Payment.Total)
}

func TestNewSale_Validation(t *testing.T) {
	valid := []sale.Item{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}
	payment := sale.Payment{Method: sale.MethodPix, Installments: 1}

	_, err := sale.NewSale(testSnapshot(), nil, payment, "salesman-1")
	require.ErrorIs(t, err, sale.ErrNoItems)

	_, err = sale.NewSale(testSnapshot(), valid, payment, "")
	require.ErrorIs(t, err, sale.ErrEmptySalesman)

	_, err = sale.NewSale(testSnapshot(), []sale.Item{{ProductID: "p1", Quantity: 0, UnitPrice: decimal.NewFromInt(10)}}, payment, "salesman-1")
	require.ErrorIs(t, err, sale.ErrInvalidItemQuantity)

	_, err = sale.NewSale(testSnapshot(), valid, sale.Payment{Method: "cheque", Installments: 1}, "salesman-1")
	require.ErrorIs(t, err, sale.ErrInvalidPaymentMethod)

	_, err = sale.NewSale(testSnapshot(), valid, sale.Payment{Method: sale.MethodPix, Installments: 0}, "salesman-1")
	require.ErrorIs(t, err, sale.ErrInvalidInstallments)
}

func TestTransitions(t *testing.T) {
	tests := []struct {
		from    sale.Status
		to      sale.Status
		allowed bool
	}{
		{sale.StatusPending, sale.StatusApproved, true},
		{sale.StatusPending, sale.StatusCanceled, true},
		{sale.StatusPending, sale.StatusDelivered, false},
		{sale.StatusApproved, sale.StatusDelivered, true},
		{sale.StatusApproved, sale.StatusCanceled, true},
		{sale.StatusApproved, sale.StatusPending, false},
		{sale.StatusCanceled, sale.StatusApproved, false},
		{sale.StatusDelivered, sale.StatusCanceled, false},
	}

	for _, tt := range tests {
		s := newTestSale(t, []sale.Item{{ProductID: "p1", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}})
		s.Status = tt.from

		err := s.Transition(tt.to)
		if tt.allowed {
			require.NoError(t, err, "%s -> %s", tt.from, tt.to)
			require.Equal(t, tt.to, s.Status)
		} else {
			require.ErrorIs(t, err, sale.ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
			require.Equal(t, tt.from, s.Status)
		}
	}
}

func TestNumberFormat(t *testing.T) {
	at := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

	require.Equal(t, "202403", sale.NumberPrefix(at))
	require.Equal(t, "2024030001", sale.FormatNumber("202403", 1))
	require.Equal(t, "2024030042", sale.FormatNumber("202403", 42))
	require.Equal(t, "2024031234", sale.FormatNumber("202403", 1234))
}
