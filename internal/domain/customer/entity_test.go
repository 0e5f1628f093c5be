package customer_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rmacedo/gestor-pme/internal/domain/customer"
)

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()

	c, err := customer.NewCustomer(
		customer.PersonTypeIndividual,
		"Maria Souza",
		customer.Document{Type: customer.DocumentCPF, Number: "12345678901"},
		customer.Contact{Email: "maria@email.com", Phone: "1133334444"},
		customer.Address{City: "São Paulo", State: "SP"},
	)
	require.NoError(t, err)

	return c
}

func TestNewCustomer_Defaults(t *testing.T) {
	c := newTestCustomer(t)

	require.Equal(t, customer.StatusActive, c.Status)
	require.Equal(t, 30, c.PaymentTerms.DefaultTermDays)
	require.Equal(t, customer.PaymentBoleto, c.PaymentTerms.DefaultMethod)
	require.True(t, c.CreditLimit.Available.IsZero())
}

func TestNewCustomer_Validation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*string, *customer.Document, *customer.Contact)
		wantErr  error
	}{
		{"nome vazio", func(n *string, d *customer.Document, c *customer.Contact) { *n = "" }, customer.ErrEmptyName},
		{"documento vazio", func(n *string, d *customer.Document, c *customer.Contact) { d.Number = "" }, customer.ErrEmptyDocument},
		{"email vazio", func(n *string, d *customer.Document, c *customer.Contact) { c.Email = "" }, customer.ErrEmptyEmail},
		{"telefone vazio", func(n *string, d *customer.Document, c *customer.Contact) { c.Phone = "" }, customer.ErrEmptyPhone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := "Maria Souza"
			doc := customer.Document{Type: customer.DocumentCPF, Number: "12345678901"}
			contact := customer.Contact{Email: "maria@email.com", Phone: "1133334444"}
			tt.mutate(&name, &doc, &contact)

			_, err := customer.NewCustomer(customer.PersonTypeIndividual, name, doc, contact, customer.Address{})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreditLimit_Envelope(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(1000)))
	require.True(t, c.CreditLimit.Available.Equal(decimal.NewFromInt(1000)))

	require.True(t, c.VerifyCreditLimit(decimal.NewFromInt(1000)))
	require.False(t, c.VerifyCreditLimit(decimal.NewFromInt(1001)))

	require.NoError(t, c.RegisterPurchase(decimal.NewFromInt(400)))
	require.True(t, c.CreditLimit.Used.Equal(decimal.NewFromInt(400)))
	require.True(t, c.CreditLimit.Available.Equal(decimal.NewFromInt(600)))
}

func TestSetCreditLimit_Negative(t *testing.T) {
	c := newTestCustomer(t)
	require.ErrorIs(t, c.SetCreditLimit(decimal.NewFromInt(-1)), customer.ErrNegativeAmount)
}

func TestRegisterPurchase_Metadata(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.RegisterPurchase(decimal.NewFromInt(100)))
	require.NoError(t, c.RegisterPurchase(decimal.NewFromInt(200)))

	require.Equal(t, 2, c.Metadata.TotalPurchases)
	require.True(t, c.Metadata.TotalPurchaseValue.Equal(decimal.NewFromInt(300)))
	require.True(t, c.Metadata.AverageTicket.Equal(decimal.NewFromInt(150)),
		"ticket médio: %s", c.Metadata.AverageTicket)
	require.NotNil(t, c.Metadata.LastPurchaseAt)
}

func TestReleaseCredit_NeverNegative(t *testing.T) {
	c := newTestCustomer(t)

	require.NoError(t, c.SetCreditLimit(decimal.NewFromInt(500)))
	require.NoError(t, c.RegisterPurchase(decimal.NewFromInt(200)))

	// Liberar mais do que o utilizado zera o consumo
	require.NoError(t, c.ReleaseCredit(decimal.NewFromInt(300)))
	require.True(t, c.CreditLimit.Used.IsZero())
	require.True(t, c.CreditLimit.Available.Equal(decimal.NewFromInt(500)))
}

func TestStatusTransitions(t *testing.T) {
	c := newTestCustomer(t)

	c.Block()
	require.Equal(t, customer.StatusBlocked, c.Status)
	require.False(t, c.IsActive())

	c.Activate()
	require.True(t, c.IsActive())

	c.Deactivate()
	require.Equal(t, customer.StatusInactive, c.Status)
}
