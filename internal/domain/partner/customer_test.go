package partner

import (
	"testing"

	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  CustomerStatus
		isValid bool
	}{
		{CustomerStatusLead, true},
		{CustomerStatusContacted, true},
		{CustomerStatusCustomer, true},
		{CustomerStatus("prospect"), false},
		{CustomerStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestNewCustomer(t *testing.T) {
	addr := valueobject.Address{City: "Pune", Country: "IN"}

	t.Run("creates customer with defaults", func(t *testing.T) {
		c, err := NewCustomer("Acme Traders", "ops@acme.example", "9999999999", "Acme", "27AAAAA0000A1Z5", addr, "", "walk-in")
		require.NoError(t, err)
		assert.Equal(t, "Acme Traders", c.Name)
		assert.Equal(t, CustomerStatusLead, c.Status)
		assert.Equal(t, addr, c.Address)
	})

	t.Run("trims the name", func(t *testing.T) {
		c, err := NewCustomer("  Acme  ", "", "", "", "", valueobject.Address{}, CustomerStatusCustomer, "")
		require.NoError(t, err)
		assert.Equal(t, "Acme", c.Name)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := NewCustomer("   ", "", "", "", "", valueobject.Address{}, "", "")
		assert.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := NewCustomer("Acme", "", "", "", "", valueobject.Address{}, CustomerStatus("vip"), "")
		assert.Error(t, err)
	})
}

func TestCustomer_Update(t *testing.T) {
	newCustomer := func(t *testing.T) *Customer {
		c, err := NewCustomer("Acme", "old@acme.example", "", "", "", valueobject.Address{}, CustomerStatusLead, "")
		require.NoError(t, err)
		return c
	}

	t.Run("applies partial edit", func(t *testing.T) {
		c := newCustomer(t)
		email := "new@acme.example"
		status := CustomerStatusContacted
		require.NoError(t, c.Update(UpdateParams{Email: &email, Status: &status}))
		assert.Equal(t, "new@acme.example", c.Email)
		assert.Equal(t, CustomerStatusContacted, c.Status)
		assert.Equal(t, "Acme", c.Name)
		assert.Equal(t, 2, c.Version)
	})

	t.Run("rejects blanking the name", func(t *testing.T) {
		c := newCustomer(t)
		blank := "  "
		err := c.Update(UpdateParams{Name: &blank})
		assert.Error(t, err)
		assert.Equal(t, "Acme", c.Name)
	})
}

func TestCustomer_Promote(t *testing.T) {
	c, err := NewCustomer("Acme", "", "", "", "", valueobject.Address{}, CustomerStatusContacted, "")
	require.NoError(t, err)

	t.Run("moves forward", func(t *testing.T) {
		require.NoError(t, c.Promote(CustomerStatusCustomer))
		assert.Equal(t, CustomerStatusCustomer, c.Status)
	})

	t.Run("never moves backward", func(t *testing.T) {
		err := c.Promote(CustomerStatusLead)
		assert.Error(t, err)
		assert.Equal(t, CustomerStatusCustomer, c.Status)
	})
}
