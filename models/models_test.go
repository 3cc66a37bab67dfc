package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRole(t *testing.T) {
	assert.Equal(t, RoleCustomer, (&User{}).Role())
	assert.Equal(t, RoleStaff, (&User{IsStaff: true}).Role())
	assert.Equal(t, RoleSuperuser, (&User{IsSuperuser: true}).Role())
	assert.Equal(t, RoleSuperuser, (&User{IsStaff: true, IsSuperuser: true}).Role())
}

func TestParseRoleRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAnonymous, RoleCustomer, RoleStaff, RoleSuperuser} {
		assert.Equal(t, r, ParseRole(r.String()))
	}
	assert.Equal(t, RoleAnonymous, ParseRole("admin"))
}

func TestMenuUnitPrice(t *testing.T) {
	m := &Menu{Price: decimal.RequireFromString("12.50")}
	assert.True(t, m.UnitPrice().Equal(decimal.RequireFromString("12.50")))

	m.OfferPrice = decimal.RequireFromString("9.99")
	assert.True(t, m.UnitPrice().Equal(decimal.RequireFromString("9.99")))
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 10, 25)
	assert.Equal(t, int64(3), meta.TotalPages)
	assert.True(t, meta.HasMore)

	last := NewPaginationMeta(3, 10, 25)
	assert.False(t, last.HasMore)

	empty := NewPaginationMeta(1, 10, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
	assert.False(t, empty.HasMore)
}

func TestPageOffset(t *testing.T) {
	assert.Equal(t, 0, Page{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, Page{Page: 3, Limit: 10}.Offset())
	assert.Equal(t, 0, Page{Page: 0, Limit: 10}.Offset())
}

func TestMoneyRendersAsNumber(t *testing.T) {
	b, err := json.Marshal(OrderItem{Price: decimal.RequireFromString("4.50"), Quantity: 2})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"price":4.5`)
}

func TestUserPasswordNeverSerialised(t *testing.T) {
	b, err := json.Marshal(User{Email: "a@b.c", Password: "hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hash")
}

func TestUpdateOrderRequestUpdates(t *testing.T) {
	paid := true
	u := UpdateOrderRequest{IsPaid: &paid}.Updates()
	assert.Equal(t, map[string]interface{}{"is_paid": true}, u)
}

func TestQuantity_UnmarshalJSON(t *testing.T) {
	for raw, want := range map[string]Quantity{`3`: 3, `3.0`: 3, `"3"`: 3, `"12"`: 12, `null`: 0} {
		var q Quantity
		require.NoError(t, json.Unmarshal([]byte(raw), &q), raw)
		assert.Equal(t, want, q, raw)
	}

	for _, raw := range []string{`2.5`, `"two"`, `true`, `99999999999`} {
		var q Quantity
		err := json.Unmarshal([]byte(raw), &q)
		var te *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &te, raw)
	}
}
