package authz

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidmr019/cafeteria_backend/internal/models"
)

func TestAuthorizeRoles(t *testing.T) {
	customer := &Principal{ID: 1, Role: models.RoleCustomer}
	employee := &Principal{ID: 2, Role: models.RoleEmployee}
	admin := &Principal{ID: 3, Role: models.RoleAdmin}

	cases := []struct {
		name string
		p    *Principal
		op   Operation
		want bool
	}{
		{"customer creates order", customer, OpCreateOrder, true},
		{"employee cannot create order", employee, OpCreateOrder, false},
		{"admin cannot create order", admin, OpCreateOrder, false},

		{"customer cannot view board", customer, OpListAllOrders, false},
		{"employee views board", employee, OpListAllOrders, true},
		{"admin views board", admin, OpListAllOrders, true},

		{"customer cannot set status", customer, OpUpdateOrderStatus, false},
		{"employee sets status", employee, OpUpdateOrderStatus, true},

		{"employee cannot delete order", employee, OpDeleteOrder, false},
		{"admin deletes order", admin, OpDeleteOrder, true},

		{"customer initiates payment", customer, OpInitiatePayment, true},
		{"employee records cash", employee, OpRecordCashPayment, true},
		{"customer cannot record cash", customer, OpRecordCashPayment, false},
		{"employee cannot list ledger", employee, OpListPayments, false},
		{"admin lists ledger", admin, OpListPayments, true},

		{"employee cannot manage menu", employee, OpManageMenu, false},
		{"admin manages menu", admin, OpManageMenu, true},
		{"employee toggles availability", employee, OpToggleMenuAvailability, true},
		{"customer cannot toggle availability", customer, OpToggleMenuAvailability, false},

		{"employee cannot manage offers", employee, OpManageOffers, false},
		{"admin manages updates", admin, OpManageUpdates, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, reason := Authorize(tc.p, tc.op, Resource{})
			require.Equal(t, tc.want, ok)
			if tc.want {
				require.Empty(t, reason)
			} else {
				require.Equal(t, ReasonInsufficientRole, reason)
			}
		})
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	owner := &Principal{ID: 5, Role: models.RoleCustomer}
	other := &Principal{ID: 6, Role: models.RoleCustomer}
	employee := &Principal{ID: 7, Role: models.RoleEmployee}
	admin := &Principal{ID: 8, Role: models.RoleAdmin}

	res := OwnedBy(5)

	ok, _ := Authorize(owner, OpGetOrder, res)
	require.True(t, ok)

	ok, reason := Authorize(other, OpGetOrder, res)
	require.False(t, ok)
	require.Equal(t, ReasonNotOwner, reason)

	// Staff see any customer's order.
	ok, _ = Authorize(employee, OpGetOrder, res)
	require.True(t, ok)
	ok, _ = Authorize(admin, OpGetOrder, res)
	require.True(t, ok)
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	ok, reason := Authorize(nil, OpCreateOrder, Resource{})
	require.False(t, ok)
	require.Equal(t, ReasonUnauthenticated, reason)

	ok, reason = Authorize(&Principal{}, OpCreateOrder, Resource{})
	require.False(t, ok)
	require.Equal(t, ReasonUnauthenticated, reason)
}

func TestAuthorizeUnknownOperation(t *testing.T) {
	ok, reason := Authorize(&Principal{ID: 1, Role: models.RoleAdmin}, Operation("order:mystery"), Resource{})
	require.False(t, ok)
	require.Equal(t, ReasonInsufficientRole, reason)
}
