package authz

import (
	"github.com/davidmr019/cafeteria_backend/internal/models"
)

// Operation names an action a principal may attempt.
type Operation string

const (
	OpCreateOrder           Operation = "order:create"
	OpGetOrder              Operation = "order:get"
	OpListOwnOrders         Operation = "order:list_own"
	OpListAllOrders         Operation = "order:list_all"
	OpUpdateOrderStatus     Operation = "order:update_status"
	OpDeleteOrder           Operation = "order:delete"
	OpInitiatePayment       Operation = "payment:initiate"
	OpRecordCashPayment     Operation = "payment:record_cash"
	OpUpdatePaymentStatus   Operation = "payment:update_status"
	OpListPayments          Operation = "payment:list"
	OpManageMenu            Operation = "menu:manage"
	OpToggleMenuAvailability Operation = "menu:availability"
	OpListAllMenu           Operation = "menu:list_all"
	OpManageOffers          Operation = "offer:manage"
	OpListAllOffers         Operation = "offer:list_all"
	OpManageUpdates         Operation = "update:manage"
	OpGetUser               Operation = "user:get"
	OpUpdateUser            Operation = "user:update"
)

type Reason string

const (
	ReasonUnauthenticated  Reason = "Unauthenticated"
	ReasonInsufficientRole Reason = "InsufficientRole"
	ReasonNotOwner         Reason = "NotOwner"
)

// Principal is the authenticated actor attempting an operation.
type Principal struct {
	ID   uint
	Role models.Role
}

// Resource carries the ownership facts relevant to a decision. The zero
// value means the operation touches no customer-owned resource.
type Resource struct {
	CustomerID uint
	Owned      bool
}

// OwnedBy marks a resource as belonging to the given customer.
func OwnedBy(customerID uint) Resource {
	return Resource{CustomerID: customerID, Owned: true}
}

var roleTable = map[Operation][]models.Role{
	OpCreateOrder:            {models.RoleCustomer},
	OpGetOrder:               {models.RoleCustomer, models.RoleEmployee, models.RoleAdmin},
	OpListOwnOrders:          {models.RoleCustomer},
	OpListAllOrders:          {models.RoleEmployee, models.RoleAdmin},
	OpUpdateOrderStatus:      {models.RoleEmployee, models.RoleAdmin},
	OpDeleteOrder:            {models.RoleAdmin},
	OpInitiatePayment:        {models.RoleCustomer},
	OpRecordCashPayment:      {models.RoleEmployee, models.RoleAdmin},
	OpUpdatePaymentStatus:    {models.RoleEmployee, models.RoleAdmin},
	OpListPayments:           {models.RoleAdmin},
	OpManageMenu:             {models.RoleAdmin},
	OpToggleMenuAvailability: {models.RoleEmployee, models.RoleAdmin},
	OpListAllMenu:            {models.RoleEmployee, models.RoleAdmin},
	OpManageOffers:           {models.RoleAdmin},
	OpListAllOffers:          {models.RoleEmployee, models.RoleAdmin},
	OpManageUpdates:          {models.RoleAdmin},
	OpGetUser:                {models.RoleEmployee, models.RoleAdmin},
	OpUpdateUser:             {models.RoleCustomer, models.RoleEmployee, models.RoleAdmin},
}

// Authorize is a pure role+ownership decision. Staff roles bypass
// ownership; customers must own the resource they touch.
func Authorize(p *Principal, op Operation, res Resource) (bool, Reason) {
	if p == nil || p.ID == 0 {
		return false, ReasonUnauthenticated
	}

	allowed, known := roleTable[op]
	if !known {
		return false, ReasonInsufficientRole
	}
	roleOK := false
	for _, r := range allowed {
		if p.Role == r {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return false, ReasonInsufficientRole
	}

	if res.Owned && p.Role != models.RoleAdmin && p.Role != models.RoleEmployee {
		if res.CustomerID != p.ID {
			return false, ReasonNotOwner
		}
	}

	return true, ""
}
