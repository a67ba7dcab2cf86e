package access

import (
	"little-lemon/domain"
)

type Operation int

const (
	OpReadMenu Operation = iota
	OpWriteMenu
	OpReadCart
	OpMutateCart
	OpPlaceOrder
	OpListOrders
	OpReadOrder
	OpUpdateOrder
	OpDeleteOrder
	OpManageManagers
	OpManageDeliveryCrew
	OpHealthProbe
)

// Scope tells the order engine which orders a principal may list.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAssigned
)

// Principal is a snapshot of who is calling and which staff groups they
// belonged to when the request started.
type Principal struct {
	UserID        string
	Authenticated bool
	Roles         []string
}

func Anonymous() Principal {
	return Principal{}
}

func NewPrincipal(userID string, roles []string) Principal {
	return Principal{UserID: userID, Authenticated: true, Roles: roles}
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsManager() bool {
	return p.HasRole(domain.RoleManager)
}

func (p Principal) IsDeliveryCrew() bool {
	return p.HasRole(domain.RoleDeliveryCrew)
}

// Authorize evaluates the role policy table. It returns nil to allow,
// domain.ErrUnauthenticated for anonymous callers on protected operations
// and domain.ErrForbidden for authenticated callers lacking a role.
func Authorize(p Principal, op Operation) error {
	switch op {
	case OpReadMenu, OpHealthProbe:
		return nil
	}

	if !p.Authenticated {
		return domain.ErrUnauthenticated
	}

	switch op {
	case OpReadCart, OpMutateCart, OpPlaceOrder, OpListOrders, OpReadOrder:
		return nil
	case OpUpdateOrder:
		if p.IsManager() || p.IsDeliveryCrew() {
			return nil
		}
	case OpWriteMenu, OpDeleteOrder, OpManageManagers, OpManageDeliveryCrew:
		if p.IsManager() {
			return nil
		}
	}
	return domain.ErrForbidden
}

// OrderListScope mirrors the observed listing rule: delivery crew members
// see orders assigned to them, everybody else (managers included) sees the
// orders they placed. A user holding both staff roles is treated as a
// manager.
func OrderListScope(p Principal) Scope {
	if !p.Authenticated {
		return ScopeNone
	}
	if p.IsManager() {
		return ScopeOwn
	}
	if p.IsDeliveryCrew() {
		return ScopeAssigned
	}
	return ScopeOwn
}

// GroupOperation maps a staff group to the operation that manages it.
func GroupOperation(role string) (Operation, bool) {
	switch role {
	case domain.RoleManager:
		return OpManageManagers, true
	case domain.RoleDeliveryCrew:
		return OpManageDeliveryCrew, true
	}
	return 0, false
}
