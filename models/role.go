package models

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type Action string

const (
	ActionManageUsers   Action = "users:manage"
	ActionSyncDirectory Action = "users:sync"
	ActionViewAllOrders Action = "orders:view_all"
)

// Can is the single authorization policy. Every defined action is admin-only;
// unknown actions are denied.
func (r Role) Can(action Action) bool {
	switch action {
	case ActionManageUsers, ActionSyncDirectory, ActionViewAllOrders:
		return r == RoleAdmin
	default:
		return false
	}
}
