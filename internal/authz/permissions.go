package authz

import (
	"github.com/RonUpdate/sitecf-sub001/internal/domain"
)

// Capability is one of the six named admin permissions
type Capability string

const (
	CapCreateCategory     Capability = "create_category"
	CapEditCategory       Capability = "edit_category"
	CapDeleteCategory     Capability = "delete_category"
	CapCreateColoringPage Capability = "create_coloring_page"
	CapEditColoringPage   Capability = "edit_coloring_page"
	CapDeleteColoringPage Capability = "delete_coloring_page"
)

// AllCapabilities returns every capability key
func AllCapabilities() []Capability {
	return []Capability{
		CapCreateCategory,
		CapEditCategory,
		CapDeleteCategory,
		CapCreateColoringPage,
		CapEditColoringPage,
		CapDeleteColoringPage,
	}
}

// rolePermissions is the fixed role/capability table. Built once at
// process start, never mutated afterwards, so concurrent lookups need
// no locking. The mapping is total: every role carries an entry for
// every capability key.
var rolePermissions = map[domain.Role]map[Capability]bool{
	domain.RoleAdmin: {
		CapCreateCategory:     true,
		CapEditCategory:       true,
		CapDeleteCategory:     true,
		CapCreateColoringPage: true,
		CapEditColoringPage:   true,
		CapDeleteColoringPage: true,
	},
	domain.RoleEditor: {
		CapCreateCategory:     false,
		CapEditCategory:       true,
		CapDeleteCategory:     false,
		CapCreateColoringPage: true,
		CapEditColoringPage:   true,
		CapDeleteColoringPage: false,
	},
	domain.RoleUser: {
		CapCreateCategory:     false,
		CapEditCategory:       false,
		CapDeleteCategory:     false,
		CapCreateColoringPage: false,
		CapEditColoringPage:   false,
		CapDeleteColoringPage: false,
	},
}

// Allowed reports whether the role holds the capability. Unknown roles
// or capabilities deny.
func Allowed(role domain.Role, cap Capability) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[cap]
}

// HasAnyCapability reports whether the role holds at least one
// capability, i.e. whether it has any business inside the admin panel.
func HasAnyCapability(role domain.Role) bool {
	for _, allowed := range rolePermissions[role] {
		if allowed {
			return true
		}
	}
	return false
}

// Decision is the outcome of a permission check. The HTTP boundary
// maps Unauthorized to a 401 login redirect and Forbidden to 403;
// decisions are values, not panics, so they cannot be silently
// swallowed crossing layers.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthorized
	DecisionForbidden
)

// String implements fmt.Stringer
func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionUnauthorized:
		return "unauthorized"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Check gates a role against a capability. Missing sessions are
// rejected upstream; by the time Check runs a role always exists.
func Check(role domain.Role, cap Capability) Decision {
	if Allowed(role, cap) {
		return DecisionAllow
	}
	return DecisionForbidden
}
