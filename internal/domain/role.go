package domain

// Role represents a coarse-grained authorization tier
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleUser   Role = "user"
)

// IsValid reports whether r is one of the three known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole maps a stored role string to a Role. Unknown values resolve
// to RoleUser; callers log the anomaly. Authorization never fails open
// on a malformed row.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if r.IsValid() {
		return r, true
	}
	return RoleUser, false
}

// AdminUser is a row in the admin allowlist table, keyed by email.
// Presence of a row grants the admin role unconditionally.
type AdminUser struct {
	Email string `json:"email"`
}

// UserRole is a row in the generic role table, keyed by user id. The
// stored role is free-form text and must go through ParseRole.
type UserRole struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}
