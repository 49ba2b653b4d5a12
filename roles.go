package access

// Role is the user's role
type Role string

const (
	// RoleCustomer is the least privileged role and the registration default.
	RoleCustomer Role = "customer"
	// RoleAdmin can reach administrative routes.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a Role type
func ParseRole(roleStr string) (Role, bool) {
	role := Role(roleStr)
	return role, role.IsValid()
}

// AllRoles returns the closed role set.
func AllRoles() []Role {
	return []Role{RoleCustomer, RoleAdmin}
}

// Satisfies reports whether actual is contained in required. An empty required
// set means the route carries no role restriction and always passes.
func Satisfies(required []Role, actual Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, role := range required {
		if role == actual {
			return true
		}
	}
	return false
}
