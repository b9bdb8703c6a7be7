package enums

import "fmt"

// UserRole is the account-level permission role.
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleAgent UserRole = "AGENT"
)

var validUserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleAgent,
}

// String implements fmt.Stringer.
func (u UserRole) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserRole.
func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserRole normalizes raw input (trimmed, upper-cased, spaces as
// underscores) and converts it into a UserRole.
func ParseUserRole(value string) (UserRole, error) {
	normalized := Normalize(value)
	for _, candidate := range validUserRoles {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}
