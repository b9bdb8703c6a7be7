package enums

import "fmt"

// UserStatus gates whether an account may authenticate.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

var validUserStatuses = []UserStatus{
	UserStatusActive,
	UserStatusInactive,
}

// String implements fmt.Stringer.
func (u UserStatus) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserStatus.
func (u UserStatus) IsValid() bool {
	for _, candidate := range validUserStatuses {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserStatus normalizes raw input (trimmed, upper-cased, spaces as
// underscores) and converts it into a UserStatus.
func ParseUserStatus(value string) (UserStatus, error) {
	normalized := Normalize(value)
	for _, candidate := range validUserStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user status %q", value)
}
