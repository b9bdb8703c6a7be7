package enums

import "fmt"

// VendorStatus marks vendors and vendor products as selectable.
type VendorStatus string

const (
	VendorStatusActive   VendorStatus = "ACTIVE"
	VendorStatusInactive VendorStatus = "INACTIVE"
)

var validVendorStatuses = []VendorStatus{
	VendorStatusActive,
	VendorStatusInactive,
}

// String implements fmt.Stringer.
func (v VendorStatus) String() string {
	return string(v)
}

// IsValid reports whether the value is a known VendorStatus.
func (v VendorStatus) IsValid() bool {
	for _, candidate := range validVendorStatuses {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseVendorStatus normalizes raw input (trimmed, upper-cased, spaces as
// underscores) and converts it into a VendorStatus.
func ParseVendorStatus(value string) (VendorStatus, error) {
	normalized := Normalize(value)
	for _, candidate := range validVendorStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid vendor status %q", value)
}
