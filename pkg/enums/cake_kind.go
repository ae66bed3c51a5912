package enums

import "fmt"

// CakeKind distinguishes the two cake catalog identities. They price
// identically but orders reference them independently.
type CakeKind string

const (
	CakeKindStandard CakeKind = "standard"
	CakeKindCustom   CakeKind = "custom"
)

var validCakeKinds = []CakeKind{
	CakeKindStandard,
	CakeKindCustom,
}

// String implements fmt.Stringer.
func (k CakeKind) String() string {
	return string(k)
}

// IsValid reports whether the cake kind is recognized.
func (k CakeKind) IsValid() bool {
	for _, candidate := range validCakeKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseCakeKind converts a raw string into a CakeKind.
func ParseCakeKind(value string) (CakeKind, error) {
	for _, candidate := range validCakeKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cake kind %q", value)
}
