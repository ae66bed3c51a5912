package enums

import "fmt"

// OptionKind identifies which catalog table a priced option belongs to.
type OptionKind string

const (
	OptionKindTopping OptionKind = "topping"
	OptionKindBerry   OptionKind = "berry"
	OptionKindShape   OptionKind = "shape"
	OptionKindLevel   OptionKind = "level"
	OptionKindDecor   OptionKind = "decor"
)

var validOptionKinds = []OptionKind{
	OptionKindTopping,
	OptionKindBerry,
	OptionKindShape,
	OptionKindLevel,
	OptionKindDecor,
}

// String implements fmt.Stringer.
func (k OptionKind) String() string {
	return string(k)
}

// IsValid reports whether the option kind is recognized.
func (k OptionKind) IsValid() bool {
	for _, candidate := range validOptionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseOptionKind converts a raw string into an OptionKind.
func ParseOptionKind(value string) (OptionKind, error) {
	for _, candidate := range validOptionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid option kind %q", value)
}

// OptionKinds returns every recognized kind in declaration order.
func OptionKinds() []OptionKind {
	kinds := make([]OptionKind, len(validOptionKinds))
	copy(kinds, validOptionKinds)
	return kinds
}
