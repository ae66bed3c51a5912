package catalog

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
)

// ErrUnknownOption marks an option name outside a kind's fixed table.
var ErrUnknownOption = errors.New("unknown option name")

// priceTables holds the fixed name->price table per option kind. Prices are
// never read from user input; the table is the single source of truth.
var priceTables = map[enums.OptionKind]map[string]decimal.Decimal{
	enums.OptionKindTopping: {
		"none":             decimal.NewFromInt(0),
		"white_sauce":      decimal.NewFromInt(200),
		"caramel_syrup":    decimal.NewFromInt(180),
		"maple_syrup":      decimal.NewFromInt(200),
		"strawberry_syrup": decimal.NewFromInt(300),
		"blueberry_syrup":  decimal.NewFromInt(350),
		"milk_chocolate":   decimal.NewFromInt(200),
	},
	enums.OptionKindBerry: {
		"blackberry": decimal.NewFromInt(400),
		"raspberry":  decimal.NewFromInt(300),
		"blueberry":  decimal.NewFromInt(450),
		"strawberry": decimal.NewFromInt(500),
	},
	enums.OptionKindShape: {
		"square":    decimal.NewFromInt(600),
		"circle":    decimal.NewFromInt(400),
		"rectangle": decimal.NewFromInt(1000),
	},
	enums.OptionKindLevel: {
		"1": decimal.NewFromInt(400),
		"2": decimal.NewFromInt(750),
		"3": decimal.NewFromInt(1100),
	},
	enums.OptionKindDecor: {
		"pistachios":  decimal.NewFromInt(300),
		"meringue":    decimal.NewFromInt(400),
		"hazelnut":    decimal.NewFromInt(350),
		"pecan":       decimal.NewFromInt(300),
		"marshmallow": decimal.NewFromInt(200),
		"marzipan":    decimal.NewFromInt(280),
	},
}

// ResolvePrice returns the fixed price for the named option of the given
// kind. Unknown names fail loudly; they are never priced at zero.
func ResolvePrice(kind enums.OptionKind, name string) (decimal.Decimal, error) {
	table, ok := priceTables[kind]
	if !ok {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, ErrUnknownOption,
			fmt.Sprintf("unrecognized option kind %q", kind)).
			WithDetails(map[string]any{"kind": string(kind)})
	}
	price, ok := table[name]
	if !ok {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, ErrUnknownOption,
			fmt.Sprintf("unknown %s name %q", kind, name)).
			WithDetails(map[string]any{"kind": string(kind), "name": name})
	}
	return price, nil
}

// Names returns every valid option name for the kind, in unspecified order.
func Names(kind enums.OptionKind) []string {
	table := priceTables[kind]
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	return names
}
