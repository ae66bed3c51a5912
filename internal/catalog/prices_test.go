package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakecake/bakecake-backend/pkg/enums"
	pkgerrors "github.com/bakecake/bakecake-backend/pkg/errors"
)

func TestResolvePriceKnownNames(t *testing.T) {
	tests := []struct {
		kind  enums.OptionKind
		name  string
		price int64
	}{
		{enums.OptionKindLevel, "2", 750},
		{enums.OptionKindShape, "circle", 400},
		{enums.OptionKindTopping, "milk_chocolate", 200},
		{enums.OptionKindTopping, "none", 0},
		{enums.OptionKindBerry, "strawberry", 500},
		{enums.OptionKindDecor, "marzipan", 280},
	}

	for _, tt := range tests {
		price, err := ResolvePrice(tt.kind, tt.name)
		require.NoError(t, err, "%s/%s", tt.kind, tt.name)
		assert.True(t, price.Equal(decimal.NewFromInt(tt.price)),
			"%s/%s expected %d got %s", tt.kind, tt.name, tt.price, price)
	}
}

func TestResolvePriceUnknownNameRejected(t *testing.T) {
	_, err := ResolvePrice(enums.OptionKindShape, "triangle")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestResolvePriceUnknownKindRejected(t *testing.T) {
	_, err := ResolvePrice(enums.OptionKind("sprinkles"), "rainbow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownOption))
}

func TestNamesCoverEveryKind(t *testing.T) {
	counts := map[enums.OptionKind]int{
		enums.OptionKindTopping: 7,
		enums.OptionKindBerry:   4,
		enums.OptionKindShape:   3,
		enums.OptionKindLevel:   3,
		enums.OptionKindDecor:   6,
	}
	for kind, want := range counts {
		assert.Len(t, Names(kind), want, "kind %s", kind)
	}
}

func TestPricesAreNonNegative(t *testing.T) {
	for _, kind := range enums.OptionKinds() {
		for _, name := range Names(kind) {
			price, err := ResolvePrice(kind, name)
			require.NoError(t, err)
			assert.False(t, price.IsNegative(), "%s/%s", kind, name)
		}
	}
}
