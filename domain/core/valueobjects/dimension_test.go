package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimensionKind_Prefixed(t *testing.T) {
	assert.Equal(t, "beach", DimensionTag.Prefixed("beach"))
	assert.Equal(t, "@shore", DimensionPlace.Prefixed("shore"))
	assert.Equal(t, "p/ana", DimensionPerson.Prefixed("ana"))
	assert.Equal(t, "t/summer", DimensionTime.Prefixed("summer"))
}

func TestParsePrefixed(t *testing.T) {
	tests := []struct {
		expr  string
		kind  DimensionKind
		value string
	}{
		{"beach", DimensionTag, "beach"},
		{"@shore", DimensionPlace, "shore"},
		{"p/ana", DimensionPerson, "ana"},
		{"t/summer", DimensionTime, "summer"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			kind, value := ParsePrefixed(tt.expr)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.value, value)

			// Prefixed and ParsePrefixed invert each other
			assert.Equal(t, tt.expr, kind.Prefixed(value))
		})
	}
}

func TestDimensionKind_EdgeLabel(t *testing.T) {
	assert.Equal(t, "tagged_with", DimensionTag.EdgeLabel())
	assert.Equal(t, "features_person", DimensionPerson.EdgeLabel())
	assert.Equal(t, "features_place", DimensionPlace.EdgeLabel())
	assert.Equal(t, "has_time", DimensionTime.EdgeLabel())
}

func TestNormalizeDimensionValue(t *testing.T) {
	v, err := NormalizeDimensionValue("  Beach ")
	require.NoError(t, err)
	assert.Equal(t, "beach", v)

	_, err = NormalizeDimensionValue("   ")
	assert.Error(t, err)
}

func TestWeights_For(t *testing.T) {
	w := Weights{Tags: 1, People: 2, Places: 3, Times: 4}
	assert.Equal(t, 1.0, w.For(DimensionTag))
	assert.Equal(t, 2.0, w.For(DimensionPerson))
	assert.Equal(t, 3.0, w.For(DimensionPlace))
	assert.Equal(t, 4.0, w.For(DimensionTime))
}
