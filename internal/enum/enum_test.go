package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	red   color = "RED"
	green color = "GREEN"
	blue  color = "BLUE"
)

func TestNewTable_OrdersByValue(t *testing.T) {
	table := NewTable("color", map[color]int{
		blue:  2,
		red:   0,
		green: 1,
	})

	assert.Equal(t, []color{red, green, blue}, table.Symbols())
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, "color", table.Name())
}

func TestNewTable_PanicsOnGap(t *testing.T) {
	assert.Panics(t, func() {
		NewTable("color", map[color]int{red: 0, blue: 2})
	})
}

func TestCastIntToEnum(t *testing.T) {
	table := NewTable("color", map[color]int{red: 0, green: 1, blue: 2})

	tests := []struct {
		name     string
		input    int
		expected color
		ok       bool
	}{
		{name: "First", input: 0, expected: red, ok: true},
		{name: "Middle", input: 1, expected: green, ok: true},
		{name: "Last", input: 2, expected: blue, ok: true},
		{name: "Negative", input: -1, expected: "", ok: false},
		{name: "PastEnd", input: 3, expected: "", ok: false},
		{name: "FarOut", input: 99, expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol, ok := CastIntToEnum(table, tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, symbol)
		})
	}
}

func TestValue_RoundTrip(t *testing.T) {
	table := NewTable("color", map[color]int{green: 1, red: 0, blue: 2})

	for i := 0; i < table.Len(); i++ {
		symbol, ok := table.Cast(i)
		require.True(t, ok)
		v, ok := table.Value(symbol)
		require.True(t, ok)
		assert.Equal(t, i, v)
	}

	_, ok := table.Value(color("PURPLE"))
	assert.False(t, ok)
}

func TestJSON(t *testing.T) {
	table := NewTable("color", map[color]int{red: 0, green: 1, blue: 2})

	data, err := MarshalJSON(table, blue)
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))

	_, err = MarshalJSON(table, color("PURPLE"))
	assert.Error(t, err)

	var decoded color
	require.NoError(t, UnmarshalJSON(table, []byte("1"), &decoded))
	assert.Equal(t, green, decoded)

	err = UnmarshalJSON(table, []byte("7"), &decoded)
	assert.ErrorContains(t, err, "out of range")

	err = UnmarshalJSON(table, []byte(`"GREEN"`), &decoded)
	assert.ErrorContains(t, err, "expected an integer")
}
