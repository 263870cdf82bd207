package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	assert.Equal(t, NetList{"resistor", "1", "0"}, Fields("  resistor 1\t0 # comment"))
	assert.Empty(t, Fields("# only comment"))
	assert.Equal(t, "a 1 true 0.5", FromAnySlice([]any{"a", 1, true, 0.5}).String())
}

func TestParse(t *testing.T) {
	list := NetList{"7", "2.5", "true", "x"}
	n, err := list.Int(0)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = list.Int(3)
	assert.ErrorIs(t, err, ErrField)
	_, err = list.Float(10)
	assert.ErrorIs(t, err, ErrField)
	v, err := list.Float(1)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
}

func TestKeyValues(t *testing.T) {
	opts, err := NetList{"r", "Rot=1.5", "open=true"}.KeyValues(1)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rot": "1.5", "open": "true"}, opts)

	_, err = NetList{"a=1", "a=2"}.KeyValues(0)
	assert.ErrorIs(t, err, ErrField)
	_, err = NetList{"novalue"}.KeyValues(0)
	assert.ErrorIs(t, err, ErrField)
}
