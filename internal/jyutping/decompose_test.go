package jyutping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecomposeEveryCellRoundTrips(t *testing.T) {
	m := Default().Matrix()
	d := NewDecomposer(m)

	for _, e := range m.Entries() {
		got := d.Decompose(StripTone(e.Cell.Jyutping))
		require.NotNil(t, got.Cell, e.Cell.Jyutping)
		assert.Equal(t, visibleKey(e.Initial), got.Initial, e.Cell.Jyutping)
		assert.Equal(t, visibleKey(e.Final), got.Final, e.Cell.Jyutping)
		assert.Equal(t, e.Cell, *got.Cell, e.Cell.Jyutping)
	}
}

func TestDecomposeReservedRows(t *testing.T) {
	d := NewDecomposer(Default().Matrix())

	t.Run("no initial", func(t *testing.T) {
		got := d.Decompose("aa")
		require.NotNil(t, got.Cell)
		assert.Equal(t, "", got.Initial)
		assert.Equal(t, "aa", got.Final)
		assert.Equal(t, "亞", got.Cell.Ideograph)
	})

	for _, nasal := range []string{"m", "ng"} {
		t.Run("no final "+nasal, func(t *testing.T) {
			got := d.Decompose(nasal)
			require.NotNil(t, got.Cell)
			assert.Equal(t, nasal, got.Initial)
			assert.Equal(t, "", got.Final)

			want, ok := Default().Matrix().Lookup(NoFinal, nasal)
			require.True(t, ok)
			assert.Equal(t, want, *got.Cell)
		})
	}
}

func TestDecomposeStructuralFallback(t *testing.T) {
	d := NewDecomposer(Default().Matrix())

	tests := []struct {
		in      string
		initial string
		final   string
	}{
		{"zyqq", "z", "yqq"},
		{"ngxx", "ng", "xx"}, // longest prefix, not "n"
		{"gwxx", "gw", "xx"}, // longest prefix, not "g"
		{"kwzz", "kw", "zz"}, // longest prefix, not "k"
		{"zzz9", "z", "zz9"}, // digits outside 1-6 are content
		{"xyz", "", "xyz"},   // no initial prefixes it
		{"", "", ""},
		{"baa7", "b", "aa7"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := d.Decompose(tt.in)
			assert.Equal(t, tt.initial, got.Initial)
			assert.Equal(t, tt.final, got.Final)
			assert.Nil(t, got.Cell)
		})
	}
}

func TestDecomposeFirstMatchWins(t *testing.T) {
	m, err := NewMatrix(
		Headers{Initials: []string{"g", "gw"}, Finals: []string{"waa", "aa"}},
		map[string]map[string]Cell{
			"waa": {"g": {Jyutping: "gwaa", Ideograph: "first"}},
			"aa":  {"gw": {Jyutping: "gwaa", Ideograph: "second"}},
		},
	)
	require.NoError(t, err)

	got := NewDecomposer(m).Decompose("gwaa")
	require.NotNil(t, got.Cell)
	assert.Equal(t, "first", got.Cell.Ideograph)
	assert.Equal(t, "g", got.Initial)
	assert.Equal(t, "waa", got.Final)
}

func TestDecomposeFallbackProbesReservedKeys(t *testing.T) {
	// Romanizations that do not spell their own keys are only reachable
	// through the structural split.
	m, err := NewMatrix(
		Headers{Initials: []string{"m"}, Finals: []string{"oo"}},
		map[string]map[string]Cell{
			"oo":    {NoInitial: {Jyutping: "o-o", Ideograph: "bare"}},
			NoFinal: {"m": {Jyutping: "mm", Ideograph: "nasal"}},
		},
	)
	require.NoError(t, err)
	d := NewDecomposer(m)

	got := d.Decompose("oo")
	require.NotNil(t, got.Cell)
	assert.Equal(t, "bare", got.Cell.Ideograph)
	assert.Equal(t, "", got.Initial)
	assert.Equal(t, "oo", got.Final)

	got = d.Decompose("m")
	require.NotNil(t, got.Cell)
	assert.Equal(t, "nasal", got.Cell.Ideograph)
	assert.Equal(t, "m", got.Initial)
	assert.Equal(t, "", got.Final)
}

func TestDecomposeTieBreaksByHeaderOrder(t *testing.T) {
	m, err := NewMatrix(
		Headers{Initials: []string{"s", "gw", "kw"}, Finals: []string{"aa"}},
		nil,
	)
	require.NoError(t, err)
	d := NewDecomposer(m)

	assert.Equal(t, []string{"gw", "kw", "s"}, d.byLength)
}
