package jyutping

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveExamples(t *testing.T) {
	inv := Default()

	t.Run("sap6", func(t *testing.T) {
		d := inv.Resolve("sap6")
		assert.Equal(t, "sap", d.Base)
		assert.Equal(t, 6, d.Tone)
		assert.Equal(t, "s", d.Initial)
		assert.Equal(t, "ap", d.Final)
		require.True(t, d.Found())
		assert.Equal(t, "濕", d.Cell.Ideograph)
		require.NotNil(t, d.Position)
		assert.Equal(t, Position{Row: 16, Col: 17}, *d.Position)
		assert.Equal(t, "sibilant", d.ConsonantGroup)
		assert.Equal(t, "摩擦音", d.ConsonantFeature)
		assert.Equal(t, "#e3f2fd", d.Color)
	})

	t.Run("baa1", func(t *testing.T) {
		d := inv.Resolve("baa1")
		assert.Equal(t, "baa", d.Base)
		assert.Equal(t, 1, d.Tone)
		assert.Equal(t, "b", d.Initial)
		assert.Equal(t, "aa", d.Final)
		require.True(t, d.Found())
		assert.Equal(t, "巴", d.Cell.Ideograph)
		assert.Equal(t, "バー", d.Cell.Transliteration)
		require.NotNil(t, d.Position)
		assert.Equal(t, Position{Row: 1, Col: 1}, *d.Position)
		assert.Equal(t, "両唇音", d.ConsonantGroup)
		assert.Equal(t, "無気音", d.ConsonantFeature)
	})

	t.Run("ng", func(t *testing.T) {
		d := inv.Resolve("ng")
		assert.Equal(t, 0, d.Tone)
		assert.Equal(t, "ng", d.Initial)
		assert.Equal(t, "", d.Final)
		require.True(t, d.Found())
		assert.Equal(t, "五", d.Cell.Ideograph)
		assert.Nil(t, d.Position)
		assert.Equal(t, "velar", d.ConsonantGroup)
	})

	t.Run("aa3", func(t *testing.T) {
		d := inv.Resolve("aa3")
		assert.Equal(t, "", d.Initial)
		assert.Equal(t, "aa", d.Final)
		require.True(t, d.Found())
		assert.Nil(t, d.Position)
		assert.Empty(t, d.ConsonantGroup)
		assert.Empty(t, d.ConsonantFeature)
		assert.Equal(t, "#e8f5e9", d.Color)
	})

	t.Run("zzz9", func(t *testing.T) {
		d := inv.Resolve("zzz9")
		assert.Equal(t, "zzz9", d.Base, "9 is not a tone digit")
		assert.Equal(t, 0, d.Tone)
		assert.Equal(t, "z", d.Initial)
		assert.Equal(t, "zz9", d.Final)
		assert.False(t, d.Found())
		assert.Nil(t, d.Position)
		assert.Equal(t, "sibilant", d.ConsonantGroup)
	})
}

func TestResolveUnknownSyllables(t *testing.T) {
	inv := Default()

	tests := []struct {
		in      string
		base    string
		initial string
		final   string
		color   string
	}{
		{"", "", "", "", FallbackColor},
		{"7", "7", "", "7", FallbackColor},
		{"xyz1", "xyz", "", "xyz", FallbackColor},
		{"baa12", "baa1", "b", "aa1", "#e8f5e9"},
		{"bzz", "bzz", "b", "zz", "#e8f5e9"},
		{"BAA", "BAA", "", "BAA", FallbackColor},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := inv.Resolve(tt.in)
			assert.Equal(t, tt.in, d.Input)
			assert.Equal(t, tt.base, d.Base)
			assert.Equal(t, tt.initial, d.Initial)
			assert.Equal(t, tt.final, d.Final)
			assert.Nil(t, d.Cell)
			assert.Equal(t, tt.color, d.Color)
		})
	}
}

func TestResolveKnownShapeUnknownSyllable(t *testing.T) {
	// "b" and "yu" are both headers but "byu" is not attested.
	d := Default().Resolve("byu3")
	assert.Equal(t, "b", d.Initial)
	assert.Equal(t, "yu", d.Final)
	assert.Nil(t, d.Cell)
	require.NotNil(t, d.Position, "both keys are headers")
	assert.Equal(t, 1, d.Position.Col)
	assert.Equal(t, "両唇音", d.ConsonantGroup)
}

func TestResolveIsIdempotent(t *testing.T) {
	inv := Default()
	for _, in := range []string{"sap6", "ng", "zzz9", "", "aa", "gwong2"} {
		assert.Equal(t, inv.Resolve(in), inv.Resolve(in), in)
	}
}

func TestResolveConcurrent(t *testing.T) {
	inv := Default()
	inputs := []string{"sap6", "baa1", "ng", "m4", "aa", "zzz9", "jyut6"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, in := range inputs {
				d := inv.Resolve(in)
				assert.Equal(t, in, d.Input)
			}
		}()
	}
	wg.Wait()
}

func TestSplitTone(t *testing.T) {
	tests := []struct {
		in   string
		base string
		tone int
	}{
		{"sap6", "sap", 6},
		{"si1", "si", 1},
		{"si", "si", 0},
		{"si0", "si0", 0},
		{"si7", "si7", 0},
		{"si9", "si9", 0},
		{"si16", "si1", 6},
		{"3", "", 3},
		{"", "", 0},
	}

	for _, tt := range tests {
		base, tone := SplitTone(tt.in)
		assert.Equal(t, tt.base, base, tt.in)
		assert.Equal(t, tt.tone, tone, tt.in)
		assert.Equal(t, tt.base, StripTone(tt.in), tt.in)
	}
}
