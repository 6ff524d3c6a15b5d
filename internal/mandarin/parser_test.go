package mandarin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		full string
		want Reading
	}{
		{"bā", Reading{Full: "bā", Numbered: "ba1", Initial: "b", Final: "a", Tone: 1}},
		{"zhōng", Reading{Full: "zhōng", Numbered: "zhong1", Initial: "zh", Final: "ong", Tone: 1}},
		{"hǎo", Reading{Full: "hǎo", Numbered: "hao3", Initial: "h", Final: "ao", Tone: 3}},
		{"lǜ", Reading{Full: "lǜ", Numbered: "lü4", Initial: "l", Final: "ü", Tone: 4}},
		{"ma", Reading{Full: "ma", Numbered: "ma5", Initial: "m", Final: "a", Tone: 5}},
		{"ài", Reading{Full: "ài", Numbered: "ai4", Initial: "", Final: "ai", Tone: 4}},
		{"ń", Reading{Full: "ń", Numbered: "n2", Initial: "", Final: "n", Tone: 2}},
		{"ḿ", Reading{Full: "ḿ", Numbered: "m2", Initial: "", Final: "m", Tone: 2}},
		{"m\u0300", Reading{Full: "m\u0300", Numbered: "m4", Initial: "", Final: "m", Tone: 4}},
		{"hm\u0304", Reading{Full: "hm\u0304", Numbered: "hm1", Initial: "h", Final: "m", Tone: 1}},
		{"yuè", Reading{Full: "yuè", Numbered: "yue4", Initial: "y", Final: "ue", Tone: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.full, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.full))
		})
	}
}

func TestReadings(t *testing.T) {
	p := NewParser()

	got := p.Readings("好")
	require.NotEmpty(t, got)

	var fulls []string
	for _, r := range got {
		fulls = append(fulls, r.Full)
	}
	assert.Contains(t, fulls, "hǎo")

	// Only the first character is read.
	first := p.Readings("好人")
	assert.Equal(t, got, first)
}

func TestReadingsNoCharacter(t *testing.T) {
	p := NewParser()
	assert.Nil(t, p.Readings(""))
	assert.Nil(t, p.Readings("abc"))
	assert.Nil(t, p.Readings("〓"))
}

func TestReadingsSyllabicM(t *testing.T) {
	p := NewParser()
	for _, glyph := range []string{"呣", "嘸"} {
		for _, r := range p.Readings(glyph) {
			for _, c := range r.Numbered {
				assert.Truef(t, c < 0x80 || c == 'ü', "%s: %q keeps a tone mark", glyph, r.Numbered)
			}
		}
	}
}
