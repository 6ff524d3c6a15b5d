package jyutping

import "strings"

// Reserved matrix keys. They are never valid header values and never
// reported as an initial or final.
const (
	NoInitial = "(no-initial)" // Syllable with no consonant onset (e.g. "aa")
	NoFinal   = "(no-final)"   // Syllable with no vowel nucleus (e.g. "m", "ng")
)

// FallbackColor is used for syllables that resolve to no known initial.
const FallbackColor = "#2f9e9a"

// missingGlyph marks a syllable with no known character.
const missingGlyph = "〓"

// IsReserved reports whether key is one of the reserved matrix keys.
func IsReserved(key string) bool {
	return key == NoInitial || key == NoFinal
}

// Cell is one syllable's display record.
type Cell struct {
	Jyutping        string `yaml:"jyutping" json:"jyutping"`               // Romanization, e.g. "baa"
	Ideograph       string `yaml:"ideograph" json:"ideograph"`             // Representative character, e.g. "巴"
	Transliteration string `yaml:"transliteration" json:"transliteration"` // Katakana approximation, e.g. "バー"
	Color           string `yaml:"color" json:"color"`                     // Hex colour of the consonant group
}

// Glyph returns the bare character without approximation marks.
// It is empty when the syllable has no known character.
func (c Cell) Glyph() string {
	g := strings.TrimSuffix(strings.TrimPrefix(c.Ideograph, "("), ")")
	if g == missingGlyph {
		return ""
	}
	return g
}

// Approximate reports whether the character is a borrowed or approximate
// spelling, written in parentheses in the table.
func (c Cell) Approximate() bool {
	return strings.HasPrefix(c.Ideograph, "(") && strings.HasSuffix(c.Ideograph, ")")
}

// Entry is a cell together with its matrix keys. Keys may be reserved.
type Entry struct {
	Final   string
	Initial string
	Cell    Cell
}

// Position is a 1-based table coordinate.
type Position struct {
	Row int `json:"row" yaml:"row"` // Index of the final in the finals header
	Col int `json:"col" yaml:"col"` // Index of the initial in the initials header
}

// Headers are the declared display orders of initials and finals.
type Headers struct {
	Initials []string `yaml:"initials"`
	Finals   []string `yaml:"finals"`
}
