// Package mandarin gives the Mandarin readings of the characters shown in
// the pronunciation map, for learners comparing the two languages.
package mandarin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Reading is one Mandarin pronunciation of a character.
type Reading struct {
	Full     string `json:"full" yaml:"full"`         // With tone mark, e.g. "bā"
	Numbered string `json:"numbered" yaml:"numbered"` // With tone digit, e.g. "ba1"
	Initial  string `json:"initial" yaml:"initial"`   // e.g. "b"; empty for zero-initial syllables
	Final    string `json:"final" yaml:"final"`       // e.g. "a"
	Tone     int    `json:"tone" yaml:"tone"`         // 1-4, 5 for the neutral tone
}

// Parser looks up Mandarin readings.
type Parser struct {
	args gopinyin.Args
}

// NewParser creates a new parser returning every reading of a character.
func NewParser() *Parser {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone // Returns tone marks: zhōng
	args.Heteronym = true      // Return all possible readings
	return &Parser{args: args}
}

// Readings returns every Mandarin reading of the first character of glyph.
// It is nil for empty input and for characters the dictionary lacks.
func (p *Parser) Readings(glyph string) []Reading {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return nil
	}

	result := gopinyin.Pinyin(string(runes[0]), p.args)
	if len(result) == 0 || len(result[0]) == 0 {
		return nil
	}

	readings := make([]Reading, 0, len(result[0]))
	for _, full := range result[0] {
		readings = append(readings, Parse(full))
	}
	return readings
}

// Parse splits a tone-marked pinyin syllable.
func Parse(full string) Reading {
	tone, bare := extractTone(full)
	initial, final := splitInitial(bare)

	return Reading{
		Full:     full,
		Numbered: bare + string(rune('0'+tone)),
		Initial:  initial,
		Final:    final,
		Tone:     tone,
	}
}

var toneMarks = map[rune]struct {
	base rune
	tone int
}{
	'ā': {'a', 1}, 'á': {'a', 2}, 'ǎ': {'a', 3}, 'à': {'a', 4},
	'ē': {'e', 1}, 'é': {'e', 2}, 'ě': {'e', 3}, 'è': {'e', 4},
	'ī': {'i', 1}, 'í': {'i', 2}, 'ǐ': {'i', 3}, 'ì': {'i', 4},
	'ō': {'o', 1}, 'ó': {'o', 2}, 'ǒ': {'o', 3}, 'ò': {'o', 4},
	'ū': {'u', 1}, 'ú': {'u', 2}, 'ǔ': {'u', 3}, 'ù': {'u', 4},
	'ǖ': {'ü', 1}, 'ǘ': {'ü', 2}, 'ǚ': {'ü', 3}, 'ǜ': {'ü', 4},
	'ń': {'n', 2}, 'ň': {'n', 3}, 'ǹ': {'n', 4},
	'ḿ': {'m', 2},
}

// Combining marks follow a bare letter where no precomposed form exists,
// e.g. "m̀" (m + U+0300).
var combiningTones = map[rune]int{
	'\u0304': 1, '\u0301': 2, '\u030C': 3, '\u0300': 4,
}

// extractTone returns the tone number and the syllable without tone marks.
func extractTone(pinyin string) (int, string) {
	tone := 5
	var b strings.Builder

	for _, r := range strings.ToLower(pinyin) {
		if mark, ok := toneMarks[r]; ok {
			b.WriteRune(mark.base)
			tone = mark.tone
		} else if t, ok := combiningTones[r]; ok {
			tone = t
		} else {
			b.WriteRune(r)
		}
	}

	return tone, b.String()
}

// Longest first so "zh" wins over "z".
var initials = []string{
	"zh", "ch", "sh",
	"b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "r", "z", "c", "s", "y", "w",
}

// splitInitial splits toneless pinyin into initial and final.
// Syllabic nasals ("m", "n", "ng") keep the whole syllable as the final.
func splitInitial(bare string) (initial, final string) {
	switch bare {
	case "m", "n", "ng":
		return "", bare
	}
	for _, cand := range initials {
		if strings.HasPrefix(bare, cand) {
			return cand, bare[len(cand):]
		}
	}
	return "", bare
}
