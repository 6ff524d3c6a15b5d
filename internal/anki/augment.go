package anki

import (
	"fmt"
	"strings"

	"github.com/cantoneseslang/cantonese-pronunciation-map/internal/jyutping"
)

// Fields written by Augment, in model order.
const (
	FieldCharacter = "Jyutping_Character"
	FieldKatakana  = "Jyutping_Katakana"
	FieldInitial   = "Jyutping_Initial"
	FieldFinal     = "Jyutping_Final"
	FieldGroup     = "Jyutping_Group"
)

// JyutpingFields lists the added fields in the order they are appended.
var JyutpingFields = []string{FieldCharacter, FieldKatakana, FieldInitial, FieldFinal, FieldGroup}

// placeholder stands in for a syllable part with no value so that the
// space-separated fields stay aligned.
const placeholder = "-"

// Resolver resolves one romanized syllable.
type Resolver interface {
	Resolve(raw string) jyutping.Descriptor
}

// AugmentResult summarises an Augment run.
type AugmentResult struct {
	Notes      int      // Notes that carried the source field
	Syllables  int      // Syllables resolved across those notes
	Unresolved []string // Syllables with no table cell, in order of appearance
}

// Augment reads the romanization in field on every note, resolves each
// syllable and stores the results in the JyutpingFields. Notes whose
// model lacks field are left untouched.
func (p *Package) Augment(field string, r Resolver) (AugmentResult, error) {
	var res AugmentResult
	extended := make(map[int64]bool)

	for _, note := range p.Notes {
		raw, ok := p.GetFieldValue(note, field)
		if !ok {
			continue
		}

		if !extended[note.ModelID] {
			if err := p.AddFields(note.ModelID, JyutpingFields); err != nil {
				return res, err
			}
			extended[note.ModelID] = true
		}

		var chars, kana, initials, finals, groups []string
		for _, syl := range jyutping.Tokenize(StripHTML(raw)) {
			d := r.Resolve(syl)
			res.Syllables++

			if d.Found() {
				chars = append(chars, orPlaceholder(d.Cell.Ideograph))
				kana = append(kana, orPlaceholder(d.Cell.Transliteration))
			} else {
				res.Unresolved = append(res.Unresolved, syl)
				chars = append(chars, placeholder)
				kana = append(kana, placeholder)
			}
			initials = append(initials, orPlaceholder(d.Initial))
			finals = append(finals, orPlaceholder(d.Final))
			groups = append(groups, orPlaceholder(d.ConsonantGroup))
		}

		err := p.SetFields(note, map[string]string{
			FieldCharacter: strings.Join(chars, " "),
			FieldKatakana:  strings.Join(kana, " "),
			FieldInitial:   strings.Join(initials, " "),
			FieldFinal:     strings.Join(finals, " "),
			FieldGroup:     strings.Join(groups, " "),
		})
		if err != nil {
			return res, fmt.Errorf("augmenting note %d: %w", note.ID, err)
		}
		res.Notes++
	}

	return res, nil
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
