// Package jyutping resolves romanized Cantonese syllables against the
// pronunciation map.
//
// The table is a sparse matrix of cells keyed by (final, initial). Two
// reserved keys stand in for missing parts of a syllable:
//
//	NoInitial  the syllable has no consonant onset ("aa", "ou")
//	NoFinal    the syllable has no vowel nucleus ("m", "ng")
//
// Reserved keys are never header values, so they never get a table
// position, and they are reported to callers as the empty string.
//
// Resolution order for a syllable:
//
//  1. A trailing tone digit 1-6 is stripped (one digit only).
//  2. The first cell in walk order whose romanization equals the rest wins.
//     Walk order follows the declared finals (NoFinal last) and, within a
//     final, the declared initials (NoInitial last).
//  3. Otherwise the longest declared initial prefixing the input is split
//     off and the remainder is the final; the cell is probed again at that
//     split, falling back to the reserved keys when a part is empty.
//
// Unknown syllables are not errors: the descriptor keeps the structural
// split and a nil Cell.
//
// All types are immutable after construction and safe for concurrent use.
package jyutping
