package jyutping

import "errors"

// Data definition errors.
var (
	ErrEmptyKey      = errors.New("empty initial or final key")
	ErrReservedKey   = errors.New("reserved key used as a header value")
	ErrDuplicateKey  = errors.New("header value declared twice")
	ErrUndeclaredKey = errors.New("cell key not declared in headers")
	ErrUnknownColor  = errors.New("palette has no such colour key")
	ErrEmptyGroup    = errors.New("consonant group has no members")
)
