// Package alphabet defines the symbol pools identifiers are built from.
//
// An Alphabet is an ordered set of distinct runes. Its length is the radix
// used by the checksum, and each symbol's position is its numeric value.
// Alphabets are immutable once built and safe to share between goroutines.
package alphabet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	ErrUnknownSymbol   = errors.New("unknown symbol")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// MinRadix is the smallest pool a checksum can be computed over.
const MinRadix = 2

type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// New builds an Alphabet from the runes of symbols, in order.
func New(symbols string) (*Alphabet, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("%w: not valid UTF-8", ErrInvalidAlphabet)
	}
	runes := []rune(symbols)
	if len(runes) < MinRadix {
		return nil, fmt.Errorf("%w: need at least %d symbols, got %d", ErrInvalidAlphabet, MinRadix, len(runes))
	}
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if prev, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: duplicate symbol %q at positions %d and %d", ErrInvalidAlphabet, r, prev, i)
		}
		index[r] = i
	}
	return &Alphabet{symbols: runes, index: index}, nil
}

func mustNew(symbols string) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Radix returns the number of symbols.
func (a *Alphabet) Radix() int {
	return len(a.symbols)
}

// IndexOf returns the numeric value of r.
func (a *Alphabet) IndexOf(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, r)
	}
	return i, nil
}

// SymbolAt is the inverse of IndexOf.
func (a *Alphabet) SymbolAt(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(a.symbols))
	}
	return a.symbols[i], nil
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// String returns the symbols in order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}
