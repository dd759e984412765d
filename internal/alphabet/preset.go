package alphabet

import "strings"

const (
	Alphanum = "alphanum"
	Alpha    = "alpha"
	Lower    = "lower"
	Upper    = "upper"
	Numeric  = "numeric"
	NoZero   = "nozero"
	Safe     = "safe"
)

// Preset is a named, bundled alphabet.
type Preset struct {
	Name     string
	Alphabet *Alphabet
	// FoldCase means input is uppercased before validation.
	FoldCase bool
}

const (
	digits     = "0123456789"
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// safe drops zero and the vowels so ids never spell words and 0/O can't be confused.
var presets = []Preset{
	{Name: Alphanum, Alphabet: mustNew(digits + lowerChars + upperChars)},
	{Name: Alpha, Alphabet: mustNew(lowerChars + upperChars)},
	{Name: Lower, Alphabet: mustNew(lowerChars)},
	{Name: Upper, Alphabet: mustNew(upperChars)},
	{Name: Numeric, Alphabet: mustNew(digits)},
	{Name: NoZero, Alphabet: mustNew(digits[1:])},
	{Name: Safe, Alphabet: mustNew("123456789BCDFGHJKLMNPQRSTVWXZ"), FoldCase: true},
}

var byName = func() map[string]Preset {
	m := make(map[string]Preset, len(presets))
	for _, p := range presets {
		m[p.Name] = p
	}
	return m
}()

// Lookup resolves a preset by name, ignoring case. Unknown names fall back
// to alphanum.
func Lookup(name string) Preset {
	p, _ := Find(name)
	return p
}

// Find is Lookup that also reports whether name was a known preset.
func Find(name string) (Preset, bool) {
	if p, ok := byName[strings.ToLower(name)]; ok {
		return p, true
	}
	return byName[Alphanum], false
}

// Presets returns every bundled preset in a stable order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}
