// Package luhn implements the Luhn mod N check symbol over an arbitrary
// alphabet.
package luhn

import (
	"fmt"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
)

// CheckSymbol returns the symbol that, appended to body, makes it pass Verify.
func CheckSymbol(body string, a *alphabet.Alphabet) (rune, error) {
	// The check symbol will take the factor 1 slot, so the last body symbol gets 2.
	sum, err := foldSum(body, a, 2)
	if err != nil {
		return 0, err
	}
	radix := a.Radix()
	return a.SymbolAt((radix - sum%radix) % radix)
}

// Verify reports whether the last symbol of candidate is a correct check
// symbol for the ones before it.
func Verify(candidate string, a *alphabet.Alphabet) (bool, error) {
	sum, err := foldSum(candidate, a, 1)
	if err != nil {
		return false, err
	}
	return sum%a.Radix() == 0, nil
}

// foldSum walks s right to left, alternating factor between 2 and 1, and
// folds every product back into a single base-radix digit sum.
func foldSum(s string, a *alphabet.Alphabet, factor int) (int, error) {
	runes := []rune(s)
	radix := a.Radix()
	sum := 0
	for i := len(runes) - 1; i >= 0; i-- {
		v, err := a.IndexOf(runes[i])
		if err != nil {
			return 0, fmt.Errorf("luhn: position %d: %w", i, err)
		}
		addend := factor * v
		if factor == 2 {
			factor = 1
		} else {
			factor = 2
		}
		sum += addend/radix + addend%radix
	}
	return sum, nil
}
