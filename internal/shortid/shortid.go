package shortid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
	"github.com/roniherschmann/go-checkid/internal/luhn"
)

var ErrInvalidLength = errors.New("invalid length")

// Sampler draws n symbols independently and uniformly from a.
type Sampler interface {
	Sample(a *alphabet.Alphabet, n int) (string, error)
}

// go-nanoid refuses alphabets larger than this.
const nanoIDMaxAlphabet = 255

// NanoID samples with crypto/rand through go-nanoid.
type NanoID struct{}

func (NanoID) Sample(a *alphabet.Alphabet, n int) (string, error) {
	if a.Radix() > nanoIDMaxAlphabet {
		return sampleCrypto(a, n)
	}
	return gonanoid.Generate(a.String(), n)
}

func sampleCrypto(a *alphabet.Alphabet, n int) (string, error) {
	radix := big.NewInt(int64(a.Radix()))
	var sb strings.Builder
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, radix)
		if err != nil {
			return "", err
		}
		r, err := a.SymbolAt(int(idx.Int64()))
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Source is satisfied by *math/rand/v2.Rand.
type Source interface {
	IntN(n int) int
}

type sourceSampler struct {
	src Source
}

// FromSource samples by symbol index, which makes output reproducible for a
// seeded source.
func FromSource(src Source) Sampler {
	return sourceSampler{src: src}
}

func (s sourceSampler) Sample(a *alphabet.Alphabet, n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		r, err := a.SymbolAt(s.src.IntN(a.Radix()))
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// Generate returns bodyLength random symbols followed by their check symbol.
func Generate(a *alphabet.Alphabet, bodyLength int, s Sampler) (string, error) {
	if bodyLength < 0 {
		return "", fmt.Errorf("%w: body length %d", ErrInvalidLength, bodyLength)
	}
	var body string
	if bodyLength > 0 {
		var err error
		if body, err = s.Sample(a, bodyLength); err != nil {
			return "", fmt.Errorf("sample body: %w", err)
		}
	}
	c, err := luhn.CheckSymbol(body, a)
	if err != nil {
		return "", err
	}
	return body + string(c), nil
}

// Validate classifies untrusted input. It never fails: wrong length, foreign
// symbols and bad check symbols all report false.
func Validate(candidate string, a *alphabet.Alphabet, requiredLength int, foldCase bool) bool {
	if foldCase {
		candidate = cases.Upper(language.Und).String(candidate)
	}
	if utf8.RuneCountInString(candidate) != requiredLength {
		return false
	}
	for _, r := range candidate {
		if !a.Contains(r) {
			return false
		}
	}
	ok, err := luhn.Verify(candidate, a)
	return err == nil && ok
}
