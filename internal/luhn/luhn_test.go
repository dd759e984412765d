package luhn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
)

func TestCheckSymbolClassicLuhn(t *testing.T) {
	numeric := alphabet.Lookup(alphabet.Numeric).Alphabet
	tests := []struct {
		body string
		want rune
	}{
		// 1·2, 9, 8·2→1+6, 7, 6·2→1+2, 5, 4·2, 3, 2·2, 1 = 49 → 1
		{body: "1234567891", want: '1'},
		{body: "7992739871", want: '3'},
		{body: "453914880343646", want: '7'},
		{body: "0", want: '0'},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, err := CheckSymbol(tt.body, numeric)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), string(got))

			ok, err := Verify(tt.body+string(got), numeric)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestEmptyBody(t *testing.T) {
	for _, p := range alphabet.Presets() {
		got, err := CheckSymbol("", p.Alphabet)
		require.NoError(t, err, p.Name)
		zero, _ := p.Alphabet.SymbolAt(0)
		assert.Equal(t, zero, got, p.Name)
	}
}

func TestRoundTripAllPresets(t *testing.T) {
	for _, p := range alphabet.Presets() {
		a := p.Alphabet
		symbols := []rune(a.String())
		// Deterministic bodies of every length up to 3*radix, cycling with a stride.
		for n := 0; n <= 3*len(symbols); n++ {
			body := make([]rune, n)
			for i := range body {
				body[i] = symbols[(i*7+n)%len(symbols)]
			}
			c, err := CheckSymbol(string(body), a)
			require.NoError(t, err)
			ok, err := Verify(string(body)+string(c), a)
			require.NoError(t, err)
			assert.True(t, ok, "%s: %q+%q", p.Name, string(body), c)
		}
	}
}

func TestUnknownSymbol(t *testing.T) {
	a := alphabet.Lookup(alphabet.Safe).Alphabet

	_, err := CheckSymbol("12A4", a)
	assert.ErrorIs(t, err, alphabet.ErrUnknownSymbol)

	ok, err := Verify("12A4", a)
	assert.ErrorIs(t, err, alphabet.ErrUnknownSymbol)
	assert.False(t, ok)
}

func TestWrongCheckSymbolRejected(t *testing.T) {
	for _, p := range alphabet.Presets() {
		a := p.Alphabet
		body := a.String()[:5]
		c, err := CheckSymbol(body, a)
		require.NoError(t, err)
		for _, r := range a.String() {
			if r == c {
				continue
			}
			ok, err := Verify(body+string(r), a)
			require.NoError(t, err)
			assert.False(t, ok, "%s: %q accepted", p.Name, body+string(r))
		}
	}
}

// Substitutions at factor-1 positions are always caught. At factor-2
// positions an odd radix r folds x and x+(r-1)/2 (x ≥ 1) to the same value,
// which is a known blind spot of Luhn mod N.
func TestSingleSubstitution(t *testing.T) {
	for _, p := range alphabet.Presets() {
		a := p.Alphabet
		r := a.Radix()
		symbols := []rune(a.String())
		filler := symbols[r-1]

		for _, factor := range []int{1, 2} {
			for x := 0; x < r; x++ {
				// body [x] puts x at factor 2; body [x, filler] puts x at factor 1.
				body := string(symbols[x])
				if factor == 1 {
					body += string(filler)
				}
				c, err := CheckSymbol(body, a)
				require.NoError(t, err)
				valid := []rune(body + string(c))

				for y := 0; y < r; y++ {
					if y == x {
						continue
					}
					mutated := append([]rune(nil), valid...)
					mutated[0] = symbols[y]
					ok, err := Verify(string(mutated), a)
					require.NoError(t, err)

					blind := factor == 2 && r%2 == 1 && abs(x-y) == (r-1)/2 && min(x, y) >= 1
					assert.Equal(t, blind, ok, "%s factor %d: %d→%d", p.Name, factor, x, y)
				}
			}
		}
	}
}

// Swapping adjacent distinct symbols is caught for even and odd radices
// alike, except for the pair (symbol 0, symbol r-1).
func TestAdjacentTransposition(t *testing.T) {
	for _, p := range alphabet.Presets() {
		a := p.Alphabet
		r := a.Radix()
		symbols := []rune(a.String())

		for x := 0; x < r; x++ {
			for y := 0; y < r; y++ {
				if x == y {
					continue
				}
				for _, prefix := range []string{"", string(symbols[1])} {
					body := prefix + string(symbols[x]) + string(symbols[y])
					c, err := CheckSymbol(body, a)
					require.NoError(t, err)

					swapped := []rune(prefix + string(symbols[y]) + string(symbols[x]) + string(c))
					ok, err := Verify(string(swapped), a)
					require.NoError(t, err)

					blind := min(x, y) == 0 && max(x, y) == r-1
					assert.Equal(t, blind, ok, "%s: swap %d,%d prefix %q", p.Name, x, y, prefix)
				}
			}
		}
	}
}

func TestCustomAlphabet(t *testing.T) {
	a, err := alphabet.New("αβγδε")
	require.NoError(t, err)

	c, err := CheckSymbol("βγδ", a)
	require.NoError(t, err)
	// δ 3·2=6 folds to 1+1, γ 2, β 1·2: sum 6, check (5-1)%5 = 4
	assert.Equal(t, 'ε', c)

	ok, err := Verify("βγδε", a)
	require.NoError(t, err)
	assert.True(t, ok)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
