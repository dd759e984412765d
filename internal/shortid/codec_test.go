package shortid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
)

func TestNewCodec(t *testing.T) {
	tests := []struct {
		name       string
		preset     string
		length     int
		wantPreset string
		wantLength int
	}{
		{name: "safe", preset: "safe", length: 8, wantPreset: alphabet.Safe, wantLength: 8},
		{name: "mixed case", preset: "SAFE", length: 8, wantPreset: alphabet.Safe, wantLength: 8},
		{name: "unknown preset", preset: "bogus", length: 10, wantPreset: alphabet.Alphanum, wantLength: 10},
		{name: "empty preset", preset: "", length: 2, wantPreset: alphabet.Alphanum, wantLength: 2},
		{name: "length too small", preset: "numeric", length: 1, wantPreset: alphabet.Numeric, wantLength: DefaultLength},
		{name: "zero length", preset: "numeric", length: 0, wantPreset: alphabet.Numeric, wantLength: DefaultLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCodec(tt.preset, tt.length)
			assert.Equal(t, tt.wantPreset, c.Preset())
			assert.Equal(t, tt.wantLength, c.Length())
			assert.Same(t, alphabet.Lookup(tt.wantPreset).Alphabet, c.Alphabet())

			id, err := c.Generate()
			require.NoError(t, err)
			assert.Len(t, id, tt.wantLength)
			assert.True(t, c.Validate(id))
		})
	}
}

func TestCodecWithSampler(t *testing.T) {
	c := NewCodec("safe", 4, WithSampler(fixed(9, 10, 11)))
	id, err := c.Generate()
	require.NoError(t, err)
	assert.Equal(t, "BCD9", id)
	assert.True(t, c.Validate("bcd9"))
	assert.False(t, c.Validate("bcd8"))
	assert.False(t, c.Validate("BCD9B"))
}

func TestCustomCodec(t *testing.T) {
	c, err := NewCustomCodec("αβγδε", 4, WithSampler(fixed(1, 2, 3)))
	require.NoError(t, err)
	assert.Empty(t, c.Preset())

	id, err := c.Generate()
	require.NoError(t, err)
	assert.Equal(t, "βγδε", id)
	assert.True(t, c.Validate(id))
	// No case folding for custom alphabets.
	assert.False(t, c.Validate("ΒΓΔΕ"))

	_, err = NewCustomCodec("aa", 4)
	assert.ErrorIs(t, err, alphabet.ErrInvalidAlphabet)
}
