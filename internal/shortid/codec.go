package shortid

import (
	"github.com/roniherschmann/go-checkid/internal/alphabet"
)

// DefaultLength is used when a Codec is configured with a length below 2.
const DefaultLength = 32

// Codec issues and checks identifiers of one alphabet and total length.
type Codec struct {
	preset   string
	alphabet *alphabet.Alphabet
	foldCase bool
	length   int
	sampler  Sampler
}

type Option func(*Codec)

func WithSampler(s Sampler) Option {
	return func(c *Codec) {
		c.sampler = s
	}
}

// NewCodec resolves preset by name (unknown names mean alphanum).
func NewCodec(preset string, length int, opts ...Option) *Codec {
	p := alphabet.Lookup(preset)
	return newCodec(p.Name, p.Alphabet, p.FoldCase, length, opts)
}

func NewCustomCodec(symbols string, length int, opts ...Option) (*Codec, error) {
	a, err := alphabet.New(symbols)
	if err != nil {
		return nil, err
	}
	return newCodec("", a, false, length, opts), nil
}

func newCodec(preset string, a *alphabet.Alphabet, foldCase bool, length int, opts []Option) *Codec {
	if length < 2 {
		length = DefaultLength
	}
	c := &Codec{
		preset:   preset,
		alphabet: a,
		foldCase: foldCase,
		length:   length,
		sampler:  NanoID{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Codec) Generate() (string, error) {
	return Generate(c.alphabet, c.length-1, c.sampler)
}

func (c *Codec) Validate(s string) bool {
	return Validate(s, c.alphabet, c.length, c.foldCase)
}

// Preset is empty for custom alphabets.
func (c *Codec) Preset() string               { return c.preset }
func (c *Codec) Length() int                  { return c.length }
func (c *Codec) Alphabet() *alphabet.Alphabet { return c.alphabet }
