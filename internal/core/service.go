package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/roniherschmann/go-checkid/internal/alphabet"
	"github.com/roniherschmann/go-checkid/internal/metrics"
	"github.com/roniherschmann/go-checkid/internal/shortid"
	"github.com/roniherschmann/go-checkid/internal/store"
)

// CustomAlphabet labels caller-supplied symbol sets in metrics and stats.
const CustomAlphabet = "custom"

var (
	ErrInvalidLength = errors.New("length out of range")
	ErrInvalidCount  = errors.New("count out of range")
)

type Options struct {
	Preset        string
	Length        int
	MaxLength     int
	MaxBatch      int
	AlphabetCache int
	EventBuffer   int
	// Sampler must be safe for concurrent use. Defaults to shortid.NanoID.
	Sampler shortid.Sampler
}

type Service struct {
	store     store.Store
	opts      Options
	alphabets *lru.Cache[string, *alphabet.Alphabet] // custom symbols -> alphabet
	eventsCh  chan store.Event
}

func NewService(s store.Store, opts Options) (*Service, error) {
	if opts.MaxLength < 2 {
		opts.MaxLength = 256
	}
	if opts.Length < 2 || opts.Length > opts.MaxLength {
		opts.Length = min(8, opts.MaxLength)
	}
	if opts.MaxBatch < 1 {
		opts.MaxBatch = 100
	}
	if opts.AlphabetCache < 1 {
		opts.AlphabetCache = 256
	}
	if opts.EventBuffer < 0 {
		opts.EventBuffer = 0
	}
	if opts.Sampler == nil {
		opts.Sampler = shortid.NanoID{}
	}
	cache, err := lru.New[string, *alphabet.Alphabet](opts.AlphabetCache)
	if err != nil {
		return nil, fmt.Errorf("alphabet cache: %w", err)
	}
	return &Service{
		store:     s,
		opts:      opts,
		alphabets: cache,
		eventsCh:  make(chan store.Event, opts.EventBuffer),
	}, nil
}

type AlphabetSpec struct {
	Preset  string `json:"preset,omitempty"`
	Symbols string `json:"symbols,omitempty"`
}

type Resolved struct {
	Name     string
	Alphabet *alphabet.Alphabet
	FoldCase bool
}

// Resolve picks the alphabet for spec. Explicit symbols win over a preset
// name; an empty spec means the configured default preset.
func (s *Service) Resolve(spec AlphabetSpec) (Resolved, error) {
	if spec.Symbols != "" {
		if a, ok := s.alphabets.Get(spec.Symbols); ok {
			metrics.CacheHit.WithLabelValues("alphabet").Inc()
			return Resolved{Name: CustomAlphabet, Alphabet: a}, nil
		}
		metrics.CacheMiss.WithLabelValues("alphabet").Inc()
		a, err := alphabet.New(spec.Symbols)
		if err != nil {
			return Resolved{}, err
		}
		s.alphabets.Add(spec.Symbols, a)
		return Resolved{Name: CustomAlphabet, Alphabet: a}, nil
	}
	name := spec.Preset
	if name == "" {
		name = s.opts.Preset
	}
	p := alphabet.Lookup(name)
	return Resolved{Name: p.Name, Alphabet: p.Alphabet, FoldCase: p.FoldCase}, nil
}

type GenerateRequest struct {
	AlphabetSpec
	Length int `json:"length,omitempty"`
	Count  int `json:"count,omitempty"`
}

type GenerateResult struct {
	IDs      []string `json:"ids"`
	Alphabet string   `json:"alphabet"`
	Length   int      `json:"length"`
}

func (s *Service) Generate(req GenerateRequest) (GenerateResult, error) {
	res, err := s.Resolve(req.AlphabetSpec)
	if err != nil {
		return GenerateResult{}, err
	}
	length, err := s.length(req.Length)
	if err != nil {
		return GenerateResult{}, err
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > s.opts.MaxBatch {
		return GenerateResult{}, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidCount, count, s.opts.MaxBatch)
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id, err := shortid.Generate(res.Alphabet, length-1, s.opts.Sampler)
		if err != nil {
			return GenerateResult{}, err
		}
		ids = append(ids, id)
	}
	metrics.Issued.WithLabelValues(res.Name).Add(float64(count))
	s.RecordEvent(store.Event{Alphabet: res.Name, Kind: store.KindGenerate, Outcome: store.OutcomeIssued, Count: count})
	return GenerateResult{IDs: ids, Alphabet: res.Name, Length: length}, nil
}

type ValidateRequest struct {
	AlphabetSpec
	ID     string `json:"id"`
	Length int    `json:"length,omitempty"`
}

// Validate only errors on bad configuration in req; a malformed ID is a
// plain false.
func (s *Service) Validate(req ValidateRequest) (bool, error) {
	res, err := s.Resolve(req.AlphabetSpec)
	if err != nil {
		return false, err
	}
	length, err := s.length(req.Length)
	if err != nil {
		return false, err
	}
	ok := shortid.Validate(req.ID, res.Alphabet, length, res.FoldCase)

	outcome := store.OutcomeInvalid
	if ok {
		outcome = store.OutcomeValid
	}
	metrics.Validations.WithLabelValues(res.Name, string(outcome)).Inc()
	s.RecordEvent(store.Event{Alphabet: res.Name, Kind: store.KindValidate, Outcome: outcome, Count: 1})
	return ok, nil
}

func (s *Service) length(n int) (int, error) {
	if n == 0 {
		return s.opts.Length, nil
	}
	if n < 2 || n > s.opts.MaxLength {
		return 0, fmt.Errorf("%w: want 2..%d, got %d", ErrInvalidLength, s.opts.MaxLength, n)
	}
	return n, nil
}

func (s *Service) RecordEvent(ev store.Event) {
	if ev.Ts.IsZero() {
		ev.Ts = time.Now()
	}
	select {
	case s.eventsCh <- ev:
	default:
		// Drop if buffer full to keep requests fast
		metrics.EventsDropped.Inc()
	}
}

func (s *Service) RunEventIngester(ctx context.Context) {
	for {
		select {
		case ev := <-s.eventsCh:
			if err := s.store.InsertEvent(ev); err != nil {
				log.Error().Err(err).Str("alphabet", ev.Alphabet).Str("kind", string(ev.Kind)).Msg("insert event")
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Service) Stats() ([]store.Stats, error) {
	return s.store.Stats()
}

// Options returns the effective options after defaults were applied.
func (s *Service) Options() Options {
	return s.opts
}
