package store

import "time"

type Kind string

const (
	KindGenerate Kind = "generate"
	KindValidate Kind = "validate"
)

type Outcome string

const (
	OutcomeIssued  Outcome = "issued"
	OutcomeValid   Outcome = "valid"
	OutcomeInvalid Outcome = "invalid"
)

// Event is one usage record. Identifiers themselves are never stored.
type Event struct {
	Alphabet string
	Kind     Kind
	Outcome  Outcome
	Count    int
	Ts       time.Time
}

type Stats struct {
	Alphabet string  `json:"alphabet"`
	Kind     Kind    `json:"kind"`
	Outcome  Outcome `json:"outcome"`
	Total    int64   `json:"total"`
	LastSeen string  `json:"lastSeen,omitempty"`
}

type Store interface {
	InsertEvent(ev Event) error
	Stats() ([]Stats, error)
}
