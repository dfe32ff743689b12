// Package noun models an offline, locally composed noun: a named seed with
// an owner and timestamps.
package noun

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// Noun is a locally created avatar draft.
type Noun struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Seed      seed.Seed `json:"seed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Composer is the part of composer.Composer a noun draft needs.
type Composer interface {
	NewRandomSeed(previous seed.Seed) (seed.Seed, error)
}

var now = func() time.Time { return time.Now().UTC() }

// New creates a draft with a fresh id. An empty owner gets a random account
// id, matching how offline nouns are attributed before a wallet is linked.
func New(name, owner string, s seed.Seed) Noun {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = uuid.NewString()
	}
	t := now()
	return Noun{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Owner:     owner,
		Seed:      s,
		CreatedAt: t,
		UpdatedAt: t,
	}
}

// WithSeed returns a copy of n carrying s.
func (n Noun) WithSeed(s seed.Seed) Noun {
	n.Seed = s
	n.UpdatedAt = now()
	return n
}

// Renamed returns a copy of n with a new name.
func (n Noun) Renamed(name string) Noun {
	n.Name = strings.TrimSpace(name)
	n.UpdatedAt = now()
	return n
}

// Randomize returns a copy of n with a fresh seed from c.NewRandomSeed.
func Randomize(c Composer, n Noun) (Noun, error) {
	s, err := c.NewRandomSeed(n.Seed)
	if err != nil {
		return n, err
	}
	return n.WithSeed(s), nil
}
