// Package composer turns a trait catalog into seeds: weighted random draws
// per category, hat/hair exclusion, and fresh seeds that share no populated
// trait with a previous one.
package composer

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// DefaultMaxAttempts bounds the rejection loop in NewRandomSeed.
const DefaultMaxAttempts = 10000

// Composer generates seeds against one catalog. It keeps no per-call state
// and is safe for concurrent use.
type Composer struct {
	catalog     *catalog.Catalog
	variant     seed.Variant
	maxAttempts int
	logger      hclog.Logger

	// mu serializes draws from an injected Source; nil for the global source.
	mu  *sync.Mutex
	src Source
}

// Option configures a Composer.
type Option func(*Composer)

// WithSource draws from src instead of the process-wide generator. Draws
// are serialized so a deterministic source yields reproducible seeds.
func WithSource(src Source) Option {
	return func(c *Composer) {
		if src != nil {
			c.src = src
			c.mu = &sync.Mutex{}
		}
	}
}

// WithRandSeed is shorthand for WithSource(NewPCGSource(s)).
func WithRandSeed(s uint64) Option {
	return WithSource(NewPCGSource(s))
}

// WithVariant sets the variant used by RandomSeed and NewRandomSeed.
func WithVariant(v seed.Variant) Option {
	return func(c *Composer) { c.variant = v }
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(c *Composer) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithLogger sets the composer's logger.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Composer over cat.
func New(cat *catalog.Catalog, opts ...Option) (*Composer, error) {
	if cat == nil {
		return nil, errors.New("composer requires a loaded catalog")
	}
	c := &Composer{
		catalog:     cat,
		variant:     seed.Basic,
		maxAttempts: DefaultMaxAttempts,
		logger:      hclog.NewNullLogger(),
		src:         globalSource{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Catalog returns the catalog the composer draws from.
func (c *Composer) Catalog() *catalog.Catalog { return c.catalog }

// Variant returns the composer's default variant.
func (c *Composer) Variant() seed.Variant { return c.variant }

// RandomSeed draws a seed for the composer's default variant.
func (c *Composer) RandomSeed() seed.Seed {
	return c.RandomSeedFor(c.variant)
}

// RandomSeedFor draws a seed for v. If any drawn category is empty the
// result is the all-zero seed.
func (c *Composer) RandomSeedFor(v seed.Variant) seed.Seed {
	if c.mu != nil {
		c.mu.Lock()
		defer c.mu.Unlock()
	}

	var s seed.Seed
	for _, d := range planFor(v) {
		idx, ok := WeightedIndex(c.src, c.catalog.Count(d.category), d.weight)
		if !ok {
			c.logger.Debug("empty category, using zero seed",
				"catalog", c.catalog.Name(), "category", string(d.category), "variant", v.String())
			return seed.Seed{}
		}
		s = s.With(d.field, idx)
	}

	if v != seed.Extended {
		return s
	}
	for _, f := range reservedFields {
		s = s.With(f, 0)
	}
	return ResolveExclusions(s)
}

// NewRandomSeed draws seeds for the default variant until one diverges from
// previous.
func (c *Composer) NewRandomSeed(previous seed.Seed) (seed.Seed, error) {
	return c.NewRandomSeedFor(previous, c.variant)
}

// NewRandomSeedFor draws seeds for v until Diverges accepts one against
// previous. It gives up with
// *errors.SeedGenerationExhausted after the configured number of attempts.
func (c *Composer) NewRandomSeedFor(previous seed.Seed, v seed.Variant) (seed.Seed, error) {
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		candidate := c.RandomSeedFor(v)
		if Diverges(candidate, previous, v) {
			if attempt > 1 {
				c.logger.Trace("diverging seed found", "attempts", attempt, "variant", v.String())
			}
			return candidate, nil
		}
	}

	c.logger.Debug("seed generation exhausted",
		"catalog", c.catalog.Name(), "variant", v.String(), "attempts", c.maxAttempts, "previous", previous.String())
	return seed.Seed{}, &nerrors.SeedGenerationExhausted{Attempts: c.maxAttempts, Variant: v.String()}
}

// Shift moves field f of s by delta, clamped to the category's valid range.
// Fields of empty categories stay at 0.
func (c *Composer) Shift(s seed.Seed, f seed.Field, delta int) seed.Seed {
	n := c.catalog.Count(CategoryFor(f))
	if n == 0 {
		return s.With(f, 0)
	}
	return s.With(f, max(min(s.Get(f)+delta, n-1), 0))
}
