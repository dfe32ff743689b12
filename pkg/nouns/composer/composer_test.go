package composer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// buildCatalog makes a catalog whose categories hold the given number of
// descriptors, named "<category>-<index>".
func buildCatalog(t *testing.T, backgrounds int, counts map[catalog.Category]int) *catalog.Catalog {
	t.Helper()

	type descriptor struct {
		Filename string              `json:"filename"`
		Data     string              `json:"data"`
		Textures map[string][]string `json:"textures"`
	}
	images := make(map[string][]descriptor, len(counts))
	for c, n := range counts {
		list := make([]descriptor, n)
		for i := range list {
			list[i] = descriptor{
				Filename: fmt.Sprintf("%s-%d", c, i),
				Data:     fmt.Sprintf("0x%02x", i),
				Textures: map[string][]string{},
			}
		}
		images[string(c)] = list
	}
	bg := make([]string, backgrounds)
	for i := range bg {
		bg[i] = fmt.Sprintf("%06x", i)
	}

	data, err := json.Marshal(map[string]interface{}{
		"palette":  []string{"", "ffffff"},
		"bgcolors": bg,
		"images":   images,
	})
	require.NoError(t, err)

	cat, err := catalog.LoadBytes(data, catalog.WithName(t.Name()))
	require.NoError(t, err)
	return cat
}

func uniformCounts(n int) map[catalog.Category]int {
	return map[catalog.Category]int{
		catalog.Body:               n,
		catalog.Smoke:              n,
		catalog.Head:               n,
		catalog.Headphones:         n,
		catalog.Beard:              n,
		catalog.Chain:              n,
		catalog.Eyes:               n,
		catalog.HatOverHeadphones:  n,
		catalog.HatUnderHeadphones: n,
		catalog.LongHair:           n,
		catalog.Mouth:              n,
		catalog.Shirt:              n,
		catalog.ShortHair:          n,
		catalog.Watch:              n,
	}
}

// scriptedSource replays fixed draws and records every bound it was asked for.
type scriptedSource struct {
	values []int
	bounds []int
}

func (s *scriptedSource) IntN(n int) int {
	s.bounds = append(s.bounds, n)
	v := s.values[0]
	s.values = append(s.values[1:], v)
	return v % n
}

func TestNewRequiresCatalog(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestWeightedIndexFolding(t *testing.T) {
	tests := []struct {
		name   string
		n, w   int
		draw   int
		want   int
		wantOK bool
	}{
		{name: "in range", n: 3, w: 2, draw: 2, want: 2, wantOK: true},
		{name: "past end folds to zero", n: 3, w: 2, draw: 4, want: 0, wantOK: true},
		{name: "first extra slot folds", n: 3, w: 2, draw: 3, want: 0, wantOK: true},
		{name: "single entry", n: 1, w: 0, draw: 0, want: 0, wantOK: true},
		{name: "empty category", n: 0, w: 3, draw: 0, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{values: []int{tt.draw}}
			got, ok := WeightedIndex(src, tt.n, tt.w)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			if tt.n > 0 {
				assert.Equal(t, []int{tt.n + tt.w}, src.bounds)
			} else {
				assert.Empty(t, src.bounds, "empty category must not draw")
			}
		})
	}
}

func TestWeightedIndexNegativeWeight(t *testing.T) {
	src := &scriptedSource{values: []int{1}}
	_, ok := WeightedIndex(src, 4, -3)
	require.True(t, ok)
	assert.Equal(t, []int{4}, src.bounds)
}

func TestWeightedIndexDistribution(t *testing.T) {
	const (
		n      = 5
		w      = 5
		trials = 100000
	)
	src := NewPCGSource(7)
	hits := make([]int, n)
	for i := 0; i < trials; i++ {
		idx, ok := WeightedIndex(src, n, w)
		require.True(t, ok)
		hits[idx]++
	}

	// P(0) = (1+w)/(n+w), P(k>0) = 1/(n+w)
	assert.InDelta(t, float64(1+w)/float64(n+w), float64(hits[0])/trials, 0.01)
	for k := 1; k < n; k++ {
		assert.InDelta(t, 1.0/float64(n+w), float64(hits[k])/trials, 0.01, "index %d", k)
	}
}

func TestBasicSeedScenario(t *testing.T) {
	cat := buildCatalog(t, 1, map[catalog.Category]int{
		catalog.Smoke:      2,
		catalog.Head:       3,
		catalog.Headphones: 1,
	})
	c, err := New(cat, WithRandSeed(1))
	require.NoError(t, err)

	smokes := map[int]bool{}
	heads := map[int]bool{}
	for i := 0; i < 10000; i++ {
		s := c.RandomSeed()
		require.Equal(t, 0, s.Background)
		require.Equal(t, 0, s.Headphones)
		require.True(t, s.Smoke >= 0 && s.Smoke < 2, "smoke out of range: %d", s.Smoke)
		require.True(t, s.Head >= 0 && s.Head < 3, "head out of range: %d", s.Head)
		require.Equal(t, s, s.Basic(), "basic seed populated extended fields")
		smokes[s.Smoke] = true
		heads[s.Head] = true
	}
	assert.Len(t, smokes, 2)
	assert.Len(t, heads, 3)
}

func TestEmptyCategoryFallsBackToZeroSeed(t *testing.T) {
	cat := buildCatalog(t, 3, map[catalog.Category]int{
		catalog.Smoke:      4,
		catalog.Head:       0,
		catalog.Headphones: 4,
	})
	c, err := New(cat)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.Equal(t, seed.Seed{}, c.RandomSeed())
		require.Equal(t, seed.Seed{}, c.RandomSeedFor(seed.Extended))
	}
}

func TestExtendedIgnoresReservedCategories(t *testing.T) {
	counts := uniformCounts(4)
	delete(counts, catalog.Body)
	delete(counts, catalog.Shirt)
	delete(counts, catalog.Watch)
	cat := buildCatalog(t, 4, counts)

	c, err := New(cat, WithRandSeed(3))
	require.NoError(t, err)

	nonZero := false
	for i := 0; i < 200; i++ {
		if c.RandomSeedFor(seed.Extended) != (seed.Seed{}) {
			nonZero = true
			break
		}
	}
	assert.True(t, nonZero, "missing reserved categories must not force the zero seed")
}

func TestExtendedSeedInvariants(t *testing.T) {
	cat := buildCatalog(t, 6, uniformCounts(6))
	c, err := New(cat, WithRandSeed(11), WithVariant(seed.Extended))
	require.NoError(t, err)

	for i := 0; i < 20000; i++ {
		s := c.RandomSeed()

		assert.Zero(t, s.Body)
		assert.Zero(t, s.Shirt)
		assert.Zero(t, s.Watch)

		over, under := s.HatOverHeadphones > 0, s.HatUnderHeadphones > 0
		require.False(t, over && under, "both hats: %v", s)
		require.False(t, s.ShortHair > 0 && s.LongHair > 0, "both hair lengths: %v", s)
		require.False(t, (over || under) && s.ShortHair > 0, "hat with short hair: %v", s)

		for _, f := range seed.Extended.Fields() {
			v := s.Get(f)
			require.True(t, v >= 0 && v < 6, "%s out of range: %d", f, v)
		}
	}
}

func TestExtendedDrawOrderAndWeights(t *testing.T) {
	cat := buildCatalog(t, 6, uniformCounts(6))
	src := &scriptedSource{values: []int{1, 2, 3, 0, 5, 1, 8, 2, 4, 0, 0, 2}}
	c, err := New(cat, WithSource(src))
	require.NoError(t, err)

	got := c.RandomSeedFor(seed.Extended)

	want := seed.Seed{
		Background: 1, Smoke: 2, Head: 3, Headphones: 0,
		Beard: 5, Chain: 1, Eyes: 0, Mouth: 2,
		// hatOverHeadphones drew 4 but short hair clears hats
		ShortHair: 2,
	}
	assert.Equal(t, want, got)
	assert.Equal(t, []int{6, 6, 6, 6, 9, 9, 9, 9, 11, 6, 6, 6}, src.bounds)
}

func TestResolveExclusions(t *testing.T) {
	tests := []struct {
		name string
		in   seed.Seed
		want seed.Seed
	}{
		{
			name: "no conflicts",
			in:   seed.Seed{HatOverHeadphones: 1, LongHair: 2},
			want: seed.Seed{HatOverHeadphones: 1, LongHair: 2},
		},
		{
			name: "over hat yields to under hat",
			in:   seed.Seed{HatOverHeadphones: 2, HatUnderHeadphones: 3},
			want: seed.Seed{HatUnderHeadphones: 3},
		},
		{
			name: "hats yield to short hair",
			in:   seed.Seed{HatOverHeadphones: 2, ShortHair: 1},
			want: seed.Seed{ShortHair: 1},
		},
		{
			name: "short hair yields to long hair",
			in:   seed.Seed{ShortHair: 1, LongHair: 1},
			want: seed.Seed{LongHair: 1},
		},
		{
			name: "short hair clears hat then loses to long hair",
			in:   seed.Seed{HatUnderHeadphones: 4, ShortHair: 1, LongHair: 4},
			want: seed.Seed{LongHair: 4},
		},
		{
			name: "all four set",
			in:   seed.Seed{HatOverHeadphones: 1, HatUnderHeadphones: 1, ShortHair: 1, LongHair: 1, Beard: 3},
			want: seed.Seed{LongHair: 1, Beard: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveExclusions(tt.in))
		})
	}
}

func TestDeterministicWithFixedSource(t *testing.T) {
	cat := buildCatalog(t, 8, uniformCounts(8))

	sequence := func(s uint64) []seed.Seed {
		c, err := New(cat, WithRandSeed(s), WithVariant(seed.Extended))
		require.NoError(t, err)
		out := make([]seed.Seed, 50)
		for i := range out {
			out[i] = c.RandomSeed()
		}
		return out
	}

	assert.Equal(t, sequence(42), sequence(42))
	assert.NotEqual(t, sequence(42), sequence(43))
}

func TestNewRandomSeedBasicDiffers(t *testing.T) {
	cat := buildCatalog(t, 3, map[catalog.Category]int{
		catalog.Smoke:      3,
		catalog.Head:       4,
		catalog.Headphones: 2,
	})
	c, err := New(cat, WithRandSeed(5))
	require.NoError(t, err)

	previous := seed.Default
	for i := 0; i < 1000; i++ {
		next, err := c.NewRandomSeed(previous)
		require.NoError(t, err)
		for _, f := range PopulatedFields(seed.Basic) {
			require.NotEqual(t, previous.Get(f), next.Get(f), "trial %d field %s", i, f)
		}
		previous = next
	}
}

func TestNewRandomSeedExtendedDiffers(t *testing.T) {
	cat := buildCatalog(t, 8, uniformCounts(8))
	c, err := New(cat, WithRandSeed(9), WithVariant(seed.Extended))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		previous := c.RandomSeed()
		next, err := c.NewRandomSeed(previous)
		require.NoError(t, err, "trial %d previous %v", i, previous)
		require.True(t, Diverges(next, previous, seed.Extended), "trial %d: %v vs %v", i, next, previous)

		for _, f := range PopulatedFields(seed.Extended) {
			if previous.Get(f) != 0 {
				require.NotEqual(t, previous.Get(f), next.Get(f), "trial %d field %s", i, f)
			}
		}
		assert.Zero(t, next.Shirt)
		assert.False(t, next.HatOverHeadphones > 0 && next.HatUnderHeadphones > 0, "both hats: %v", next)
	}
}

func TestDiverges(t *testing.T) {
	base := seed.Seed{Background: 1, Smoke: 1, Head: 1, Headphones: 1, Beard: 1, Chain: 1, Eyes: 1, Mouth: 1, HatUnderHeadphones: 2}
	moved := seed.Seed{Background: 2, Smoke: 2, Head: 2, Headphones: 2, Beard: 2, Chain: 2, Eyes: 2, Mouth: 2}

	tests := []struct {
		name      string
		candidate seed.Seed
		previous  seed.Seed
		variant   seed.Variant
		want      bool
	}{
		{name: "hat removed", candidate: moved, previous: base, variant: seed.Extended, want: true},
		{name: "hat kept", candidate: moved.With(seed.FieldHatUnderHeadphones, 2), previous: base, variant: seed.Extended, want: false},
		{name: "hat swapped", candidate: moved.With(seed.FieldHatUnderHeadphones, 3), previous: base, variant: seed.Extended, want: true},
		{name: "short hair cleared", candidate: moved, previous: base.With(seed.FieldShortHair, 3), variant: seed.Extended, want: true},
		{name: "beard unchanged", candidate: moved.With(seed.FieldBeard, 1), previous: base, variant: seed.Extended, want: false},
		{name: "zero beard must move", candidate: moved.With(seed.FieldBeard, 0), previous: base.With(seed.FieldBeard, 0), variant: seed.Extended, want: false},
		{name: "basic ignores extended fields", candidate: moved.With(seed.FieldBeard, 1), previous: base, variant: seed.Basic, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diverges(tt.candidate, tt.previous, tt.variant))
		})
	}
}

func TestNewRandomSeedExhausted(t *testing.T) {
	cat := buildCatalog(t, 3, map[catalog.Category]int{
		catalog.Smoke:      3,
		catalog.Head:       3,
		catalog.Headphones: 1,
	})
	c, err := New(cat, WithRandSeed(1), WithMaxAttempts(50))
	require.NoError(t, err)

	_, err = c.NewRandomSeed(seed.Default)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nerrors.ErrSeedGenerationExhausted))

	var exhausted *nerrors.SeedGenerationExhausted
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 50, exhausted.Attempts)
	assert.Equal(t, "basic", exhausted.Variant)
}

func TestConcurrentRandomSeeds(t *testing.T) {
	cat := buildCatalog(t, 5, uniformCounts(5))
	c, err := New(cat, WithRandSeed(2), WithVariant(seed.Extended))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s := c.RandomSeed()
				if s.HatOverHeadphones > 0 && s.HatUnderHeadphones > 0 {
					errs <- fmt.Errorf("both hats set: %v", s)
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestShift(t *testing.T) {
	cat := buildCatalog(t, 2, map[catalog.Category]int{
		catalog.Head:  3,
		catalog.Smoke: 0,
	})
	c, err := New(cat)
	require.NoError(t, err)

	tests := []struct {
		name  string
		start seed.Seed
		field seed.Field
		delta int
		want  int
	}{
		{name: "step forward", start: seed.Seed{Head: 0}, field: seed.FieldHead, delta: 1, want: 1},
		{name: "clamp high", start: seed.Seed{Head: 2}, field: seed.FieldHead, delta: 1, want: 2},
		{name: "clamp low", start: seed.Seed{Head: 0}, field: seed.FieldHead, delta: -1, want: 0},
		{name: "background uses colors", start: seed.Seed{Background: 0}, field: seed.FieldBackground, delta: 5, want: 1},
		{name: "empty category", start: seed.Seed{Smoke: 3}, field: seed.FieldSmoke, delta: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Shift(tt.start, tt.field, tt.delta)
			assert.Equal(t, tt.want, got.Get(tt.field))
		})
	}
}
