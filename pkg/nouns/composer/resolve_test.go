package composer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

func TestResolveBasicLayerOrder(t *testing.T) {
	cat := buildCatalog(t, 2, map[catalog.Category]int{
		catalog.Smoke:      2,
		catalog.Head:       3,
		catalog.Headphones: 2,
		catalog.Beard:      2,
	})

	// Beard is extended-only and must not appear for a basic seed.
	traits, err := Resolve(cat, seed.Seed{Background: 1, Smoke: 1, Head: 2, Headphones: 0, Beard: 1}, seed.Basic)
	require.NoError(t, err)

	assert.Equal(t, "000001", traits.BackgroundColor)
	assert.Equal(t, []string{"smoke-1", "heads-2", "headphones-0"}, traits.AssetIDs())
	assert.Equal(t, catalog.Head, traits.Layers[1].Category)
	assert.Equal(t, 2, traits.Layers[1].Index)
}

func TestResolveExtendedLayerOrder(t *testing.T) {
	cat := buildCatalog(t, 1, uniformCounts(2))

	s := seed.Seed{Smoke: 1, Head: 1, Headphones: 1, Beard: 1, HatOverHeadphones: 1, LongHair: 1}
	traits, err := Resolve(cat, s, seed.Extended)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"body-0", "smoke-1", "heads-1", "beard-1", "chain-0", "eyes-0",
		"longHair-1", "shortHair-0", "hatUnderHeadphones-0", "headphones-1",
		"hatOverHeadphones-1", "mouth-0", "watch-0", "shirt-0",
	}, traits.AssetIDs())
}

func TestResolveEmptyCategorySkipped(t *testing.T) {
	cat := buildCatalog(t, 1, map[catalog.Category]int{
		catalog.Head:       1,
		catalog.Headphones: 1,
	})

	traits, err := Resolve(cat, seed.Default, seed.Basic)
	require.NoError(t, err)
	assert.Equal(t, []string{"heads-0", "headphones-0"}, traits.AssetIDs())
}

func TestResolveOutOfRange(t *testing.T) {
	cat := buildCatalog(t, 2, map[catalog.Category]int{
		catalog.Smoke:      2,
		catalog.Head:       3,
		catalog.Headphones: 2,
	})

	tests := []struct {
		name    string
		seed    seed.Seed
		wantErr error
	}{
		{name: "head past end", seed: seed.Seed{Head: 3}, wantErr: nerrors.ErrTraitOutOfRange},
		{name: "background past end", seed: seed.Seed{Background: 2}, wantErr: nerrors.ErrTraitOutOfRange},
		{name: "headphones past end", seed: seed.Seed{}.With(seed.FieldHeadphones, 5), wantErr: nerrors.ErrTraitOutOfRange},
		{name: "negative index", seed: seed.Seed{Head: -1}, wantErr: nerrors.ErrInvalidSeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(cat, tt.seed, seed.Basic)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestResolveRandomSeedsAlwaysResolve(t *testing.T) {
	cat := buildCatalog(t, 4, uniformCounts(5))
	c, err := New(cat, WithRandSeed(21))
	require.NoError(t, err)

	for _, v := range []seed.Variant{seed.Basic, seed.Extended} {
		for i := 0; i < 500; i++ {
			_, err := Resolve(cat, c.RandomSeedFor(v), v)
			require.NoError(t, err)
		}
	}
}
