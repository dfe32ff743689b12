package composer

import (
	"fmt"

	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// Layer is one resolved trait image of a seed.
type Layer struct {
	Category   catalog.Category
	Index      int
	Descriptor catalog.TraitDescriptor
}

// Traits is everything a renderer needs to draw a seed, back to front.
type Traits struct {
	BackgroundColor string
	Layers          []Layer
}

// Resolve maps the fields of s that variant v stores onto catalog
// descriptors. An index past the end of a non-empty category is an error;
// index 0 of an empty category resolves to no layer.
func Resolve(cat *catalog.Catalog, s seed.Seed, v seed.Variant) (Traits, error) {
	if err := s.Validate(v); err != nil {
		return Traits{}, err
	}

	var t Traits
	colors := cat.BackgroundColors()
	switch {
	case s.Background < len(colors):
		t.BackgroundColor = colors[s.Background]
	case len(colors) > 0 || s.Background != 0:
		return Traits{}, outOfRange(catalog.Background, s.Background, len(colors))
	}

	stored := make(map[seed.Field]bool)
	for _, f := range v.Fields() {
		stored[f] = true
	}

	for _, d := range layerOrder {
		if !stored[d.field] {
			continue
		}
		idx := s.Get(d.field)
		desc, ok := cat.Descriptor(d.category, idx)
		if !ok {
			n := cat.Count(d.category)
			if n == 0 && idx == 0 {
				continue
			}
			return Traits{}, outOfRange(d.category, idx, n)
		}
		t.Layers = append(t.Layers, Layer{Category: d.category, Index: idx, Descriptor: desc})
	}
	return t, nil
}

// AssetIDs returns the asset identifiers of t's layers in stacking order.
func (t Traits) AssetIDs() []string {
	ids := make([]string, len(t.Layers))
	for i, l := range t.Layers {
		ids[i] = l.Descriptor.AssetID
	}
	return ids
}

func outOfRange(c catalog.Category, idx, n int) error {
	return fmt.Errorf("%w: %s index %d, category has %d entries", nerrors.ErrTraitOutOfRange, c, idx, n)
}
