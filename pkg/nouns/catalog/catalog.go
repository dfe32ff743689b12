// Package catalog loads the read-only set of trait layers a seed indexes
// into. A catalog is decoded once from a JSON document of the form
//
//	{"palette": [...], "bgcolors": [...], "images": {"<category>": [descriptor, ...]}}
//
// and never mutated afterwards, so a single *Catalog may be shared by any
// number of goroutines.
package catalog

import (
	"maps"
	"slices"
	"sort"
)

// Category names one independent visual dimension of an avatar. The value
// is the key used under "images" in the catalog source.
type Category string

const (
	Background         Category = "background"
	Body               Category = "body"
	Head               Category = "heads"
	Headphones         Category = "headphones"
	Smoke              Category = "smoke"
	Beard              Category = "beard"
	Chain              Category = "chain"
	Eyes               Category = "eyes"
	HatOverHeadphones  Category = "hatOverHeadphones"
	HatUnderHeadphones Category = "hatUnderHeadphones"
	LongHair           Category = "longHair"
	Mouth              Category = "mouth"
	Shirt              Category = "shirt"
	ShortHair          Category = "shortHair"
	Watch              Category = "watch"
)

// TraitDescriptor is one selectable variant within a category.
type TraitDescriptor struct {
	// RLEData is the run-length encoded bitmap, passed through untouched.
	RLEData string
	// AssetID names the externally stored image for this layer.
	AssetID string
	// Textures maps an animation name to its ordered texture identifiers.
	Textures map[string][]string
}

// Equal reports whether all three fields of d and o match.
func (d TraitDescriptor) Equal(o TraitDescriptor) bool {
	return d.RLEData == o.RLEData &&
		d.AssetID == o.AssetID &&
		maps.EqualFunc(d.Textures, o.Textures, func(a, b []string) bool {
			return slices.Equal(a, b)
		})
}

// Catalog is the immutable trait set loaded from one source.
type Catalog struct {
	name             string
	palette          []string
	backgroundColors []string
	images           map[Category][]TraitDescriptor
	checksum         string
}

// Name returns the label the catalog was loaded under (e.g. a brand skin).
func (c *Catalog) Name() string { return c.name }

// Palette returns the colors referenced by RLE shape data.
func (c *Catalog) Palette() []string { return slices.Clone(c.palette) }

// BackgroundColors returns the background color codes; a seed's background
// value indexes this list.
func (c *Catalog) BackgroundColors() []string { return slices.Clone(c.backgroundColors) }

// Category returns the descriptors stored under name. An absent category is
// not an error and yields an empty slice.
func (c *Catalog) Category(name Category) []TraitDescriptor {
	return slices.Clone(c.images[name])
}

// Count returns the number of selectable values for a category. The
// background category counts background colors.
func (c *Catalog) Count(name Category) int {
	if name == Background {
		return len(c.backgroundColors)
	}
	return len(c.images[name])
}

// Descriptor returns the descriptor at index i of a category.
func (c *Catalog) Descriptor(name Category, i int) (TraitDescriptor, bool) {
	list := c.images[name]
	if i < 0 || i >= len(list) {
		return TraitDescriptor{}, false
	}
	return list[i], true
}

// Categories lists the image categories present in the source, sorted.
func (c *Catalog) Categories() []Category {
	keys := make([]Category, 0, len(c.images))
	for k := range c.images {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Checksum returns the prefixed sha256 digest of the decoded source bytes.
func (c *Catalog) Checksum() string { return c.checksum }

func (c *Catalog) Smokes() []TraitDescriptor             { return c.Category(Smoke) }
func (c *Catalog) Heads() []TraitDescriptor              { return c.Category(Head) }
func (c *Catalog) Headphones() []TraitDescriptor         { return c.Category(Headphones) }
func (c *Catalog) Bodies() []TraitDescriptor             { return c.Category(Body) }
func (c *Catalog) Beards() []TraitDescriptor             { return c.Category(Beard) }
func (c *Catalog) Chains() []TraitDescriptor             { return c.Category(Chain) }
func (c *Catalog) Eyes() []TraitDescriptor               { return c.Category(Eyes) }
func (c *Catalog) HatsOverHeadphones() []TraitDescriptor { return c.Category(HatOverHeadphones) }
func (c *Catalog) HatsUnderHeadphones() []TraitDescriptor {
	return c.Category(HatUnderHeadphones)
}
func (c *Catalog) LongHairs() []TraitDescriptor  { return c.Category(LongHair) }
func (c *Catalog) Mouths() []TraitDescriptor     { return c.Category(Mouth) }
func (c *Catalog) Shirts() []TraitDescriptor     { return c.Category(Shirt) }
func (c *Catalog) ShortHairs() []TraitDescriptor { return c.Category(ShortHair) }
func (c *Catalog) Watches() []TraitDescriptor    { return c.Category(Watch) }
