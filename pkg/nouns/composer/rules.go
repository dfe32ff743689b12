package composer

import (
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/catalog"
	"github.com/provide-io/nouns/go/nouns/pkg/nouns/seed"
)

// draw binds a seed field to the catalog category it indexes and the extra
// weight pushed onto index 0.
type draw struct {
	field    seed.Field
	category catalog.Category
	weight   int
}

var basicPlan = []draw{
	{seed.FieldBackground, catalog.Background, 0},
	{seed.FieldSmoke, catalog.Smoke, 0},
	{seed.FieldHead, catalog.Head, 0},
	{seed.FieldHeadphones, catalog.Headphones, 0},
}

// Body, shirt and watch are reserved and never drawn; see reservedFields.
var extendedPlan = []draw{
	{seed.FieldBackground, catalog.Background, 0},
	{seed.FieldSmoke, catalog.Smoke, 0},
	{seed.FieldHead, catalog.Head, 0},
	{seed.FieldHeadphones, catalog.Headphones, 0},
	{seed.FieldBeard, catalog.Beard, 3},
	{seed.FieldChain, catalog.Chain, 3},
	{seed.FieldEyes, catalog.Eyes, 3},
	{seed.FieldMouth, catalog.Mouth, 3},
	{seed.FieldHatOverHeadphones, catalog.HatOverHeadphones, 5},
	{seed.FieldHatUnderHeadphones, catalog.HatUnderHeadphones, 0},
	{seed.FieldLongHair, catalog.LongHair, 0},
	{seed.FieldShortHair, catalog.ShortHair, 0},
}

// reservedFields are always 0 in extended seeds for the current product.
var reservedFields = []seed.Field{seed.FieldBody, seed.FieldShirt, seed.FieldWatch}

// layerOrder is the back-to-front stacking order of trait layers.
var layerOrder = []draw{
	{seed.FieldBody, catalog.Body, 0},
	{seed.FieldSmoke, catalog.Smoke, 0},
	{seed.FieldHead, catalog.Head, 0},
	{seed.FieldBeard, catalog.Beard, 0},
	{seed.FieldChain, catalog.Chain, 0},
	{seed.FieldEyes, catalog.Eyes, 0},
	{seed.FieldLongHair, catalog.LongHair, 0},
	{seed.FieldShortHair, catalog.ShortHair, 0},
	{seed.FieldHatUnderHeadphones, catalog.HatUnderHeadphones, 0},
	{seed.FieldHeadphones, catalog.Headphones, 0},
	{seed.FieldHatOverHeadphones, catalog.HatOverHeadphones, 0},
	{seed.FieldMouth, catalog.Mouth, 0},
	{seed.FieldWatch, catalog.Watch, 0},
	{seed.FieldShirt, catalog.Shirt, 0},
}

func planFor(v seed.Variant) []draw {
	if v == seed.Extended {
		return extendedPlan
	}
	return basicPlan
}

// exclusionCoupled are the fields ResolveExclusions may clear. A successor
// only has to move them where the predecessor set them; demanding a change
// from 0 would require both hats at once, which rule 1 forbids.
var exclusionCoupled = map[seed.Field]bool{
	seed.FieldHatOverHeadphones:  true,
	seed.FieldHatUnderHeadphones: true,
	seed.FieldLongHair:           true,
	seed.FieldShortHair:          true,
}

// PopulatedFields returns the fields a variant actually draws.
func PopulatedFields(v seed.Variant) []seed.Field {
	plan := planFor(v)
	fields := make([]seed.Field, len(plan))
	for i, d := range plan {
		fields[i] = d.field
	}
	return fields
}

// Diverges reports whether candidate is an acceptable successor of previous
// for v. Every populated field must differ, except exclusion-coupled fields
// that previous left at 0.
func Diverges(candidate, previous seed.Seed, v seed.Variant) bool {
	for _, f := range PopulatedFields(v) {
		if exclusionCoupled[f] && previous.Get(f) == 0 {
			continue
		}
		if candidate.Get(f) == previous.Get(f) {
			return false
		}
	}
	return true
}

// CategoryFor returns the catalog category a seed field indexes.
func CategoryFor(f seed.Field) catalog.Category {
	if f == seed.FieldBackground {
		return catalog.Background
	}
	for _, d := range layerOrder {
		if d.field == f {
			return d.category
		}
	}
	return catalog.Category(f.Key())
}

// ResolveExclusions applies the hat/hair rules once, in order:
//  1. an over-headphones hat yields to an under-headphones hat
//  2. any hat yields to short hair
//  3. short hair yields to long hair
//
// The order is significant; rule 3 can clear the short hair that removed a
// hat in rule 2.
func ResolveExclusions(s seed.Seed) seed.Seed {
	if s.HatOverHeadphones > 0 && s.HatUnderHeadphones > 0 {
		s.HatOverHeadphones = 0
	}

	hasHat := s.HatOverHeadphones > 0 || s.HatUnderHeadphones > 0
	if hasHat && s.ShortHair > 0 {
		s.HatOverHeadphones = 0
		s.HatUnderHeadphones = 0
	}

	if s.ShortHair > 0 && s.LongHair > 0 {
		s.ShortHair = 0
	}
	return s
}
