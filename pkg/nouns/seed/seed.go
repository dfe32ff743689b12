// Package seed defines the value that selects one trait per category.
package seed

import (
	"fmt"
	"strconv"
	"strings"

	nerrors "github.com/provide-io/nouns/go/nouns/pkg/nouns/errors"
)

// Variant selects which category set a seed populates.
type Variant int

const (
	// Basic populates background, headphones, head and smoke.
	Basic Variant = iota
	// Extended adds body and the ten mfer accessory categories.
	Extended
)

func (v Variant) String() string {
	switch v {
	case Basic:
		return "basic"
	case Extended:
		return "extended"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// ParseVariant accepts "basic"/"nouns" and "extended"/"mfers".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic", "nouns", "noun":
		return Basic, nil
	case "extended", "mfers", "mfer":
		return Extended, nil
	default:
		return Basic, fmt.Errorf("%w: %q", nerrors.ErrUnknownVariant, s)
	}
}

// Fields returns the fields the variant stores, in canonical order.
func (v Variant) Fields() []Field {
	if v == Extended {
		return append([]Field(nil), allFields...)
	}
	return append([]Field(nil), basicFields...)
}

// Field identifies one trait slot of a seed.
type Field int

const (
	FieldBackground Field = iota
	FieldBody
	FieldHeadphones
	FieldHead
	FieldSmoke
	FieldBeard
	FieldChain
	FieldEyes
	FieldHatOverHeadphones
	FieldHatUnderHeadphones
	FieldLongHair
	FieldMouth
	FieldShirt
	FieldShortHair
	FieldWatch
)

var fieldKeys = [...]string{
	FieldBackground:         "background",
	FieldBody:               "body",
	FieldHeadphones:         "headphones",
	FieldHead:               "head",
	FieldSmoke:              "smoke",
	FieldBeard:              "beard",
	FieldChain:              "chain",
	FieldEyes:               "eyes",
	FieldHatOverHeadphones:  "hatOverHeadphones",
	FieldHatUnderHeadphones: "hatUnderHeadphones",
	FieldLongHair:           "longHair",
	FieldMouth:              "mouth",
	FieldShirt:              "shirt",
	FieldShortHair:          "shortHair",
	FieldWatch:              "watch",
}

var (
	basicFields = []Field{FieldBackground, FieldHeadphones, FieldHead, FieldSmoke}
	allFields   = []Field{
		FieldBackground, FieldBody, FieldHeadphones, FieldHead, FieldSmoke,
		FieldBeard, FieldChain, FieldEyes, FieldHatOverHeadphones, FieldHatUnderHeadphones,
		FieldLongHair, FieldMouth, FieldShirt, FieldShortHair, FieldWatch,
	}
)

// Key returns the field's wire name.
func (f Field) Key() string {
	if f < 0 || int(f) >= len(fieldKeys) {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldKeys[f]
}

func (f Field) String() string { return f.Key() }

// FieldByKey looks a field up by its wire name.
func FieldByKey(key string) (Field, bool) {
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

// Seed is a complete avatar configuration: one catalog index per category.
// It is a plain value; "modifying" a seed means building a new one with
// With. Extended-only fields stay 0 for basic seeds.
type Seed struct {
	Background         int
	Body               int
	Headphones         int
	Head               int
	Smoke              int
	Beard              int
	Chain              int
	Eyes               int
	HatOverHeadphones  int
	HatUnderHeadphones int
	LongHair           int
	Mouth              int
	Shirt              int
	ShortHair          int
	Watch              int
}

var (
	Default = Seed{}
	Pizza   = Seed{Background: 0, Headphones: 1, Head: 1, Smoke: 1}
	Shark   = Seed{Background: 1, Headphones: 2, Head: 2, Smoke: 2}
)

func (s *Seed) ptr(f Field) *int {
	switch f {
	case FieldBackground:
		return &s.Background
	case FieldBody:
		return &s.Body
	case FieldHeadphones:
		return &s.Headphones
	case FieldHead:
		return &s.Head
	case FieldSmoke:
		return &s.Smoke
	case FieldBeard:
		return &s.Beard
	case FieldChain:
		return &s.Chain
	case FieldEyes:
		return &s.Eyes
	case FieldHatOverHeadphones:
		return &s.HatOverHeadphones
	case FieldHatUnderHeadphones:
		return &s.HatUnderHeadphones
	case FieldLongHair:
		return &s.LongHair
	case FieldMouth:
		return &s.Mouth
	case FieldShirt:
		return &s.Shirt
	case FieldShortHair:
		return &s.ShortHair
	case FieldWatch:
		return &s.Watch
	default:
		return nil
	}
}

// Get returns the index stored for f; unknown fields read as 0.
func (s Seed) Get(f Field) int {
	if p := s.ptr(f); p != nil {
		return *p
	}
	return 0
}

// With returns a copy of s with f set to v.
func (s Seed) With(f Field, v int) Seed {
	if p := s.ptr(f); p != nil {
		*p = v
	}
	return s
}

// Basic returns s with every extended-only field cleared.
func (s Seed) Basic() Seed {
	return Seed{
		Background: s.Background,
		Headphones: s.Headphones,
		Head:       s.Head,
		Smoke:      s.Smoke,
	}
}

// DiffersIn reports whether s and o disagree on every one of fields.
func (s Seed) DiffersIn(o Seed, fields []Field) bool {
	for _, f := range fields {
		if s.Get(f) == o.Get(f) {
			return false
		}
	}
	return true
}

// Validate rejects negative indices among the variant's fields.
func (s Seed) Validate(v Variant) error {
	for _, f := range v.Fields() {
		if s.Get(f) < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", nerrors.ErrInvalidSeed, f.Key(), s.Get(f))
		}
	}
	return nil
}

func (s Seed) String() string {
	var b strings.Builder
	for i, f := range allFields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Key())
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(s.Get(f)))
	}
	return b.String()
}

// Parse builds a seed from decimal strings keyed by field name. Every field
// of the variant must be present and hold a non-negative integer.
func Parse(v Variant, values map[string]string) (Seed, error) {
	var s Seed
	for _, f := range v.Fields() {
		raw, ok := values[f.Key()]
		if !ok {
			return Seed{}, fmt.Errorf("%w: missing %s", nerrors.ErrInvalidSeed, f.Key())
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return Seed{}, fmt.Errorf("%w: %s=%q is not an integer", nerrors.ErrInvalidSeed, f.Key(), raw)
		}
		s = s.With(f, n)
	}
	if err := s.Validate(v); err != nil {
		return Seed{}, err
	}
	return s, nil
}
