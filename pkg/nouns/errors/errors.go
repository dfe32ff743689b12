// Package errors defines the failure taxonomy shared by the catalog and
// composer packages.
package errors

import (
	"errors"
	"fmt"
)

var (
	// Catalog errors 🗂️
	ErrCatalogLoad      = errors.New("❌ catalog load failed")
	ErrChecksumMismatch = errors.New("❌ checksum mismatch")

	// Seed errors 🎲
	ErrInvalidSeed             = errors.New("❌ invalid seed")
	ErrUnknownVariant          = errors.New("❌ unknown seed variant")
	ErrTraitOutOfRange         = errors.New("❌ trait index out of range")
	ErrSeedGenerationExhausted = errors.New("❌ seed generation exhausted")
)

// CatalogLoadError reports a catalog source that could not be read or parsed.
type CatalogLoadError struct {
	Source string
	Err    error
}

func (e *CatalogLoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v: %v", ErrCatalogLoad, e.Err)
	}
	return fmt.Sprintf("%v: %s: %v", ErrCatalogLoad, e.Source, e.Err)
}

func (e *CatalogLoadError) Unwrap() error { return e.Err }

func (e *CatalogLoadError) Is(target error) bool { return target == ErrCatalogLoad }

// SeedGenerationExhausted reports that the rejection loop for a diverging
// seed hit its attempt bound.
type SeedGenerationExhausted struct {
	Attempts int
	Variant  string
}

func (e *SeedGenerationExhausted) Error() string {
	return fmt.Sprintf("%v: no %s seed diverged from previous after %d attempts",
		ErrSeedGenerationExhausted, e.Variant, e.Attempts)
}

func (e *SeedGenerationExhausted) Is(target error) bool {
	return target == ErrSeedGenerationExhausted
}
