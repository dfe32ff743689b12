package errors

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestCatalogLoadErrorMatching(t *testing.T) {
	err := error(&CatalogLoadError{Source: "traits.json", Err: io.ErrUnexpectedEOF})

	if !errors.Is(err, ErrCatalogLoad) {
		t.Error("expected errors.Is(err, ErrCatalogLoad)")
	}
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Error("expected wrapped cause to be reachable")
	}
	if !strings.Contains(err.Error(), "traits.json") {
		t.Errorf("error should name the source: %q", err.Error())
	}

	var loadErr *CatalogLoadError
	if !errors.As(err, &loadErr) || loadErr.Source != "traits.json" {
		t.Errorf("errors.As failed: %#v", loadErr)
	}
}

func TestSeedGenerationExhaustedMatching(t *testing.T) {
	err := error(&SeedGenerationExhausted{Attempts: 10, Variant: "basic"})

	if !errors.Is(err, ErrSeedGenerationExhausted) {
		t.Error("expected errors.Is(err, ErrSeedGenerationExhausted)")
	}
	if errors.Is(err, ErrCatalogLoad) {
		t.Error("exhaustion must not match ErrCatalogLoad")
	}
	if !strings.Contains(err.Error(), "10 attempts") {
		t.Errorf("unexpected message %q", err.Error())
	}
}
