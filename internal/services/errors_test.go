package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ErrValidation, "importing", "validate inputs", "source directory missing", cause)

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker in %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause in chain: %v", err)
	}
	if !strings.Contains(err.Error(), "importing: validate inputs: source directory missing") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "importing", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker in %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrNotFound, "", "", "", nil)
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected placeholder detail: %v", err)
	}
}
