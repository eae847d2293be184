package rlmerr

import (
	"errors"
	"testing"
)

func TestIsMatchesKind(t *testing.T) {
	err := FileNotFound("main.go")
	if !Is(err, KindFileNotFound) {
		t.Error("expected Is to match KindFileNotFound")
	}
	if Is(err, KindSymbolNotFound) {
		t.Error("expected Is to reject a different kind")
	}
}

func TestIsMatchesThroughWrap(t *testing.T) {
	err := FileNotFound("main.go")
	wrapped := errors.Join(errors.New("context"), err)
	if !Is(wrapped, KindFileNotFound) {
		t.Error("expected Is to see through errors.Join")
	}
}

func TestErrorMessagesCarryDetail(t *testing.T) {
	if got := FileNotFound("x.go").Error(); got == "" {
		t.Error("expected non-empty message")
	}
	if got := SymbolNotFound("Foo").Error(); got == "" {
		t.Error("expected non-empty message")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Database(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
