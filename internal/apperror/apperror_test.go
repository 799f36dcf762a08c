package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessagePreference(t *testing.T) {
	err := New(KindDuplicate, "category already exists", errors.New("pq: duplicate key"))
	if err.Error() != "category already exists" {
		t.Errorf("expected Msg to win, got %q", err.Error())
	}

	err = New(KindStorage, "", errors.New("disk full"))
	if err.Error() != "disk full" {
		t.Errorf("expected wrapped error message, got %q", err.Error())
	}

	err = New(KindConnectivity, "", nil)
	if err.Error() != "connectivity" {
		t.Errorf("expected kind fallback, got %q", err.Error())
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	base := Conflict("category has products", nil)
	wrapped := fmt.Errorf("delete category: %w", base)

	if !Is(wrapped, KindConflict) {
		t.Error("expected wrapped conflict error to match KindConflict")
	}
	if Is(wrapped, KindDuplicate) {
		t.Error("conflict error must not match KindDuplicate")
	}
	if Is(errors.New("plain"), KindConflict) {
		t.Error("plain error must not match any kind")
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := Connectivity("database unreachable", inner)

	if !errors.Is(err, inner) {
		t.Error("expected errors.Is to reach the wrapped error")
	}
}
