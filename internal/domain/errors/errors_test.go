package errors

import (
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	cases := []struct {
		err  error
		kind Kind
	}{
		{NotFound("x"), KindNotFound},
		{NotAMember("x"), KindNotAMember},
		{InsufficientPermission("x"), KindInsufficientPermission},
		{Conflict("x"), KindConflict},
		{InvalidRequest("x"), KindInvalidRequest},
	}
	for _, c := range cases {
		if got := KindOf(c.err); got != c.kind {
			t.Errorf("KindOf(%v) = %d, want %d", c.err, got, c.kind)
		}
	}
	if KindOf(fmt.Errorf("plain")) != 0 {
		t.Error("plain error should have kind 0")
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Conflict("inner"))
	if !IsConflict(err) {
		t.Error("wrapped conflict should still be a conflict")
	}
	if IsNotFound(err) {
		t.Error("wrapped conflict should not be not-found")
	}
}

func TestMessage(t *testing.T) {
	err := NotFound("project not found")
	if err.Error() != "project not found" {
		t.Errorf("Error() = %q", err.Error())
	}
}
