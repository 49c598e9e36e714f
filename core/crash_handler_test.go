package core

import (
	"strings"
	"testing"
)

func TestGuardRecoversPanic(t *testing.T) {
	err := Guard("spring", func() {
		panic("bad index")
	})
	if err == nil {
		t.Fatal("Expected error from panicking function")
	}
	if !strings.Contains(err.Error(), "spring") || !strings.Contains(err.Error(), "bad index") {
		t.Errorf("Error should name the unit and the panic value, got %q", err.Error())
	}
}

func TestGuardPassesThrough(t *testing.T) {
	ran := false
	if err := Guard("noop", func() { ran = true }); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !ran {
		t.Error("Guarded function did not run")
	}
}

func TestEntityValid(t *testing.T) {
	if NoEntity.Valid() {
		t.Error("NoEntity must not be valid")
	}
	if !Entity(7).Valid() {
		t.Error("Issued entity should be valid")
	}
}
