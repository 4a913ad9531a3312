package models

import (
	"strings"
	"testing"
)

func TestNewItemName(t *testing.T) {
	t.Run("valid single character", func(t *testing.T) {
		n, err := NewItemName("a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "a" {
			t.Fatalf("expected %q, got %q", "a", n.String())
		}
	})

	t.Run("long names are accepted", func(t *testing.T) {
		s := strings.Repeat("x", 4096)
		n, err := NewItemName(s)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(n.String()) != 4096 {
			t.Fatalf("expected string of length 4096, got %d", len(n.String()))
		}
	})

	t.Run("whitespace is kept verbatim", func(t *testing.T) {
		n, err := NewItemName("  milk ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.String() != "  milk " {
			t.Fatalf("expected %q, got %q", "  milk ", n.String())
		}
	})

	t.Run("empty string returns error", func(t *testing.T) {
		_, err := NewItemName("")
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if err.Error() != "name is required" {
			t.Fatalf("unexpected message: %q", err.Error())
		}
	})
}

func TestItemName_String(t *testing.T) {
	n := ItemName("hello")
	if n.String() != "hello" {
		t.Fatalf("expected %q, got %q", "hello", n.String())
	}
}
