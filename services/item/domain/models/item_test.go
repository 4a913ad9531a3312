package models

import (
	"testing"
	"time"
)

func TestNewItem(t *testing.T) {
	name := ItemName("milk")

	t.Run("leaves ID for the store to assign", func(t *testing.T) {
		item := NewItem(name)
		if item.ID != "" {
			t.Fatalf("expected empty ID, got %q", item.ID)
		}
	})

	t.Run("sets Name correctly", func(t *testing.T) {
		item := NewItem(name)
		if item.Name != name {
			t.Fatalf("expected Name %v, got %v", name, item.Name)
		}
	})

	t.Run("sets CreatedAt to now UTC at millisecond precision", func(t *testing.T) {
		before := time.Now().UTC().Truncate(time.Millisecond)
		item := NewItem(name)
		after := time.Now().UTC()
		if item.CreatedAt.IsZero() {
			t.Fatal("expected non-zero CreatedAt")
		}
		if item.CreatedAt.Before(before) || item.CreatedAt.After(after) {
			t.Fatalf("CreatedAt %v not between %v and %v", item.CreatedAt, before, after)
		}
		if item.CreatedAt.Nanosecond()%int(time.Millisecond) != 0 {
			t.Fatalf("CreatedAt %v has sub-millisecond precision", item.CreatedAt)
		}
		if item.CreatedAt.Location() != time.UTC {
			t.Fatalf("expected UTC, got %v", item.CreatedAt.Location())
		}
	})
}

func TestItem_Rename(t *testing.T) {
	item := NewItem("milk")
	item.ID = "6560f1f2a1b2c3d4e5f60718"
	created := item.CreatedAt

	item.Rename("bread")

	if item.Name != "bread" {
		t.Fatalf("expected bread, got %v", item.Name)
	}
	if item.ID != "6560f1f2a1b2c3d4e5f60718" || !item.CreatedAt.Equal(created) {
		t.Fatal("Rename must not touch ID or CreatedAt")
	}
}
