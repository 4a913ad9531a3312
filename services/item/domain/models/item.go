package models

import (
	"time"
)

// Item is the only aggregate of the item bounded context.
// ID is opaque and assigned by the store on creation.
type Item struct {
	ID        string
	Name      ItemName
	CreatedAt time.Time
}

// NewItem constructs an unsaved Item stamped with the current time. CreatedAt is
// truncated to milliseconds so the value survives every supported store unchanged.
func NewItem(name ItemName) *Item {
	return &Item{
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Rename replaces the item name. ID and CreatedAt never change after creation.
func (i *Item) Rename(name ItemName) {
	i.Name = name
}
