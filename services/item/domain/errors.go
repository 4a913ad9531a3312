package domain

import "errors"

// Sentinel errors for the item domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItemName indicates the item name violates domain constraints.
	ErrInvalidItemName = errors.New("item validation failed")

	// ErrInvalidItemID indicates the id is not in the store's identifier format.
	ErrInvalidItemID = errors.New("invalid item id")
)
