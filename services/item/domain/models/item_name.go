package models

import "errors"

// ItemName is a value object representing a valid item name.
// The only rule is presence: the name must not be empty.
type ItemName string

// errNameRequired is wrapped by callers with domain.ErrInvalidItemName.
var errNameRequired = errors.New("name is required")

// NewItemName constructs a valid ItemName or returns an error if the name is empty.
func NewItemName(s string) (ItemName, error) {
	if s == "" {
		return "", errNameRequired
	}
	return ItemName(s), nil
}

// String returns the underlying string value.
func (n ItemName) String() string {
	return string(n)
}
