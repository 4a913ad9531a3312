package repositories

import (
	"context"

	"github.com/ghuser/itemstack/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every method maps to exactly one store round-trip. Implementations return
// domain.ErrItemNotFound when id does not resolve and domain.ErrInvalidItemID
// when id is not in the store's identifier format.
type ItemRepository interface {
	// List returns every item ordered by CreatedAt, newest first.
	List(ctx context.Context) ([]*models.Item, error)

	GetByID(ctx context.Context, id string) (*models.Item, error)

	// Create persists item and assigns its ID.
	Create(ctx context.Context, item *models.Item) error

	// UpdateName replaces the name of an existing item and returns the stored result.
	UpdateName(ctx context.Context, id string, name models.ItemName) (*models.Item, error)

	Delete(ctx context.Context, id string) error
}
