// Package persistence selects the item repository matching the store kind.
package persistence

import (
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/services/item/domain/repositories"
	"github.com/ghuser/itemstack/services/item/infrastructure/persistence/memory"
	mongorepo "github.com/ghuser/itemstack/services/item/infrastructure/persistence/mongo"
	"github.com/ghuser/itemstack/services/item/infrastructure/persistence/postgres"
)

// NewItemRepository returns the repository implementation for store's target kind.
func NewItemRepository(store *database.Store) repositories.ItemRepository {
	switch store.Target().Kind() {
	case database.KindMongo:
		return mongorepo.NewItemRepository(store)
	case database.KindPostgres:
		return postgres.NewItemRepository(store)
	default:
		return memory.NewItemRepository(store)
	}
}
