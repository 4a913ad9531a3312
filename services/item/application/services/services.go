package services

import (
	"github.com/ghuser/itemstack/pkg/app"
	"github.com/ghuser/itemstack/services/item/infrastructure/persistence"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := persistence.NewItemRepository(a.Store)

	var publisher Publisher
	if a.EventBus != nil {
		publisher = a.EventBus
	}
	return &Services{
		Item: NewItemService(repo, publisher, a.Logger),
	}
}
