package services

import (
	"context"
	"fmt"

	"github.com/ghuser/itemstack/pkg/logger"
	itemdomain "github.com/ghuser/itemstack/services/item/domain"
	"github.com/ghuser/itemstack/services/item/domain/events"
	"github.com/ghuser/itemstack/services/item/domain/models"
	"github.com/ghuser/itemstack/services/item/domain/repositories"
)

// Publisher sends item change events. Satisfied by *events.EventBus from pkg/events.
type Publisher interface {
	PublishJSON(ctx context.Context, topic string, payload any) error
}

// ItemService maps each item operation onto exactly one repository call.
// Change events are published after a successful mutation; a failed publish
// is logged and never fails the request.
type ItemService struct {
	repo      repositories.ItemRepository
	publisher Publisher
	log       logger.Logger
}

// NewItemService returns an ItemService. publisher may be nil.
func NewItemService(repo repositories.ItemRepository, publisher Publisher, log logger.Logger) *ItemService {
	return &ItemService{repo: repo, publisher: publisher, log: log}
}

// List returns all items, newest first.
func (s *ItemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetByID returns one item or ErrItemNotFound.
func (s *ItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return item, nil
}

// Create validates name and persists a new Item.
func (s *ItemService) Create(ctx context.Context, name string) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}

	item := models.NewItem(itemName)
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.publish(ctx, events.TopicItemCreated, item.ID, item.Name.String())
	return item, nil
}

// Update renames an existing item. The name is validated before the id is
// looked up, so an empty name on an unknown id reports a validation error.
func (s *ItemService) Update(ctx context.Context, id, name string) (*models.Item, error) {
	itemName, err := models.NewItemName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", itemdomain.ErrInvalidItemName, err)
	}

	item, err := s.repo.UpdateName(ctx, id, itemName)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.publish(ctx, events.TopicItemUpdated, item.ID, item.Name.String())
	return item, nil
}

// Delete removes an item or returns ErrItemNotFound.
func (s *ItemService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	s.publish(ctx, events.TopicItemDeleted, id, "")
	return nil
}

func (s *ItemService) publish(ctx context.Context, topic, itemID, name string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishJSON(ctx, topic, events.NewItemEvent(topic, itemID, name)); err != nil {
		s.log.WarnContext(ctx, "failed to publish item event",
			"topic", topic,
			"item_id", itemID,
			"error", err,
		)
	}
}
