package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics published after a successful item mutation.
const (
	TopicItemCreated = "item.created"
	TopicItemUpdated = "item.updated"
	TopicItemDeleted = "item.deleted"
)

// Topics lists every item topic, in the order subscribers register them.
var Topics = []string{TopicItemCreated, TopicItemUpdated, TopicItemDeleted}

// ItemEvent is the payload of every item topic. Name is empty for deletions.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicItemCreated, ...).
type ItemEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	Type       string    `json:"type"`
	ItemID     string    `json:"item_id"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewItemEvent builds a version 1 event for topic.
func NewItemEvent(topic, itemID, name string) ItemEvent {
	return ItemEvent{
		EventID:    uuid.New(),
		Version:    1,
		Type:       topic,
		ItemID:     itemID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
}
