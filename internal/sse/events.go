// Package sse implements Server-Sent Events for real-time wardrobe updates.
package sse

import (
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// In FitBot we primarily use SSE for server-to-client communication,
// since most interactions follow a request/response pattern.
// Full bidirectional communication may be implemented with WebSockets
// in the future if needed.

// EventType represents the type of SSE Event.
type EventType string

const (
	// EventItemCreated represents a clothing item creation event.
	EventItemCreated EventType = "item.created"
	// EventItemUpdated represents a clothing item update event.
	EventItemUpdated EventType = "item.updated"
	// EventItemDeleted represents a clothing item deletion event.
	EventItemDeleted EventType = "item.deleted"
	// EventItemArchived represents a clothing item archive toggle event.
	EventItemArchived EventType = "item.archived"
	// EventItemWorn represents a wear-log event.
	EventItemWorn EventType = "item.worn"

	// EventOutfitSuggested represents a stylist outfit suggestion event.
	EventOutfitSuggested EventType = "outfit.suggested"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients.
// The Data field contains the event payload as a JSON object for direct deserialization.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"` // Event-specific data as JSON object
	Type      EventType `json:"type"`

	// Filtering field for multi-user support.
	// When set, the event is only delivered to clients for that user.
	// Empty string means "broadcast to all".
	UserID string `json:"-"` // Filter to specific user (not sent to client)
}

// ItemEventData is the data payload for item create/update/archive/worn events.
// Contains the full item so SSE events are self-contained and immediately
// renderable without additional API calls.
type ItemEventData struct {
	Item *domain.ClothingItem `json:"item"`
}

// ItemDeletedEventData is the data payload for item delete events.
type ItemDeletedEventData struct {
	DeletedAt time.Time `json:"deletedAt"`
	ItemID    string    `json:"itemId"`
}

// OutfitEventData is the data payload for outfit suggestion events.
type OutfitEventData struct {
	Suggestion *domain.OutfitSuggestion `json:"suggestion"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"serverTime"`
}

// NewItemCreatedEvent creates an item.created event scoped to the owner.
func NewItemCreatedEvent(userID string, item *domain.ClothingItem) Event {
	return Event{
		Type:      EventItemCreated,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewItemUpdatedEvent creates an item.updated event scoped to the owner.
func NewItemUpdatedEvent(userID string, item *domain.ClothingItem) Event {
	return Event{
		Type:      EventItemUpdated,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewItemDeletedEvent creates an item.deleted event scoped to the owner.
func NewItemDeletedEvent(userID, itemID string) Event {
	return Event{
		Type: EventItemDeleted,
		Data: ItemDeletedEventData{
			ItemID:    itemID,
			DeletedAt: time.Now(),
		},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewItemArchivedEvent creates an item.archived event scoped to the owner.
// The item carries its current IsArchived flag, so the same event type covers
// both archiving and unarchiving.
func NewItemArchivedEvent(userID string, item *domain.ClothingItem) Event {
	return Event{
		Type:      EventItemArchived,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewItemWornEvent creates an item.worn event scoped to the owner.
func NewItemWornEvent(userID string, item *domain.ClothingItem) Event {
	return Event{
		Type:      EventItemWorn,
		Data:      ItemEventData{Item: item},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewOutfitSuggestedEvent creates an outfit.suggested event scoped to the owner.
func NewOutfitSuggestedEvent(userID string, suggestion *domain.OutfitSuggestion) Event {
	return Event{
		Type:      EventOutfitSuggested,
		Data:      OutfitEventData{Suggestion: suggestion},
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return Event{
		Type: EventHeartbeat,
		Data: HeartbeatEventData{
			ServerTime: time.Now(),
		},
		Timestamp: time.Now(),
	}
}
