package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCollectionChanged   EventType = "collection_changed"
	EventSolicitationCreated EventType = "solicitation_created"
	EventStatusChanged       EventType = "solicitation_status_changed"
	EventQueueDrained        EventType = "sync_queue_drained"
)

// Event represents a domain event emitted by the data layer.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// CollectionChangedPayload announces that a remote update refreshed a
// collection; consumers re-render anything showing it.
type CollectionChangedPayload struct {
	Collection string `json:"collection"`
}

// StatusChangedPayload payload.
type StatusChangedPayload struct {
	SolicitationID string `json:"solicitation_id"`
	OldStatus      string `json:"old_status"`
	NewStatus      string `json:"new_status"`
	Actor          string `json:"actor"`
}
