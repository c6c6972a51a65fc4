// Package pubsub fans editor events out to any number of listeners.
//
// The editor session publishes a change event after every successful edit,
// undo, redo or save; the logger publishes each formatted line; the file
// watcher publishes external modifications. The TUI subscribes to all three.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened.
type EventType string

const (
	EditedEvent   EventType = "edited"
	UndoneEvent   EventType = "undone"
	RedoneEvent   EventType = "redone"
	SavedEvent    EventType = "saved"
	LoggedEvent   EventType = "logged"
	ExternalEvent EventType = "external" // file changed outside the editor
)

// Event carries a typed payload and the time it was published.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out event channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
