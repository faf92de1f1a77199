package bus

// EventBus is a thread-safe, in-process pub/sub bus that routes inbound
// entity events to the handlers registered for their type.
//
// Key characteristics:
// - Type-based fan-out: handlers subscribe by Event.Type() string.
// - Ordered, synchronous delivery: Publish calls handlers in subscription order
// in the caller goroutine.
// - Error aggregation: handler errors are joined and returned from Publish/PublishBatch.
// - Optional observability: metrics are produced only when observers are registered.
//
// Handlers must not subscribe or unsubscribe on the bus that is delivering to them.
type EventBus interface {
	// Publish delivers event to every active subscriber of event.Type(). Publishing
	// a type with no subscribers returns ErrNoSubscribers.
	Publish(event Event) error
	// PublishBatch publishes events in order and aggregates errors across them.
	PublishBatch(events ...Event) error

	// Subscribe registers handler for eventType and returns a handle to cancel it.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels sub. A nil sub does nothing.
	Unsubscribe(sub Subscription) error
	// Has reports whether eventType has at least one subscriber.
	Has(eventType string) bool

	AddObserver(obs EventBusObserver)
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of the counters. They only move while at
	// least one observer is registered.
	GetMetrics() EventBusMetrics
}

// Event is a message routed by its Type.
type Event interface {
	Type() string
}

// EventHandler is invoked per delivered event.
type EventHandler func(event Event) error

// Subscription is a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel removes the handler from the bus. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries and errors. Observers should return quickly.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error, durationMicros int64)
}

type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
