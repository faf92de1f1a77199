// Package session owns the translated entities of one connected player and
// routes inbound entity events to them.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Rakise/Geyser/internal/core/entity"
	"github.com/Rakise/Geyser/internal/core/events/bus"
	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
)

// Session is the entity cache of one player. Handle, Flush and the spawn
// methods are serialized by the session lock, so a session's entities are only
// ever touched by one goroutine at a time.
type Session struct {
	id  uuid.UUID
	ctx *entity.Context

	defs     entity.Definitions
	bus      bus.EventBus
	subs     []bus.Subscription
	logger   log.Log
	observer *busObserver

	mu       sync.Mutex
	entities map[int32]entity.Entity
	closed   bool
}

// New creates a session whose entities share ctx. ctx belongs to the session
// from then on; its logger is scoped to the session id.
func New(ctx *entity.Context, defs entity.Definitions) *Session {
	ctx.WithDefaults()
	id := uuid.New()
	ctx.Log = ctx.Log.With(log.String("session_id", id.String()))

	s := &Session{
		id:       id,
		ctx:      ctx,
		defs:     defs,
		bus:      bus.New(),
		logger:   ctx.Log.With(log.String("component", "session")),
		entities: make(map[int32]entity.Entity),
	}
	s.observer = &busObserver{logger: s.logger}
	s.bus.AddObserver(s.observer)
	s.registerHandlers()

	s.logger.Debug("Session created")
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// Spawn creates an entity of kind and sends it to the client.
func (s *Session) Spawn(kind entity.Kind, p entity.Params) (entity.Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	if _, exists := s.entities[p.SourceID]; exists {
		return nil, fmt.Errorf("%w: %d", ErrEntityExists, p.SourceID)
	}

	def, ok := s.defs.Of(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}

	var e entity.Entity
	switch kind {
	case entity.KindArmorStand:
		e = entity.NewArmorStand(s.ctx, def, p)
	case entity.KindItemDisplay:
		e = entity.NewItemDisplay(s.ctx, def, p)
	case entity.KindBlockDisplay:
		e = entity.NewBlockDisplay(s.ctx, def, p)
	}
	e.Spawn()
	s.entities[p.SourceID] = e

	s.logger.Debug("Entity added",
		log.Int("source_id", int(p.SourceID)),
		log.Int64("runtime_id", e.RuntimeID()),
		log.String("kind", kind.String()))
	return e, nil
}

// Entity returns the entity with the given source id.
func (s *Session) Entity(sourceID int32) (entity.Entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[sourceID]
	return e, ok
}

// Len returns the number of live entities.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entities)
}

// Despawn removes an entity from the client and the cache.
func (s *Session) Despawn(sourceID int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entities[sourceID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, sourceID)
	}
	e.Despawn()
	delete(s.entities, sourceID)
	return nil
}

// Handle applies one inbound event to its entity.
func (s *Session) Handle(event metadata.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.routable(event); err != nil {
		return err
	}
	return s.bus.Publish(event)
}

// HandleBatch applies events in order. An event that fails does not stop the
// ones after it; all failures are returned joined.
func (s *Session) HandleBatch(events ...metadata.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}

	var all error
	batch := make([]bus.Event, 0, len(events))
	for _, event := range events {
		if err := s.routable(event); err != nil {
			all = errors.Join(all, err)
			continue
		}
		batch = append(batch, event)
	}
	return errors.Join(all, s.bus.PublishBatch(batch...))
}

// routable reports why event cannot be delivered, if it cannot.
func (s *Session) routable(event metadata.Event) error {
	if !s.bus.Has(event.Type()) {
		return fmt.Errorf("%w: %s", ErrUnhandledEvent, event.Kind())
	}
	if _, ok := s.entities[event.EntityID()]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownEntity, event.EntityID())
	}
	return nil
}

// Flush sends the pending metadata and properties of every entity. Entities are
// flushed in source id order.
func (s *Session) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	for _, id := range s.sortedIDs() {
		e := s.entities[id]
		e.UpdateMetadata()
		e.UpdateProperties()
	}
}

// Close despawns every entity and stops routing events. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	for _, id := range s.sortedIDs() {
		s.entities[id].Despawn()
	}
	clear(s.entities)

	var all error
	for _, sub := range s.subs {
		all = errors.Join(all, s.bus.Unsubscribe(sub))
	}
	s.subs = nil
	s.bus.RemoveObserver(s.observer)

	s.logger.Debug("Session closed")
	return all
}

// Metrics returns the event routing counters of the session.
func (s *Session) Metrics() bus.EventBusMetrics {
	return s.bus.GetMetrics()
}

func (s *Session) sortedIDs() []int32 {
	ids := make([]int32, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// busObserver logs failed event deliveries.
type busObserver struct {
	logger log.Log
}

func (o *busObserver) OnPublish(string, bus.Event) {}

func (o *busObserver) OnDelivered(eventType string, handlers int, err error, durationMicros int64) {
	if err == nil || errors.Is(err, bus.ErrNoSubscribers) {
		return
	}
	o.logger.Warn("Event handling failed",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Int64("duration_us", durationMicros),
		log.Error(err))
}
