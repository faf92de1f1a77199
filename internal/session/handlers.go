package session

import (
	"fmt"

	"github.com/Rakise/Geyser/internal/core/entity"
	"github.com/Rakise/Geyser/internal/core/events/bus"
	"github.com/Rakise/Geyser/internal/core/metadata"
)

// equipmentUpdater is implemented by entities that send equipment packets.
type equipmentUpdater interface {
	entity.Equipped
	UpdateEquipment()
}

func (s *Session) registerHandlers() {
	on(s, metadata.KindFlags, func(e entity.Entity, ev metadata.Flags) error {
		e.SetFlags(ev.Value)
		return nil
	})
	on(s, metadata.KindDisplayName, func(e entity.Entity, ev metadata.DisplayName) error {
		e.SetDisplayName(ev.Name)
		return nil
	})
	on(s, metadata.KindDisplayNameVisible, func(e entity.Entity, ev metadata.DisplayNameVisible) error {
		e.SetDisplayNameVisible(ev.Visible)
		return nil
	})
	on(s, metadata.KindMove, func(e entity.Entity, ev metadata.Move) error {
		if ev.Relative {
			e.MoveRelative(ev.Position, ev.Yaw, ev.Pitch, ev.HeadYaw, ev.OnGround)
		} else {
			e.MoveAbsolute(ev.Position, ev.Yaw, ev.Pitch, ev.HeadYaw, ev.OnGround, ev.Teleported)
		}
		return nil
	})
	on(s, metadata.KindEquipment, func(e entity.Entity, ev metadata.Equipment) error {
		eq, ok := e.(equipmentUpdater)
		if !ok {
			return unsupported(e, ev)
		}
		if ev.Slot >= metadata.SlotCount {
			return fmt.Errorf("%w: slot %d", ErrUnsupportedEvent, ev.Slot)
		}
		eq.SetEquipment(ev.Slot, s.ctx.Items.TranslateItem(ev.Item))
		eq.UpdateEquipment()
		return nil
	})

	on(s, metadata.KindArmorStandFlags, func(e entity.Entity, ev metadata.ArmorStandFlags) error {
		a, ok := e.(*entity.ArmorStand)
		if !ok {
			return unsupported(e, ev)
		}
		a.SetArmorStandFlags(ev.Value)
		return nil
	})
	on(s, metadata.KindPartRotation, func(e entity.Entity, ev metadata.PartRotation) error {
		a, ok := e.(*entity.ArmorStand)
		if !ok {
			return unsupported(e, ev)
		}
		a.SetPartRotation(ev.Part, ev.Rotation)
		return nil
	})

	on(s, metadata.KindTranslation, func(e entity.Entity, ev metadata.Translation) error {
		t, ok := e.(entity.Transformable)
		if !ok {
			return unsupported(e, ev)
		}
		t.ApplyTranslation(ev.Delta)
		return nil
	})
	on(s, metadata.KindScale, func(e entity.Entity, ev metadata.Scale) error {
		t, ok := e.(entity.Transformable)
		if !ok {
			return unsupported(e, ev)
		}
		t.ApplyScale(ev.Delta)
		return nil
	})
	// Left and right rotations fold into the same running rotation.
	on(s, metadata.KindRotation, func(e entity.Entity, ev metadata.Rotation) error {
		t, ok := e.(entity.Transformable)
		if !ok {
			return unsupported(e, ev)
		}
		t.ApplyRotation(ev.Quaternion)
		return nil
	})

	on(s, metadata.KindDisplayedItem, func(e entity.Entity, ev metadata.DisplayedItem) error {
		d, ok := e.(*entity.ItemDisplay)
		if !ok {
			return unsupported(e, ev)
		}
		d.SetDisplayedItem(s.ctx.Items.TranslateItem(ev.Item))
		return nil
	})
	on(s, metadata.KindDisplayType, func(e entity.Entity, ev metadata.DisplayType) error {
		d, ok := e.(*entity.ItemDisplay)
		if !ok {
			return unsupported(e, ev)
		}
		d.SetDisplayType(ev.Value)
		return nil
	})
	on(s, metadata.KindDisplayedBlock, func(e entity.Entity, ev metadata.DisplayedBlock) error {
		d, ok := e.(*entity.BlockDisplay)
		if !ok {
			return unsupported(e, ev)
		}
		state := ev.State
		d.SetDisplayedBlock(state, s.ctx.Items.TranslateBlock(state))
		return nil
	})
}

// on subscribes handler to kind. Events arrive either as T or as *T. Handlers
// run inside Handle with the session lock held, so they read the entity map
// directly.
func on[T metadata.Event](s *Session, kind metadata.Kind, handler func(entity.Entity, T) error) {
	sub, err := s.bus.Subscribe(string(kind), func(event bus.Event) error {
		ev, ok := eventAs[T](event)
		if !ok {
			return fmt.Errorf("%w: %T for %s", ErrUnhandledEvent, event, kind)
		}
		e, ok := s.entities[ev.EntityID()]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownEntity, ev.EntityID())
		}
		return handler(e, ev)
	})
	if err != nil {
		panic(err)
	}
	s.subs = append(s.subs, sub)
}

func eventAs[T metadata.Event](event bus.Event) (T, bool) {
	switch ev := any(event).(type) {
	case T:
		return ev, true
	case *T:
		if ev != nil {
			return *ev, true
		}
	}
	var zero T
	return zero, false
}

func unsupported(e entity.Entity, ev metadata.Event) error {
	return fmt.Errorf("%w: %s on runtime id %d", ErrUnsupportedEvent, ev.Kind(), e.RuntimeID())
}
