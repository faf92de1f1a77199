package session

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rakise/Geyser/internal/core/entity"
	"github.com/Rakise/Geyser/internal/core/identifier"
	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
)

var defs = entity.NewDefinitions(identifier.NewRegistry(identifier.NewAllocator(identifier.EntityTypeBase)))

func newSession(t *testing.T) (*Session, *packet.Recorder) {
	t.Helper()
	reg, err := properties.BuildRegistry(nil)
	require.NoError(t, err)
	rec := &packet.Recorder{}
	s := New(&entity.Context{
		Sink:       rec,
		IDs:        identifier.NewAllocator(1),
		Properties: reg,
		Log:        log.NewNop(),
	}, defs)
	t.Cleanup(func() { _ = s.Close() })
	return s, rec
}

type customEvent struct{ metadata.Target }

func (customEvent) Kind() metadata.Kind { return "custom.unknown" }
func (customEvent) Type() string        { return "custom.unknown" }

func TestSpawnAndLookup(t *testing.T) {
	s, rec := newSession(t)
	assert.NotEqual(t, uuid.Nil, s.ID())

	e, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 10, UUID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"add_entity"}, rec.Names())

	got, ok := s.Entity(10)
	require.True(t, ok)
	assert.Same(t, e, got)
	assert.Equal(t, 1, s.Len())

	_, err = s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 10})
	assert.ErrorIs(t, err, ErrEntityExists)

	_, err = s.Spawn(entity.Kind(42), entity.Params{SourceID: 11})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestArmorStandEventsDriveSecondary(t *testing.T) {
	s, rec := newSession(t)
	e, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1, Position: mgl32.Vec3{0, 70, 0}})
	require.NoError(t, err)
	stand := e.(*entity.ArmorStand)

	require.NoError(t, s.HandleBatch(
		metadata.Flags{Target: metadata.On(1), Value: metadata.FlagInvisible},
		metadata.DisplayName{Target: metadata.On(1), Name: "Guard"},
		metadata.Equipment{Target: metadata.On(1), Slot: metadata.SlotChestplate, Item: metadata.ItemStack{ID: 299, Count: 1}},
	))

	assert.Equal(t, entity.StateInvisibleNameWithArmor, stand.State())
	secondID, ok := stand.Secondary()
	require.True(t, ok)

	armor := packet.For[*packet.MobArmorEquipment](rec, stand.RuntimeID())
	require.Len(t, armor, 1)
	assert.Equal(t, int32(299), armor[0].Chestplate.ID)

	rec.Reset()
	require.NoError(t, s.Handle(metadata.DisplayName{Target: metadata.On(1), Name: "Captain"}))
	s.Flush()

	data := packet.Filter[*packet.SetEntityData](rec)
	require.Len(t, data, 2)
	assert.Equal(t, secondID, data[0].RuntimeID)
	assert.Equal(t, stand.RuntimeID(), data[1].RuntimeID)

	require.NoError(t, s.Handle(metadata.Flags{Target: metadata.On(1)}))
	_, ok = stand.Secondary()
	assert.False(t, ok)
	assert.Len(t, packet.For[*packet.RemoveEntity](rec, secondID), 1)
}

func TestArmorStandPoseEvents(t *testing.T) {
	s, rec := newSession(t)
	_, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	require.NoError(t, err)
	rec.Reset()

	require.NoError(t, s.Handle(metadata.ArmorStandFlags{Target: metadata.On(1), Value: metadata.ArmorStandArms}))
	require.NoError(t, s.Handle(metadata.PartRotation{Target: metadata.On(1), Part: metadata.PartRightArm, Rotation: mgl32.Vec3{-10, 0, 200}}))

	data := packet.Filter[*packet.SetEntityData](rec)
	require.Len(t, data, 2)
	assert.Equal(t, []properties.IntProperty{{Index: 0, Value: 1}, {Index: 1, Value: 0}, {Index: 2, Value: 0}}, data[0].IntProperties)

	floats := data[1].FloatProperties
	require.Len(t, floats, 3)
	assert.Equal(t, 12, floats[0].Index, "right arm starts after head, body and left arm")
	assert.InDelta(t, -10, floats[0].Value, 1e-4)
	assert.InDelta(t, -160, floats[2].Value, 1e-4)
}

func TestDisplayEvents(t *testing.T) {
	s, rec := newSession(t)
	item, err := s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 2})
	require.NoError(t, err)
	block, err := s.Spawn(entity.KindBlockDisplay, entity.Params{SourceID: 3})
	require.NoError(t, err)
	rec.Reset()

	require.NoError(t, s.Handle(metadata.Rotation{
		Target:     metadata.On(2),
		Side:       metadata.SideLeft,
		Quaternion: mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}),
	}))
	require.NoError(t, s.Handle(metadata.Translation{Target: metadata.On(2), Delta: mgl32.Vec3{0, 0.5, 0}}))
	require.NoError(t, s.Handle(metadata.Scale{Target: metadata.On(2), Delta: mgl32.Vec3{2, 2, 2}}))
	require.NoError(t, s.Handle(metadata.DisplayedItem{Target: metadata.On(2), Item: metadata.ItemStack{ID: 264, Count: 1}}))
	require.NoError(t, s.Handle(metadata.DisplayType{Target: metadata.On(2), Value: 8}))
	require.NoError(t, s.Handle(metadata.DisplayedBlock{Target: metadata.On(3), State: 77}))

	composed := item.(*entity.ItemDisplay).Transform()
	assert.InDelta(t, 90, mgl32.RadToDeg(composed.Rotation[0]), 1e-3)
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0}, composed.Translation)
	assert.InDelta(t, 2, composed.Scale[1], 1e-4)

	hands := packet.For[*packet.MobEquipment](rec, item.RuntimeID())
	require.Len(t, hands, 1)
	assert.Equal(t, int32(264), hands[0].Item.ID)

	blockHands := packet.For[*packet.MobEquipment](rec, block.RuntimeID())
	require.Len(t, blockHands, 1)
	assert.Equal(t, int32(77), blockHands[0].Item.BlockRuntimeID)
	assert.Equal(t, int32(77), block.(*entity.BlockDisplay).BlockState())
}

func TestMoveEvents(t *testing.T) {
	s, rec := newSession(t)
	e, err := s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 2, Position: mgl32.Vec3{1, 1, 1}})
	require.NoError(t, err)

	require.NoError(t, s.Handle(metadata.Move{Target: metadata.On(2), Position: mgl32.Vec3{1, 0, 0}, Relative: true}))
	require.NoError(t, s.Handle(metadata.Move{Target: metadata.On(2), Position: mgl32.Vec3{9, 9, 9}, Teleported: true}))

	moves := packet.For[*packet.MoveEntityAbsolute](rec, e.RuntimeID())
	require.Len(t, moves, 2)
	assert.Equal(t, mgl32.Vec3{2, 1, 1}, moves[0].Position)
	assert.False(t, moves[0].Teleported)
	assert.Equal(t, mgl32.Vec3{9, 9, 9}, moves[1].Position)
	assert.True(t, moves[1].Teleported)
}

func TestHandleErrors(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 2})
	require.NoError(t, err)

	err = s.Handle(metadata.Flags{Target: metadata.On(99)})
	assert.ErrorIs(t, err, ErrUnknownEntity)

	err = s.Handle(metadata.PartRotation{Target: metadata.On(2), Part: metadata.PartHead})
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	err = s.Handle(metadata.Equipment{Target: metadata.On(2), Slot: metadata.SlotHelmet})
	assert.ErrorIs(t, err, ErrUnsupportedEvent)

	err = s.Handle(customEvent{Target: metadata.On(2)})
	assert.ErrorIs(t, err, ErrUnhandledEvent)
}

func TestHandleBatchKeepsGoing(t *testing.T) {
	s, _ := newSession(t)
	e, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	require.NoError(t, err)

	err = s.HandleBatch(
		metadata.Flags{Target: metadata.On(5)},
		metadata.DisplayName{Target: metadata.On(1), Name: "after"},
	)
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Equal(t, "after", e.(*entity.ArmorStand).Nametag())
}

func TestHandleAcceptsPointerEvents(t *testing.T) {
	s, rec := newSession(t)
	e, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	require.NoError(t, err)

	require.NotPanics(t, func() {
		require.NoError(t, s.Handle(&metadata.Flags{Target: metadata.On(1), Value: metadata.FlagInvisible}))
		require.NoError(t, s.HandleBatch(
			&metadata.DisplayName{Target: metadata.On(1), Name: "pointer"},
			metadata.DisplayNameVisible{Target: metadata.On(1), Visible: true},
		))
	})

	stand := e.(*entity.ArmorStand)
	assert.Equal(t, "pointer", stand.Nametag())

	s.Flush()
	assert.NotEmpty(t, packet.For[*packet.SetEntityData](rec, e.RuntimeID()))
}

func TestHandleBatchReportsUnhandledEvents(t *testing.T) {
	s, _ := newSession(t)
	e, err := s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 2})
	require.NoError(t, err)

	err = s.HandleBatch(
		customEvent{Target: metadata.On(2)},
		metadata.Translation{Target: metadata.On(2), Delta: mgl32.Vec3{1, 0, 0}},
	)
	assert.ErrorIs(t, err, ErrUnhandledEvent)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, e.(entity.Transformable).Transform().Translation)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.HandleBatch(metadata.Flags{Target: metadata.On(2)}), ErrSessionClosed)
}

func TestDespawn(t *testing.T) {
	s, rec := newSession(t)
	e, err := s.Spawn(entity.KindBlockDisplay, entity.Params{SourceID: 4})
	require.NoError(t, err)

	require.NoError(t, s.Despawn(4))
	assert.Len(t, packet.For[*packet.RemoveEntity](rec, e.RuntimeID()), 1)
	assert.ErrorIs(t, s.Despawn(4), ErrUnknownEntity)
	assert.Equal(t, 0, s.Len())
}

func TestClose(t *testing.T) {
	s, rec := newSession(t)
	_, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	require.NoError(t, err)
	_, err = s.Spawn(entity.KindItemDisplay, entity.Params{SourceID: 2})
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.Len(t, packet.Filter[*packet.RemoveEntity](rec), 2)
	assert.Equal(t, 0, s.Len())

	assert.ErrorIs(t, s.Handle(metadata.Flags{Target: metadata.On(1)}), ErrSessionClosed)
	_, err = s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.NoError(t, s.Close())
}

func TestMetricsCountDeliveries(t *testing.T) {
	s, _ := newSession(t)
	_, err := s.Spawn(entity.KindArmorStand, entity.Params{SourceID: 1})
	require.NoError(t, err)

	require.NoError(t, s.Handle(metadata.Flags{Target: metadata.On(1)}))
	_ = s.Handle(metadata.Translation{Target: metadata.On(1)})

	m := s.Metrics()
	assert.Equal(t, uint64(2), m.Published)
	assert.Equal(t, uint64(1), m.Errors)
	assert.Equal(t, uint64(len(metadata.Kinds)), m.SubscribersActive)
}
