package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/Rakise/Geyser/internal/core/metadata"
	"github.com/Rakise/Geyser/internal/core/observability/log"
	"github.com/Rakise/Geyser/internal/core/packet"
	"github.com/Rakise/Geyser/internal/core/properties"
)

// Entity is a translated entity living in a session.
type Entity interface {
	SourceID() int32
	RuntimeID() int64
	Valid() bool

	Spawn()
	Despawn()
	MoveAbsolute(position mgl32.Vec3, yaw, pitch, headYaw float32, onGround, teleported bool)
	MoveRelative(delta mgl32.Vec3, yaw, pitch, headYaw float32, onGround bool)

	SetFlags(flags byte)
	SetDisplayName(name string)
	SetDisplayNameVisible(visible bool)

	// UpdateMetadata sends pending entity data and flags.
	UpdateMetadata()
	// UpdateProperties sends pending custom property writes.
	UpdateProperties()
}

// Equipped is implemented by entities that wear equipment.
type Equipped interface {
	SetEquipment(slot metadata.Slot, item packet.ItemData)
}

// Params describes where and as what an entity spawns.
type Params struct {
	SourceID int32
	// UUID is the source-protocol identity; zero for synthetic entities.
	UUID     uuid.UUID
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	HeadYaw  float32
}

// Base holds the state every translated entity shares.
type Base struct {
	ctx *Context
	log log.Log
	def Definition

	sourceID  int32
	runtimeID int64
	uuid      uuid.UUID

	position mgl32.Vec3
	yaw      float32
	pitch    float32
	headYaw  float32
	onGround bool

	valid      bool
	flags      packet.FlagSet
	flagsDirty bool
	dirty      packet.Metadata
	nametag    string

	props *properties.Accumulator

	// onInvisible replaces the default handling of the invisible bit.
	onInvisible func(bool)
}

func newBase(ctx *Context, def Definition, p Params) Base {
	runtimeID := ctx.IDs.Next()
	return Base{
		ctx:       ctx,
		log:       ctx.Log.With(log.Int64("runtime_id", runtimeID), log.String("type", def.Type.Identifier())),
		def:       def,
		sourceID:  p.SourceID,
		runtimeID: runtimeID,
		uuid:      p.UUID,
		position:  p.Position,
		yaw:       p.Yaw,
		pitch:     p.Pitch,
		headYaw:   p.HeadYaw,
		dirty:     make(packet.Metadata),
		props:     properties.NewAccumulator(ctx.Properties.Schema(def.Family)),
	}
}

func (b *Base) SourceID() int32        { return b.sourceID }
func (b *Base) RuntimeID() int64       { return b.runtimeID }
func (b *Base) UUID() uuid.UUID        { return b.uuid }
func (b *Base) Valid() bool            { return b.valid }
func (b *Base) Position() mgl32.Vec3   { return b.position }
func (b *Base) Nametag() string        { return b.nametag }
func (b *Base) Definition() Definition { return b.def }

// Flag reports the current value of a target flag.
func (b *Base) Flag(f packet.Flag) bool { return b.flags.Has(f) }

// Properties exposes the pending custom property writes.
func (b *Base) Properties() *properties.Accumulator { return b.props }

// DirtyMetadata returns a copy of the entity data waiting for the next flush.
func (b *Base) DirtyMetadata() packet.Metadata { return b.dirty.Clone() }

func (b *Base) send(pk packet.Packet) {
	b.ctx.Sink.Send(b.runtimeID, pk)
}

func (b *Base) Spawn() {
	b.spawnAt(b.position)
}

// spawnAt sends the entity at position, which may differ from the tracked one.
func (b *Base) spawnAt(position mgl32.Vec3) {
	pk := &packet.AddEntity{
		RuntimeID:  b.runtimeID,
		UUID:       b.uuid,
		Identifier: b.def.Type.Identifier(),
		Position:   position,
		Rotation:   mgl32.Vec3{b.pitch, b.yaw, b.headYaw},
		Metadata:   b.dirty.Clone(),
		Flags:      b.flags,
	}
	pk.IntProperties, pk.FloatProperties = b.props.FlushInto(nil, nil)
	b.valid = true
	b.flagsDirty = false
	clear(b.dirty)
	b.send(pk)

	b.log.Debug("Entity spawned")
}

// Despawn removes the entity from the client. Despawning an entity that is not
// spawned does nothing.
func (b *Base) Despawn() {
	if !b.valid {
		return
	}
	b.send(&packet.RemoveEntity{RuntimeID: b.runtimeID})
	b.valid = false

	b.log.Debug("Entity despawned")
}

func (b *Base) MoveAbsolute(position mgl32.Vec3, yaw, pitch, headYaw float32, onGround, teleported bool) {
	b.moveTo(position, position, yaw, pitch, headYaw, onGround, teleported)
}

func (b *Base) MoveRelative(delta mgl32.Vec3, yaw, pitch, headYaw float32, onGround bool) {
	b.MoveAbsolute(b.position.Add(delta), yaw, pitch, headYaw, onGround, false)
}

// moveTo tracks position but sends sent, which lets subclasses shift what the
// client sees without losing the source position.
func (b *Base) moveTo(position, sent mgl32.Vec3, yaw, pitch, headYaw float32, onGround, teleported bool) {
	b.position = position
	b.yaw, b.pitch, b.headYaw = yaw, pitch, headYaw
	b.onGround = onGround
	if !b.valid {
		return
	}
	b.send(&packet.MoveEntityAbsolute{
		RuntimeID:  b.runtimeID,
		Position:   sent,
		Rotation:   mgl32.Vec3{pitch, yaw, headYaw},
		OnGround:   onGround,
		Teleported: teleported,
	})
}

func (b *Base) SetFlag(f packet.Flag, v bool) {
	next := b.flags.With(f, v)
	if next != b.flags {
		b.flags = next
		b.flagsDirty = true
	}
}

// SetFlags applies the source entity flag byte.
func (b *Base) SetFlags(flags byte) {
	b.SetFlag(packet.FlagOnFire, flags&metadata.FlagOnFire != 0)
	b.SetFlag(packet.FlagSneaking, flags&metadata.FlagSneaking != 0)
	b.SetFlag(packet.FlagSprinting, flags&metadata.FlagSprinting != 0)

	invisible := flags&metadata.FlagInvisible != 0
	if b.onInvisible != nil {
		b.onInvisible(invisible)
		return
	}
	b.SetFlag(packet.FlagInvisible, invisible)
}

func (b *Base) SetDisplayName(name string) {
	b.nametag = name
	b.dirty[packet.DataName] = name
}

func (b *Base) SetDisplayNameVisible(visible bool) {
	b.dirty[packet.DataNametagAlwaysShow] = boolByte(visible)
}

func (b *Base) setBoundingBox(width, height float32) {
	b.dirty[packet.DataWidth] = width
	b.dirty[packet.DataHeight] = height
}

func (b *Base) UpdateMetadata() {
	if !b.valid || (len(b.dirty) == 0 && !b.flagsDirty) {
		return
	}
	pk := &packet.SetEntityData{
		RuntimeID: b.runtimeID,
		Metadata:  b.dirty.Clone(),
	}
	if b.flagsDirty {
		flags := b.flags
		pk.Flags = &flags
		b.flagsDirty = false
	}
	clear(b.dirty)
	b.send(pk)
}

// UpdateProperties flushes pending property writes. Before the entity is spawned
// they stay pending and travel with the spawn packet.
func (b *Base) UpdateProperties() {
	if !b.valid || !b.props.HasPending() {
		return
	}
	pk := &packet.SetEntityData{RuntimeID: b.runtimeID}
	pk.IntProperties, pk.FloatProperties = b.props.FlushInto(nil, nil)
	b.send(pk)
}

// property reports a rejected property write. Rejections mean the translation
// tables and the schema disagree, so they are logged as errors.
func (b *Base) property(name string, err error) {
	if err != nil {
		b.log.Error("Property write rejected",
			log.String("property", name),
			log.String("family", b.def.Family),
			log.Error(err))
	}
}

func (b *Base) setBoolProperty(name string, v bool) {
	b.property(name, b.props.AddBool(name, v))
}

func (b *Base) setFloatProperty(name string, v float32) {
	b.property(name, b.props.AddFloat(name, v))
}

func (b *Base) setIntProperty(name string, v int32) {
	b.property(name, b.props.AddInt(name, v))
}

func (b *Base) setEnumProperty(name, v string) {
	b.property(name, b.props.AddEnum(name, v))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
