// Package metadata defines the already-decoded source-protocol entity events
// consumed by the translation core.
package metadata

import "github.com/go-gl/mathgl/mgl32"

// Kind routes an event to its handler.
type Kind string

const (
	KindFlags              Kind = "entity.flags"
	KindDisplayName        Kind = "entity.display_name"
	KindDisplayNameVisible Kind = "entity.display_name_visible"
	KindEquipment          Kind = "entity.equipment"
	KindMove               Kind = "entity.move"
	KindArmorStandFlags    Kind = "armor_stand.flags"
	KindPartRotation       Kind = "armor_stand.part_rotation"
	KindTranslation        Kind = "display.translation"
	KindScale              Kind = "display.scale"
	KindRotation           Kind = "display.rotation"
	KindDisplayedItem      Kind = "display.item"
	KindDisplayedBlock     Kind = "display.block"
	KindDisplayType        Kind = "display.type"
)

// Kinds lists every event kind.
var Kinds = []Kind{
	KindFlags, KindDisplayName, KindDisplayNameVisible, KindEquipment, KindMove,
	KindArmorStandFlags, KindPartRotation,
	KindTranslation, KindScale, KindRotation, KindDisplayedItem, KindDisplayedBlock, KindDisplayType,
}

// Event is a metadata change addressed to one source entity.
type Event interface {
	EntityID() int32
	Kind() Kind
	// Type is Kind as a string, used for event bus routing.
	Type() string
}

// Target addresses an event by source entity id.
type Target struct {
	Entity int32
}

// On returns the Target for a source entity id.
func On(entityID int32) Target { return Target{Entity: entityID} }

func (t Target) EntityID() int32 { return t.Entity }

// Entity flag bits of the source protocol.
const (
	FlagOnFire    byte = 0x01
	FlagSneaking  byte = 0x02
	FlagSprinting byte = 0x08
	FlagInvisible byte = 0x20
)

// Armor stand flag bits of the source protocol.
const (
	ArmorStandSmall       byte = 0x01
	ArmorStandArms        byte = 0x04
	ArmorStandNoBasePlate byte = 0x08
	ArmorStandMarker      byte = 0x10
)

type Flags struct {
	Target
	Value byte
}

type DisplayName struct {
	Target
	// Name is the plain-text display name; empty clears it.
	Name string
}

type DisplayNameVisible struct {
	Target
	Visible bool
}

type Slot uint8

const (
	SlotHelmet Slot = iota
	SlotChestplate
	SlotLeggings
	SlotBoots
	SlotMainHand
	SlotOffHand
)

// SlotCount is the number of equipment slots.
const SlotCount = 6

func (s Slot) String() string {
	switch s {
	case SlotHelmet:
		return "helmet"
	case SlotChestplate:
		return "chestplate"
	case SlotLeggings:
		return "leggings"
	case SlotBoots:
		return "boots"
	case SlotMainHand:
		return "main_hand"
	case SlotOffHand:
		return "off_hand"
	default:
		return "unknown"
	}
}

type Equipment struct {
	Target
	Slot Slot
	Item ItemStack
}

// Move repositions an entity. When Relative is set, Position is a delta.
type Move struct {
	Target
	Position   mgl32.Vec3
	Relative   bool
	Yaw        float32
	Pitch      float32
	HeadYaw    float32
	OnGround   bool
	Teleported bool
}

type ArmorStandFlags struct {
	Target
	Value byte
}

type Part uint8

const (
	PartHead Part = iota
	PartBody
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg
)

// Prefix is the property name prefix of the part.
func (p Part) Prefix() string {
	switch p {
	case PartHead:
		return "he"
	case PartBody:
		return "bo"
	case PartLeftArm:
		return "la"
	case PartRightArm:
		return "ra"
	case PartLeftLeg:
		return "ll"
	case PartRightLeg:
		return "rl"
	default:
		return ""
	}
}

// PartRotation carries a body part pose in degrees.
type PartRotation struct {
	Target
	Part     Part
	Rotation mgl32.Vec3
}

type Translation struct {
	Target
	Delta mgl32.Vec3
}

type Scale struct {
	Target
	Delta mgl32.Vec3
}

type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// Rotation is a left or right rotation quaternion of a display entity.
type Rotation struct {
	Target
	Side       Side
	Quaternion mgl32.Quat
}

type DisplayedItem struct {
	Target
	Item ItemStack
}

type DisplayedBlock struct {
	Target
	State int32
}

type DisplayType struct {
	Target
	Value byte
}

func (Flags) Kind() Kind              { return KindFlags }
func (DisplayName) Kind() Kind        { return KindDisplayName }
func (DisplayNameVisible) Kind() Kind { return KindDisplayNameVisible }
func (Equipment) Kind() Kind          { return KindEquipment }
func (Move) Kind() Kind               { return KindMove }
func (ArmorStandFlags) Kind() Kind    { return KindArmorStandFlags }
func (PartRotation) Kind() Kind       { return KindPartRotation }
func (Translation) Kind() Kind        { return KindTranslation }
func (Scale) Kind() Kind              { return KindScale }
func (Rotation) Kind() Kind           { return KindRotation }
func (DisplayedItem) Kind() Kind      { return KindDisplayedItem }
func (DisplayedBlock) Kind() Kind     { return KindDisplayedBlock }
func (DisplayType) Kind() Kind        { return KindDisplayType }

func (Flags) Type() string              { return string(KindFlags) }
func (DisplayName) Type() string        { return string(KindDisplayName) }
func (DisplayNameVisible) Type() string { return string(KindDisplayNameVisible) }
func (Equipment) Type() string          { return string(KindEquipment) }
func (Move) Type() string               { return string(KindMove) }
func (ArmorStandFlags) Type() string    { return string(KindArmorStandFlags) }
func (PartRotation) Type() string       { return string(KindPartRotation) }
func (Translation) Type() string        { return string(KindTranslation) }
func (Scale) Type() string              { return string(KindScale) }
func (Rotation) Type() string           { return string(KindRotation) }
func (DisplayedItem) Type() string      { return string(KindDisplayedItem) }
func (DisplayedBlock) Type() string     { return string(KindDisplayedBlock) }
func (DisplayType) Type() string        { return string(KindDisplayType) }
